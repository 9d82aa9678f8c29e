package booking

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"campusshelter/model"
)

// Interval is a half-open [Start, End) lease range held by an active
// (PENDING or APPROVED) booking.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Scope narrows listing queries by role: students see their own rows,
// landlords see rows on their properties, admins see everything.
type Scope struct {
	Role   model.Role
	UserID int64
}

type Repo interface {
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error

	LockProperty(ctx context.Context, tx *sql.Tx, propertyID int64) (bool, error)
	ActiveIntervals(ctx context.Context, tx *sql.Tx, propertyID int64) ([]Interval, error)
	Insert(ctx context.Context, tx *sql.Tx, b *model.Booking) error

	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (studentID, landlordID int64, status model.BookingStatus, err error)
	SetStatus(ctx context.Context, tx *sql.Tx, id int64, status model.BookingStatus) error

	ByID(ctx context.Context, id int64) (*model.Booking, error)
	List(ctx context.Context, s Scope, limit, offset int) ([]model.Booking, error)
	Count(ctx context.Context, s Scope) (int, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// LockProperty takes the property row lock that serializes concurrent
// booking attempts on the same property for the rest of the transaction.
func (r *repo) LockProperty(ctx context.Context, tx *sql.Tx, propertyID int64) (bool, error) {
	const q = `
		SELECT id
		FROM properties
		WHERE id = $1
		FOR UPDATE`
	var id int64
	err := tx.QueryRowContext(ctx, q, propertyID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *repo) ActiveIntervals(ctx context.Context, tx *sql.Tx, propertyID int64) ([]Interval, error) {
	const q = `
		SELECT lease_start, lease_end
		FROM bookings
		WHERE property_id = $1
		AND status IN ('PENDING','APPROVED')`
	rows, err := tx.QueryContext(ctx, q, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Interval
	for rows.Next() {
		var iv Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `
		INSERT INTO bookings (student_id, property_id, lease_start, lease_end)
		VALUES ($1,$2,$3,$4)
		RETURNING id, status, created_at, updated_at`
	return tx.QueryRowContext(ctx, q, b.StudentID, b.PropertyID, b.LeaseStart, b.LeaseEnd).
		Scan(&b.ID, &b.Status, &b.CreatedAt, &b.UpdatedAt)
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (int64, int64, model.BookingStatus, error) {
	const q = `
		SELECT b.student_id, p.landlord_id, b.status
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE b.id = $1
		FOR UPDATE OF b`
	var studentID, landlordID int64
	var status model.BookingStatus
	err := tx.QueryRowContext(ctx, q, id).Scan(&studentID, &landlordID, &status)
	return studentID, landlordID, status, err
}

func (r *repo) SetStatus(ctx context.Context, tx *sql.Tx, id int64, status model.BookingStatus) error {
	const q = `
		UPDATE bookings
		SET status = $2,
			updated_at = NOW()
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id, status)
	return err
}

const bookingSelect = `
	SELECT b.id, b.student_id, b.property_id, b.status, b.lease_start, b.lease_end,
		b.created_at, b.updated_at,
		s.id, s.name, s.email, s.phone,
		p.id, p.title, p.location, p.price_monthly,
		l.id, l.booking_id, l.document_url, l.signed_at
	FROM bookings b
	JOIN users s ON s.id = b.student_id
	JOIN properties p ON p.id = b.property_id
	LEFT JOIN leases l ON l.booking_id = b.id`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	var student model.UserRef
	var prop model.PropertyRef
	var leaseID, leaseBookingID sql.NullInt64
	var leaseDoc sql.NullString
	var leaseSigned sql.NullTime

	if err := row.Scan(
		&b.ID, &b.StudentID, &b.PropertyID, &b.Status, &b.LeaseStart, &b.LeaseEnd,
		&b.CreatedAt, &b.UpdatedAt,
		&student.ID, &student.Name, &student.Email, &student.Phone,
		&prop.ID, &prop.Title, &prop.Location, &prop.PriceMonthly,
		&leaseID, &leaseBookingID, &leaseDoc, &leaseSigned,
	); err != nil {
		return nil, err
	}
	b.Student = &student
	b.Property = &prop
	if leaseID.Valid {
		b.Lease = &model.Lease{
			ID:          leaseID.Int64,
			BookingID:   leaseBookingID.Int64,
			DocumentURL: leaseDoc.String,
			SignedAt:    leaseSigned.Time,
		}
	}
	return &b, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx, bookingSelect+` WHERE b.id = $1`, id))
}

func scopeWhere(s Scope) (string, []any) {
	switch s.Role {
	case model.RoleAdmin:
		return "TRUE", nil
	case model.RoleLandlord:
		return "p.landlord_id = $1", []any{s.UserID}
	default:
		return "b.student_id = $1", []any{s.UserID}
	}
}

func (r *repo) List(ctx context.Context, s Scope, limit, offset int) ([]model.Booking, error) {
	where, args := scopeWhere(s)
	q := bookingSelect + `
		WHERE ` + where + `
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *repo) Count(ctx context.Context, s Scope) (int, error) {
	where, args := scopeWhere(s)
	q := `
		SELECT COUNT(*)
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE ` + where
	var total int
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&total)
	return total, err
}
