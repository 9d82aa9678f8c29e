package lease

import (
	"context"
	"database/sql"

	"campusshelter/model"
)

// BookingMeta is what the lease service needs to validate a creation:
// the booking's status, the owning landlord, and whether a lease row
// already exists.
type BookingMeta struct {
	Status     model.BookingStatus
	LandlordID int64
	HasLease   bool
}

// Detail is the materialized lease view with the parties needed for the
// visibility check.
type Detail struct {
	Lease      model.Lease
	StudentID  int64
	LandlordID int64
}

type Repo interface {
	BookingMeta(ctx context.Context, bookingID int64) (*BookingMeta, error)
	Insert(ctx context.Context, l *model.Lease) error
	ByID(ctx context.Context, id int64) (*Detail, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) BookingMeta(ctx context.Context, bookingID int64) (*BookingMeta, error) {
	const q = `
		SELECT b.status, p.landlord_id, l.id IS NOT NULL
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		LEFT JOIN leases l ON l.booking_id = b.id
		WHERE b.id = $1`
	var m BookingMeta
	if err := r.db.QueryRowContext(ctx, q, bookingID).Scan(&m.Status, &m.LandlordID, &m.HasLease); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repo) Insert(ctx context.Context, l *model.Lease) error {
	const q = `
		INSERT INTO leases (booking_id, document_url)
		VALUES ($1,$2)
		RETURNING id, signed_at`
	return r.db.QueryRowContext(ctx, q, l.BookingID, l.DocumentURL).Scan(&l.ID, &l.SignedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*Detail, error) {
	const q = `
		SELECT l.id, l.booking_id, l.document_url, l.signed_at,
			b.id, b.student_id, b.property_id, b.status, b.lease_start, b.lease_end,
			b.created_at, b.updated_at,
			s.id, s.name, s.email, s.phone,
			p.id, p.title, p.location, p.price_monthly, p.landlord_id
		FROM leases l
		JOIN bookings b ON b.id = l.booking_id
		JOIN users s ON s.id = b.student_id
		JOIN properties p ON p.id = b.property_id
		WHERE l.id = $1`
	var d Detail
	var b model.Booking
	var student model.UserRef
	var prop model.PropertyRef
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.Lease.ID, &d.Lease.BookingID, &d.Lease.DocumentURL, &d.Lease.SignedAt,
		&b.ID, &b.StudentID, &b.PropertyID, &b.Status, &b.LeaseStart, &b.LeaseEnd,
		&b.CreatedAt, &b.UpdatedAt,
		&student.ID, &student.Name, &student.Email, &student.Phone,
		&prop.ID, &prop.Title, &prop.Location, &prop.PriceMonthly, &prop.LandlordID,
	); err != nil {
		return nil, err
	}
	b.Student = &student
	b.Property = &prop
	d.Lease.Booking = &b
	d.StudentID = b.StudentID
	d.LandlordID = prop.LandlordID
	return &d, nil
}
