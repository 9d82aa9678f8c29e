package maintenance

import (
	"context"
	"database/sql"
	"strconv"

	"campusshelter/model"
)

// Scope mirrors booking listing visibility: own rows for students,
// owned-property rows for landlords, everything for admins.
type Scope struct {
	Role   model.Role
	UserID int64
}

type Repo interface {
	PropertyExists(ctx context.Context, propertyID int64) (bool, error)
	HasApprovedBooking(ctx context.Context, studentID, propertyID int64) (bool, error)
	Insert(ctx context.Context, m *model.MaintenanceRequest) error
	GetWithOwner(ctx context.Context, id int64) (req *model.MaintenanceRequest, landlordID int64, err error)
	SetStatus(ctx context.Context, id int64, status model.MaintenanceStatus) error
	ByID(ctx context.Context, id int64) (*model.MaintenanceRequest, error)
	List(ctx context.Context, s Scope, limit, offset int) ([]model.MaintenanceRequest, error)
	Count(ctx context.Context, s Scope) (int, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) PropertyExists(ctx context.Context, propertyID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM properties WHERE id = $1)`, propertyID,
	).Scan(&ok)
	return ok, err
}

func (r *repo) HasApprovedBooking(ctx context.Context, studentID, propertyID int64) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE student_id = $1
			AND property_id = $2
			AND status = 'APPROVED'
		)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, studentID, propertyID).Scan(&ok)
	return ok, err
}

func (r *repo) Insert(ctx context.Context, m *model.MaintenanceRequest) error {
	const q = `
		INSERT INTO maintenance_requests (property_id, student_id, description)
		VALUES ($1,$2,$3)
		RETURNING id, status, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q, m.PropertyID, m.StudentID, m.Description).
		Scan(&m.ID, &m.Status, &m.CreatedAt, &m.UpdatedAt)
}

const maintenanceSelect = `
	SELECT m.id, m.property_id, m.student_id, m.description, m.status,
		m.created_at, m.updated_at,
		s.id, s.name, s.email,
		p.id, p.title, p.location
	FROM maintenance_requests m
	JOIN users s ON s.id = m.student_id
	JOIN properties p ON p.id = m.property_id`

func scanRequest(row interface{ Scan(...any) error }) (*model.MaintenanceRequest, error) {
	var m model.MaintenanceRequest
	var student model.UserRef
	var prop model.PropertyRef
	if err := row.Scan(
		&m.ID, &m.PropertyID, &m.StudentID, &m.Description, &m.Status,
		&m.CreatedAt, &m.UpdatedAt,
		&student.ID, &student.Name, &student.Email,
		&prop.ID, &prop.Title, &prop.Location,
	); err != nil {
		return nil, err
	}
	m.Student = &student
	m.Property = &prop
	return &m, nil
}

func (r *repo) GetWithOwner(ctx context.Context, id int64) (*model.MaintenanceRequest, int64, error) {
	const q = `
		SELECT m.id, m.property_id, m.student_id, m.description, m.status,
			m.created_at, m.updated_at, p.landlord_id
		FROM maintenance_requests m
		JOIN properties p ON p.id = m.property_id
		WHERE m.id = $1`
	var m model.MaintenanceRequest
	var landlordID int64
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.PropertyID, &m.StudentID, &m.Description, &m.Status,
		&m.CreatedAt, &m.UpdatedAt, &landlordID,
	); err != nil {
		return nil, 0, err
	}
	return &m, landlordID, nil
}

func (r *repo) SetStatus(ctx context.Context, id int64, status model.MaintenanceStatus) error {
	const q = `
		UPDATE maintenance_requests
		SET status = $2,
			updated_at = NOW()
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, status)
	return err
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.MaintenanceRequest, error) {
	return scanRequest(r.db.QueryRowContext(ctx, maintenanceSelect+` WHERE m.id = $1`, id))
}

func scopeWhere(s Scope) (string, []any) {
	switch s.Role {
	case model.RoleAdmin:
		return "TRUE", nil
	case model.RoleLandlord:
		return "p.landlord_id = $1", []any{s.UserID}
	default:
		return "m.student_id = $1", []any{s.UserID}
	}
}

func (r *repo) List(ctx context.Context, s Scope, limit, offset int) ([]model.MaintenanceRequest, error) {
	where, args := scopeWhere(s)
	q := maintenanceSelect + `
		WHERE ` + where + `
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MaintenanceRequest
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *repo) Count(ctx context.Context, s Scope) (int, error) {
	where, args := scopeWhere(s)
	q := `
		SELECT COUNT(*)
		FROM maintenance_requests m
		JOIN properties p ON p.id = m.property_id
		WHERE ` + where
	var total int
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&total)
	return total, err
}
