package review

import (
	"context"
	"database/sql"

	"campusshelter/model"
)

type Repo interface {
	PropertyExists(ctx context.Context, propertyID int64) (bool, error)
	HasApprovedBooking(ctx context.Context, studentID, propertyID int64) (bool, error)
	Insert(ctx context.Context, rv *model.Review) error
	ListForProperty(ctx context.Context, propertyID int64, limit, offset int) ([]model.Review, error)
	CountForProperty(ctx context.Context, propertyID int64) (int, error)

	// AllForProperty is the unpaginated variant embedded in the property
	// detail payload.
	AllForProperty(ctx context.Context, propertyID int64) ([]model.Review, error)
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

// Insert relies on the unique (student_id, property_id) index; callers
// map the unique violation to a duplicate-review conflict.
func (r *repo) Insert(ctx context.Context, rv *model.Review) error {
	const q = `
		INSERT INTO reviews (student_id, property_id, rating, comment)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q, rv.StudentID, rv.PropertyID, rv.Rating, rv.Comment).
		Scan(&rv.ID, &rv.CreatedAt)
}

const reviewSelect = `
	SELECT rv.id, rv.student_id, rv.property_id, rv.rating, rv.comment, rv.created_at,
		s.id, s.name
	FROM reviews rv
	JOIN users s ON s.id = rv.student_id
	WHERE rv.property_id = $1
	ORDER BY rv.created_at DESC, rv.id DESC`

func (r *repo) ListForProperty(ctx context.Context, propertyID int64, limit, offset int) ([]model.Review, error) {
	return r.queryReviews(ctx, reviewSelect+` LIMIT $2 OFFSET $3`, propertyID, limit, offset)
}

func (r *repo) AllForProperty(ctx context.Context, propertyID int64) ([]model.Review, error) {
	return r.queryReviews(ctx, reviewSelect, propertyID)
}

func (r *repo) queryReviews(ctx context.Context, q string, args ...any) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		var student model.UserRef
		if err := rows.Scan(
			&rv.ID, &rv.StudentID, &rv.PropertyID, &rv.Rating, &rv.Comment, &rv.CreatedAt,
			&student.ID, &student.Name,
		); err != nil {
			return nil, err
		}
		rv.Student = &student
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *repo) CountForProperty(ctx context.Context, propertyID int64) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE property_id = $1`, propertyID,
	).Scan(&total)
	return total, err
}
