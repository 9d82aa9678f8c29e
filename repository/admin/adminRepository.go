package admin

import (
	"context"
	"database/sql"
	"time"

	"campusshelter/model"
)

// UserRow is the admin user listing shape with relation counts.
type UserRow struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      *string    `json:"phone,omitempty"`
	Role       model.Role `json:"role"`
	Verified   bool       `json:"verified"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Properties int        `json:"properties"`
	Bookings   int        `json:"bookings"`
	Reviews    int        `json:"reviews"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type RoleCount struct {
	Role  model.Role `json:"role"`
	Count int        `json:"count"`
}

// PropertyStat is a top-properties row for the analytics view.
type PropertyStat struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Location     string  `json:"location"`
	PriceMonthly float64 `json:"priceMonthly"`
	Bookings     int     `json:"bookings"`
	Reviews      int     `json:"reviews"`
	AvgRating    float64 `json:"avgRating,omitempty"`
}

type Repo interface {
	ListUsers(ctx context.Context, role model.Role, limit, offset int) ([]UserRow, error)
	CountUsers(ctx context.Context, role model.Role) (int, error)

	Totals(ctx context.Context) (users, properties, bookings int, err error)
	BookingsByStatus(ctx context.Context) ([]StatusCount, error)
	UsersByRole(ctx context.Context) ([]RoleCount, error)
	TopByBookings(ctx context.Context, n int) ([]PropertyStat, error)
	TopByRating(ctx context.Context, n int) ([]PropertyStat, error)
	BookingsSince(ctx context.Context, since time.Time) (int, error)
	RevenueEstimate(ctx context.Context) (float64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) ListUsers(ctx context.Context, role model.Role, limit, offset int) ([]UserRow, error) {
	const q = `
		SELECT u.id, u.name, u.email, u.phone, u.role, u.verified, u.created_at, u.updated_at,
			(SELECT COUNT(*) FROM properties p WHERE p.landlord_id = u.id),
			(SELECT COUNT(*) FROM bookings b WHERE b.student_id = u.id),
			(SELECT COUNT(*) FROM reviews rv WHERE rv.student_id = u.id)
		FROM users u
		WHERE ($1 = '' OR u.role = $1)
		ORDER BY u.created_at DESC, u.id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, q, string(role), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UserRow
	for rows.Next() {
		var u UserRow
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Verified, &u.CreatedAt, &u.UpdatedAt,
			&u.Properties, &u.Bookings, &u.Reviews,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) CountUsers(ctx context.Context, role model.Role) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE ($1 = '' OR role = $1)`, string(role),
	).Scan(&total)
	return total, err
}

func (r *repo) Totals(ctx context.Context) (int, int, int, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM properties),
			(SELECT COUNT(*) FROM bookings)`
	var users, properties, bookings int
	err := r.db.QueryRowContext(ctx, q).Scan(&users, &properties, &bookings)
	return users, properties, bookings, err
}

func (r *repo) BookingsByStatus(ctx context.Context) ([]StatusCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StatusCount
	for rows.Next() {
		var s StatusCount
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repo) UsersByRole(ctx context.Context) ([]RoleCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RoleCount
	for rows.Next() {
		var rc RoleCount
		if err := rows.Scan(&rc.Role, &rc.Count); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

func (r *repo) TopByBookings(ctx context.Context, n int) ([]PropertyStat, error) {
	const q = `
		SELECT p.id, p.title, p.location, p.price_monthly,
			COUNT(DISTINCT b.id), COUNT(DISTINCT rv.id)
		FROM properties p
		LEFT JOIN bookings b ON b.property_id = p.id
		LEFT JOIN reviews rv ON rv.property_id = p.id
		GROUP BY p.id
		ORDER BY COUNT(DISTINCT b.id) DESC
		LIMIT $1`
	return r.queryStats(ctx, q, n, false)
}

func (r *repo) TopByRating(ctx context.Context, n int) ([]PropertyStat, error) {
	const q = `
		SELECT p.id, p.title, p.location, p.price_monthly,
			COUNT(DISTINCT b.id), COUNT(DISTINCT rv.id),
			COALESCE(AVG(rv.rating), 0)
		FROM properties p
		LEFT JOIN bookings b ON b.property_id = p.id
		LEFT JOIN reviews rv ON rv.property_id = p.id
		GROUP BY p.id
		ORDER BY COALESCE(AVG(rv.rating), 0) DESC
		LIMIT $1`
	return r.queryStats(ctx, q, n, true)
}

func (r *repo) queryStats(ctx context.Context, q string, n int, withRating bool) ([]PropertyStat, error) {
	rows, err := r.db.QueryContext(ctx, q, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PropertyStat
	for rows.Next() {
		var p PropertyStat
		dest := []any{&p.ID, &p.Title, &p.Location, &p.PriceMonthly, &p.Bookings, &p.Reviews}
		if withRating {
			dest = append(dest, &p.AvgRating)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repo) BookingsSince(ctx context.Context, since time.Time) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE created_at >= $1`, since,
	).Scan(&total)
	return total, err
}

// RevenueEstimate sums the monthly price over approved bookings.
func (r *repo) RevenueEstimate(ctx context.Context) (float64, error) {
	const q = `
		SELECT COALESCE(SUM(p.price_monthly), 0)
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE b.status = 'APPROVED'`
	var total float64
	err := r.db.QueryRowContext(ctx, q).Scan(&total)
	return total, err
}
