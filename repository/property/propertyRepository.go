package property

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"campusshelter/model"
)

type Repo interface {
	Insert(ctx context.Context, p *model.Property) error
	ByID(ctx context.Context, id int64) (*model.Property, error)
	OwnerID(ctx context.Context, id int64) (int64, error)
	Update(ctx context.Context, id int64, req model.UpdatePropertyReq) error
	Delete(ctx context.Context, id int64) error
	SetApproved(ctx context.Context, id int64, approved bool) error
	Search(ctx context.Context, f model.PropertyFilter, limit, offset int) ([]model.Property, error)
	CountSearch(ctx context.Context, f model.PropertyFilter) (int, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const propertyCols = `
	p.id, p.landlord_id, p.title, p.description, p.price_monthly, p.price_weekly,
	p.location, p.latitude, p.longitude, p.rooms, p.bathrooms,
	p.furnished, p.wifi, p.electricity_backup, p.water, p.security,
	p.room_type, p.distance_from_campus, p.available_from, p.approved,
	p.created_at, p.updated_at`

func (r *repo) Insert(ctx context.Context, p *model.Property) error {
	const q = `
		INSERT INTO properties (
			landlord_id, title, description, price_monthly, price_weekly,
			location, latitude, longitude, rooms, bathrooms,
			furnished, wifi, electricity_backup, water, security,
			room_type, distance_from_campus, available_from
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING id, approved, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		p.LandlordID, p.Title, p.Description, p.PriceMonthly, p.PriceWeekly,
		p.Location, p.Latitude, p.Longitude, p.Rooms, p.Bathrooms,
		p.Furnished, p.Wifi, p.ElectricityBackup, p.Water, p.Security,
		p.RoomType, p.DistanceFromCampus, p.AvailableFrom,
	).Scan(&p.ID, &p.Approved, &p.CreatedAt, &p.UpdatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Property, error) {
	q := `
		SELECT ` + propertyCols + `,
			u.id, u.name, u.email, u.phone,
			COALESCE(AVG(rv.rating), 0), COUNT(rv.id)
		FROM properties p
		JOIN users u ON u.id = p.landlord_id
		LEFT JOIN reviews rv ON rv.property_id = p.id
		WHERE p.id = $1
		GROUP BY p.id, u.id`
	var p model.Property
	var landlord model.UserRef
	row := r.db.QueryRowContext(ctx, q, id)
	if err := row.Scan(
		&p.ID, &p.LandlordID, &p.Title, &p.Description, &p.PriceMonthly, &p.PriceWeekly,
		&p.Location, &p.Latitude, &p.Longitude, &p.Rooms, &p.Bathrooms,
		&p.Furnished, &p.Wifi, &p.ElectricityBackup, &p.Water, &p.Security,
		&p.RoomType, &p.DistanceFromCampus, &p.AvailableFrom, &p.Approved,
		&p.CreatedAt, &p.UpdatedAt,
		&landlord.ID, &landlord.Name, &landlord.Email, &landlord.Phone,
		&p.AvgRating, &p.ReviewCount,
	); err != nil {
		return nil, err
	}
	p.Landlord = &landlord
	return &p, nil
}

func (r *repo) OwnerID(ctx context.Context, id int64) (int64, error) {
	var owner int64
	err := r.db.QueryRowContext(ctx,
		`SELECT landlord_id FROM properties WHERE id = $1`, id,
	).Scan(&owner)
	return owner, err
}

// Update applies a partial update; only non-nil fields make it into the
// SET clause.
func (r *repo) Update(ctx context.Context, id int64, req model.UpdatePropertyReq) error {
	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.PriceMonthly != nil {
		add("price_monthly", *req.PriceMonthly)
	}
	if req.PriceWeekly != nil {
		add("price_weekly", *req.PriceWeekly)
	}
	if req.Location != nil {
		add("location", *req.Location)
	}
	if req.Latitude != nil {
		add("latitude", *req.Latitude)
	}
	if req.Longitude != nil {
		add("longitude", *req.Longitude)
	}
	if req.Rooms != nil {
		add("rooms", *req.Rooms)
	}
	if req.Bathrooms != nil {
		add("bathrooms", *req.Bathrooms)
	}
	if req.Furnished != nil {
		add("furnished", *req.Furnished)
	}
	if req.Wifi != nil {
		add("wifi", *req.Wifi)
	}
	if req.ElectricityBackup != nil {
		add("electricity_backup", *req.ElectricityBackup)
	}
	if req.Water != nil {
		add("water", *req.Water)
	}
	if req.Security != nil {
		add("security", *req.Security)
	}
	if req.RoomType != nil {
		add("room_type", *req.RoomType)
	}
	if req.DistanceFromCampus != nil {
		add("distance_from_campus", *req.DistanceFromCampus)
	}
	if req.AvailableFrom != nil {
		add("available_from", *req.AvailableFrom)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = NOW()")

	args = append(args, id)
	q := fmt.Sprintf("UPDATE properties SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	return err
}

func (r *repo) SetApproved(ctx context.Context, id int64, approved bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE properties SET approved = $2, updated_at = NOW() WHERE id = $1`,
		id, approved,
	)
	return err
}

// searchWhere builds the conjunctive store-level predicates. minRating is
// intentionally absent here: the average is derived, not stored, so the
// service filters the fetched page instead.
func searchWhere(f model.PropertyFilter) (string, []any) {
	where := []string{"p.approved = TRUE"}
	args := []any{}
	add := func(clause string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if f.MinPrice != nil {
		add("p.price_monthly >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("p.price_monthly <= $%d", *f.MaxPrice)
	}
	if f.Location != "" {
		add("p.location ILIKE $%d", "%"+f.Location+"%")
	}
	if f.Wifi {
		where = append(where, "p.wifi = TRUE")
	}
	if f.Furnished {
		where = append(where, "p.furnished = TRUE")
	}
	if f.RoomType != "" {
		add("p.room_type = $%d", f.RoomType)
	}
	if f.MaxDistance != nil {
		add("p.distance_from_campus <= $%d", *f.MaxDistance)
	}
	return strings.Join(where, " AND "), args
}

func (r *repo) Search(ctx context.Context, f model.PropertyFilter, limit, offset int) ([]model.Property, error) {
	where, args := searchWhere(f)
	q := `
		SELECT ` + propertyCols + `,
			u.id, u.name, u.email, u.phone,
			COALESCE(AVG(rv.rating), 0), COUNT(rv.id)
		FROM properties p
		JOIN users u ON u.id = p.landlord_id
		LEFT JOIN reviews rv ON rv.property_id = p.id
		WHERE ` + where + `
		GROUP BY p.id, u.id
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Property
	for rows.Next() {
		var p model.Property
		var landlord model.UserRef
		if err := rows.Scan(
			&p.ID, &p.LandlordID, &p.Title, &p.Description, &p.PriceMonthly, &p.PriceWeekly,
			&p.Location, &p.Latitude, &p.Longitude, &p.Rooms, &p.Bathrooms,
			&p.Furnished, &p.Wifi, &p.ElectricityBackup, &p.Water, &p.Security,
			&p.RoomType, &p.DistanceFromCampus, &p.AvailableFrom, &p.Approved,
			&p.CreatedAt, &p.UpdatedAt,
			&landlord.ID, &landlord.Name, &landlord.Email, &landlord.Phone,
			&p.AvgRating, &p.ReviewCount,
		); err != nil {
			return nil, err
		}
		p.Landlord = &landlord
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repo) CountSearch(ctx context.Context, f model.PropertyFilter) (int, error) {
	where, args := searchWhere(f)
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM properties p WHERE `+where, args...,
	).Scan(&total)
	return total, err
}
