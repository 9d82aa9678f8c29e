package document

import (
	"context"
	"database/sql"

	"campusshelter/model"
)

type Repo interface {
	Insert(ctx context.Context, d *model.Document) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, d *model.Document) error {
	const q = `
		INSERT INTO documents (user_id, type, file_url)
		VALUES ($1,$2,$3)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q, d.UserID, d.Type, d.FileURL).Scan(&d.ID, &d.CreatedAt)
}
