package message

import (
	"context"
	"database/sql"
	"strconv"

	"campusshelter/model"
)

type Repo interface {
	UserExists(ctx context.Context, id int64) (bool, error)
	Insert(ctx context.Context, m *model.Message) error
	List(ctx context.Context, userID int64, partnerID *int64, limit, offset int) ([]model.Message, error)
	Count(ctx context.Context, userID int64, partnerID *int64) (int, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) UserExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id,
	).Scan(&ok)
	return ok, err
}

func (r *repo) Insert(ctx context.Context, m *model.Message) error {
	const q = `
		INSERT INTO messages (sender_id, receiver_id, property_id, content)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q, m.SenderID, m.ReceiverID, m.PropertyID, m.Content).
		Scan(&m.ID, &m.CreatedAt)
}

const messageSelect = `
	SELECT msg.id, msg.sender_id, msg.receiver_id, msg.property_id, msg.content, msg.created_at,
		snd.id, snd.name,
		rcv.id, rcv.name
	FROM messages msg
	JOIN users snd ON snd.id = msg.sender_id
	JOIN users rcv ON rcv.id = msg.receiver_id`

func convoWhere(partnerID *int64) string {
	if partnerID != nil {
		return `((msg.sender_id = $1 AND msg.receiver_id = $2) OR (msg.sender_id = $2 AND msg.receiver_id = $1))`
	}
	return `(msg.sender_id = $1 OR msg.receiver_id = $1)`
}

func (r *repo) List(ctx context.Context, userID int64, partnerID *int64, limit, offset int) ([]model.Message, error) {
	args := []any{userID}
	if partnerID != nil {
		args = append(args, *partnerID)
	}
	limPos := len(args) + 1
	q := messageSelect + `
		WHERE ` + convoWhere(partnerID) + `
		ORDER BY msg.created_at DESC, msg.id DESC
		LIMIT $` + strconv.Itoa(limPos) + ` OFFSET $` + strconv.Itoa(limPos+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Message
	for rows.Next() {
		var m model.Message
		var snd, rcv model.UserRef
		if err := rows.Scan(
			&m.ID, &m.SenderID, &m.ReceiverID, &m.PropertyID, &m.Content, &m.CreatedAt,
			&snd.ID, &snd.Name,
			&rcv.ID, &rcv.Name,
		); err != nil {
			return nil, err
		}
		m.Sender = &snd
		m.Receiver = &rcv
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repo) Count(ctx context.Context, userID int64, partnerID *int64) (int, error) {
	args := []any{userID}
	if partnerID != nil {
		args = append(args, *partnerID)
	}
	q := `SELECT COUNT(*) FROM messages msg WHERE ` + convoWhere(partnerID)
	var total int
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&total)
	return total, err
}
