package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chandrabharti/restaurant-api/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, req *domain.CreateMessageRequest) (*domain.Message, error)
	List(ctx context.Context, limit, offset int) ([]domain.Message, error)
	Reply(ctx context.Context, id int64, replyMessage string) (*domain.Message, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

const messageCols = `id, name, email, phone, subject, message, reply_message,
is_replied, created_at, updated_at`

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var m domain.Message
	err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.ReplyMessage,
		&m.IsReplied, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *messageRepository) Create(ctx context.Context, req *domain.CreateMessageRequest) (*domain.Message, error) {
	const q = `
		INSERT INTO messages (name, email, phone, subject, message, reply_message, is_replied)
		VALUES ($1, $2, $3, $4, $5, '', false)
		RETURNING ` + messageCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanMessage(r.pool.QueryRow(ctx, q, req.Name, req.Email, req.Phone, req.Subject, req.Message))
}

func (r *messageRepository) List(ctx context.Context, limit, offset int) ([]domain.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	const q = `
		SELECT ` + messageCols + `
		FROM messages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.ReplyMessage,
			&m.IsReplied, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

func (r *messageRepository) Reply(ctx context.Context, id int64, replyMessage string) (*domain.Message, error) {
	const q = `
		UPDATE messages SET reply_message = $2, is_replied = true, updated_at = now()
		WHERE id = $1
		RETURNING ` + messageCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanMessage(r.pool.QueryRow(ctx, q, id, replyMessage))
}

func (r *messageRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM messages WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (r *messageRepository) Count(ctx context.Context) (int64, error) {
	const q = `SELECT count(*) FROM messages`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	err := r.pool.QueryRow(ctx, q).Scan(&n)
	return n, err
}
