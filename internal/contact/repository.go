package contact

import (
	"context"
	"database/sql"

	"shrimati-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Insert(ctx context.Context, m *Message) (*Message, error)
	ListAll(ctx context.Context) ([]*Message, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, m *Message) (*Message, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO contacts (name, email, phone, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		m.Name, m.Email, m.Phone, m.Description,
	).Scan(&m.ID, &m.CreatedAt)

	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert contact message",
			zap.String("email", m.Email),
			zap.Error(err),
		)
		return nil, err
	}
	return m, nil
}

func (r *repository) ListAll(ctx context.Context) ([]*Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, phone, description, created_at
		 FROM contacts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Description, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}
