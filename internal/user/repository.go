package user

import (
	"context"
	"database/sql"

	"shrimati-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, name, email, password string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	SetActive(ctx context.Context, id uint) error
	UpdatePassword(ctx context.Context, id uint, password string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = "id, name, email, password, role, is_active, created_at"

func (r *repository) Create(ctx context.Context, name, email, password string) (*User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING "+userColumns,
		name, email, password,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.IsActive, &u.CreatedAt)

	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}

	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1",
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.IsActive, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1",
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.IsActive, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) SetActive(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET is_active = TRUE WHERE id = $1", id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) UpdatePassword(ctx context.Context, id uint, password string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET password = $1 WHERE id = $2", password, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}
