package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/ecotrack-service/internal/domain"
	pkgerrors "github.com/ecotrack-service/internal/pkg/errors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const userColumns = `user_id, username, password_hash, full_name, user_role, is_active, created_at, last_login`

type userRepository struct {
	q      sqlx.ExtContext
	logger *zap.Logger
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	query := "SELECT " + userColumns + " FROM users WHERE user_id = ?"
	if err := sqlx.GetContext(ctx, r.q, &u, r.q.Rebind(query), id); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	query := "SELECT " + userColumns + " FROM users WHERE username = ?"
	if err := sqlx.GetContext(ctx, r.q, &u, r.q.Rebind(query), username); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	u.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO users (username, password_hash, full_name, user_role, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING user_id`

	err := r.q.QueryRowxContext(ctx, r.q.Rebind(query),
		u.Username, u.PasswordHash, u.FullName, u.Role, u.IsActive, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user %q: %w", u.Username, pkgerrors.ErrDuplicate)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	query := "SELECT " + userColumns + " FROM users ORDER BY user_id"
	if err := sqlx.SelectContext(ctx, r.q, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind("DELETE FROM users WHERE user_id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return affected(res)
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind("UPDATE users SET last_login = ? WHERE user_id = ?"), at.UTC(), id)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return affected(res)
}
