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

type activityRepository struct {
	q      sqlx.ExtContext
	logger *zap.Logger
}

func (r *activityRepository) Create(ctx context.Context, entry *domain.ActivityLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC()

	query := `
		INSERT INTO activity_log (user_id, action_type, description, ip_address, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING log_id`

	err := r.q.QueryRowxContext(ctx, r.q.Rebind(query),
		entry.UserID, entry.ActionType, entry.Description, entry.IPAddress, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert activity: %w", pkgerrors.ErrMissingReference)
		}
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *activityRepository) List(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityLog, error) {
	w := &where{}
	if filter.UserID != nil {
		w.add("user_id = ?", *filter.UserID)
	}
	if filter.ActionType != "" {
		w.add("action_type = ?", filter.ActionType)
	}

	query := `SELECT log_id, user_id, action_type, description, ip_address, created_at
		FROM activity_log` + w.String() + " ORDER BY created_at DESC, log_id DESC LIMIT ?"
	args := append(w.args, domain.ClampLimit(filter.Limit))

	entries := []domain.ActivityLog{}
	if err := sqlx.SelectContext(ctx, r.q, &entries, r.q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return entries, nil
}

func (r *activityRepository) DetachUser(ctx context.Context, userID int64) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind("UPDATE activity_log SET user_id = NULL WHERE user_id = ?"), userID)
	if err != nil {
		return fmt.Errorf("detach activity: %w", err)
	}
	return nil
}
