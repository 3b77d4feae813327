package repository

import (
	"context"

	"github.com/ecotrack-service/internal/domain"
)

type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.ActivityLog) error
	List(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityLog, error)

	// DetachUser clears user_id on every entry of a user about to be deleted.
	DetachUser(ctx context.Context, userID int64) error
}
