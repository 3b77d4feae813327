package repository

import (
	"context"

	"github.com/ecotrack-service/internal/domain"
)

// DashboardRepository stores the daily statistics snapshot.
type DashboardRepository interface {
	GetByDate(ctx context.Context, day domain.Date) (*domain.DashboardStats, error)

	// Recount computes all eight counters from the live tables.
	Recount(ctx context.Context) (*domain.DashboardStats, error)

	// Insert stores stats unless a row for the same day exists. Reports
	// whether a row was written.
	Insert(ctx context.Context, stats *domain.DashboardStats) (bool, error)

	// Increment patches the row for day. Reports false when no row exists.
	Increment(ctx context.Context, day domain.Date, inc domain.StatsIncrement) (bool, error)
}
