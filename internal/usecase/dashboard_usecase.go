package usecase

import (
	"context"
	"fmt"

	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/domain/repository"
	"github.com/ecotrack-service/internal/pkg/errors"
	"go.uber.org/zap"
)

const defaultSightingsByLocationLimit = 10

// DashboardUseCase - дневной снимок статистики и графики
type DashboardUseCase struct {
	store  repository.Store
	logger *zap.Logger
}

// NewDashboardUseCase создает новый экземпляр DashboardUseCase
func NewDashboardUseCase(store repository.Store, logger *zap.Logger) *DashboardUseCase {
	return &DashboardUseCase{
		store:  store,
		logger: logger,
	}
}

// Stats возвращает снимок за сегодня, создавая его при первом чтении дня
func (uc *DashboardUseCase) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	today := domain.Today()
	repo := uc.store.Repos().Dashboard

	// 1. Снимок уже есть
	stats, err := repo.GetByDate(ctx, today)
	if err == nil {
		uc.logger.Debug("Dashboard stats served from snapshot", zap.String("date", today.String()))
		return stats, nil
	}
	if !errors.Is(err, errors.ErrNotFound) {
		return nil, fmt.Errorf("get dashboard stats: %w", err)
	}

	// 2. Пересчитываем и сохраняем; a concurrent writer may win the insert
	if err := uc.materialize(ctx, today); err != nil {
		return nil, err
	}

	// 3. Перечитываем строку, которая теперь точно есть
	stats, err = repo.GetByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("reload dashboard stats: %w", err)
	}
	return stats, nil
}

// RecordReport increments today's counters for a committed report. When the
// day has no row yet the recount already includes the report.
func (uc *DashboardUseCase) RecordReport(ctx context.Context, report *domain.EnvironmentalReport) error {
	today := domain.Today()

	ok, err := uc.store.Repos().Dashboard.Increment(ctx, today, domain.IncrementFor(report))
	if err != nil {
		return fmt.Errorf("increment dashboard stats: %w", err)
	}
	if ok {
		return nil
	}
	return uc.materialize(ctx, today)
}

func (uc *DashboardUseCase) materialize(ctx context.Context, day domain.Date) error {
	repo := uc.store.Repos().Dashboard

	stats, err := repo.Recount(ctx)
	if err != nil {
		return fmt.Errorf("recount dashboard stats: %w", err)
	}
	stats.StatDate = day

	inserted, err := repo.Insert(ctx, stats)
	if err != nil {
		return fmt.Errorf("insert dashboard stats: %w", err)
	}

	uc.logger.Info("Dashboard stats materialized",
		zap.String("date", day.String()),
		zap.Bool("inserted", inserted),
		zap.Int("total_reports", stats.TotalReports))
	return nil
}

// SightingsByLocation - число наблюдений по городам для категории видов.
// По умолчанию категория land и limit 10.
func (uc *DashboardUseCase) SightingsByLocation(
	ctx context.Context,
	category string,
	limit int,
) (domain.Category, []domain.SightingsByLocation, error) {
	c := domain.CategoryLand
	if category != "" {
		var ok bool
		if c, ok = domain.ParseCategory(category); !ok {
			return "", nil, errors.Validation("Invalid category")
		}
	}
	if limit <= 0 {
		limit = defaultSightingsByLocationLimit
	}
	if limit > domain.MaxListLimit {
		limit = domain.MaxListLimit
	}

	rows, err := uc.store.Repos().Sightings.CountByLocation(ctx, c, limit)
	if err != nil {
		return "", nil, fmt.Errorf("sightings by location: %w", err)
	}
	return c, rows, nil
}

func (uc *DashboardUseCase) ReportsByType(ctx context.Context) ([]domain.ReportTypeCount, error) {
	rows, err := uc.store.Repos().Reports.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("reports by type: %w", err)
	}
	return rows, nil
}
