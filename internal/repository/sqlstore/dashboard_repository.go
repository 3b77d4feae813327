package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/ecotrack-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const dashboardColumns = `stat_id, stat_date, total_reports, pending_reports, completed_reports,
	critical_reports, total_sightings, verified_sightings, land_species_count,
	water_species_count, created_at`

type dashboardRepository struct {
	q      sqlx.ExtContext
	logger *zap.Logger

	// concurrent is false when q is a transaction, which cannot run
	// queries in parallel.
	concurrent bool
}

func (r *dashboardRepository) GetByDate(ctx context.Context, day domain.Date) (*domain.DashboardStats, error) {
	query := "SELECT " + dashboardColumns + " FROM dashboard_stats WHERE stat_date = ?"

	var stats domain.DashboardStats
	if err := sqlx.GetContext(ctx, r.q, &stats, r.q.Rebind(query), day); err != nil {
		return nil, notFound(err)
	}
	return &stats, nil
}

type counter struct {
	name  string
	dest  *int
	query string
	args  []interface{}
}

func (r *dashboardRepository) Recount(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}

	counters := []counter{
		{"total_reports", &stats.TotalReports, "SELECT COUNT(*) FROM environmental_reports", nil},
		{"pending_reports", &stats.PendingReports, "SELECT COUNT(*) FROM environmental_reports WHERE status = ?", []interface{}{domain.ReportStatusPending}},
		{"completed_reports", &stats.CompletedReports, "SELECT COUNT(*) FROM environmental_reports WHERE status = ?", []interface{}{domain.ReportStatusCompleted}},
		{"critical_reports", &stats.CriticalReports, "SELECT COUNT(*) FROM environmental_reports WHERE severity = ?", []interface{}{domain.SeverityCritical}},
		{"total_sightings", &stats.TotalSightings, "SELECT COUNT(*) FROM sightings", nil},
		{"verified_sightings", &stats.VerifiedSightings, "SELECT COUNT(*) FROM sightings WHERE verification_status = ?", []interface{}{domain.VerificationVerified}},
		{"land_species_count", &stats.LandSpeciesCount, "SELECT COUNT(*) FROM species WHERE category = ?", []interface{}{domain.CategoryLand}},
		{"water_species_count", &stats.WaterSpeciesCount, "SELECT COUNT(*) FROM species WHERE category = ?", []interface{}{domain.CategoryWater}},
	}

	run := func(ctx context.Context, c counter) error {
		if err := sqlx.GetContext(ctx, r.q, c.dest, r.q.Rebind(c.query), c.args...); err != nil {
			return fmt.Errorf("count %s: %w", c.name, err)
		}
		return nil
	}

	start := time.Now()
	if r.concurrent {
		g, gctx := errgroup.WithContext(ctx)
		for _, c := range counters {
			g.Go(func() error { return run(gctx, c) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for _, c := range counters {
			if err := run(ctx, c); err != nil {
				return nil, err
			}
		}
	}

	r.logger.Debug("dashboard counters recomputed",
		zap.Bool("concurrent", r.concurrent),
		zap.Duration("took", time.Since(start)),
	)
	return stats, nil
}

func (r *dashboardRepository) Insert(ctx context.Context, stats *domain.DashboardStats) (bool, error) {
	if stats.CreatedAt.IsZero() {
		stats.CreatedAt = time.Now()
	}
	stats.CreatedAt = stats.CreatedAt.UTC()

	query := `
		INSERT INTO dashboard_stats (
			stat_date, total_reports, pending_reports, completed_reports, critical_reports,
			total_sightings, verified_sightings, land_species_count, water_species_count, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (stat_date) DO NOTHING`

	res, err := r.q.ExecContext(ctx, r.q.Rebind(query),
		stats.StatDate, stats.TotalReports, stats.PendingReports, stats.CompletedReports,
		stats.CriticalReports, stats.TotalSightings, stats.VerifiedSightings,
		stats.LandSpeciesCount, stats.WaterSpeciesCount, stats.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert dashboard stats: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *dashboardRepository) Increment(ctx context.Context, day domain.Date, inc domain.StatsIncrement) (bool, error) {
	query := `
		UPDATE dashboard_stats SET
			total_reports = total_reports + ?,
			pending_reports = pending_reports + ?,
			critical_reports = critical_reports + ?
		WHERE stat_date = ?`

	res, err := r.q.ExecContext(ctx, r.q.Rebind(query), inc.Reports, inc.Pending, inc.Critical, day)
	if err != nil {
		return false, fmt.Errorf("increment dashboard stats: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
