package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/ecotrack-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

var reportColumns = []string{
	"report_id", "location_id", "report_type", "severity", "status", "title",
	"description", "reporter_name", "reporter_contact", "report_date",
	"resolution_date", "photo_url", "created_at", "updated_at",
}

var reportDetailSelect = "SELECT " +
	columns("r", "", reportColumns) + ", " +
	columns("l", "location.", locationColumns) + `
	FROM environmental_reports r
	JOIN locations l ON l.location_id = r.location_id`

type reportRepository struct {
	q      sqlx.ExtContext
	logger *zap.Logger
}

func (r *reportRepository) List(ctx context.Context, filter domain.ReportFilter) ([]domain.ReportDetail, error) {
	w := &where{}
	if filter.LocationID != nil {
		w.add("r.location_id = ?", *filter.LocationID)
	}
	if filter.ReportType != nil {
		w.add("r.report_type = ?", *filter.ReportType)
	}
	if filter.Status != nil {
		w.add("r.status = ?", *filter.Status)
	}
	if filter.Severity != nil {
		w.add("r.severity = ?", *filter.Severity)
	}

	query := reportDetailSelect + w.String() + " ORDER BY r.report_date DESC, r.report_id DESC LIMIT ?"
	args := append(w.args, domain.ClampLimit(filter.Limit))

	reports := []domain.ReportDetail{}
	if err := sqlx.SelectContext(ctx, r.q, &reports, r.q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

func (r *reportRepository) GetByID(ctx context.Context, id int64) (*domain.ReportDetail, error) {
	query := reportDetailSelect + " WHERE r.report_id = ?"

	var report domain.ReportDetail
	if err := sqlx.GetContext(ctx, r.q, &report, r.q.Rebind(query), id); err != nil {
		return nil, notFound(err)
	}
	return &report, nil
}

func (r *reportRepository) Create(ctx context.Context, report *domain.EnvironmentalReport) error {
	now := time.Now().UTC()
	report.CreatedAt, report.UpdatedAt = now, now

	query := `
		INSERT INTO environmental_reports (
			location_id, report_type, severity, status, title, description,
			reporter_name, reporter_contact, report_date, resolution_date, photo_url,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING report_id`

	err := r.q.QueryRowxContext(ctx, r.q.Rebind(query),
		report.LocationID, report.ReportType, report.Severity, report.Status, report.Title,
		report.Description, report.ReporterName, report.ReporterContact, report.ReportDate,
		report.ResolutionDate, report.PhotoURL, report.CreatedAt, report.UpdatedAt,
	).Scan(&report.ID)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *reportRepository) Update(ctx context.Context, report *domain.EnvironmentalReport) error {
	report.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE environmental_reports SET
			report_type = ?, severity = ?, status = ?, title = ?, description = ?,
			reporter_name = ?, reporter_contact = ?, resolution_date = ?, updated_at = ?
		WHERE report_id = ?`

	res, err := r.q.ExecContext(ctx, r.q.Rebind(query),
		report.ReportType, report.Severity, report.Status, report.Title, report.Description,
		report.ReporterName, report.ReporterContact, report.ResolutionDate, report.UpdatedAt,
		report.ID,
	)
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	return affected(res)
}

func (r *reportRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind("DELETE FROM environmental_reports WHERE report_id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return affected(res)
}

func (r *reportRepository) CountByType(ctx context.Context) ([]domain.ReportTypeCount, error) {
	query := `
		SELECT report_type, COUNT(*) AS report_count
		FROM environmental_reports
		GROUP BY report_type
		ORDER BY report_count DESC, report_type`

	counts := []domain.ReportTypeCount{}
	if err := sqlx.SelectContext(ctx, r.q, &counts, query); err != nil {
		return nil, fmt.Errorf("count reports by type: %w", err)
	}
	return counts, nil
}
