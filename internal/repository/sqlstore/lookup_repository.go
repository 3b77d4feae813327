package sqlstore

import (
	"context"
	"fmt"

	"github.com/ecotrack-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

type lookupRepository struct {
	q sqlx.ExtContext
}

func (r *lookupRepository) Categories(ctx context.Context) ([]domain.ReportCategory, error) {
	categories := []domain.ReportCategory{}
	query := "SELECT category_id, category_name, description FROM report_categories ORDER BY category_id"
	if err := sqlx.SelectContext(ctx, r.q, &categories, query); err != nil {
		return nil, fmt.Errorf("list report categories: %w", err)
	}
	return categories, nil
}

func (r *lookupRepository) Severities(ctx context.Context) ([]domain.ReportSeverity, error) {
	severities := []domain.ReportSeverity{}
	query := "SELECT severity_id, severity_level, description FROM report_severity ORDER BY severity_id"
	if err := sqlx.SelectContext(ctx, r.q, &severities, query); err != nil {
		return nil, fmt.Errorf("list report severities: %w", err)
	}
	return severities, nil
}
