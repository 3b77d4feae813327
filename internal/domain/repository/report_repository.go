package repository

import (
	"context"

	"github.com/ecotrack-service/internal/domain"
)

type ReportRepository interface {
	// List returns reports ordered by report_date descending.
	List(ctx context.Context, filter domain.ReportFilter) ([]domain.ReportDetail, error)
	GetByID(ctx context.Context, id int64) (*domain.ReportDetail, error)
	Create(ctx context.Context, r *domain.EnvironmentalReport) error

	// Update writes every mutable column of r.
	Update(ctx context.Context, r *domain.EnvironmentalReport) error
	Delete(ctx context.Context, id int64) error
	CountByType(ctx context.Context) ([]domain.ReportTypeCount, error)
}
