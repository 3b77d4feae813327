package repository

import (
	"context"

	"github.com/ecotrack-service/internal/domain"
)

type LookupRepository interface {
	Categories(ctx context.Context) ([]domain.ReportCategory, error)
	Severities(ctx context.Context) ([]domain.ReportSeverity, error)
}
