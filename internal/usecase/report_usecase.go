package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/domain/repository"
	"github.com/ecotrack-service/internal/pkg/errors"
	"github.com/ecotrack-service/internal/pkg/validator"
	"github.com/ecotrack-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// StatsRecorder patches today's dashboard snapshot after a report commit.
type StatsRecorder interface {
	RecordReport(ctx context.Context, report *domain.EnvironmentalReport) error
}

// ReportUseCase - экологические отчёты граждан
type ReportUseCase struct {
	store    repository.Store
	stats    StatsRecorder
	activity ActivityRecorder
	logger   *zap.Logger
}

// NewReportUseCase создает новый экземпляр ReportUseCase
func NewReportUseCase(
	store repository.Store,
	stats StatsRecorder,
	activity ActivityRecorder,
	logger *zap.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		store:    store,
		stats:    stats,
		activity: activity,
		logger:   logger,
	}
}

func (uc *ReportUseCase) List(ctx context.Context, req dto.ReportListRequest) ([]domain.ReportDetail, error) {
	filter := domain.ReportFilter{Limit: domain.ClampLimit(req.Limit)}

	if req.LocationID > 0 {
		id := req.LocationID
		filter.LocationID = &id
	}
	if req.Type != "" {
		t, ok := domain.ParseReportType(req.Type)
		if !ok {
			return nil, errors.Validation("Invalid report type")
		}
		filter.ReportType = &t
	}
	if req.Status != "" {
		st, ok := domain.ParseReportStatus(req.Status)
		if !ok {
			return nil, errors.ErrInvalidStatus
		}
		filter.Status = &st
	}
	if req.Severity != "" {
		sev, ok := domain.ParseSeverity(req.Severity)
		if !ok {
			return nil, errors.Validation("Invalid severity")
		}
		filter.Severity = &sev
	}

	list, err := uc.store.Repos().Reports.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return list, nil
}

func (uc *ReportUseCase) Get(ctx context.Context, id int64) (*domain.ReportDetail, error) {
	r, err := uc.store.Repos().Reports.GetByID(ctx, id)
	if err != nil {
		return nil, reportErr(id, err)
	}
	return r, nil
}

// Create сохраняет отчёт и увеличивает счётчик отчётов города в одной
// транзакции. Статистика дашборда обновляется после коммита, её ошибка
// только логируется.
func (uc *ReportUseCase) Create(ctx context.Context, req *dto.CreateReportRequest) (*domain.ReportDetail, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	reportType, ok := domain.ParseReportType(*req.ReportType)
	if !ok {
		return nil, errors.Validation("Invalid report_type")
	}
	severity, ok := domain.ParseSeverity(*req.Severity)
	if !ok {
		return nil, errors.Validation("Invalid severity")
	}
	reportDate, err := domain.ParseDate(*req.ReportDate)
	if err != nil {
		return nil, errors.Validation("Invalid report_date, expected YYYY-MM-DD")
	}

	report := &domain.EnvironmentalReport{
		LocationID:      *req.LocationID,
		ReportType:      reportType,
		Severity:        severity,
		Status:          domain.ReportStatusPending,
		Title:           strings.TrimSpace(*req.Title),
		Description:     strings.TrimSpace(*req.Description),
		ReporterName:    strings.TrimSpace(*req.ReporterName),
		ReporterContact: strings.TrimSpace(*req.ReporterContact),
		ReportDate:      reportDate,
		PhotoURL:        req.PhotoURL,
	}

	var created *domain.ReportDetail
	err = uc.store.WithinTx(ctx, func(tx repository.Repositories) error {
		if err := tx.Locations.IncrementReports(ctx, report.LocationID); err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				return errors.ErrInvalidLocation
			}
			return err
		}
		if err := tx.Reports.Create(ctx, report); err != nil {
			return err
		}

		var err error
		created, err = tx.Reports.GetByID(ctx, report.ID)
		return err
	})
	if err != nil {
		return nil, wrapUnlessApp("create report", err)
	}

	uc.logger.Info("Report created",
		zap.Int64("report_id", report.ID),
		zap.Int64("location_id", report.LocationID),
		zap.String("severity", string(report.Severity)))

	if uc.stats != nil {
		if err := uc.stats.RecordReport(ctx, report); err != nil {
			uc.logger.Warn("Failed to update dashboard stats",
				zap.Int64("report_id", report.ID),
				zap.Error(err))
		}
	}

	return created, nil
}

// UpdateStatus - публичная смена статуса отчёта
func (uc *ReportUseCase) UpdateStatus(ctx context.Context, id int64, req *dto.UpdateReportStatusRequest) (*domain.ReportDetail, error) {
	if req.Status == nil {
		return nil, errors.ErrNoStatusProvided
	}
	status, ok := domain.ParseReportStatus(*req.Status)
	if !ok {
		return nil, errors.ErrInvalidStatus
	}

	updated, err := uc.edit(ctx, id, domain.ReportEdit{Status: &status})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Report status updated",
		zap.Int64("report_id", id),
		zap.String("status", string(status)))

	return updated, nil
}

// AdminUpdate - редактирование отчёта администратором
func (uc *ReportUseCase) AdminUpdate(
	ctx context.Context,
	actor *domain.Identity,
	id int64,
	req *dto.AdminUpdateReportRequest,
	ip string,
) (*domain.ReportDetail, error) {
	edit, err := reportEditFrom(req)
	if err != nil {
		return nil, err
	}

	updated, err := uc.edit(ctx, id, edit)
	if err != nil {
		return nil, err
	}

	recordActivity(ctx, uc.activity, uc.logger, actorID(actor), domain.ActionEditReport,
		fmt.Sprintf("Edited report #%d", id), ip)

	return updated, nil
}

// AdminDelete удаляет отчёт. total_reports у города не уменьшается.
func (uc *ReportUseCase) AdminDelete(ctx context.Context, actor *domain.Identity, id int64, ip string) error {
	err := uc.store.WithinTx(ctx, func(tx repository.Repositories) error {
		if err := tx.Reports.Delete(ctx, id); err != nil {
			return reportErr(id, err)
		}
		return nil
	})
	if err != nil {
		return wrapUnlessApp("delete report", err)
	}

	uc.logger.Info("Report deleted", zap.Int64("report_id", id))

	recordActivity(ctx, uc.activity, uc.logger, actorID(actor), domain.ActionDeleteReport,
		fmt.Sprintf("Deleted report #%d", id), ip)

	return nil
}

func (uc *ReportUseCase) Categories(ctx context.Context) ([]domain.ReportCategory, error) {
	list, err := uc.store.Repos().Lookups.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list report categories: %w", err)
	}
	return list, nil
}

func (uc *ReportUseCase) Severities(ctx context.Context) ([]domain.ReportSeverity, error) {
	list, err := uc.store.Repos().Lookups.Severities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list report severities: %w", err)
	}
	return list, nil
}

func (uc *ReportUseCase) edit(ctx context.Context, id int64, edit domain.ReportEdit) (*domain.ReportDetail, error) {
	var updated *domain.ReportDetail

	err := uc.store.WithinTx(ctx, func(tx repository.Repositories) error {
		current, err := tx.Reports.GetByID(ctx, id)
		if err != nil {
			return reportErr(id, err)
		}

		report := current.EnvironmentalReport
		edit.Apply(&report, domain.Today())
		if err := tx.Reports.Update(ctx, &report); err != nil {
			return err
		}

		updated, err = tx.Reports.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, wrapUnlessApp("update report", err)
	}
	return updated, nil
}

// reportEditFrom validates every enum field present in req.
func reportEditFrom(req *dto.AdminUpdateReportRequest) (domain.ReportEdit, error) {
	edit := domain.ReportEdit{
		Title:           req.Title,
		Description:     req.Description,
		ReporterName:    req.ReporterName,
		ReporterContact: req.ReporterContact,
	}

	if req.Status != nil {
		st, ok := domain.ParseReportStatus(*req.Status)
		if !ok {
			return edit, errors.ErrInvalidStatus
		}
		edit.Status = &st
	}
	if req.Severity != nil {
		sev, ok := domain.ParseSeverity(*req.Severity)
		if !ok {
			return edit, errors.Validation("Invalid severity")
		}
		edit.Severity = &sev
	}
	if req.ReportType != nil {
		t, ok := domain.ParseReportType(*req.ReportType)
		if !ok {
			return edit, errors.Validation("Invalid report_type")
		}
		edit.ReportType = &t
	}
	if edit.Title != nil && strings.TrimSpace(*edit.Title) == "" {
		return edit, errors.Validation("title cannot be empty")
	}
	if edit.Description != nil && strings.TrimSpace(*edit.Description) == "" {
		return edit, errors.Validation("description cannot be empty")
	}

	return edit, nil
}

func reportErr(id int64, err error) error {
	if errors.Is(err, errors.ErrNotFound) {
		return errors.ErrReportNotFound
	}
	return fmt.Errorf("report %d: %w", id, err)
}
