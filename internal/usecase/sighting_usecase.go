package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/domain/repository"
	"github.com/ecotrack-service/internal/pkg/errors"
	"github.com/ecotrack-service/internal/pkg/validator"
	"github.com/ecotrack-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// SightingUseCase - наблюдения дикой природы и их модерация
type SightingUseCase struct {
	store    repository.Store
	activity ActivityRecorder
	logger   *zap.Logger
}

// NewSightingUseCase создает новый экземпляр SightingUseCase
func NewSightingUseCase(store repository.Store, activity ActivityRecorder, logger *zap.Logger) *SightingUseCase {
	return &SightingUseCase{
		store:    store,
		activity: activity,
		logger:   logger,
	}
}

func (uc *SightingUseCase) List(ctx context.Context, req dto.SightingListRequest) ([]domain.SightingDetail, error) {
	filter := domain.SightingFilter{Limit: domain.ClampLimit(req.Limit)}

	if req.SpeciesID > 0 {
		id := req.SpeciesID
		filter.SpeciesID = &id
	}
	if req.LocationID > 0 {
		id := req.LocationID
		filter.LocationID = &id
	}
	if req.Status != "" {
		st, ok := domain.ParseVerificationStatus(req.Status)
		if !ok {
			return nil, errors.ErrInvalidVerification
		}
		filter.Status = &st
	}

	list, err := uc.store.Repos().Sightings.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list sightings: %w", err)
	}
	return list, nil
}

func (uc *SightingUseCase) Get(ctx context.Context, id int64) (*domain.SightingDetail, error) {
	s, err := uc.store.Repos().Sightings.GetByID(ctx, id)
	if err != nil {
		return nil, sightingErr(id, err)
	}
	return s, nil
}

// Create сохраняет новое наблюдение со статусом pending
func (uc *SightingUseCase) Create(ctx context.Context, req *dto.CreateSightingRequest) (*domain.SightingDetail, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	s := &domain.Sighting{
		SpeciesID:          *req.SpeciesID,
		LocationID:         *req.LocationID,
		SightingDate:       domain.Today(),
		NumberObserved:     1,
		ObserverName:       strings.TrimSpace(*req.ObserverName),
		ObserverContact:    strings.TrimSpace(*req.ObserverContact),
		VerificationStatus: domain.VerificationPending,
		Notes:              req.Notes,
		PhotoURL:           req.PhotoURL,
	}

	// Некорректная дата не ошибка: наблюдение датируется сегодняшним днём
	if req.SightingDate != "" {
		if d, err := domain.ParseDate(req.SightingDate); err == nil {
			s.SightingDate = d
		} else {
			uc.logger.Debug("Ignoring unparsable sighting_date", zap.String("value", req.SightingDate))
		}
	}
	if req.SightingTime != "" {
		t, err := parseClock(req.SightingTime)
		if err != nil {
			return nil, errors.Validation("Invalid sighting_time")
		}
		s.SightingTime = &t
	}
	if req.NumberObserved != nil {
		s.NumberObserved = *req.NumberObserved
	}

	var created *domain.SightingDetail
	err := uc.store.WithinTx(ctx, func(tx repository.Repositories) error {
		if _, err := tx.Species.GetByID(ctx, s.SpeciesID); err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				return errors.ErrInvalidSpecies
			}
			return err
		}
		if _, err := tx.Locations.GetByID(ctx, s.LocationID); err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				return errors.ErrInvalidLocation
			}
			return err
		}
		if err := tx.Sightings.Create(ctx, s); err != nil {
			return err
		}

		var err error
		created, err = tx.Sightings.GetByID(ctx, s.ID)
		return err
	})
	if err != nil {
		return nil, wrapUnlessApp("create sighting", err)
	}

	uc.logger.Info("Sighting created",
		zap.Int64("sighting_id", s.ID),
		zap.Int64("species_id", s.SpeciesID),
		zap.Int64("location_id", s.LocationID))

	return created, nil
}

// UpdateStatus - публичная смена verification_status
func (uc *SightingUseCase) UpdateStatus(ctx context.Context, id int64, req *dto.UpdateSightingStatusRequest) (*domain.SightingDetail, error) {
	if req.VerificationStatus == nil {
		return nil, errors.ErrNoStatusProvided
	}
	status, ok := domain.ParseVerificationStatus(*req.VerificationStatus)
	if !ok {
		return nil, errors.ErrInvalidVerification
	}

	updated, _, err := uc.setStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Verify - модерация администратором, возвращает обновлённое наблюдение
func (uc *SightingUseCase) Verify(
	ctx context.Context,
	actor *domain.Identity,
	id int64,
	req *dto.VerifySightingRequest,
	ip string,
) (*domain.SightingDetail, error) {
	if req.Status == nil {
		return nil, errors.ErrInvalidStatus
	}
	status, ok := domain.ParseVerificationStatus(*req.Status)
	if !ok {
		return nil, errors.ErrInvalidStatus
	}

	updated, old, err := uc.setStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	recordActivity(ctx, uc.activity, uc.logger, actorID(actor), domain.ActionVerifySighting,
		fmt.Sprintf("Changed sighting #%d (%s) from %s to %s", id, updated.Species.CommonName, old, status), ip)

	return updated, nil
}

// setStatus changes the status and refreshes the species statistics in one
// transaction. Returns the previous status.
func (uc *SightingUseCase) setStatus(
	ctx context.Context,
	id int64,
	status domain.VerificationStatus,
) (*domain.SightingDetail, domain.VerificationStatus, error) {
	var (
		updated *domain.SightingDetail
		old     domain.VerificationStatus
	)

	err := uc.store.WithinTx(ctx, func(tx repository.Repositories) error {
		current, err := tx.Sightings.GetByID(ctx, id)
		if err != nil {
			return sightingErr(id, err)
		}
		old = current.VerificationStatus

		if err := tx.Sightings.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		if err := tx.Species.RefreshStats(ctx, current.SpeciesID); err != nil {
			return err
		}

		updated, err = tx.Sightings.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, "", wrapUnlessApp("update sighting status", err)
	}

	uc.logger.Info("Sighting status updated",
		zap.Int64("sighting_id", id),
		zap.String("from", string(old)),
		zap.String("to", string(status)))

	return updated, old, nil
}

// Delete - удаление наблюдения администратором
func (uc *SightingUseCase) Delete(ctx context.Context, actor *domain.Identity, id int64, ip string) error {
	var speciesName string

	err := uc.store.WithinTx(ctx, func(tx repository.Repositories) error {
		current, err := tx.Sightings.GetByID(ctx, id)
		if err != nil {
			return sightingErr(id, err)
		}
		speciesName = current.Species.CommonName

		if err := tx.Sightings.Delete(ctx, id); err != nil {
			return err
		}
		return tx.Species.RefreshStats(ctx, current.SpeciesID)
	})
	if err != nil {
		return wrapUnlessApp("delete sighting", err)
	}

	uc.logger.Info("Sighting deleted", zap.Int64("sighting_id", id))

	recordActivity(ctx, uc.activity, uc.logger, actorID(actor), domain.ActionDeleteSighting,
		fmt.Sprintf("Deleted sighting: %s", speciesName), ip)

	return nil
}

func sightingErr(id int64, err error) error {
	if errors.Is(err, errors.ErrNotFound) {
		return errors.ErrSightingNotFound
	}
	return fmt.Errorf("get sighting %d: %w", id, err)
}

// parseClock accepts HH:MM or HH:MM:SS and normalizes to HH:MM:SS.
func parseClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", fmt.Errorf("invalid time %q", s)
}

// wrapUnlessApp adds context to unexpected errors and passes AppErrors
// through untouched so their status code survives.
func wrapUnlessApp(op string, err error) error {
	if _, ok := errors.As(err); ok {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
