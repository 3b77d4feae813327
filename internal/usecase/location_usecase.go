package usecase

import (
	"context"
	"fmt"

	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/domain/repository"
	"github.com/ecotrack-service/internal/pkg/errors"
	"github.com/ecotrack-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// LocationUseCase - города и муниципалитеты
type LocationUseCase struct {
	store  repository.Store
	logger *zap.Logger
}

func NewLocationUseCase(store repository.Store, logger *zap.Logger) *LocationUseCase {
	return &LocationUseCase{
		store:  store,
		logger: logger,
	}
}

func (uc *LocationUseCase) List(ctx context.Context, req dto.LocationListRequest) ([]domain.Location, error) {
	var filter domain.LocationFilter

	if req.Severity != "" {
		s, ok := domain.ParseSeverity(req.Severity)
		if !ok {
			return nil, errors.Validation("Invalid severity")
		}
		filter.Severity = &s
	}
	if req.Type != "" {
		t, ok := domain.ParseLocationType(req.Type)
		if !ok {
			return nil, errors.Validation("Invalid location type")
		}
		filter.LocationType = &t
	}

	list, err := uc.store.Repos().Locations.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return list, nil
}

func (uc *LocationUseCase) Get(ctx context.Context, id int64) (*domain.Location, error) {
	l, err := uc.store.Repos().Locations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.ErrLocationNotFound
		}
		return nil, fmt.Errorf("get location %d: %w", id, err)
	}
	return l, nil
}
