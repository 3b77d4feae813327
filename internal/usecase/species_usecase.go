package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/domain/repository"
	"github.com/ecotrack-service/internal/pkg/errors"
	"github.com/ecotrack-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// SpeciesUseCase - каталог видов
type SpeciesUseCase struct {
	store  repository.Store
	logger *zap.Logger
}

// NewSpeciesUseCase создает новый экземпляр SpeciesUseCase
func NewSpeciesUseCase(store repository.Store, logger *zap.Logger) *SpeciesUseCase {
	return &SpeciesUseCase{
		store:  store,
		logger: logger,
	}
}

// List возвращает виды с фильтрами по категории и типу
func (uc *SpeciesUseCase) List(ctx context.Context, req dto.SpeciesListRequest) ([]domain.Species, error) {
	var filter domain.SpeciesFilter

	if req.Category != "" {
		c, ok := domain.ParseCategory(req.Category)
		if !ok {
			return nil, errors.Validation("Invalid category")
		}
		filter.Category = &c
	}
	if req.Type != "" {
		t, ok := domain.ParseSpeciesType(req.Type)
		if !ok {
			return nil, errors.Validation("Invalid species type")
		}
		filter.SpeciesType = &t
	}

	list, err := uc.store.Repos().Species.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list species: %w", err)
	}
	return list, nil
}

// Search ищет по общему и научному названию без учёта регистра
func (uc *SpeciesUseCase) Search(ctx context.Context, q string) ([]domain.Species, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, errors.ErrSearchQueryRequired
	}

	uc.logger.Debug("Searching species", zap.String("query", q))

	list, err := uc.store.Repos().Species.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search species: %w", err)
	}
	return list, nil
}

func (uc *SpeciesUseCase) Get(ctx context.Context, id int64) (*domain.Species, error) {
	s, err := uc.store.Repos().Species.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.ErrSpeciesNotFound
		}
		return nil, fmt.Errorf("get species %d: %w", id, err)
	}
	return s, nil
}
