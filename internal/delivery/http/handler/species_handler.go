package handler

import (
	"github.com/ecotrack-service/internal/pkg/utils"
	"github.com/ecotrack-service/internal/usecase"
	"github.com/ecotrack-service/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SpeciesHandler - каталог видов
type SpeciesHandler struct {
	speciesUC *usecase.SpeciesUseCase
	logger    *zap.Logger
}

// NewSpeciesHandler создает новый экземпляр SpeciesHandler
func NewSpeciesHandler(speciesUC *usecase.SpeciesUseCase, logger *zap.Logger) *SpeciesHandler {
	return &SpeciesHandler{
		speciesUC: speciesUC,
		logger:    logger,
	}
}

// List godoc
// @Summary List species
// @Description Каталог видов с фильтрами по категории и типу
// @Tags Species
// @Produce json
// @Param category query string false "land or water"
// @Param type query string false "bird, mammal, reptile, amphibian, fish, insect, plant, other"
// @Success 200 {object} utils.Envelope{data=[]domain.Species}
// @Failure 400 {object} utils.Envelope
// @Router /api/species [get]
func (h *SpeciesHandler) List(c *fiber.Ctx) error {
	req := dto.SpeciesListRequest{
		Category: c.Query("category"),
		Type:     c.Query("type"),
	}

	list, err := h.speciesUC.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendList(c, list, len(list), nil)
}

// Search godoc
// @Summary Search species
// @Description Поиск по общему и научному названию без учёта регистра
// @Tags Species
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} utils.Envelope{data=[]domain.Species}
// @Failure 400 {object} utils.Envelope
// @Router /api/species/search [get]
func (h *SpeciesHandler) Search(c *fiber.Ctx) error {
	list, err := h.speciesUC.Search(c.Context(), c.Query("q"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendList(c, list, len(list), nil)
}

// Get godoc
// @Summary Get species
// @Tags Species
// @Produce json
// @Param id path int true "Species ID"
// @Success 200 {object} utils.Envelope{data=domain.Species}
// @Failure 404 {object} utils.Envelope
// @Router /api/species/{id} [get]
func (h *SpeciesHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	s, err := h.speciesUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, s, nil)
}
