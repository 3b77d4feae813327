package handler

import (
	"github.com/ecotrack-service/internal/pkg/utils"
	"github.com/ecotrack-service/internal/usecase"
	"github.com/ecotrack-service/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LocationHandler - города и муниципалитеты
type LocationHandler struct {
	locationUC *usecase.LocationUseCase
	logger     *zap.Logger
}

func NewLocationHandler(locationUC *usecase.LocationUseCase, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
		logger:     logger,
	}
}

// List godoc
// @Summary List locations
// @Tags Locations
// @Produce json
// @Param severity query string false "Critical, High, Medium or Low"
// @Param type query string false "city or municipality"
// @Success 200 {object} utils.Envelope{data=[]domain.Location}
// @Failure 400 {object} utils.Envelope
// @Router /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	req := dto.LocationListRequest{
		Severity: c.Query("severity"),
		Type:     c.Query("type"),
	}

	list, err := h.locationUC.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendList(c, list, len(list), nil)
}

// Get godoc
// @Summary Get location
// @Tags Locations
// @Produce json
// @Param id path int true "Location ID"
// @Success 200 {object} utils.Envelope{data=domain.Location}
// @Failure 404 {object} utils.Envelope
// @Router /api/locations/{id} [get]
func (h *LocationHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	l, err := h.locationUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, l, nil)
}
