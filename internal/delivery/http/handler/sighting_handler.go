package handler

import (
	"fmt"

	"github.com/ecotrack-service/internal/delivery/http/middleware"
	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/pkg/utils"
	"github.com/ecotrack-service/internal/usecase"
	"github.com/ecotrack-service/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SightingHandler - наблюдения: публичные и админские маршруты
type SightingHandler struct {
	sightingUC *usecase.SightingUseCase
	logger     *zap.Logger
}

// NewSightingHandler создает новый экземпляр SightingHandler
func NewSightingHandler(sightingUC *usecase.SightingUseCase, logger *zap.Logger) *SightingHandler {
	return &SightingHandler{
		sightingUC: sightingUC,
		logger:     logger,
	}
}

// List godoc
// @Summary List sightings
// @Description Наблюдения, новые первыми
// @Tags Sightings
// @Produce json
// @Param species_id query int false "Species ID"
// @Param location_id query int false "Location ID"
// @Param status query string false "pending, verified or rejected"
// @Param limit query int false "Max rows" default(100)
// @Success 200 {object} utils.Envelope{data=[]domain.SightingDetail}
// @Failure 400 {object} utils.Envelope
// @Router /api/sightings [get]
func (h *SightingHandler) List(c *fiber.Ctx) error {
	req := dto.SightingListRequest{
		SpeciesID:  int64(c.QueryInt("species_id")),
		LocationID: int64(c.QueryInt("location_id")),
		Status:     c.Query("status"),
		Limit:      c.QueryInt("limit", domain.DefaultListLimit),
	}

	list, err := h.sightingUC.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendList(c, list, len(list), &utils.Meta{Limit: domain.ClampLimit(req.Limit)})
}

// Get godoc
// @Summary Get sighting
// @Tags Sightings
// @Produce json
// @Param id path int true "Sighting ID"
// @Success 200 {object} utils.Envelope{data=domain.SightingDetail}
// @Failure 404 {object} utils.Envelope
// @Router /api/sightings/{id} [get]
func (h *SightingHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	s, err := h.sightingUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, s, nil)
}

// Create godoc
// @Summary Submit a sighting
// @Tags Sightings
// @Accept json
// @Produce json
// @Param request body dto.CreateSightingRequest true "Sighting"
// @Success 201 {object} utils.Envelope{data=domain.SightingDetail}
// @Failure 400 {object} utils.Envelope
// @Failure 500 {object} utils.Envelope
// @Router /api/sightings [post]
func (h *SightingHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSightingRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	created, err := h.sightingUC.Create(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, "Sighting submitted successfully", created)
}

// UpdateStatus godoc
// @Summary Update sighting verification status
// @Tags Sightings
// @Accept json
// @Produce json
// @Param id path int true "Sighting ID"
// @Param request body dto.UpdateSightingStatusRequest true "New status"
// @Success 200 {object} utils.Envelope{data=domain.SightingDetail}
// @Failure 400 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /api/sightings/{id} [put]
func (h *SightingHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateSightingStatusRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	updated, err := h.sightingUC.UpdateStatus(c.Context(), id, &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendMessageData(c, "Sighting status updated", updated)
}

// AdminList godoc
// @Summary List all sightings (admin)
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.Envelope{data=[]domain.SightingDetail}
// @Failure 403 {object} utils.Envelope
// @Router /api/admin/sightings [get]
func (h *SightingHandler) AdminList(c *fiber.Ctx) error {
	req := dto.SightingListRequest{
		Status: c.Query("status"),
		Limit:  c.QueryInt("limit", domain.MaxListLimit),
	}

	list, err := h.sightingUC.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendList(c, list, len(list), nil)
}

// AdminDelete godoc
// @Summary Delete a sighting (admin)
// @Description Удаляет наблюдение и пересчитывает статистику вида
// @Tags Admin
// @Produce json
// @Param id path int true "Sighting ID"
// @Success 200 {object} utils.Envelope
// @Failure 403 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /api/admin/sightings/{id} [delete]
func (h *SightingHandler) AdminDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.sightingUC.Delete(c.Context(), middleware.IdentityFrom(c), id, c.IP()); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendMessage(c, "Sighting deleted successfully")
}

// AdminVerify godoc
// @Summary Verify or reject a sighting (admin)
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Sighting ID"
// @Param request body dto.VerifySightingRequest true "New status"
// @Success 200 {object} utils.Envelope{data=domain.SightingDetail}
// @Failure 400 {object} utils.Envelope
// @Failure 403 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /api/admin/sightings/{id}/verify [put]
func (h *SightingHandler) AdminVerify(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.VerifySightingRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	updated, err := h.sightingUC.Verify(c.Context(), middleware.IdentityFrom(c), id, &req, c.IP())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendMessageData(c, fmt.Sprintf("Sighting %s successfully", updated.VerificationStatus), updated)
}
