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

// AdminHandler - пользователи, журнал действий и обслуживание статистики.
// Admin report/sighting routes live on ReportHandler and SightingHandler.
type AdminHandler struct {
	adminUC *usecase.AdminUseCase
	logger  *zap.Logger
}

// NewAdminHandler создает новый экземпляр AdminHandler
func NewAdminHandler(adminUC *usecase.AdminUseCase, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminUC: adminUC,
		logger:  logger,
	}
}

// Users godoc
// @Summary List users (admin)
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.Envelope{data=[]domain.User}
// @Failure 403 {object} utils.Envelope
// @Router /api/admin/users [get]
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.adminUC.Users(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendList(c, users, len(users), nil)
}

// DeleteUser godoc
// @Summary Delete a user (admin)
// @Description Нельзя удалить себя или другого администратора
// @Tags Admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Failure 403 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	username, err := h.adminUC.DeleteUser(c.Context(), middleware.IdentityFrom(c), id, c.IP())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendMessage(c, fmt.Sprintf("User %s deleted successfully", username))
}

// Activity godoc
// @Summary Activity log (admin)
// @Tags Admin
// @Produce json
// @Param user_id query int false "User ID"
// @Param action query string false "Action type"
// @Param limit query int false "Max rows" default(100)
// @Success 200 {object} utils.Envelope{data=[]domain.ActivityLog}
// @Failure 403 {object} utils.Envelope
// @Router /api/admin/activity [get]
func (h *AdminHandler) Activity(c *fiber.Ctx) error {
	req := dto.ActivityListRequest{
		UserID: int64(c.QueryInt("user_id")),
		Action: c.Query("action"),
		Limit:  c.QueryInt("limit", domain.DefaultListLimit),
	}

	logs, err := h.adminUC.Activity(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendList(c, logs, len(logs), &utils.Meta{Limit: domain.ClampLimit(req.Limit)})
}

// RefreshSpeciesStats godoc
// @Summary Recompute per-species statistics (admin)
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.Envelope
// @Failure 403 {object} utils.Envelope
// @Router /api/admin/species/refresh-stats [post]
func (h *AdminHandler) RefreshSpeciesStats(c *fiber.Ctx) error {
	n, err := h.adminUC.RefreshSpeciesStats(c.Context(), middleware.IdentityFrom(c), c.IP())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendMessage(c, fmt.Sprintf("Statistics refreshed for %d species", n))
}
