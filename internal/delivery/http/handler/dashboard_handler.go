package handler

import (
	"github.com/ecotrack-service/internal/pkg/utils"
	"github.com/ecotrack-service/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardHandler - статистика для дашборда
type DashboardHandler struct {
	dashboardUC *usecase.DashboardUseCase
	logger      *zap.Logger
}

// NewDashboardHandler создает новый экземпляр DashboardHandler
func NewDashboardHandler(dashboardUC *usecase.DashboardUseCase, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardUC: dashboardUC,
		logger:      logger,
	}
}

// Stats godoc
// @Summary Today's dashboard statistics
// @Description Снимок за сегодня; создаётся при первом чтении за день
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.Envelope{data=domain.DashboardStats}
// @Failure 500 {object} utils.Envelope
// @Router /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardUC.Stats(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stats, nil)
}

// SightingsByLocation godoc
// @Summary Sightings per location
// @Tags Dashboard
// @Produce json
// @Param category query string false "land or water" default(land)
// @Param limit query int false "Max rows" default(10)
// @Success 200 {object} utils.Envelope{data=[]domain.SightingsByLocation}
// @Failure 400 {object} utils.Envelope
// @Router /api/dashboard/sightings-by-location [get]
func (h *DashboardHandler) SightingsByLocation(c *fiber.Ctx) error {
	category, rows, err := h.dashboardUC.SightingsByLocation(c.Context(), c.Query("category"), c.QueryInt("limit"))
	if err != nil {
		return utils.SendError(c, err)
	}

	// category идёт рядом с data, в Envelope для неё поля нет
	return c.JSON(fiber.Map{
		"success":  true,
		"category": category,
		"count":    len(rows),
		"data":     rows,
	})
}

// ReportsByType godoc
// @Summary Report counts per type
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.Envelope{data=[]domain.ReportTypeCount}
// @Router /api/dashboard/reports-by-type [get]
func (h *DashboardHandler) ReportsByType(c *fiber.Ctx) error {
	rows, err := h.dashboardUC.ReportsByType(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendList(c, rows, len(rows), nil)
}
