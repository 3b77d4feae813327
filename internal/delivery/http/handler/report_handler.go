package handler

import (
	"github.com/ecotrack-service/internal/delivery/http/middleware"
	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/pkg/utils"
	"github.com/ecotrack-service/internal/usecase"
	"github.com/ecotrack-service/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReportHandler - экологические отчёты
type ReportHandler struct {
	reportUC *usecase.ReportUseCase
	logger   *zap.Logger
}

// NewReportHandler создает новый экземпляр ReportHandler
func NewReportHandler(reportUC *usecase.ReportUseCase, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportUC: reportUC,
		logger:   logger,
	}
}

func reportListRequest(c *fiber.Ctx, defaultLimit int) dto.ReportListRequest {
	return dto.ReportListRequest{
		LocationID: int64(c.QueryInt("location_id")),
		Type:       c.Query("type"),
		Status:     c.Query("status"),
		Severity:   c.Query("severity"),
		Limit:      c.QueryInt("limit", defaultLimit),
	}
}

// List godoc
// @Summary List environmental reports
// @Description Отчёты по убыванию даты
// @Tags Reports
// @Produce json
// @Param location_id query int false "Location ID"
// @Param type query string false "Report type"
// @Param status query string false "Report status"
// @Param severity query string false "Severity"
// @Param limit query int false "Max rows" default(100)
// @Success 200 {object} utils.Envelope{data=[]domain.ReportDetail}
// @Failure 400 {object} utils.Envelope
// @Router /api/reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	req := reportListRequest(c, domain.DefaultListLimit)

	list, err := h.reportUC.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendList(c, list, len(list), &utils.Meta{Limit: domain.ClampLimit(req.Limit)})
}

// Get godoc
// @Summary Get report
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} utils.Envelope{data=domain.ReportDetail}
// @Failure 404 {object} utils.Envelope
// @Router /api/reports/{id} [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	r, err := h.reportUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, r, nil)
}

// Create godoc
// @Summary Submit an environmental report
// @Description Сохраняет отчёт и увеличивает счётчик отчётов города
// @Tags Reports
// @Accept json
// @Produce json
// @Param request body dto.CreateReportRequest true "Report"
// @Success 201 {object} utils.Envelope{data=domain.ReportDetail}
// @Failure 400 {object} utils.Envelope
// @Failure 500 {object} utils.Envelope
// @Router /api/reports [post]
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	created, err := h.reportUC.Create(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, "Report submitted successfully", created)
}

// UpdateStatus godoc
// @Summary Update report status
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param request body dto.UpdateReportStatusRequest true "New status"
// @Success 200 {object} utils.Envelope{data=domain.ReportDetail}
// @Failure 400 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /api/reports/{id} [put]
func (h *ReportHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateReportStatusRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	updated, err := h.reportUC.UpdateStatus(c.Context(), id, &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendMessageData(c, "Report status updated", updated)
}

// Categories godoc
// @Summary Report categories
// @Tags Reports
// @Produce json
// @Success 200 {object} utils.Envelope{data=[]domain.ReportCategory}
// @Router /api/reports/categories [get]
func (h *ReportHandler) Categories(c *fiber.Ctx) error {
	list, err := h.reportUC.Categories(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendList(c, list, len(list), nil)
}

// Severities godoc
// @Summary Report severity levels
// @Tags Reports
// @Produce json
// @Success 200 {object} utils.Envelope{data=[]domain.ReportSeverity}
// @Router /api/reports/severity [get]
func (h *ReportHandler) Severities(c *fiber.Ctx) error {
	list, err := h.reportUC.Severities(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendList(c, list, len(list), nil)
}

// AdminList godoc
// @Summary List all reports (admin)
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.Envelope{data=[]domain.ReportDetail}
// @Failure 403 {object} utils.Envelope
// @Router /api/admin/reports [get]
func (h *ReportHandler) AdminList(c *fiber.Ctx) error {
	list, err := h.reportUC.List(c.Context(), reportListRequest(c, domain.MaxListLimit))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendList(c, list, len(list), nil)
}

// AdminUpdate godoc
// @Summary Edit a report (admin)
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param request body dto.AdminUpdateReportRequest true "Fields to change"
// @Success 200 {object} utils.Envelope{data=domain.ReportDetail}
// @Failure 400 {object} utils.Envelope
// @Failure 403 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /api/admin/reports/{id} [put]
func (h *ReportHandler) AdminUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.AdminUpdateReportRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	updated, err := h.reportUC.AdminUpdate(c.Context(), middleware.IdentityFrom(c), id, &req, c.IP())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendMessageData(c, "Report updated successfully", updated)
}

// AdminDelete godoc
// @Summary Delete a report (admin)
// @Description Счётчик total_reports города не уменьшается
// @Tags Admin
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} utils.Envelope
// @Failure 403 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /api/admin/reports/{id} [delete]
func (h *ReportHandler) AdminDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.reportUC.AdminDelete(c.Context(), middleware.IdentityFrom(c), id, c.IP()); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendMessage(c, "Report deleted successfully")
}
