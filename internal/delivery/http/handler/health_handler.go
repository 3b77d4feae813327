package handler

import (
	"context"
	"time"

	"github.com/ecotrack-service/internal/domain/repository"
	"github.com/ecotrack-service/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// Pinger - зависимость, чьё состояние попадает в /api/health
type Pinger interface {
	Health(ctx context.Context) error
}

// HealthHandler reports the database and, when configured, Redis.
type HealthHandler struct {
	store  repository.Store
	redis  Pinger
	logger *zap.Logger
}

// NewHealthHandler создает новый экземпляр HealthHandler. redis may be nil.
func NewHealthHandler(store repository.Store, redis Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		store:  store,
		redis:  redis,
		logger: logger,
	}
}

// Health godoc
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 500 {object} dto.HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthCheckTimeout)
	defer cancel()

	resp := dto.HealthResponse{
		Status:   "healthy",
		Time:     time.Now().UTC(),
		Services: map[string]string{},
	}

	if err := h.store.Health(ctx); err != nil {
		h.logger.Error("Database health check failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Services["database"] = "down"
	} else {
		resp.Services["database"] = "up"
	}

	if h.redis != nil {
		if err := h.redis.Health(ctx); err != nil {
			// кэш не критичен
			h.logger.Warn("Redis health check failed", zap.Error(err))
			resp.Services["redis"] = "down"
		} else {
			resp.Services["redis"] = "up"
		}
	}

	status := fiber.StatusOK
	if resp.Status != "healthy" {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(resp)
}
