package dto

import (
	"time"

	"github.com/ecotrack-service/internal/domain"
)

// Session - выданная сессия
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// HealthResponse - состояние сервиса и его зависимостей
type HealthResponse struct {
	Status   string            `json:"status"`
	Time     time.Time         `json:"time"`
	Services map[string]string `json:"services"`
}
