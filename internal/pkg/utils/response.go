package utils

import (
	"github.com/ecotrack-service/internal/pkg/errors"
	"github.com/gofiber/fiber/v2"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Meta struct {
	Limit    int     `json:"limit,omitempty"`
	TimeMSec float64 `json:"time_ms,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(Envelope{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// SendList answers a collection read with its element count.
func SendList(c *fiber.Ctx, data interface{}, count int, meta *Meta) error {
	return c.JSON(Envelope{
		Success: true,
		Count:   &count,
		Data:    data,
		Meta:    meta,
	})
}

func SendCreated(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SendMessage(c *fiber.Ctx, message string) error {
	return c.JSON(Envelope{
		Success: true,
		Message: message,
	})
}

func SendMessageData(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.As(err); ok {
		return c.Status(appErr.StatusCode).JSON(Envelope{
			Success: false,
			Message: appErr.Message,
			Errors:  appErr.Errors,
		})
	}

	// Unknown error - return 500
	internal := errors.Internal(err)
	return c.Status(internal.StatusCode).JSON(Envelope{
		Success: false,
		Message: internal.Message,
	})
}
