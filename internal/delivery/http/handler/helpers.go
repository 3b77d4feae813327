package handler

import (
	"github.com/ecotrack-service/internal/pkg/errors"
	"github.com/gofiber/fiber/v2"
)

var errInvalidBody = errors.Validation("Invalid request body")

// paramID reads a positive integer route parameter.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidID
	}
	return int64(id), nil
}

// parseBody decodes a JSON or form body. An empty body decodes to the zero
// value so "missing field" errors come from validation.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return nil
}
