package middleware

import (
	"context"

	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/pkg/errors"
	"github.com/ecotrack-service/internal/pkg/token"
	"github.com/ecotrack-service/internal/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	localsIdentity = "identity"
	localsClaims   = "claims"
)

// Authenticator resolves a raw session token.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*domain.Identity, *token.Claims, error)
}

// Authenticate attaches the caller's identity to the request when a valid
// session cookie or bearer token is present. Requests without one continue
// anonymously; access checks happen in RequireAuth/RequireAdmin.
func Authenticate(auth Authenticator, cookieName string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(cookieName)
		if raw == "" {
			if header := c.Get(fiber.HeaderAuthorization); header != "" {
				if t, err := token.ExtractFromHeader(header); err == nil {
					raw = t
				}
			}
		}
		if raw == "" {
			return c.Next()
		}

		identity, claims, err := auth.Authenticate(c.Context(), raw)
		if err != nil {
			if _, ok := errors.As(err); ok {
				logger.Debug("Session rejected", zap.String("path", c.Path()))
			} else {
				logger.Warn("Session check failed", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Next()
		}

		c.Locals(localsIdentity, identity)
		c.Locals(localsClaims, claims)
		return c.Next()
	}
}

// RequireAuth rejects anonymous requests with 403.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if IdentityFrom(c) == nil {
			return utils.SendError(c, errors.Unauthorized())
		}
		return c.Next()
	}
}

// RequireAdmin checks the admin role on every request.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IdentityFrom(c).IsAdmin() {
			return utils.SendError(c, errors.Unauthorized())
		}
		return c.Next()
	}
}

// IdentityFrom returns the authenticated caller, or nil.
func IdentityFrom(c *fiber.Ctx) *domain.Identity {
	identity, _ := c.Locals(localsIdentity).(*domain.Identity)
	return identity
}

// ClaimsFrom returns the verified token claims, or nil.
func ClaimsFrom(c *fiber.Ctx) *token.Claims {
	claims, _ := c.Locals(localsClaims).(*token.Claims)
	return claims
}
