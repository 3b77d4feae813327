package handler

import (
	"time"

	"github.com/ecotrack-service/internal/config"
	"github.com/ecotrack-service/internal/delivery/http/middleware"
	"github.com/ecotrack-service/internal/pkg/errors"
	"github.com/ecotrack-service/internal/pkg/utils"
	"github.com/ecotrack-service/internal/usecase"
	"github.com/ecotrack-service/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler - регистрация и сессии
type AuthHandler struct {
	authUC  *usecase.AuthUseCase
	session config.SessionConfig
	logger  *zap.Logger
}

// NewAuthHandler создает новый экземпляр AuthHandler
func NewAuthHandler(authUC *usecase.AuthUseCase, session config.SessionConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authUC:  authUC,
		session: session,
		logger:  logger,
	}
}

// Register godoc
// @Summary Register an account
// @Description Все ошибки валидации возвращаются списком в errors
// @Tags Auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body dto.RegisterRequest true "Account"
// @Success 201 {object} utils.Envelope{data=domain.User}
// @Failure 400 {object} utils.Envelope
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	user, err := h.authUC.Register(c.Context(), &req, c.IP())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, "Account created successfully! You can now log in.", user)
}

// Login godoc
// @Summary Log in
// @Description Выдаёт токен в HttpOnly cookie и в теле ответа
// @Tags Auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} utils.Envelope{data=dto.Session}
// @Failure 400 {object} utils.Envelope
// @Failure 403 {object} utils.Envelope
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.authUC.Login(c.Context(), &req, c.IP())
	if err != nil {
		return utils.SendError(c, err)
	}

	h.setCookie(c, session.Token, session.ExpiresAt)
	return utils.SendMessageData(c, "Logged in successfully", session)
}

// AdminLogin godoc
// @Summary Log in as administrator
// @Tags Auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} utils.Envelope{data=dto.Session}
// @Failure 400 {object} utils.Envelope
// @Failure 403 {object} utils.Envelope
// @Router /api/auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.authUC.AdminLogin(c.Context(), &req, c.IP())
	if err != nil {
		return utils.SendError(c, err)
	}

	h.setCookie(c, session.Token, session.ExpiresAt)
	return utils.SendMessageData(c, "Logged in successfully", session)
}

// Logout godoc
// @Summary Log out
// @Description Отзывает текущий токен и очищает cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.Envelope
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authUC.Logout(c.Context(), middleware.ClaimsFrom(c), c.IP()); err != nil {
		return utils.SendError(c, err)
	}

	h.clearCookie(c)
	return utils.SendMessage(c, "Logged out successfully")
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.Envelope{data=domain.User}
// @Failure 403 {object} utils.Envelope
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return utils.SendError(c, errors.Unauthorized())
	}

	user, err := h.authUC.Me(c.Context(), identity)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

func (h *AuthHandler) setCookie(c *fiber.Ctx, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.session.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.session.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.session.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.session.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
