package http

import (
	"context"
	"time"

	"github.com/ecotrack-service/internal/config"
	"github.com/ecotrack-service/internal/delivery/http/handler"
	"github.com/ecotrack-service/internal/delivery/http/middleware"
	"github.com/ecotrack-service/internal/pkg/errors"
	"github.com/ecotrack-service/internal/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Handlers - все HTTP хендлеры сервиса
type Handlers struct {
	Species   *handler.SpeciesHandler
	Locations *handler.LocationHandler
	Sightings *handler.SightingHandler
	Reports   *handler.ReportHandler
	Dashboard *handler.DashboardHandler
	Auth      *handler.AuthHandler
	Admin     *handler.AdminHandler
	Health    *handler.HealthHandler
	Pages     *handler.PageHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app           *fiber.App
	config        *config.Config
	logger        *zap.Logger
	authenticator middleware.Authenticator
	handlers      Handlers
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authenticator middleware.Authenticator,
	handlers Handlers,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "EcoTrack",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		authenticator: authenticator,
		handlers:      handlers,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App exposes the fiber app, used by tests through app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	s.app.Use(middleware.Authenticate(s.authenticator, s.config.Session.CookieName, s.logger))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	h := s.handlers

	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Pages
	s.app.Get("/", h.Pages.Home)
	s.app.Get("/map", h.Pages.Map)
	s.app.Get("/species", h.Pages.Species)
	s.app.Get("/dashboard", h.Pages.Dashboard)
	s.app.Get("/about", h.Pages.About)
	s.app.Get("/resources", h.Pages.Resources)
	s.app.Get("/submission-report", h.Pages.SubmissionReport)
	s.app.Get("/admin", h.Pages.Admin)
	s.app.Get("/admin/login", h.Pages.AdminLogin)
	s.app.Get("/login", h.Pages.Login)
	s.app.Get("/login/admin", h.Pages.LoginAdminRedirect)

	api := s.app.Group("/api")

	// Health check
	api.Get("/health", h.Health.Health)

	// Species routes
	api.Get("/species", h.Species.List)
	api.Get("/species/search", h.Species.Search)
	api.Get("/species/:id", h.Species.Get)

	// Location routes
	api.Get("/locations", h.Locations.List)
	api.Get("/locations/:id", h.Locations.Get)

	// Sighting routes
	api.Get("/sightings", h.Sightings.List)
	api.Get("/sightings/:id", h.Sightings.Get)
	api.Post("/sightings", h.Sightings.Create)
	api.Put("/sightings/:id", h.Sightings.UpdateStatus)

	// Report routes, справочники раньше /:id
	api.Get("/reports/categories", h.Reports.Categories)
	api.Get("/reports/severity", h.Reports.Severities)
	api.Get("/reports", h.Reports.List)
	api.Get("/reports/:id", h.Reports.Get)
	api.Post("/reports", h.Reports.Create)
	api.Put("/reports/:id", h.Reports.UpdateStatus)

	// Dashboard
	api.Get("/dashboard/stats", h.Dashboard.Stats)
	api.Get("/dashboard/sightings-by-location", h.Dashboard.SightingsByLocation)
	api.Get("/dashboard/reports-by-type", h.Dashboard.ReportsByType)

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/admin/login", h.Auth.AdminLogin)
	auth.Post("/logout", h.Auth.Logout)
	auth.Get("/me", middleware.RequireAuth(), h.Auth.Me)

	// Admin API
	admin := api.Group("/admin", middleware.RequireAdmin())
	admin.Get("/reports", h.Reports.AdminList)
	admin.Get("/reports/:id", h.Reports.Get)
	admin.Put("/reports/:id", h.Reports.AdminUpdate)
	admin.Delete("/reports/:id", h.Reports.AdminDelete)
	admin.Get("/users", h.Admin.Users)
	admin.Delete("/users/:id", h.Admin.DeleteUser)
	admin.Get("/sightings", h.Sightings.AdminList)
	admin.Delete("/sightings/:id", h.Sightings.AdminDelete)
	admin.Put("/sightings/:id/verify", h.Sightings.AdminVerify)
	admin.Post("/species/refresh-stats", h.Admin.RefreshSpeciesStats)
	admin.Get("/activity", h.Admin.Activity)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок. Ошибки fiber сохраняют свой
// статус (404 для неизвестных маршрутов), остальные отдаются через SendError.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			if e.Code >= fiber.StatusInternalServerError {
				logger.Error("HTTP Error", zap.String("path", c.Path()), zap.Int("status", e.Code), zap.Error(err))
			}
			return c.Status(e.Code).JSON(utils.Envelope{
				Success: false,
				Message: e.Message,
			})
		}

		if _, ok := errors.As(err); !ok {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", fiber.StatusInternalServerError),
				zap.Error(err),
			)
		}

		return utils.SendError(c, err)
	}
}
