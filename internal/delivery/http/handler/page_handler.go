package handler

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/ecotrack-service/internal/delivery/http/middleware"
	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/usecase"
	"github.com/ecotrack-service/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "templates/layout.html"

var pageFiles = []string{
	"home.html",
	"map.html",
	"species.html",
	"dashboard.html",
	"about.html",
	"resources.html",
	"submission.html",
	"admin.html",
	"login.html",
	"admin_login.html",
}

// PageData - данные для шаблонов страниц
type PageData struct {
	Title    string
	Identity *domain.Identity

	LandSpecies  []domain.Species
	WaterSpecies []domain.Species

	Locations  []domain.Location
	Categories []domain.ReportCategory
	Severities []domain.ReportSeverity
}

// PageHandler - серверные HTML страницы
type PageHandler struct {
	pages      map[string]*template.Template
	speciesUC  *usecase.SpeciesUseCase
	locationUC *usecase.LocationUseCase
	reportUC   *usecase.ReportUseCase
	logger     *zap.Logger
}

// NewPageHandler парсит встроенные шаблоны: layout + страница на каждый набор
func NewPageHandler(
	speciesUC *usecase.SpeciesUseCase,
	locationUC *usecase.LocationUseCase,
	reportUC *usecase.ReportUseCase,
	logger *zap.Logger,
) (*PageHandler, error) {
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		tmpl, err := template.ParseFS(templateFS, layoutTemplate, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &PageHandler{
		pages:      pages,
		speciesUC:  speciesUC,
		locationUC: locationUC,
		reportUC:   reportUC,
		logger:     logger,
	}, nil
}

// Home - главная, только для вошедших
func (h *PageHandler) Home(c *fiber.Ctx) error {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return c.Redirect("/login")
	}
	return h.render(c, "home.html", PageData{Title: "EcoTrack", Identity: identity})
}

func (h *PageHandler) Map(c *fiber.Ctx) error {
	return h.render(c, "map.html", PageData{Title: "Interactive Map", Identity: middleware.IdentityFrom(c)})
}

// Species - списки наземных и водных видов
func (h *PageHandler) Species(c *fiber.Ctx) error {
	land, err := h.speciesUC.List(c.Context(), dto.SpeciesListRequest{Category: string(domain.CategoryLand)})
	if err != nil {
		return err
	}
	water, err := h.speciesUC.List(c.Context(), dto.SpeciesListRequest{Category: string(domain.CategoryWater)})
	if err != nil {
		return err
	}

	return h.render(c, "species.html", PageData{
		Title:        "Life on Land and Water",
		Identity:     middleware.IdentityFrom(c),
		LandSpecies:  land,
		WaterSpecies: water,
	})
}

func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	return h.render(c, "dashboard.html", PageData{Title: "Environmental Dashboard", Identity: middleware.IdentityFrom(c)})
}

func (h *PageHandler) About(c *fiber.Ctx) error {
	return h.render(c, "about.html", PageData{Title: "About", Identity: middleware.IdentityFrom(c)})
}

func (h *PageHandler) Resources(c *fiber.Ctx) error {
	return h.render(c, "resources.html", PageData{Title: "Resources and Credits", Identity: middleware.IdentityFrom(c)})
}

// SubmissionReport - форма отчёта со справочниками из БД
func (h *PageHandler) SubmissionReport(c *fiber.Ctx) error {
	locations, err := h.locationUC.List(c.Context(), dto.LocationListRequest{})
	if err != nil {
		return err
	}
	categories, err := h.reportUC.Categories(c.Context())
	if err != nil {
		return err
	}
	severities, err := h.reportUC.Severities(c.Context())
	if err != nil {
		return err
	}

	return h.render(c, "submission.html", PageData{
		Title:      "Submit a Report",
		Identity:   middleware.IdentityFrom(c),
		Locations:  locations,
		Categories: categories,
		Severities: severities,
	})
}

// Admin redirects anonymous visitors to /login and non-admins to /.
func (h *PageHandler) Admin(c *fiber.Ctx) error {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return c.Redirect("/login")
	}
	if !identity.IsAdmin() {
		return c.Redirect("/")
	}
	return h.render(c, "admin.html", PageData{Title: "Admin", Identity: identity})
}

func (h *PageHandler) Login(c *fiber.Ctx) error {
	return h.render(c, "login.html", PageData{Title: "Login", Identity: middleware.IdentityFrom(c)})
}

func (h *PageHandler) AdminLogin(c *fiber.Ctx) error {
	return h.render(c, "admin_login.html", PageData{Title: "Admin Login", Identity: middleware.IdentityFrom(c)})
}

func (h *PageHandler) LoginAdminRedirect(c *fiber.Ctx) error {
	return c.Redirect("/admin/login")
}

func (h *PageHandler) render(c *fiber.Ctx, page string, data PageData) error {
	tmpl, ok := h.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %s", page)
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(c.Response().BodyWriter(), "layout", data); err != nil {
		h.logger.Error("Failed to render page", zap.String("page", page), zap.Error(err))
		return err
	}
	return nil
}
