package inquiries

import (
	"freight_leads_backend/internal/events"
	apphttp "freight_leads_backend/internal/http"
	"freight_leads_backend/platform/logger"
	"freight_leads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the inquiries bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	repo    *Repository
}

// NewModule creates and initializes the inquiries module.
func NewModule(pool *pgxpool.Pool, notifier Notifier, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	svc := NewService(repo, notifier, bus, log)
	return &Module{handler: NewHandler(svc, val), repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "inquiries" }

// Repository exposes the repo for the composition root (digest counts).
func (m *Module) Repository() *Repository { return m.repo }

// RegisterRoutes mounts the public contact endpoint and the admin routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Public.POST("/inquiries", m.handler.Submit)

	admin := ctx.Protected.Group("/inquiries")
	admin.GET("", m.handler.List)
	admin.PATCH("/:id/status", m.handler.UpdateStatus)
}
