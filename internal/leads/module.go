// Package leads wires the freight lead bounded context: public quote intake,
// the admin dashboard API, and the CSV export.
package leads

import (
	"freight_leads_backend/internal/events"
	apphttp "freight_leads_backend/internal/http"
	"freight_leads_backend/internal/leads/handler"
	"freight_leads_backend/internal/leads/repository"
	"freight_leads_backend/internal/leads/service"
	"freight_leads_backend/platform/logger"
	"freight_leads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module bundles the leads handlers for route registration.
type Module struct {
	svc           *service.Service
	publicHandler *handler.PublicHandler
	adminHandler  *handler.Handler
}

// NewModule constructs the leads module with its full dependency chain.
func NewModule(pool *pgxpool.Pool, notifier service.Notifier, bus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, notifier, bus, log)
	return &Module{
		svc:           svc,
		publicHandler: handler.NewPublic(svc, val),
		adminHandler:  handler.New(svc, val),
	}
}

// Name implements apphttp.Module.
func (m *Module) Name() string { return "leads" }

// Service exposes the leads service to other composition-root consumers
// (the scheduler digest uses its repository through this module).
func (m *Module) Service() *service.Service { return m.svc }

// RegisterRoutes mounts the public quote route and the protected admin routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.publicHandler.RegisterRoutes(ctx.Public)
	m.adminHandler.RegisterRoutes(ctx.Protected.Group("/leads"))
}
