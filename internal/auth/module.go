package auth

import (
	apphttp "freight_leads_backend/internal/http"
	"freight_leads_backend/platform/config"
	"freight_leads_backend/platform/httpkit"
	"freight_leads_backend/platform/logger"
	"freight_leads_backend/platform/validator"

	"golang.org/x/time/rate"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	log     *logger.Logger
}

// NewModule creates and initializes the auth module.
func NewModule(cfg config.AuthConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := NewService(cfg, log)
	return &Module{handler: NewHandler(svc, val), log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "auth" }

// RegisterRoutes mounts the login route with its own strict rate limit
// (5 attempts per minute per IP).
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	loginLimiter := httpkit.NewIPRateLimiter(rate.Limit(5.0/60.0), 5, m.log)

	group := ctx.V1.Group("/auth")
	group.Use(loginLimiter.RateLimit())
	group.POST("/login", m.handler.Login)
}
