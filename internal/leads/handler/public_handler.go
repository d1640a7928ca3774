// Package handler exposes the freight lead HTTP surface: the public quote
// submission endpoint and the authenticated admin dashboard API.
package handler

import (
	"net/http"

	"freight_leads_backend/internal/leads/service"
	"freight_leads_backend/internal/leads/transport"
	"freight_leads_backend/platform/httpkit"
	"freight_leads_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// PublicHandler handles the unauthenticated quote submission endpoint.
type PublicHandler struct {
	svc *service.Service
	val *validator.Validator
}

// NewPublic creates a new public leads handler.
func NewPublic(svc *service.Service, val *validator.Validator) *PublicHandler {
	return &PublicHandler{svc: svc, val: val}
}

// RegisterRoutes registers the public quote routes.
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/quotes", h.Submit)
}

// Submit accepts a freight quote submission from the marketing site.
func (h *PublicHandler) Submit(c *gin.Context) {
	var req transport.SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.Submit(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}
