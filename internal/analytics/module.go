package analytics

import (
	"context"
	"net/http"

	"freight_leads_backend/internal/events"
	apphttp "freight_leads_backend/internal/http"
	"freight_leads_backend/platform/httpkit"
	"freight_leads_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// TrackEventRequest is the public page-event payload from the marketing site.
type TrackEventRequest struct {
	Event      string                 `json:"event" validate:"required,max=100"`
	Properties map[string]interface{} `json:"properties"`
}

// Module is the analytics bounded context module implementing http.Module.
// It forwards domain events and public page events to the tracker.
type Module struct {
	tracker *Tracker
	val     *validator.Validator
}

// NewModule creates the analytics module and subscribes it to the domain
// events it reports on.
func NewModule(tracker *Tracker, bus events.Bus, val *validator.Validator) *Module {
	m := &Module{tracker: tracker, val: val}

	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		lead := e.(events.LeadCreated)
		tracker.Track("lead_submitted", map[string]interface{}{
			"shipping_type": lead.ShippingType,
			"pickup_zip":    lead.PickupZip,
			"delivery_zip":  lead.DeliveryZip,
			"item_count":    lead.ItemCount,
		})
		return nil
	}))

	bus.Subscribe(events.InquiryReceived{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		inq := e.(events.InquiryReceived)
		tracker.Track("inquiry_submitted", map[string]interface{}{
			"service": inq.Service,
		})
		return nil
	}))

	return m
}

// Name returns the module identifier.
func (m *Module) Name() string { return "analytics" }

// RegisterRoutes mounts the public event tracking endpoint.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Public.POST("/events", m.TrackEvent)
}

// TrackEvent accepts a page event from the marketing site and responds
// immediately; delivery happens in the background.
func (m *Module) TrackEvent(c *gin.Context) {
	var req TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := m.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", nil)
		return
	}

	props := req.Properties
	if props == nil {
		props = make(map[string]interface{})
	}
	props["client_ip"] = c.ClientIP()
	m.tracker.Track(req.Event, props)

	httpkit.Accepted(c, gin.H{"accepted": true})
}
