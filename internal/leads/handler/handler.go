package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"freight_leads_backend/internal/leads/domain"
	"freight_leads_backend/internal/leads/service"
	"freight_leads_backend/internal/leads/transport"
	"freight_leads_backend/platform/httpkit"
	"freight_leads_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles the authenticated admin lead API.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new admin leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the admin lead routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/export", h.Export)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id/status", h.UpdateStatus)
}

// List returns one page of leads for the dashboard table.
func (h *Handler) List(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.LeadResponse, len(result.Items))
	for i, lead := range result.Items {
		items[i] = toLeadResponse(lead, nil)
	}

	httpkit.OK(c, transport.LeadListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}

// GetByID returns a single lead with its line items.
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	lead, items, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toLeadResponse(*lead, items))
}

// UpdateStatus sets the free-form status of a lead.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	var req transport.UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), id, strings.TrimSpace(req.Status)); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"success": true})
}

// csvHeaders matches the admin dashboard export column for column.
var csvHeaders = []string{
	"First Name", "Last Name", "Email", "Phone", "Company Name",
	"Shipping Type", "Equipment Type", "Total Weight", "Declared Value",
	"Pickup ZIP Code", "Pickup Date", "Pickup Residential", "Pickup Lift Gate",
	"Pickup Limited Access", "Delivery ZIP Code", "Delivery Residential",
	"Delivery Lift Gate", "Delivery Limited Access", "Status", "Created At",
}

// Export streams all matching leads as a CSV download.
func (h *Handler) Export(c *gin.Context) {
	leads, err := h.svc.Export(c.Request.Context(), c.Query("status"), c.Query("shippingType"))
	if httpkit.HandleError(c, err) {
		return
	}

	filename := fmt.Sprintf("leads-%s.csv", time.Now().UTC().Format(time.RFC3339))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(csvHeaders)
	for _, lead := range leads {
		_ = w.Write(csvRow(lead))
	}
	w.Flush()
}

func csvRow(lead domain.Lead) []string {
	return []string{
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Phone,
		optionalString(lead.CompanyName),
		strings.ToUpper(string(lead.ShippingType)),
		optionalString(lead.EquipmentType),
		optionalFloat(lead.TotalWeight),
		optionalFloat(lead.DeclaredValue),
		lead.PickupZipCode,
		shortDate(lead.PickupDate),
		yesNo(lead.PickupIsResidential),
		yesNo(lead.PickupNeedsLiftgate),
		yesNo(lead.PickupLimitedAccess),
		lead.DeliveryZipCode,
		yesNo(lead.DeliveryIsResidential),
		yesNo(lead.DeliveryNeedsLiftgate),
		yesNo(lead.DeliveryLimitedAccess),
		lead.Status,
		lead.CreatedAt.Format("01/02/2006"),
	}
}

func optionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func shortDate(t *time.Time) string {
	if t == nil {
		return "Not specified"
	}
	return t.Format("01/02/2006")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func parseLeadID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func toLeadResponse(lead domain.Lead, items []domain.LineItem) transport.LeadResponse {
	resp := transport.LeadResponse{
		ID:                    lead.ID,
		FirstName:             lead.FirstName,
		LastName:              lead.LastName,
		Email:                 lead.Email,
		Phone:                 lead.Phone,
		CompanyName:           lead.CompanyName,
		ShippingType:          string(lead.ShippingType),
		EquipmentType:         lead.EquipmentType,
		TotalWeight:           lead.TotalWeight,
		DeclaredValue:         lead.DeclaredValue,
		PickupZipCode:         lead.PickupZipCode,
		PickupDate:            lead.PickupDate,
		PickupIsResidential:   lead.PickupIsResidential,
		PickupNeedsLiftgate:   lead.PickupNeedsLiftgate,
		PickupLimitedAccess:   lead.PickupLimitedAccess,
		DeliveryZipCode:       lead.DeliveryZipCode,
		DeliveryIsResidential: lead.DeliveryIsResidential,
		DeliveryNeedsLiftgate: lead.DeliveryNeedsLiftgate,
		DeliveryLimitedAccess: lead.DeliveryLimitedAccess,
		Status:                lead.Status,
		CreatedAt:             lead.CreatedAt,
	}

	for _, item := range items {
		resp.Items = append(resp.Items, transport.LineItemResponse{
			ID:            item.ID,
			Quantity:      item.Quantity,
			PackagingType: item.PackagingType,
			FreightClass:  item.FreightClass,
			Length:        item.Length,
			Width:         item.Width,
			Height:        item.Height,
			Weight:        item.Weight,
		})
	}

	return resp
}
