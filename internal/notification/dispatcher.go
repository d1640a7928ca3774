// Package notification maps domain submissions to operator emails and hands
// them to the SMTP sender. One delivery attempt per submission; the calling
// services decide that a failure is non-fatal.
package notification

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"freight_leads_backend/internal/email"
	"freight_leads_backend/internal/inquiries"
	"freight_leads_backend/internal/leads/domain"
	"freight_leads_backend/platform/config"
)

const notApplicable = "N/A"

// Dispatcher implements the leads and inquiries Notifier interfaces.
type Dispatcher struct {
	sender  email.Sender
	baseURL string
	now     func() time.Time
}

// NewDispatcher creates a dispatcher delivering through the given sender.
func NewDispatcher(sender email.Sender, cfg config.NotificationConfig) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		baseURL: strings.TrimRight(cfg.GetAppBaseURL(), "/"),
		now:     time.Now,
	}
}

// NotifyLeadCreated renders and sends the new-lead email.
func (d *Dispatcher) NotifyLeadCreated(ctx context.Context, lead domain.Lead, items []domain.LineItem) error {
	data := email.LeadNotificationData{
		ShippingType:    strings.ToUpper(string(lead.ShippingType)),
		FirstName:       lead.FirstName,
		LastName:        lead.LastName,
		Email:           lead.Email,
		Phone:           lead.Phone,
		ShippingDetails: shippingDetails(lead, items),
		Pickup: email.LocationData{
			Zip:           lead.PickupZipCode,
			Date:          formatPickupDate(lead.PickupDate),
			Residential:   lead.PickupIsResidential,
			Liftgate:      lead.PickupNeedsLiftgate,
			LimitedAccess: lead.PickupLimitedAccess,
		},
		Delivery: email.LocationData{
			Zip:           lead.DeliveryZipCode,
			Residential:   lead.DeliveryIsResidential,
			Liftgate:      lead.DeliveryNeedsLiftgate,
			LimitedAccess: lead.DeliveryLimitedAccess,
		},
		SubmittedAt: d.now().Format("1/2/2006, 3:04:05 PM"),
		AdminURL:    d.baseURL + "/admin/leads",
	}
	if lead.CompanyName != nil {
		data.Company = *lead.CompanyName
	}

	return d.sender.SendLeadNotification(ctx, data)
}

// NotifyInquiry renders and sends the new-inquiry email.
func (d *Dispatcher) NotifyInquiry(ctx context.Context, inq inquiries.Inquiry) error {
	return d.sender.SendInquiryNotification(ctx, email.InquiryNotificationData{
		Name:        inq.Name,
		Email:       inq.Email,
		Phone:       inq.Phone,
		Service:     inq.Service,
		Message:     inq.Message,
		SubmittedAt: d.now().Format("1/2/2006, 3:04:05 PM"),
		AdminURL:    d.baseURL + "/admin/leads",
	})
}

// shippingDetails builds the preformatted details block: equipment, weight and
// declared value for FTL, the item summary line for LTL.
func shippingDetails(lead domain.Lead, items []domain.LineItem) string {
	if lead.ShippingType == domain.ShippingTypeFTL {
		return fmt.Sprintf("Equipment Type: %s\nWeight: %s lbs\nDeclared Value: $%s",
			stringOrNA(lead.EquipmentType),
			floatOrNA(lead.TotalWeight),
			floatOrNA(lead.DeclaredValue),
		)
	}

	if len(items) == 0 {
		return "Items: " + notApplicable
	}

	summaries := make([]string, len(items))
	for i, item := range items {
		summaries[i] = fmt.Sprintf("%d x %s (%s lbs, Class %s)",
			item.Quantity,
			item.PackagingType,
			formatFloat(item.Weight),
			formatFloat(item.FreightClass),
		)
	}
	return "Items: " + strings.Join(summaries, ", ")
}

func formatPickupDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func stringOrNA(s *string) string {
	if s == nil || *s == "" {
		return notApplicable
	}
	return *s
}

func floatOrNA(f *float64) string {
	if f == nil {
		return notApplicable
	}
	return formatFloat(*f)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
