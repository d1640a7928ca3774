package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"freight_leads_backend/internal/email"
	"freight_leads_backend/internal/inquiries"
	"freight_leads_backend/internal/leads/domain"
)

type fakeSender struct {
	err       error
	leadData  *email.LeadNotificationData
	inqData   *email.InquiryNotificationData
	digestGot *email.DigestData
}

func (f *fakeSender) SendLeadNotification(_ context.Context, data email.LeadNotificationData) error {
	f.leadData = &data
	return f.err
}

func (f *fakeSender) SendInquiryNotification(_ context.Context, data email.InquiryNotificationData) error {
	f.inqData = &data
	return f.err
}

func (f *fakeSender) SendDailyDigest(_ context.Context, data email.DigestData) error {
	f.digestGot = &data
	return f.err
}

type notifyConfig struct{}

func (notifyConfig) GetAppBaseURL() string        { return "https://example.com/" }
func (notifyConfig) GetNotificationEmail() string { return "ops@example.com" }

func newTestDispatcher(sender *fakeSender) *Dispatcher {
	d := NewDispatcher(sender, notifyConfig{})
	d.now = func() time.Time { return time.Date(2026, 8, 27, 15, 30, 0, 0, time.UTC) }
	return d
}

func TestNotifyLeadCreatedLTL(t *testing.T) {
	sender := &fakeSender{}
	d := newTestDispatcher(sender)

	company := "Acme"
	pickupDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	lead := domain.Lead{
		FirstName:           "John",
		LastName:            "Doe",
		Email:               "john@example.com",
		Phone:               "+13125550142",
		CompanyName:         &company,
		ShippingType:        domain.ShippingTypeLTL,
		PickupZipCode:       "60601",
		PickupDate:          &pickupDate,
		PickupNeedsLiftgate: true,
		DeliveryZipCode:     "90210",
	}
	items := []domain.LineItem{
		{Quantity: 2, PackagingType: "pallet", FreightClass: 70, Weight: 500},
		{Quantity: 1, PackagingType: "crate", FreightClass: 92.5, Weight: 250},
	}

	if err := d.NotifyLeadCreated(context.Background(), lead, items); err != nil {
		t.Fatalf("NotifyLeadCreated: %v", err)
	}

	got := sender.leadData
	if got == nil {
		t.Fatal("sender not called")
	}
	if got.ShippingType != "LTL" || got.Company != "Acme" {
		t.Errorf("data = %+v", got)
	}
	wantDetails := "Items: 2 x pallet (500 lbs, Class 70), 1 x crate (250 lbs, Class 92.5)"
	if got.ShippingDetails != wantDetails {
		t.Errorf("details = %q, want %q", got.ShippingDetails, wantDetails)
	}
	if got.Pickup.Date != "2026-09-15" || !got.Pickup.Liftgate {
		t.Errorf("pickup = %+v", got.Pickup)
	}
	if got.AdminURL != "https://example.com/admin/leads" {
		t.Errorf("admin url = %q", got.AdminURL)
	}
	if got.SubmittedAt != "8/27/2026, 3:30:00 PM" {
		t.Errorf("submitted at = %q", got.SubmittedAt)
	}
}

func TestNotifyLeadCreatedFTLWithMissingOptionals(t *testing.T) {
	sender := &fakeSender{}
	d := newTestDispatcher(sender)

	weight := 44000.0
	equipment := "Flatbed"
	lead := domain.Lead{
		FirstName:       "Jane",
		LastName:        "Smith",
		ShippingType:    domain.ShippingTypeFTL,
		EquipmentType:   &equipment,
		TotalWeight:     &weight,
		PickupZipCode:   "77001",
		DeliveryZipCode: "30301",
	}

	if err := d.NotifyLeadCreated(context.Background(), lead, nil); err != nil {
		t.Fatalf("NotifyLeadCreated: %v", err)
	}

	want := "Equipment Type: Flatbed\nWeight: 44000 lbs\nDeclared Value: $N/A"
	if sender.leadData.ShippingDetails != want {
		t.Errorf("details = %q, want %q", sender.leadData.ShippingDetails, want)
	}
	if sender.leadData.Pickup.Date != "" {
		t.Errorf("pickup date = %q, want empty", sender.leadData.Pickup.Date)
	}
}

func TestNotifyLeadCreatedLTLWithoutItems(t *testing.T) {
	sender := &fakeSender{}
	d := newTestDispatcher(sender)

	lead := domain.Lead{ShippingType: domain.ShippingTypeLTL}
	if err := d.NotifyLeadCreated(context.Background(), lead, nil); err != nil {
		t.Fatalf("NotifyLeadCreated: %v", err)
	}
	if sender.leadData.ShippingDetails != "Items: N/A" {
		t.Errorf("details = %q", sender.leadData.ShippingDetails)
	}
}

func TestNotifyLeadCreatedPropagatesSenderError(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp timeout")}
	d := newTestDispatcher(sender)

	err := d.NotifyLeadCreated(context.Background(), domain.Lead{ShippingType: domain.ShippingTypeFTL}, nil)
	if err == nil {
		t.Fatal("expected sender error to propagate to the caller for logging")
	}
}

func TestNotifyInquiry(t *testing.T) {
	sender := &fakeSender{}
	d := newTestDispatcher(sender)

	inq := inquiries.Inquiry{
		Name:    "Eve",
		Email:   "eve@example.com",
		Service: "FTL Shipping",
		Message: "Need a quote",
	}
	if err := d.NotifyInquiry(context.Background(), inq); err != nil {
		t.Fatalf("NotifyInquiry: %v", err)
	}
	if sender.inqData == nil || sender.inqData.Name != "Eve" || sender.inqData.Service != "FTL Shipping" {
		t.Errorf("data = %+v", sender.inqData)
	}
}
