package events

import "github.com/google/uuid"

// LeadCreated is published after a freight quote lead has been persisted.
// Subscribers (analytics) must tolerate the lead existing without line items.
type LeadCreated struct {
	BaseEvent
	LeadID       uuid.UUID `json:"leadId"`
	ShippingType string    `json:"shippingType"`
	PickupZip    string    `json:"pickupZip"`
	DeliveryZip  string    `json:"deliveryZip"`
	ItemCount    int       `json:"itemCount"`
}

// EventName returns the unique event identifier.
func (e LeadCreated) EventName() string { return "leads.created" }

// InquiryReceived is published after a general contact inquiry has been persisted.
type InquiryReceived struct {
	BaseEvent
	InquiryID uuid.UUID `json:"inquiryId"`
	Service   string    `json:"service"`
}

// EventName returns the unique event identifier.
func (e InquiryReceived) EventName() string { return "inquiries.received" }
