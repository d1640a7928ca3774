package transport

import (
	"time"

	"github.com/google/uuid"
)

// SubmitLeadRequest is the public freight-quote submission payload. Contact
// fields are snake_case and shipping details are nested under details,
// matching the wire contract of the marketing site form.
type SubmitLeadRequest struct {
	FirstName   string      `json:"first_name" validate:"max=100"`
	LastName    string      `json:"last_name" validate:"max=100"`
	Email       string      `json:"email" validate:"max=254"`
	Phone       string      `json:"phone" validate:"max=30"`
	CompanyName string      `json:"company_name" validate:"max=200"`
	Type        string      `json:"type" validate:"max=10"`
	Details     LeadDetails `json:"details"`
}

// LeadDetails carries the shipping-type-specific block plus both locations.
// Items is meaningful for LTL; equipmentType/weight/declaredValue for FTL.
// Numeric fields arrive as free text from the form and are coerced by intake.
type LeadDetails struct {
	Items            []LineItemPayload `json:"items,omitempty"`
	EquipmentType    string            `json:"equipmentType,omitempty" validate:"max=50"`
	Weight           FlexString        `json:"weight,omitempty"`
	DeclaredValue    FlexString        `json:"declaredValue,omitempty"`
	PickupLocation   PickupLocation    `json:"pickupLocation"`
	DeliveryLocation DeliveryLocation  `json:"deliveryLocation"`
}

// LineItemPayload is one physical unit in an LTL submission.
type LineItemPayload struct {
	Quantity      FlexString `json:"quantity"`
	PackagingType string     `json:"packagingType" validate:"max=30"`
	FreightClass  FlexString `json:"freightClass"`
	Length        FlexString `json:"length"`
	Width         FlexString `json:"width"`
	Height        FlexString `json:"height"`
	Weight        FlexString `json:"weight"`
}

// PickupLocation is the origin block. pickupDate is an optional 2006-01-02 date.
type PickupLocation struct {
	ZipCode       string `json:"zipCode" validate:"max=10"`
	PickupDate    string `json:"pickupDate,omitempty" validate:"max=10"`
	IsResidential bool   `json:"isResidential"`
	NeedsLiftgate bool   `json:"needsLiftgate"`
	LimitedAccess bool   `json:"limitedAccess"`
}

// DeliveryLocation is the destination block. There is no delivery date.
type DeliveryLocation struct {
	ZipCode       string `json:"zipCode" validate:"max=10"`
	IsResidential bool   `json:"isResidential"`
	NeedsLiftgate bool   `json:"needsLiftgate"`
	LimitedAccess bool   `json:"limitedAccess"`
}

// SubmitLeadResponse acknowledges a persisted lead.
type SubmitLeadResponse struct {
	Success bool      `json:"success"`
	LeadID  uuid.UUID `json:"leadId"`
}

// ListLeadsRequest is the admin dashboard query surface.
type ListLeadsRequest struct {
	Status       string `form:"status" validate:"max=50"`
	ShippingType string `form:"shippingType" validate:"omitempty,oneof=ltl ftl"`
	Search       string `form:"search" validate:"max=100"`
	Page         int    `form:"page" validate:"min=0"`
	PageSize     int    `form:"pageSize" validate:"min=0,max=200"`
}

// UpdateLeadStatusRequest mutates a lead's free-form status.
type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,min=1,max=50"`
}

// Response DTOs
type LineItemResponse struct {
	ID            uuid.UUID `json:"id"`
	Quantity      int       `json:"quantity"`
	PackagingType string    `json:"packagingType"`
	FreightClass  float64   `json:"freightClass"`
	Length        float64   `json:"length"`
	Width         float64   `json:"width"`
	Height        float64   `json:"height"`
	Weight        float64   `json:"weight"`
}

type LeadResponse struct {
	ID                    uuid.UUID          `json:"id"`
	FirstName             string             `json:"firstName"`
	LastName              string             `json:"lastName"`
	Email                 string             `json:"email"`
	Phone                 string             `json:"phone"`
	CompanyName           *string            `json:"companyName,omitempty"`
	ShippingType          string             `json:"shippingType"`
	EquipmentType         *string            `json:"equipmentType,omitempty"`
	TotalWeight           *float64           `json:"totalWeight,omitempty"`
	DeclaredValue         *float64           `json:"declaredValue,omitempty"`
	PickupZipCode         string             `json:"pickupZipCode"`
	PickupDate            *time.Time         `json:"pickupDate,omitempty"`
	PickupIsResidential   bool               `json:"pickupIsResidential"`
	PickupNeedsLiftgate   bool               `json:"pickupNeedsLiftgate"`
	PickupLimitedAccess   bool               `json:"pickupLimitedAccess"`
	DeliveryZipCode       string             `json:"deliveryZipCode"`
	DeliveryIsResidential bool               `json:"deliveryIsResidential"`
	DeliveryNeedsLiftgate bool               `json:"deliveryNeedsLiftgate"`
	DeliveryLimitedAccess bool               `json:"deliveryLimitedAccess"`
	Status                string             `json:"status"`
	CreatedAt             time.Time          `json:"createdAt"`
	Items                 []LineItemResponse `json:"items,omitempty"`
}

type LeadListResponse struct {
	Items      []LeadResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}
