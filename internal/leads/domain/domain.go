// Package domain holds the freight lead domain model: shipping classifications,
// the fixed LTL/FTL vocabularies, and the Lead/LineItem aggregates.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ShippingType discriminates the two quote shapes. It determines which
// optional fields are meaningful and whether child LineItems exist.
type ShippingType string

const (
	// ShippingTypeLTL is a less-than-truckload shipment with itemized pieces.
	ShippingTypeLTL ShippingType = "ltl"
	// ShippingTypeFTL is a full-truckload shipment billed by equipment and weight.
	ShippingTypeFTL ShippingType = "ftl"
)

// Valid reports whether the shipping type is a known value.
func (s ShippingType) Valid() bool {
	return s == ShippingTypeLTL || s == ShippingTypeFTL
}

// StatusNew is the status every lead is created with. Later transitions are an
// admin concern; the intake workflow never updates a lead after creation.
const StatusNew = "new"

// EquipmentTypes is the fixed vocabulary offered for FTL quotes.
var EquipmentTypes = []string{
	"Drayage", "Flatbed", "Van", "Reefer", "Step Deck", "Sprinter Van", "Box Truck",
}

// PackagingTypes is the fixed vocabulary for LTL line items.
var PackagingTypes = []string{"pallet", "box", "crate", "drum", "bundle", "roll"}

// ValidPackagingType reports whether the value is in the packaging vocabulary
// (case-insensitive).
func ValidPackagingType(value string) bool {
	for _, p := range PackagingTypes {
		if strings.EqualFold(p, value) {
			return true
		}
	}
	return false
}

// FreightClasses is the closed set of NMFC freight classes used to price LTL
// shipments.
var FreightClasses = []float64{
	50, 55, 60, 65, 70, 77.5, 85, 92.5, 100, 110, 125, 150, 175, 200, 250, 300, 400, 500,
}

// ValidFreightClass reports whether the value is one of the known classes.
func ValidFreightClass(value float64) bool {
	for _, fc := range FreightClasses {
		if fc == value {
			return true
		}
	}
	return false
}

// Lead is one shipping-quote request. FTL-only attributes are nil for LTL
// leads and vice versa; LTL leads may own LineItems.
type Lead struct {
	ID                    uuid.UUID
	FirstName             string
	LastName              string
	Email                 string
	Phone                 string
	CompanyName           *string
	ShippingType          ShippingType
	EquipmentType         *string
	TotalWeight           *float64
	DeclaredValue         *float64
	PickupZipCode         string
	PickupDate            *time.Time
	PickupIsResidential   bool
	PickupNeedsLiftgate   bool
	PickupLimitedAccess   bool
	DeliveryZipCode       string
	DeliveryIsResidential bool
	DeliveryNeedsLiftgate bool
	DeliveryLimitedAccess bool
	Status                string
	CreatedAt             time.Time
}

// LineItem is one physical unit within an LTL lead. It is owned by exactly one
// lead and is created once, in bulk, right after the parent lead.
type LineItem struct {
	ID            uuid.UUID
	LeadID        uuid.UUID
	Quantity      int
	PackagingType string
	FreightClass  float64
	Length        float64
	Width         float64
	Height        float64
	Weight        float64
}
