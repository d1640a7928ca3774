// Package intake normalizes and validates raw freight-quote submissions.
// Normalize is a pure function: it either produces a Lead (plus LineItems for
// LTL) ready for persistence, or a validation error naming every offending
// field. No side effects, no I/O.
package intake

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"freight_leads_backend/internal/leads/domain"
	"freight_leads_backend/internal/leads/transport"
	"freight_leads_backend/platform/apperr"
	"freight_leads_backend/platform/phone"
	"freight_leads_backend/platform/sanitize"
)

// emailRegex enforces the basic local@domain.tld shape. Deliverability is not
// a server concern; this only rejects obviously malformed addresses.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const pickupDateLayout = "2006-01-02"

// Normalize validates the submission and converts it into the domain model.
// String fields are trimmed, numeric fields are coerced from text, and fields
// not applicable to the chosen shipping type come out nil. On failure it
// returns a validation error whose details carry all offending field names.
func Normalize(req transport.SubmitLeadRequest) (domain.Lead, []domain.LineItem, error) {
	var fields []string

	lead := domain.Lead{
		FirstName:             strings.TrimSpace(req.FirstName),
		LastName:              strings.TrimSpace(req.LastName),
		Email:                 strings.TrimSpace(req.Email),
		Phone:                 phone.NormalizeE164(req.Phone),
		PickupZipCode:         strings.TrimSpace(req.Details.PickupLocation.ZipCode),
		PickupIsResidential:   req.Details.PickupLocation.IsResidential,
		PickupNeedsLiftgate:   req.Details.PickupLocation.NeedsLiftgate,
		PickupLimitedAccess:   req.Details.PickupLocation.LimitedAccess,
		DeliveryZipCode:       strings.TrimSpace(req.Details.DeliveryLocation.ZipCode),
		DeliveryIsResidential: req.Details.DeliveryLocation.IsResidential,
		DeliveryNeedsLiftgate: req.Details.DeliveryLocation.NeedsLiftgate,
		DeliveryLimitedAccess: req.Details.DeliveryLocation.LimitedAccess,
		Status:                domain.StatusNew,
	}

	if lead.FirstName == "" {
		fields = append(fields, "first_name")
	}
	if lead.LastName == "" {
		fields = append(fields, "last_name")
	}
	switch {
	case lead.Email == "":
		fields = append(fields, "email")
	case !emailRegex.MatchString(lead.Email):
		fields = append(fields, "email")
	}
	if lead.Phone == "" {
		fields = append(fields, "phone")
	}
	if lead.PickupZipCode == "" {
		fields = append(fields, "details.pickupLocation.zipCode")
	}
	if lead.DeliveryZipCode == "" {
		fields = append(fields, "details.deliveryLocation.zipCode")
	}

	if company := sanitize.Text(req.CompanyName); company != "" {
		lead.CompanyName = &company
	}

	shippingType := domain.ShippingType(strings.ToLower(strings.TrimSpace(req.Type)))
	if !shippingType.Valid() {
		fields = append(fields, "type")
	}
	lead.ShippingType = shippingType

	if rawDate := strings.TrimSpace(req.Details.PickupLocation.PickupDate); rawDate != "" {
		// "Today or later" is a UI nicety only; the server accepts any
		// well-formed calendar date.
		parsed, err := time.Parse(pickupDateLayout, rawDate)
		if err != nil {
			fields = append(fields, "details.pickupLocation.pickupDate")
		} else {
			lead.PickupDate = &parsed
		}
	}

	var items []domain.LineItem
	switch shippingType {
	case domain.ShippingTypeFTL:
		fields = normalizeFTL(&lead, req.Details, fields)
	case domain.ShippingTypeLTL:
		items, fields = normalizeItems(req.Details.Items, fields)
	}

	if len(fields) > 0 {
		return domain.Lead{}, nil, apperr.ValidationFields("validation failed", fields)
	}

	return lead, items, nil
}

// normalizeFTL coerces the FTL-only attributes. Any items array mistakenly
// supplied alongside an FTL submission is ignored.
func normalizeFTL(lead *domain.Lead, details transport.LeadDetails, fields []string) []string {
	if equipment := sanitize.Text(details.EquipmentType); equipment != "" {
		lead.EquipmentType = &equipment
	}

	if raw := strings.TrimSpace(details.Weight.String()); raw != "" {
		weight, err := strconv.ParseFloat(raw, 64)
		if err != nil || weight <= 0 {
			fields = append(fields, "details.weight")
		} else {
			lead.TotalWeight = &weight
		}
	}

	if raw := strings.TrimSpace(details.DeclaredValue.String()); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			fields = append(fields, "details.declaredValue")
		} else {
			lead.DeclaredValue = &value
		}
	}

	return fields
}

func normalizeItems(payloads []transport.LineItemPayload, fields []string) ([]domain.LineItem, []string) {
	if len(payloads) == 0 {
		return nil, fields
	}

	items := make([]domain.LineItem, 0, len(payloads))
	for i, p := range payloads {
		item := domain.LineItem{
			PackagingType: strings.ToLower(strings.TrimSpace(p.PackagingType)),
		}

		prefix := "details.items[" + strconv.Itoa(i) + "]."

		qty, err := strconv.Atoi(strings.TrimSpace(p.Quantity.String()))
		if err != nil || qty <= 0 {
			fields = append(fields, prefix+"quantity")
		}
		item.Quantity = qty

		if !domain.ValidPackagingType(item.PackagingType) {
			fields = append(fields, prefix+"packagingType")
		}

		class, err := strconv.ParseFloat(strings.TrimSpace(p.FreightClass.String()), 64)
		if err != nil || !domain.ValidFreightClass(class) {
			fields = append(fields, prefix+"freightClass")
		}
		item.FreightClass = class

		item.Length, fields = positiveDimension(p.Length, prefix+"length", fields)
		item.Width, fields = positiveDimension(p.Width, prefix+"width", fields)
		item.Height, fields = positiveDimension(p.Height, prefix+"height", fields)
		item.Weight, fields = positiveDimension(p.Weight, prefix+"weight", fields)

		items = append(items, item)
	}

	return items, fields
}

func positiveDimension(raw transport.FlexString, field string, fields []string) (float64, []string) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw.String()), 64)
	if err != nil || value <= 0 {
		return 0, append(fields, field)
	}
	return value, fields
}
