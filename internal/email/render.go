package email

import (
	"fmt"
	"strings"
)

// renderLeadText builds the plain-text body of a new-lead notification.
func renderLeadText(data LeadNotificationData) string {
	var b strings.Builder

	b.WriteString("New Lead Submission:\n\n")
	fmt.Fprintf(&b, "Name: %s %s\n", data.FirstName, data.LastName)
	fmt.Fprintf(&b, "Email: %s\n", data.Email)
	fmt.Fprintf(&b, "Phone: %s\n", data.Phone)
	if data.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", data.Company)
	}
	fmt.Fprintf(&b, "Shipping Type: %s\n\n", data.ShippingType)

	b.WriteString("Shipping Details:\n")
	b.WriteString(data.ShippingDetails)
	b.WriteString("\n\n")

	b.WriteString("Pickup Location:\n")
	writeLocationText(&b, data.Pickup, true)
	b.WriteString("\nDelivery Location:\n")
	writeLocationText(&b, data.Delivery, false)

	fmt.Fprintf(&b, "\nSubmitted at: %s\n", data.SubmittedAt)

	return b.String()
}

func writeLocationText(b *strings.Builder, loc LocationData, withDate bool) {
	fmt.Fprintf(b, "ZIP: %s\n", loc.Zip)
	if withDate {
		date := loc.Date
		if date == "" {
			date = "N/A"
		}
		fmt.Fprintf(b, "Date: %s\n", date)
	}
	fmt.Fprintf(b, "Residential: %s\n", yesNo(loc.Residential))
	fmt.Fprintf(b, "Liftgate Required: %s\n", yesNo(loc.Liftgate))
	fmt.Fprintf(b, "Limited Access: %s\n", yesNo(loc.LimitedAccess))
}

func renderInquiryText(data InquiryNotificationData) string {
	var b strings.Builder

	b.WriteString("New Contact Inquiry:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", data.Name)
	fmt.Fprintf(&b, "Email: %s\n", data.Email)
	if data.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", data.Phone)
	}
	if data.Service != "" {
		fmt.Fprintf(&b, "Service: %s\n", data.Service)
	}
	fmt.Fprintf(&b, "\nMessage:\n%s\n", data.Message)
	fmt.Fprintf(&b, "\nSubmitted at: %s\n", data.SubmittedAt)

	return b.String()
}

func renderDigestText(data DigestData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Lead Summary for %s:\n\n", data.Date)
	fmt.Fprintf(&b, "LTL Leads: %d\n", data.LTLCount)
	fmt.Fprintf(&b, "FTL Leads: %d\n", data.FTLCount)
	fmt.Fprintf(&b, "Inquiries: %d\n", data.InquiryCount)
	fmt.Fprintf(&b, "Total: %d\n", data.LTLCount+data.FTLCount+data.InquiryCount)

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
