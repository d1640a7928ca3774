// Package email renders and delivers the operator notification emails over
// SMTP. Every message goes to the configured operator mailbox; nothing here
// emails submitters.
package email

import "context"

// LocationData is one pickup or delivery block in a lead notification.
type LocationData struct {
	Zip           string
	Date          string // pickup only; empty renders as N/A
	Residential   bool
	Liftgate      bool
	LimitedAccess bool
}

// LeadNotificationData carries everything needed to render a new-lead email.
type LeadNotificationData struct {
	ShippingType    string // upper-cased, "LTL" or "FTL"
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Company         string
	ShippingDetails string // preformatted equipment or item summary block
	Pickup          LocationData
	Delivery        LocationData
	SubmittedAt     string
	AdminURL        string
}

// InquiryNotificationData carries a contact form submission.
type InquiryNotificationData struct {
	Name        string
	Email       string
	Phone       string
	Service     string
	Message     string
	SubmittedAt string
	AdminURL    string
}

// DigestData carries the daily lead summary counts.
type DigestData struct {
	Date         string
	LTLCount     int
	FTLCount     int
	InquiryCount int
	AdminURL     string
}

// Sender delivers operator notifications. Implementations make exactly one
// delivery attempt per call; callers decide what a failure means.
type Sender interface {
	SendLeadNotification(ctx context.Context, data LeadNotificationData) error
	SendInquiryNotification(ctx context.Context, data InquiryNotificationData) error
	SendDailyDigest(ctx context.Context, data DigestData) error
}

// NoopSender is used when email delivery is disabled by configuration.
type NoopSender struct{}

func (NoopSender) SendLeadNotification(context.Context, LeadNotificationData) error { return nil }

func (NoopSender) SendInquiryNotification(context.Context, InquiryNotificationData) error {
	return nil
}

func (NoopSender) SendDailyDigest(context.Context, DigestData) error { return nil }
