package email

import (
	"context"
	"fmt"
	"net"
	"time"

	"freight_leads_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
// Each message carries a plain-text body with an HTML alternative.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
	toEmail   string
}

// NewSMTPSender creates an SMTPSender from the email and notification config.
func NewSMTPSender(cfg config.EmailConfig, notifyCfg config.NotificationConfig) *SMTPSender {
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
		toEmail:   notifyCfg.GetNotificationEmail(),
	}
}

// SendLeadNotification delivers the new-lead email to the operator mailbox.
func (s *SMTPSender) SendLeadNotification(ctx context.Context, data LeadNotificationData) error {
	subject := fmt.Sprintf(subjectLeadFmt, data.ShippingType, data.FirstName, data.LastName)
	html, err := renderEmailTemplate("lead_notification.html", data)
	if err != nil {
		return err
	}
	return s.send(ctx, subject, renderLeadText(data), html)
}

// SendInquiryNotification delivers the new-inquiry email.
func (s *SMTPSender) SendInquiryNotification(ctx context.Context, data InquiryNotificationData) error {
	subject := fmt.Sprintf(subjectInquiryFmt, data.Name)
	html, err := renderEmailTemplate("inquiry_notification.html", data)
	if err != nil {
		return err
	}
	return s.send(ctx, subject, renderInquiryText(data), html)
}

// SendDailyDigest delivers the daily lead summary.
func (s *SMTPSender) SendDailyDigest(ctx context.Context, data DigestData) error {
	subject := fmt.Sprintf(subjectDigestFmt, data.Date)
	html, err := renderEmailTemplate("daily_digest.html", data)
	if err != nil {
		return err
	}
	return s.send(ctx, subject, renderDigestText(data), html)
}

func (s *SMTPSender) send(ctx context.Context, subject, textContent, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(s.toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, textContent)
	msg.AddAlternativeString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}
