package inquiries

import (
	"context"
	"regexp"
	"strings"

	"freight_leads_backend/internal/events"
	"freight_leads_backend/platform/apperr"
	"freight_leads_backend/platform/logger"
	"freight_leads_backend/platform/phone"
	"freight_leads_backend/platform/sanitize"

	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SubmitInquiryRequest is the public contact form payload.
type SubmitInquiryRequest struct {
	Name    string `json:"name" validate:"max=150"`
	Email   string `json:"email" validate:"max=254"`
	Phone   string `json:"phone" validate:"max=30"`
	Service string `json:"service" validate:"max=100"`
	Message string `json:"message" validate:"max=5000"`
}

// SubmitInquiryResponse acknowledges a persisted inquiry.
type SubmitInquiryResponse struct {
	Success   bool      `json:"success"`
	InquiryID uuid.UUID `json:"inquiryId"`
}

// InquiryStore is the persistence surface the service depends on.
type InquiryStore interface {
	Create(ctx context.Context, inq Inquiry) (uuid.UUID, error)
	List(ctx context.Context, limit int) ([]Inquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// Notifier delivers the new-inquiry email. Its error is logged, never propagated.
type Notifier interface {
	NotifyInquiry(ctx context.Context, inq Inquiry) error
}

// Service runs the inquiry workflow: validate, persist, notify best-effort.
type Service struct {
	store    InquiryStore
	notifier Notifier
	bus      events.Bus
	logger   *logger.Logger
}

// NewService creates a new inquiries service.
func NewService(store InquiryStore, notifier Notifier, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, notifier: notifier, bus: bus, logger: log}
}

// Submit validates and persists one contact inquiry. Notification failures are
// logged and swallowed, mirroring the quote intake workflow.
func (s *Service) Submit(ctx context.Context, req SubmitInquiryRequest) (*SubmitInquiryResponse, error) {
	inq, err := normalize(req)
	if err != nil {
		return nil, err
	}

	id, err := s.store.Create(ctx, inq)
	if err != nil {
		s.logger.WithContext(ctx).DatabaseError("create_inquiry", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to save inquiry", err)
	}
	inq.ID = id

	if err := s.notifier.NotifyInquiry(ctx, inq); err != nil {
		s.logger.WithContext(ctx).EmailError("inquiry_notification", err)
	}

	s.bus.Publish(ctx, events.InquiryReceived{
		BaseEvent: events.NewBaseEvent(),
		InquiryID: id,
		Service:   inq.Service,
	})

	return &SubmitInquiryResponse{Success: true, InquiryID: id}, nil
}

// List returns the most recent inquiries for the admin view.
func (s *Service) List(ctx context.Context, limit int) ([]Inquiry, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	inquiries, err := s.store.List(ctx, limit)
	if err != nil {
		s.logger.WithContext(ctx).DatabaseError("list_inquiries", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list inquiries", err)
	}
	return inquiries, nil
}

// UpdateStatus sets an inquiry's free-form status.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		s.logger.WithContext(ctx).DatabaseError("update_inquiry_status", err)
		return apperr.Wrap(apperr.KindInternal, "failed to update inquiry", err)
	}
	return nil
}

func normalize(req SubmitInquiryRequest) (Inquiry, error) {
	var fields []string

	inq := Inquiry{
		Name:    sanitize.Text(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   phone.NormalizeE164(req.Phone),
		Service: sanitize.Text(req.Service),
		Message: sanitize.Text(req.Message),
	}

	if inq.Name == "" {
		fields = append(fields, "name")
	}
	if inq.Email == "" || !emailRegex.MatchString(inq.Email) {
		fields = append(fields, "email")
	}
	if inq.Message == "" {
		fields = append(fields, "message")
	}

	if len(fields) > 0 {
		return Inquiry{}, apperr.ValidationFields("validation failed", fields)
	}

	return inq, nil
}
