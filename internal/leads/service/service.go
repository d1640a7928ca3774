// Package service orchestrates the freight lead workflow: validate the
// submission, persist the lead and its line items, then fire the operator
// notification. Validation failures reject the request, a failed lead insert
// fails it, and everything after the lead insert is best-effort.
package service

import (
	"context"

	"freight_leads_backend/internal/events"
	"freight_leads_backend/internal/leads/domain"
	"freight_leads_backend/internal/leads/intake"
	"freight_leads_backend/internal/leads/repository"
	"freight_leads_backend/internal/leads/transport"
	"freight_leads_backend/platform/apperr"
	"freight_leads_backend/platform/logger"

	"github.com/google/uuid"
)

// LeadStore is the persistence surface the service depends on.
type LeadStore interface {
	CreateLead(ctx context.Context, lead domain.Lead) (uuid.UUID, error)
	CreateLineItems(ctx context.Context, leadID uuid.UUID, items []domain.LineItem) error
	List(ctx context.Context, params repository.ListParams) (*repository.ListResult, error)
	ListAll(ctx context.Context, params repository.ListParams) ([]domain.Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	ListItems(ctx context.Context, leadID uuid.UUID) ([]domain.LineItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// Notifier delivers the new-lead email. Its error is logged, never propagated.
type Notifier interface {
	NotifyLeadCreated(ctx context.Context, lead domain.Lead, items []domain.LineItem) error
}

// Service implements the lead intake workflow and the admin read side.
type Service struct {
	store    LeadStore
	notifier Notifier
	bus      events.Bus
	logger   *logger.Logger
}

// New creates a new leads service.
func New(store LeadStore, notifier Notifier, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, notifier: notifier, bus: bus, logger: log}
}

// Submit runs the full intake workflow for one freight-quote submission.
//
// A validation failure returns a KindValidation error naming the offending
// fields. A failed lead insert returns a KindInternal error. A failed line-item
// insert or a failed notification is logged and the submission still succeeds:
// once the lead row exists the submitter gets their confirmation.
func (s *Service) Submit(ctx context.Context, req transport.SubmitLeadRequest) (*transport.SubmitLeadResponse, error) {
	lead, items, err := intake.Normalize(req)
	if err != nil {
		return nil, err
	}

	id, err := s.store.CreateLead(ctx, lead)
	if err != nil {
		s.logger.WithContext(ctx).DatabaseError("create_lead", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to save lead", err)
	}
	lead.ID = id

	if len(items) > 0 {
		if err := s.store.CreateLineItems(ctx, id, items); err != nil {
			// The lead exists without its items; admins can still follow up
			// from the contact details and the notification email.
			s.logger.WithContext(ctx).DatabaseError("create_lead_items", err)
		}
	}

	if err := s.notifier.NotifyLeadCreated(ctx, lead, items); err != nil {
		s.logger.WithContext(ctx).EmailError("lead_notification", err)
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       id,
		ShippingType: string(lead.ShippingType),
		PickupZip:    lead.PickupZipCode,
		DeliveryZip:  lead.DeliveryZipCode,
		ItemCount:    len(items),
	})

	return &transport.SubmitLeadResponse{Success: true, LeadID: id}, nil
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// List returns one page of leads for the admin dashboard.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (*repository.ListResult, error) {
	params := repository.ListParams{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = defaultPageSize
	}
	if params.PageSize > maxPageSize {
		params.PageSize = maxPageSize
	}
	if req.Status != "" {
		params.Status = &req.Status
	}
	if req.ShippingType != "" {
		params.ShippingType = &req.ShippingType
	}

	result, err := s.store.List(ctx, params)
	if err != nil {
		s.logger.WithContext(ctx).DatabaseError("list_leads", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list leads", err)
	}

	return result, nil
}

// Export returns every lead matching the filters for the CSV download.
func (s *Service) Export(ctx context.Context, status, shippingType string) ([]domain.Lead, error) {
	var params repository.ListParams
	if status != "" {
		params.Status = &status
	}
	if shippingType != "" {
		params.ShippingType = &shippingType
	}

	leads, err := s.store.ListAll(ctx, params)
	if err != nil {
		s.logger.WithContext(ctx).DatabaseError("export_leads", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to export leads", err)
	}

	return leads, nil
}

// Get returns a lead and, for LTL, its line items.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Lead, []domain.LineItem, error) {
	lead, err := s.store.GetByID(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, nil, err
		}
		s.logger.WithContext(ctx).DatabaseError("get_lead", err)
		return nil, nil, apperr.Wrap(apperr.KindInternal, "failed to load lead", err)
	}

	var items []domain.LineItem
	if lead.ShippingType == domain.ShippingTypeLTL {
		items, err = s.store.ListItems(ctx, id)
		if err != nil {
			s.logger.WithContext(ctx).DatabaseError("list_lead_items", err)
			return nil, nil, apperr.Wrap(apperr.KindInternal, "failed to load lead items", err)
		}
	}

	return lead, items, nil
}

// UpdateStatus sets a lead's free-form status.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		s.logger.WithContext(ctx).DatabaseError("update_lead_status", err)
		return apperr.Wrap(apperr.KindInternal, "failed to update lead", err)
	}
	return nil
}
