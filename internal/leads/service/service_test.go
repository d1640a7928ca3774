package service

import (
	"context"
	"errors"
	"testing"

	"freight_leads_backend/internal/events"
	"freight_leads_backend/internal/leads/domain"
	"freight_leads_backend/internal/leads/repository"
	"freight_leads_backend/internal/leads/transport"
	"freight_leads_backend/platform/apperr"
	"freight_leads_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	createLeadErr  error
	createItemsErr error
	listErr        error
	updateErr      error

	createdLead   *domain.Lead
	createdItems  []domain.LineItem
	createdLeadID uuid.UUID

	leads []domain.Lead
	items []domain.LineItem
}

func (f *fakeStore) CreateLead(_ context.Context, lead domain.Lead) (uuid.UUID, error) {
	if f.createLeadErr != nil {
		return uuid.Nil, f.createLeadErr
	}
	f.createdLead = &lead
	f.createdLeadID = uuid.New()
	return f.createdLeadID, nil
}

func (f *fakeStore) CreateLineItems(_ context.Context, leadID uuid.UUID, items []domain.LineItem) error {
	if f.createItemsErr != nil {
		return f.createItemsErr
	}
	for i := range items {
		items[i].LeadID = leadID
	}
	f.createdItems = items
	return nil
}

func (f *fakeStore) List(_ context.Context, params repository.ListParams) (*repository.ListResult, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &repository.ListResult{
		Items:      f.leads,
		Total:      len(f.leads),
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: 1,
	}, nil
}

func (f *fakeStore) ListAll(_ context.Context, _ repository.ListParams) ([]domain.Lead, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.leads, nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Lead, error) {
	for i := range f.leads {
		if f.leads[i].ID == id {
			return &f.leads[i], nil
		}
	}
	return nil, apperr.NotFound("lead not found")
}

func (f *fakeStore) ListItems(_ context.Context, _ uuid.UUID) ([]domain.LineItem, error) {
	return f.items, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, _ uuid.UUID, _ string) error {
	return f.updateErr
}

type fakeNotifier struct {
	err    error
	called bool
	lead   domain.Lead
	items  []domain.LineItem
}

func (f *fakeNotifier) NotifyLeadCreated(_ context.Context, lead domain.Lead, items []domain.LineItem) error {
	f.called = true
	f.lead = lead
	f.items = items
	return f.err
}

func newTestService(store *fakeStore, notifier *fakeNotifier) (*Service, *events.InMemoryBus) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	return New(store, notifier, bus, log), bus
}

func ltlSubmission() transport.SubmitLeadRequest {
	return transport.SubmitLeadRequest{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Phone:     "3125550142",
		Type:      "ltl",
		Details: transport.LeadDetails{
			Items: []transport.LineItemPayload{
				{Quantity: "2", PackagingType: "pallet", FreightClass: "70", Length: "48", Width: "40", Height: "60", Weight: "500"},
				{Quantity: "1", PackagingType: "crate", FreightClass: "100", Length: "30", Width: "30", Height: "30", Weight: "200"},
			},
			PickupLocation:   transport.PickupLocation{ZipCode: "60601"},
			DeliveryLocation: transport.DeliveryLocation{ZipCode: "90210"},
		},
	}
}

func ftlSubmission() transport.SubmitLeadRequest {
	return transport.SubmitLeadRequest{
		FirstName: "Jane",
		LastName:  "Smith",
		Email:     "jane@example.com",
		Phone:     "3125550199",
		Type:      "ftl",
		Details: transport.LeadDetails{
			EquipmentType:    "Flatbed",
			Weight:           "44000",
			PickupLocation:   transport.PickupLocation{ZipCode: "77001"},
			DeliveryLocation: transport.DeliveryLocation{ZipCode: "30301"},
		},
	}
}

func TestSubmitLTLPersistsLeadAndItems(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	svc, bus := newTestService(store, notifier)

	resp, err := svc.Submit(context.Background(), ltlSubmission())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	bus.Wait()

	if !resp.Success || resp.LeadID != store.createdLeadID {
		t.Errorf("response = %+v", resp)
	}
	if store.createdLead == nil || store.createdLead.ShippingType != domain.ShippingTypeLTL {
		t.Fatalf("lead not persisted: %+v", store.createdLead)
	}
	if len(store.createdItems) != 2 {
		t.Errorf("items persisted = %d, want 2", len(store.createdItems))
	}
	for _, item := range store.createdItems {
		if item.LeadID != store.createdLeadID {
			t.Errorf("item lead id = %s, want %s", item.LeadID, store.createdLeadID)
		}
	}
	if !notifier.called {
		t.Error("notification not attempted")
	}
	if len(notifier.items) != 2 {
		t.Errorf("notification items = %d, want 2", len(notifier.items))
	}
}

func TestSubmitFTLSkipsItems(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	svc, bus := newTestService(store, notifier)

	resp, err := svc.Submit(context.Background(), ftlSubmission())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	bus.Wait()

	if !resp.Success {
		t.Error("expected success")
	}
	if store.createdItems != nil {
		t.Errorf("FTL must not persist items, got %d", len(store.createdItems))
	}
	if store.createdLead.TotalWeight == nil || *store.createdLead.TotalWeight != 44000 {
		t.Errorf("total weight = %v", store.createdLead.TotalWeight)
	}
	if !notifier.called {
		t.Error("notification not attempted")
	}
}

func TestSubmitValidationFailureSkipsPersistenceAndNotification(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	svc, _ := newTestService(store, notifier)

	req := ltlSubmission()
	req.Email = "not-an-email"

	_, err := svc.Submit(context.Background(), req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.createdLead != nil {
		t.Error("lead persisted despite validation failure")
	}
	if notifier.called {
		t.Error("notification attempted despite validation failure")
	}
}

func TestSubmitLeadInsertFailureSkipsNotification(t *testing.T) {
	store := &fakeStore{createLeadErr: errors.New("connection refused")}
	notifier := &fakeNotifier{}
	svc, _ := newTestService(store, notifier)

	_, err := svc.Submit(context.Background(), ltlSubmission())
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if notifier.called {
		t.Error("notification attempted after failed persistence")
	}
}

func TestSubmitItemInsertFailureStillSucceeds(t *testing.T) {
	store := &fakeStore{createItemsErr: errors.New("copy failed")}
	notifier := &fakeNotifier{}
	svc, bus := newTestService(store, notifier)

	resp, err := svc.Submit(context.Background(), ltlSubmission())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	bus.Wait()

	if !resp.Success {
		t.Error("expected success despite item insert failure")
	}
	if !notifier.called {
		t.Error("notification skipped after item insert failure")
	}
}

func TestSubmitNotificationFailureStillSucceeds(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{err: errors.New("smtp timeout")}
	svc, bus := newTestService(store, notifier)

	resp, err := svc.Submit(context.Background(), ltlSubmission())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	bus.Wait()

	if !resp.Success || resp.LeadID == uuid.Nil {
		t.Errorf("response = %+v", resp)
	}
}

func TestSubmitPublishesLeadCreated(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	svc, bus := newTestService(store, notifier)

	received := make(chan events.LeadCreated, 1)
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		received <- e.(events.LeadCreated)
		return nil
	}))

	resp, err := svc.Submit(context.Background(), ltlSubmission())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	bus.Wait()

	select {
	case event := <-received:
		if event.LeadID != resp.LeadID {
			t.Errorf("event lead id = %s, want %s", event.LeadID, resp.LeadID)
		}
		if event.ShippingType != "ltl" || event.ItemCount != 2 {
			t.Errorf("event = %+v", event)
		}
	default:
		t.Fatal("LeadCreated event not published")
	}
}

func TestListDefaultsPagination(t *testing.T) {
	store := &fakeStore{leads: []domain.Lead{{ID: uuid.New()}}}
	svc, _ := newTestService(store, &fakeNotifier{})

	result, err := svc.List(context.Background(), transport.ListLeadsRequest{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Page != 1 || result.PageSize != defaultPageSize {
		t.Errorf("page=%d pageSize=%d, want 1/%d", result.Page, result.PageSize, defaultPageSize)
	}
}

func TestGetReturnsItemsOnlyForLTL(t *testing.T) {
	ltlID, ftlID := uuid.New(), uuid.New()
	store := &fakeStore{
		leads: []domain.Lead{
			{ID: ltlID, ShippingType: domain.ShippingTypeLTL},
			{ID: ftlID, ShippingType: domain.ShippingTypeFTL},
		},
		items: []domain.LineItem{{Quantity: 1, PackagingType: "pallet"}},
	}
	svc, _ := newTestService(store, &fakeNotifier{})

	_, items, err := svc.Get(context.Background(), ltlID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("LTL items = %d, want 1", len(items))
	}

	_, items, err = svc.Get(context.Background(), ftlID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if items != nil {
		t.Errorf("FTL items = %v, want nil", items)
	}
}

func TestGetUnknownLeadIsNotFound(t *testing.T) {
	svc, _ := newTestService(&fakeStore{}, &fakeNotifier{})
	_, _, err := svc.Get(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
