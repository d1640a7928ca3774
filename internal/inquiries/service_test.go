package inquiries

import (
	"context"
	"errors"
	"testing"

	"freight_leads_backend/internal/events"
	"freight_leads_backend/platform/apperr"
	"freight_leads_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	createErr error
	created   *Inquiry
	createdID uuid.UUID
}

func (f *fakeStore) Create(_ context.Context, inq Inquiry) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created = &inq
	f.createdID = uuid.New()
	return f.createdID, nil
}

func (f *fakeStore) List(_ context.Context, _ int) ([]Inquiry, error) { return nil, nil }

func (f *fakeStore) UpdateStatus(_ context.Context, _ uuid.UUID, _ string) error { return nil }

type fakeNotifier struct {
	err    error
	called bool
}

func (f *fakeNotifier) NotifyInquiry(_ context.Context, _ Inquiry) error {
	f.called = true
	return f.err
}

func newTestService(store *fakeStore, notifier *fakeNotifier) (*Service, *events.InMemoryBus) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	return NewService(store, notifier, bus, log), bus
}

func validRequest() SubmitInquiryRequest {
	return SubmitInquiryRequest{
		Name:    "John Doe",
		Email:   "john@example.com",
		Phone:   "3125550142",
		Service: "LTL Shipping",
		Message: "Looking for weekly lanes from Chicago to Dallas.",
	}
}

func TestSubmitInquiry(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	svc, bus := newTestService(store, notifier)

	resp, err := svc.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	bus.Wait()

	if !resp.Success || resp.InquiryID != store.createdID {
		t.Errorf("response = %+v", resp)
	}
	if store.created == nil || store.created.Message == "" {
		t.Fatalf("inquiry not persisted: %+v", store.created)
	}
	if !notifier.called {
		t.Error("notification not attempted")
	}
}

func TestSubmitInquiryValidation(t *testing.T) {
	svc, _ := newTestService(&fakeStore{}, &fakeNotifier{})

	req := validRequest()
	req.Name = " "
	req.Email = "bad"
	req.Message = ""

	_, err := svc.Submit(context.Background(), req)
	appErr, ok := err.(*apperr.Error)
	if !ok || appErr.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := appErr.Details.(map[string]interface{})["fields"].([]string)
	if len(fields) != 3 {
		t.Errorf("fields = %v, want name, email, message", fields)
	}
}

func TestSubmitInquiryPersistenceFailure(t *testing.T) {
	store := &fakeStore{createErr: errors.New("connection refused")}
	notifier := &fakeNotifier{}
	svc, _ := newTestService(store, notifier)

	_, err := svc.Submit(context.Background(), validRequest())
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if notifier.called {
		t.Error("notification attempted after failed persistence")
	}
}

func TestSubmitInquiryNotificationFailureStillSucceeds(t *testing.T) {
	store := &fakeStore{}
	svc, bus := newTestService(store, &fakeNotifier{err: errors.New("smtp timeout")})

	resp, err := svc.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	bus.Wait()

	if !resp.Success {
		t.Error("expected success despite notification failure")
	}
}

func TestSubmitInquirySanitizesMessage(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestService(store, &fakeNotifier{})

	req := validRequest()
	req.Message = "<script>alert(1)</script>Need a quote"

	if _, err := svc.Submit(context.Background(), req); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if store.created.Message != "alert(1)Need a quote" {
		t.Errorf("message = %q", store.created.Message)
	}
}
