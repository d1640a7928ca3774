package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"freight_leads_backend/internal/events"
	"freight_leads_backend/internal/leads/domain"
	"freight_leads_backend/internal/leads/repository"
	"freight_leads_backend/internal/leads/service"
	"freight_leads_backend/platform/apperr"
	"freight_leads_backend/platform/logger"
	"freight_leads_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeStore struct {
	createLeadErr error
	leads         []domain.Lead
	items         []domain.LineItem

	createdLeadID uuid.UUID
	createdItems  []domain.LineItem
}

func (f *fakeStore) CreateLead(_ context.Context, _ domain.Lead) (uuid.UUID, error) {
	if f.createLeadErr != nil {
		return uuid.Nil, f.createLeadErr
	}
	f.createdLeadID = uuid.New()
	return f.createdLeadID, nil
}

func (f *fakeStore) CreateLineItems(_ context.Context, _ uuid.UUID, items []domain.LineItem) error {
	f.createdItems = items
	return nil
}

func (f *fakeStore) List(_ context.Context, params repository.ListParams) (*repository.ListResult, error) {
	return &repository.ListResult{
		Items:      f.leads,
		Total:      len(f.leads),
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: 1,
	}, nil
}

func (f *fakeStore) ListAll(_ context.Context, _ repository.ListParams) ([]domain.Lead, error) {
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

func (f *fakeStore) UpdateStatus(_ context.Context, id uuid.UUID, _ string) error {
	for i := range f.leads {
		if f.leads[i].ID == id {
			return nil
		}
	}
	return apperr.NotFound("lead not found")
}

type noopNotifier struct{}

func (noopNotifier) NotifyLeadCreated(context.Context, domain.Lead, []domain.LineItem) error {
	return nil
}

func newTestRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.New("development")
	svc := service.New(store, noopNotifier{}, events.NewInMemoryBus(log), log)
	val := validator.New()

	r := gin.New()
	public := r.Group("/api/v1/public")
	NewPublic(svc, val).RegisterRoutes(public)
	admin := r.Group("/api/v1/leads")
	New(svc, val).RegisterRoutes(admin)
	return r
}

const ltlPayload = `{
	"first_name": "John",
	"last_name": "Doe",
	"email": "john@example.com",
	"phone": "3125550142",
	"company_name": "Acme",
	"type": "ltl",
	"details": {
		"items": [{
			"quantity": 2,
			"packagingType": "pallet",
			"freightClass": "70",
			"length": "48",
			"width": "40",
			"height": "60",
			"weight": "500"
		}],
		"pickupLocation": {"zipCode": "60601", "needsLiftgate": true},
		"deliveryLocation": {"zipCode": "90210", "isResidential": true}
	}
}`

func TestSubmitQuoteSuccess(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/quotes", strings.NewReader(ltlPayload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		LeadID  string `json:"leadId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success || resp.LeadID != store.createdLeadID.String() {
		t.Errorf("response = %+v", resp)
	}
	if len(store.createdItems) != 1 {
		t.Errorf("items persisted = %d, want 1", len(store.createdItems))
	}
}

func TestSubmitQuoteValidationFailure(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	payload := strings.Replace(ltlPayload, `"email": "john@example.com"`, `"email": "bad"`, 1)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/quotes", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp struct {
		Error   string `json:"error"`
		Details struct {
			Fields []string `json:"fields"`
		} `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	found := false
	for _, f := range resp.Details.Fields {
		if f == "email" {
			found = true
		}
	}
	if !found {
		t.Errorf("fields = %v, want email flagged", resp.Details.Fields)
	}
}

func TestSubmitQuotePersistenceFailure(t *testing.T) {
	r := newTestRouter(&fakeStore{createLeadErr: errors.New("connection refused")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/quotes", strings.NewReader(ltlPayload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "connection refused") {
		t.Error("internal error detail leaked to the response")
	}
}

func TestSubmitQuoteMalformedJSON(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/quotes", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func sampleLead(shippingType domain.ShippingType) domain.Lead {
	company := "Acme"
	return domain.Lead{
		ID:              uuid.New(),
		FirstName:       "John",
		LastName:        "Doe",
		Email:           "john@example.com",
		Phone:           "+13125550142",
		CompanyName:     &company,
		ShippingType:    shippingType,
		PickupZipCode:   "60601",
		DeliveryZipCode: "90210",
		Status:          domain.StatusNew,
		CreatedAt:       time.Date(2026, 8, 27, 15, 30, 0, 0, time.UTC),
	}
}

func TestListLeads(t *testing.T) {
	lead := sampleLead(domain.ShippingTypeLTL)
	r := newTestRouter(&fakeStore{leads: []domain.Lead{lead}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads?status=new&page=1&pageSize=25", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Items []struct {
			ID           string `json:"id"`
			ShippingType string `json:"shippingType"`
		} `json:"items"`
		Total    int `json:"total"`
		PageSize int `json:"pageSize"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Total != 1 || len(resp.Items) != 1 || resp.Items[0].ID != lead.ID.String() {
		t.Errorf("response = %+v", resp)
	}
	if resp.PageSize != 25 {
		t.Errorf("pageSize = %d, want 25", resp.PageSize)
	}
}

func TestGetLeadWithItems(t *testing.T) {
	lead := sampleLead(domain.ShippingTypeLTL)
	store := &fakeStore{
		leads: []domain.Lead{lead},
		items: []domain.LineItem{{ID: uuid.New(), LeadID: lead.ID, Quantity: 2, PackagingType: "pallet", FreightClass: 70, Length: 48, Width: 40, Height: 60, Weight: 500}},
	}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/"+lead.ID.String(), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Items []struct {
			Quantity      int    `json:"quantity"`
			PackagingType string `json:"packagingType"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].PackagingType != "pallet" {
		t.Errorf("items = %+v", resp.Items)
	}
}

func TestGetLeadNotFound(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetLeadInvalidID(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestUpdateLeadStatus(t *testing.T) {
	lead := sampleLead(domain.ShippingTypeFTL)
	r := newTestRouter(&fakeStore{leads: []domain.Lead{lead}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/leads/"+lead.ID.String()+"/status", strings.NewReader(`{"status":"contacted"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestUpdateLeadStatusRejectsEmpty(t *testing.T) {
	lead := sampleLead(domain.ShippingTypeFTL)
	r := newTestRouter(&fakeStore{leads: []domain.Lead{lead}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/leads/"+lead.ID.String()+"/status", strings.NewReader(`{"status":""}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestExportCSV(t *testing.T) {
	weight := 44000.0
	lead := sampleLead(domain.ShippingTypeFTL)
	equipment := "Flatbed"
	lead.EquipmentType = &equipment
	lead.TotalWeight = &weight
	r := newTestRouter(&fakeStore{leads: []domain.Lead{lead}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/export", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "leads-") || !strings.Contains(cd, ".csv") {
		t.Errorf("content disposition = %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want header + 1 row", len(lines))
	}
	if !strings.HasPrefix(lines[0], "First Name,Last Name,Email") {
		t.Errorf("header = %q", lines[0])
	}
	row := lines[1]
	for _, want := range []string{"John", "Doe", "FTL", "Flatbed", "44000", "Not specified", "08/27/2026"} {
		if !strings.Contains(row, want) {
			t.Errorf("row %q missing %q", row, want)
		}
	}
	if !strings.Contains(row, "No,No,No") {
		t.Errorf("row %q missing Yes/No flags", row)
	}
}
