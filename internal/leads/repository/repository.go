// Package repository provides database operations for freight leads and their
// line items, backed by pgx.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight_leads_backend/internal/leads/domain"
	"freight_leads_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const leadNotFoundMsg = "lead not found"

// ListParams contains the filters and pagination for the admin lead list.
type ListParams struct {
	Status       *string
	ShippingType *string
	Search       string
	Page         int
	PageSize     int
}

// ListResult is one page of leads with pagination metadata.
type ListResult struct {
	Items      []domain.Lead
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// TypeCounts holds per-shipping-type lead counts for a time window.
type TypeCounts struct {
	LTL int
	FTL int
}

// Repository provides database operations for leads.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const leadColumns = `
	id, first_name, last_name, email, phone, company_name,
	shipping_type, equipment_type, total_weight, declared_value,
	pickup_zip_code, pickup_date, pickup_is_residential, pickup_needs_liftgate, pickup_limited_access,
	delivery_zip_code, delivery_is_residential, delivery_needs_liftgate, delivery_limited_access,
	status, created_at`

// CreateLead inserts a new lead and returns its generated id. Status and
// created_at are set by the database; whatever the caller put there is ignored.
func (r *Repository) CreateLead(ctx context.Context, lead domain.Lead) (uuid.UUID, error) {
	query := `
		INSERT INTO leads (
			first_name, last_name, email, phone, company_name,
			shipping_type, equipment_type, total_weight, declared_value,
			pickup_zip_code, pickup_date, pickup_is_residential, pickup_needs_liftgate, pickup_limited_access,
			delivery_zip_code, delivery_is_residential, delivery_needs_liftgate, delivery_limited_access
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id`

	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, query,
		lead.FirstName, lead.LastName, lead.Email, lead.Phone, lead.CompanyName,
		lead.ShippingType, lead.EquipmentType, lead.TotalWeight, lead.DeclaredValue,
		lead.PickupZipCode, lead.PickupDate, lead.PickupIsResidential, lead.PickupNeedsLiftgate, lead.PickupLimitedAccess,
		lead.DeliveryZipCode, lead.DeliveryIsResidential, lead.DeliveryNeedsLiftgate, lead.DeliveryLimitedAccess,
	).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert lead: %w", err)
	}

	return id, nil
}

// CreateLineItems bulk-inserts the line items of an LTL lead in one atomic
// COPY. Either every item lands or none does; a failure leaves the parent lead
// without items.
func (r *Repository) CreateLineItems(ctx context.Context, leadID uuid.UUID, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([][]interface{}, len(items))
	for i, item := range items {
		rows[i] = []interface{}{
			uuid.New(), leadID, item.Quantity, item.PackagingType, item.FreightClass,
			item.Length, item.Width, item.Height, item.Weight,
		}
	}

	_, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"lead_items"},
		[]string{"id", "lead_id", "quantity", "packaging_type", "freight_class", "length", "width", "height", "weight"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to insert lead items: %w", err)
	}

	return nil
}

// List returns one page of leads, newest first, optionally filtered by status,
// shipping type, and a search term over name, email, and phone.
func (r *Repository) List(ctx context.Context, params ListParams) (*ListResult, error) {
	var searchParam interface{}
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}

	var statusParam interface{}
	if params.Status != nil {
		statusParam = *params.Status
	}

	var typeParam interface{}
	if params.ShippingType != nil {
		typeParam = *params.ShippingType
	}

	baseQuery := `
		FROM leads
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::text IS NULL OR shipping_type = $2)
			AND ($3::text IS NULL OR first_name ILIKE $3 OR last_name ILIKE $3 OR email ILIKE $3 OR phone ILIKE $3)
	`
	args := []interface{}{statusParam, typeParam, searchParam}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	offset := (params.Page - 1) * params.PageSize

	query := "SELECT " + leadColumns + baseQuery + `
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`

	rows, err := r.pool.Query(ctx, query, append(args, params.PageSize, offset)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Lead, 0, params.PageSize)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leads: %w", err)
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

// ListAll returns every lead matching the filters, newest first, without
// pagination. Used by the CSV export.
func (r *Repository) ListAll(ctx context.Context, params ListParams) ([]domain.Lead, error) {
	var statusParam interface{}
	if params.Status != nil {
		statusParam = *params.Status
	}
	var typeParam interface{}
	if params.ShippingType != nil {
		typeParam = *params.ShippingType
	}

	query := "SELECT " + leadColumns + `
		FROM leads
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::text IS NULL OR shipping_type = $2)
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, statusParam, typeParam)
	if err != nil {
		return nil, fmt.Errorf("failed to export leads: %w", err)
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leads: %w", err)
	}

	return leads, nil
}

// GetByID returns a single lead or an apperr.KindNotFound error.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	query := "SELECT " + leadColumns + " FROM leads WHERE id = $1"

	row := r.pool.QueryRow(ctx, query, id)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(leadNotFoundMsg)
		}
		return nil, err
	}

	return &lead, nil
}

// ListItems returns the line items of a lead in insertion order.
func (r *Repository) ListItems(ctx context.Context, leadID uuid.UUID) ([]domain.LineItem, error) {
	query := `
		SELECT id, lead_id, quantity, packaging_type, freight_class, length, width, height, weight
		FROM lead_items
		WHERE lead_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lead items: %w", err)
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(
			&item.ID, &item.LeadID, &item.Quantity, &item.PackagingType, &item.FreightClass,
			&item.Length, &item.Width, &item.Height, &item.Weight,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lead item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lead items: %w", err)
	}

	return items, nil
}

// UpdateStatus sets a lead's status. Returns apperr.KindNotFound when the lead
// does not exist.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := r.pool.Exec(ctx, `UPDATE leads SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update lead status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMsg)
	}
	return nil
}

// CountSince returns per-shipping-type lead counts created at or after the
// given time. Used by the daily digest.
func (r *Repository) CountSince(ctx context.Context, since time.Time) (TypeCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE shipping_type = 'ltl'),
			COUNT(*) FILTER (WHERE shipping_type = 'ftl')
		FROM leads
		WHERE created_at >= $1`

	var counts TypeCounts
	if err := r.pool.QueryRow(ctx, query, since).Scan(&counts.LTL, &counts.FTL); err != nil {
		return TypeCounts{}, fmt.Errorf("failed to count leads: %w", err)
	}

	return counts, nil
}

func scanLead(row pgx.Row) (domain.Lead, error) {
	var lead domain.Lead
	if err := row.Scan(
		&lead.ID, &lead.FirstName, &lead.LastName, &lead.Email, &lead.Phone, &lead.CompanyName,
		&lead.ShippingType, &lead.EquipmentType, &lead.TotalWeight, &lead.DeclaredValue,
		&lead.PickupZipCode, &lead.PickupDate, &lead.PickupIsResidential, &lead.PickupNeedsLiftgate, &lead.PickupLimitedAccess,
		&lead.DeliveryZipCode, &lead.DeliveryIsResidential, &lead.DeliveryNeedsLiftgate, &lead.DeliveryLimitedAccess,
		&lead.Status, &lead.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, err
		}
		return domain.Lead{}, fmt.Errorf("failed to scan lead: %w", err)
	}
	return lead, nil
}
