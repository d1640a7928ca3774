// Package inquiries provides the general contact inquiry bounded context:
// the public contact form endpoint and the admin read side, in one package.
package inquiries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight_leads_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Inquiry is one contact form submission.
type Inquiry struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	Service   string
	Message   string
	Status    string
	CreatedAt time.Time
}

// Repository provides data access for inquiries.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new inquiries repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts an inquiry and returns its generated id.
func (r *Repository) Create(ctx context.Context, inq Inquiry) (uuid.UUID, error) {
	query := `
		INSERT INTO inquiries (name, email, phone, service, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, query, inq.Name, inq.Email, inq.Phone, inq.Service, inq.Message).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert inquiry: %w", err)
	}

	return id, nil
}

// List returns the most recent inquiries, capped at limit.
func (r *Repository) List(ctx context.Context, limit int) ([]Inquiry, error) {
	query := `
		SELECT id, name, email, phone, service, message, status, created_at
		FROM inquiries
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []Inquiry
	for rows.Next() {
		var inq Inquiry
		if err := rows.Scan(&inq.ID, &inq.Name, &inq.Email, &inq.Phone, &inq.Service, &inq.Message, &inq.Status, &inq.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		inquiries = append(inquiries, inq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inquiries: %w", err)
	}

	return inquiries, nil
}

// UpdateStatus sets an inquiry's status, or apperr.KindNotFound.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := r.pool.Exec(ctx, `UPDATE inquiries SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("inquiry not found")
	}
	return nil
}

// CountSince returns the number of inquiries created at or after the given time.
func (r *Repository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM inquiries WHERE created_at >= $1`, since).Scan(&count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count inquiries: %w", err)
	}
	return count, nil
}
