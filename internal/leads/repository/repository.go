package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"callcampaign_backend/platform/apperr"
)

const leadNotFoundMessage = "lead not found"

const leadColumns = `id, name, phone_number, status, disposition, duration, cost, phone_id, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a lead by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead by id: %w", err)
	}

	return lead, nil
}

// List retrieves leads with an optional status filter, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	var statusParam interface{}
	if params.Status != "" {
		statusParam = params.Status
	}

	limit := params.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM leads WHERE ($1::text IS NULL OR status = $1)`
	if err := r.pool.QueryRow(ctx, countQuery, statusParam).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	query := `
		SELECT ` + leadColumns + `
		FROM leads
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, statusParam, limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads, err := scanLeads(rows)
	if err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

// Create inserts a single lead.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Lead, error) {
	status := params.Status
	if status == "" {
		status = StatusPending
	}

	query := `
		INSERT INTO leads (name, phone_number, status, phone_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, params.Name, params.PhoneNumber, status, params.PhoneID))
	if err != nil {
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}

	return lead, nil
}

// CreateBatch inserts multiple leads in a single round trip and returns the
// new IDs in input order.
func (r *Repo) CreateBatch(ctx context.Context, params []CreateParams) ([]uuid.UUID, error) {
	if len(params) == 0 {
		return nil, nil
	}

	query := `
		INSERT INTO leads (name, phone_number, status, phone_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	batch := &pgx.Batch{}
	for _, p := range params {
		status := p.Status
		if status == "" {
			status = StatusPending
		}
		batch.Queue(query, p.Name, p.PhoneNumber, status, p.PhoneID)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	ids := make([]uuid.UUID, 0, len(params))
	for range params {
		var id uuid.UUID
		if err := results.QueryRow().Scan(&id); err != nil {
			return nil, fmt.Errorf("create lead batch: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// FindByPhoneExact returns the lead whose stored phone number equals the
// given value, or nil when there is none.
func (r *Repo) FindByPhoneExact(ctx context.Context, phoneNumber string) (*Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE phone_number = $1 LIMIT 1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, phoneNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find lead by phone: %w", err)
	}

	return &lead, nil
}

// SearchByPhoneFragment returns leads whose stored number contains the given
// digit fragment.
func (r *Repo) SearchByPhoneFragment(ctx context.Context, fragment string, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = 25
	}

	query := `SELECT ` + leadColumns + ` FROM leads WHERE phone_number LIKE '%' || $1 || '%' LIMIT $2`

	rows, err := r.pool.Query(ctx, query, fragment, limit)
	if err != nil {
		return nil, fmt.Errorf("search leads by phone fragment: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// SearchByName returns leads whose name loosely matches (case-insensitive
// substring).
func (r *Repo) SearchByName(ctx context.Context, name string, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = 25
	}

	query := `SELECT ` + leadColumns + ` FROM leads WHERE name ILIKE '%' || $1 || '%' LIMIT $2`

	rows, err := r.pool.Query(ctx, query, name, limit)
	if err != nil {
		return nil, fmt.Errorf("search leads by name: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// ListSample returns a bounded sample of leads for fuzzy phone scanning.
func (r *Repo) ListSample(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = 25
	}

	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list lead sample: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// UpdateOutcome applies a call outcome as a single overwrite keyed by ID.
// Returns false when the lead does not exist. Re-applying the same values is
// harmless; duplicate webhook deliveries are not deduplicated upstream.
func (r *Repo) UpdateOutcome(ctx context.Context, id uuid.UUID, status string, disposition *string, durationMin, cost float64) (bool, error) {
	query := `
		UPDATE leads
		SET status = $2, disposition = $3, duration = $4, cost = $5, updated_at = now()
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status, disposition, durationMin, cost)
	if err != nil {
		return false, fmt.Errorf("update lead outcome: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// UpdateStatusDisposition updates only status and disposition (dial path).
func (r *Repo) UpdateStatusDisposition(ctx context.Context, id uuid.UUID, status string, disposition *string) error {
	query := `UPDATE leads SET status = $2, disposition = $3, updated_at = now() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status, disposition)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}

	return nil
}

// ListActivePhoneIDs returns the provider resource IDs of the active
// caller-ID pool, in stable order for round-robin assignment.
func (r *Repo) ListActivePhoneIDs(ctx context.Context) ([]string, error) {
	query := `SELECT phone_number_id FROM phone_numbers WHERE active = true ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active phone ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan phone id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate phone ids: %w", err)
	}

	return ids, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (Lead, error) {
	var lead Lead
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&lead.ID, &lead.Name, &lead.PhoneNumber, &lead.Status, &lead.Disposition,
		&lead.Duration, &lead.Cost, &lead.PhoneID, &createdAt, &updatedAt,
	)
	if err != nil {
		return Lead{}, err
	}

	lead.CreatedAt = createdAt.Format(time.RFC3339)
	lead.UpdatedAt = updatedAt.Format(time.RFC3339)

	return lead, nil
}

func scanLeads(rows pgx.Rows) ([]Lead, error) {
	var results []Lead

	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		results = append(results, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}

	return results, nil
}
