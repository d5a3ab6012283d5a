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

const campaignNotFoundMessage = "campaign not found"

const campaignColumns = `id, name, file_name, status, leads_count, completed, in_progress, remaining, failed, duration, cost, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new campaigns repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts an empty campaign with zeroed snapshot counters.
func (r *Repo) Create(ctx context.Context, name string, fileName *string) (Campaign, error) {
	query := `
		INSERT INTO campaigns (name, file_name)
		VALUES ($1, $2)
		RETURNING ` + campaignColumns

	campaign, err := scanCampaign(r.pool.QueryRow(ctx, query, name, fileName))
	if err != nil {
		return Campaign{}, fmt.Errorf("create campaign: %w", err)
	}

	return campaign, nil
}

// GetByID retrieves a campaign by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

	campaign, err := scanCampaign(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Campaign{}, apperr.NotFound(campaignNotFoundMessage)
		}
		return Campaign{}, fmt.Errorf("get campaign by id: %w", err)
	}

	return campaign, nil
}

// List retrieves all campaigns, newest first.
func (r *Repo) List(ctx context.Context) ([]Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var results []Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		results = append(results, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaigns: %w", err)
	}

	return results, nil
}

// LinkLeads inserts campaign-lead links, ignoring duplicates.
func (r *Repo) LinkLeads(ctx context.Context, campaignID uuid.UUID, leadIDs []uuid.UUID) error {
	if len(leadIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO campaign_leads (campaign_id, lead_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	batch := &pgx.Batch{}
	for _, leadID := range leadIDs {
		batch.Queue(query, campaignID, leadID)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range leadIDs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("link campaign lead: %w", err)
		}
	}

	return nil
}

// LinkAllLeads links every currently unlinked lead to the campaign and
// returns how many links were created.
func (r *Repo) LinkAllLeads(ctx context.Context, campaignID uuid.UUID) (int, error) {
	query := `
		INSERT INTO campaign_leads (campaign_id, lead_id)
		SELECT $1, id FROM leads
		ON CONFLICT DO NOTHING`

	result, err := r.pool.Exec(ctx, query, campaignID)
	if err != nil {
		return 0, fmt.Errorf("link all leads: %w", err)
	}

	return int(result.RowsAffected()), nil
}

// ListLeads retrieves the leads linked to a campaign.
func (r *Repo) ListLeads(ctx context.Context, campaignID uuid.UUID) ([]CampaignLead, error) {
	query := `
		SELECT l.id, l.name, l.phone_number, l.status, l.disposition, l.duration, l.cost
		FROM leads l
		JOIN campaign_leads cl ON cl.lead_id = l.id
		WHERE cl.campaign_id = $1
		ORDER BY l.created_at ASC`

	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list campaign leads: %w", err)
	}
	defer rows.Close()

	var results []CampaignLead
	for rows.Next() {
		var cl CampaignLead
		if err := rows.Scan(&cl.ID, &cl.Name, &cl.PhoneNumber, &cl.Status, &cl.Disposition, &cl.Duration, &cl.Cost); err != nil {
			return nil, fmt.Errorf("scan campaign lead: %w", err)
		}
		results = append(results, cl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaign leads: %w", err)
	}

	return results, nil
}

// ListPendingLeadIDs returns the IDs of linked leads still in Pending state.
func (r *Repo) ListPendingLeadIDs(ctx context.Context, campaignID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT l.id
		FROM leads l
		JOIN campaign_leads cl ON cl.lead_id = l.id
		WHERE cl.campaign_id = $1 AND l.status = 'Pending'
		ORDER BY l.created_at ASC`

	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list pending campaign leads: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan pending lead id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending lead ids: %w", err)
	}

	return ids, nil
}

// ComputeAggregates computes the snapshot counters from the linked leads.
func (r *Repo) ComputeAggregates(ctx context.Context, campaignID uuid.UUID) (Aggregates, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE l.status = 'Completed'),
			COUNT(*) FILTER (WHERE l.status = 'In Progress'),
			COUNT(*) FILTER (WHERE l.status = 'Pending'),
			COUNT(*) FILTER (WHERE l.status = 'Failed'),
			COALESCE(SUM(l.duration), 0),
			COALESCE(SUM(l.cost), 0)
		FROM leads l
		JOIN campaign_leads cl ON cl.lead_id = l.id
		WHERE cl.campaign_id = $1`

	var agg Aggregates
	err := r.pool.QueryRow(ctx, query, campaignID).Scan(
		&agg.LeadsCount, &agg.Completed, &agg.InProgress, &agg.Remaining, &agg.Failed,
		&agg.Duration, &agg.Cost,
	)
	if err != nil {
		return Aggregates{}, fmt.Errorf("compute campaign aggregates: %w", err)
	}

	return agg, nil
}

// UpdateSnapshot overwrites the campaign's snapshot counters and status.
func (r *Repo) UpdateSnapshot(ctx context.Context, campaignID uuid.UUID, agg Aggregates, status string) error {
	query := `
		UPDATE campaigns
		SET status = $2, leads_count = $3, completed = $4, in_progress = $5,
			remaining = $6, failed = $7, duration = $8, cost = $9, updated_at = now()
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, campaignID, status,
		agg.LeadsCount, agg.Completed, agg.InProgress, agg.Remaining, agg.Failed,
		agg.Duration, agg.Cost,
	)
	if err != nil {
		return fmt.Errorf("update campaign snapshot: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(campaignNotFoundMessage)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCampaign(row rowScanner) (Campaign, error) {
	var c Campaign
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&c.ID, &c.Name, &c.FileName, &c.Status, &c.LeadsCount, &c.Completed,
		&c.InProgress, &c.Remaining, &c.Failed, &c.Duration, &c.Cost,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return Campaign{}, err
	}

	c.CreatedAt = createdAt.Format(time.RFC3339)
	c.UpdatedAt = updatedAt.Format(time.RFC3339)

	return c, nil
}
