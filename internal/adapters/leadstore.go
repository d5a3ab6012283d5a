// Package adapters bridges the leads repository to the narrow store
// interfaces the dialer and webhook contexts consume, keeping those
// contexts free of repository types.
package adapters

import (
	"context"

	"callcampaign_backend/internal/dialer"
	"callcampaign_backend/internal/leads/repository"
	"callcampaign_backend/internal/webhook"

	"github.com/google/uuid"
)

// DialerLeadStore adapts the leads repository for the dialer.
type DialerLeadStore struct {
	repo repository.Repository
}

// NewDialerLeadStore creates the dialer-facing adapter.
func NewDialerLeadStore(repo repository.Repository) *DialerLeadStore {
	return &DialerLeadStore{repo: repo}
}

var _ dialer.LeadStore = (*DialerLeadStore)(nil)

func (a *DialerLeadStore) GetLead(ctx context.Context, id uuid.UUID) (dialer.Lead, error) {
	lead, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return dialer.Lead{}, err
	}
	return dialer.Lead{
		ID:          lead.ID,
		Name:        lead.Name,
		PhoneNumber: lead.PhoneNumber,
		Status:      lead.Status,
		PhoneID:     lead.PhoneID,
	}, nil
}

func (a *DialerLeadStore) SetCallState(ctx context.Context, id uuid.UUID, status string, disposition *string) error {
	return a.repo.UpdateStatusDisposition(ctx, id, status, disposition)
}

// WebhookLeadStore adapts the leads repository for the webhook pipeline.
type WebhookLeadStore struct {
	repo repository.Repository
}

// NewWebhookLeadStore creates the webhook-facing adapter.
func NewWebhookLeadStore(repo repository.Repository) *WebhookLeadStore {
	return &WebhookLeadStore{repo: repo}
}

var _ webhook.LeadStore = (*WebhookLeadStore)(nil)

func (a *WebhookLeadStore) FindByPhoneExact(ctx context.Context, phoneNumber string) (*webhook.LeadRef, error) {
	lead, err := a.repo.FindByPhoneExact(ctx, phoneNumber)
	if err != nil || lead == nil {
		return nil, err
	}
	ref := toLeadRef(*lead)
	return &ref, nil
}

func (a *WebhookLeadStore) SearchByPhoneFragment(ctx context.Context, fragment string, limit int) ([]webhook.LeadRef, error) {
	leads, err := a.repo.SearchByPhoneFragment(ctx, fragment, limit)
	if err != nil {
		return nil, err
	}
	return toLeadRefs(leads), nil
}

func (a *WebhookLeadStore) SearchByName(ctx context.Context, name string, limit int) ([]webhook.LeadRef, error) {
	leads, err := a.repo.SearchByName(ctx, name, limit)
	if err != nil {
		return nil, err
	}
	return toLeadRefs(leads), nil
}

func (a *WebhookLeadStore) ListSample(ctx context.Context, limit int) ([]webhook.LeadRef, error) {
	leads, err := a.repo.ListSample(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toLeadRefs(leads), nil
}

func (a *WebhookLeadStore) UpdateOutcome(ctx context.Context, id uuid.UUID, status string, disposition *string, durationMin, cost float64) (bool, error) {
	return a.repo.UpdateOutcome(ctx, id, status, disposition, durationMin, cost)
}

func toLeadRef(lead repository.Lead) webhook.LeadRef {
	return webhook.LeadRef{ID: lead.ID, Name: lead.Name, PhoneNumber: lead.PhoneNumber}
}

func toLeadRefs(leads []repository.Lead) []webhook.LeadRef {
	refs := make([]webhook.LeadRef, len(leads))
	for i := range leads {
		refs[i] = toLeadRef(leads[i])
	}
	return refs
}
