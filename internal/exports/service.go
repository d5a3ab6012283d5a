package exports

import (
	"context"

	"github.com/google/uuid"
)

// LeadSource supplies the rows behind the export endpoints.
type LeadSource interface {
	// AllLeads returns every lead, newest first.
	AllLeads(ctx context.Context) ([]Row, error)
	// CampaignLeads returns the campaign's display name and its linked
	// leads. A missing campaign surfaces as a NotFound error.
	CampaignLeads(ctx context.Context, campaignID uuid.UUID) (string, []Row, error)
}

// Service assembles export downloads.
type Service struct {
	source LeadSource
}

// NewService creates the exports service.
func NewService(source LeadSource) *Service {
	return &Service{source: source}
}

// Leads returns all leads as export rows.
func (s *Service) Leads(ctx context.Context) ([]Row, error) {
	return s.source.AllLeads(ctx)
}

// CampaignLeads returns a campaign's leads plus its name for the filename.
func (s *Service) CampaignLeads(ctx context.Context, campaignID uuid.UUID) (string, []Row, error) {
	return s.source.CampaignLeads(ctx, campaignID)
}
