// Package service implements campaign business logic: creation, lead
// linking, and snapshot aggregate computation.
package service

import (
	"context"

	"callcampaign_backend/internal/campaigns/repository"
	"callcampaign_backend/internal/campaigns/transport"
	"callcampaign_backend/platform/logger"

	"github.com/google/uuid"
)

// Service implements campaign operations.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new campaigns service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create creates a campaign and links the requested leads. Counters are a
// snapshot of the linked leads at this moment; later lead mutations do not
// flow back into them.
func (s *Service) Create(ctx context.Context, req transport.CreateCampaignRequest) (repository.Campaign, error) {
	campaign, err := s.repo.Create(ctx, req.Name, req.FileName)
	if err != nil {
		return repository.Campaign{}, err
	}

	if req.IncludeAllLeads {
		if _, err := s.repo.LinkAllLeads(ctx, campaign.ID); err != nil {
			return repository.Campaign{}, err
		}
	} else if len(req.LeadIDs) > 0 {
		if err := s.repo.LinkLeads(ctx, campaign.ID, req.LeadIDs); err != nil {
			return repository.Campaign{}, err
		}
	}

	if err := s.refreshSnapshot(ctx, campaign.ID); err != nil {
		return repository.Campaign{}, err
	}

	return s.repo.GetByID(ctx, campaign.ID)
}

// AddLeads links additional leads to an existing campaign and recomputes the
// snapshot once.
func (s *Service) AddLeads(ctx context.Context, campaignID uuid.UUID, leadIDs []uuid.UUID) (repository.Campaign, error) {
	if _, err := s.repo.GetByID(ctx, campaignID); err != nil {
		return repository.Campaign{}, err
	}

	if err := s.repo.LinkLeads(ctx, campaignID, leadIDs); err != nil {
		return repository.Campaign{}, err
	}

	if err := s.refreshSnapshot(ctx, campaignID); err != nil {
		return repository.Campaign{}, err
	}

	return s.repo.GetByID(ctx, campaignID)
}

// List retrieves all campaigns.
func (s *Service) List(ctx context.Context) ([]repository.Campaign, error) {
	return s.repo.List(ctx)
}

// GetWithLeads retrieves a campaign and its linked leads.
func (s *Service) GetWithLeads(ctx context.Context, id uuid.UUID) (transport.CampaignDetail, error) {
	campaign, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.CampaignDetail{}, err
	}

	leads, err := s.repo.ListLeads(ctx, id)
	if err != nil {
		return transport.CampaignDetail{}, err
	}

	return transport.CampaignDetail{Campaign: campaign, Leads: leads}, nil
}

// PendingLeadIDs returns linked leads that are still dialable.
func (s *Service) PendingLeadIDs(ctx context.Context, campaignID uuid.UUID) ([]uuid.UUID, error) {
	if _, err := s.repo.GetByID(ctx, campaignID); err != nil {
		return nil, err
	}
	return s.repo.ListPendingLeadIDs(ctx, campaignID)
}

func (s *Service) refreshSnapshot(ctx context.Context, campaignID uuid.UUID) error {
	agg, err := s.repo.ComputeAggregates(ctx, campaignID)
	if err != nil {
		return err
	}
	return s.repo.UpdateSnapshot(ctx, campaignID, agg, DeriveStatus(agg))
}

// DeriveStatus maps snapshot counters to a campaign status. Precedence:
// any lead in flight makes the whole campaign in-progress; otherwise any
// completion wins over failures; failures alone mean partial.
func DeriveStatus(agg repository.Aggregates) string {
	switch {
	case agg.InProgress > 0:
		return repository.StatusInProgress
	case agg.Completed > 0:
		return repository.StatusCompleted
	case agg.Failed > 0:
		return repository.StatusPartial
	default:
		return repository.StatusPending
	}
}
