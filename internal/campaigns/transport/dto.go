// Package transport defines request/response DTOs for the campaigns module.
package transport

import (
	"callcampaign_backend/internal/campaigns/repository"

	"github.com/google/uuid"
)

// CreateCampaignRequest creates a campaign. LeadIDs links specific leads;
// IncludeAllLeads links every current lead instead.
type CreateCampaignRequest struct {
	Name            string      `json:"name" validate:"required,max=200"`
	FileName        *string     `json:"fileName" validate:"omitempty,max=255"`
	LeadIDs         []uuid.UUID `json:"leadIds"`
	IncludeAllLeads bool        `json:"includeAllLeads"`
}

// AddLeadsRequest links leads to an existing campaign.
type AddLeadsRequest struct {
	LeadIDs []uuid.UUID `json:"leadIds" validate:"required,min=1"`
}

// CampaignDetail is a campaign with its linked leads.
type CampaignDetail struct {
	Campaign repository.Campaign       `json:"campaign"`
	Leads    []repository.CampaignLead `json:"leads"`
}
