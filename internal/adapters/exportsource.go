package adapters

import (
	"context"

	campaignrepo "callcampaign_backend/internal/campaigns/repository"
	"callcampaign_backend/internal/exports"
	leadrepo "callcampaign_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// exportPageSize bounds each repository page while draining all leads.
const exportPageSize = 500

// ExportSource adapts the lead and campaign repositories for exports.
type ExportSource struct {
	leads     leadrepo.Repository
	campaigns campaignrepo.Repository
}

// NewExportSource creates the exports-facing adapter.
func NewExportSource(leads leadrepo.Repository, campaigns campaignrepo.Repository) *ExportSource {
	return &ExportSource{leads: leads, campaigns: campaigns}
}

var _ exports.LeadSource = (*ExportSource)(nil)

func (s *ExportSource) AllLeads(ctx context.Context) ([]exports.Row, error) {
	var rows []exports.Row
	for offset := 0; ; offset += exportPageSize {
		page, total, err := s.leads.List(ctx, leadrepo.ListParams{Limit: exportPageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		for i := range page {
			rows = append(rows, exports.Row{
				Name:        page[i].Name,
				PhoneNumber: page[i].PhoneNumber,
				Status:      page[i].Status,
				Disposition: derefOrEmpty(page[i].Disposition),
				DurationMin: page[i].Duration,
				Cost:        page[i].Cost,
			})
		}
		if len(page) == 0 || len(rows) >= total {
			return rows, nil
		}
	}
}

func (s *ExportSource) CampaignLeads(ctx context.Context, campaignID uuid.UUID) (string, []exports.Row, error) {
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return "", nil, err
	}

	leads, err := s.campaigns.ListLeads(ctx, campaignID)
	if err != nil {
		return "", nil, err
	}

	rows := make([]exports.Row, 0, len(leads))
	for i := range leads {
		rows = append(rows, exports.Row{
			Name:        leads[i].Name,
			PhoneNumber: leads[i].PhoneNumber,
			Status:      leads[i].Status,
			Disposition: derefOrEmpty(leads[i].Disposition),
			DurationMin: leads[i].Duration,
			Cost:        leads[i].Cost,
		})
	}

	return campaign.Name, rows, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
