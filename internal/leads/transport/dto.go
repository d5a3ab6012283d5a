// Package transport defines request/response DTOs for the leads module.
package transport

import (
	"callcampaign_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// CreateLeadRequest creates a single lead.
type CreateLeadRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	PhoneNumber string `json:"phoneNumber" validate:"required,max=30"`
}

// ListLeadsRequest filters the lead listing.
type ListLeadsRequest struct {
	Status string `form:"status"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// ListLeadsResponse is the lead listing payload.
type ListLeadsResponse struct {
	Leads []repository.Lead `json:"leads"`
	Total int               `json:"total"`
}

// ImportResult summarizes a CSV import.
type ImportResult struct {
	ImportID uuid.UUID   `json:"importId"`
	Imported int         `json:"imported"`
	Skipped  int         `json:"skipped"`
	LeadIDs  []uuid.UUID `json:"leadIds"`
	Errors   []string    `json:"errors,omitempty"`
}
