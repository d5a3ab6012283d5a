// Package repository provides persistence for campaigns and their lead links.
package repository

import (
	"context"

	"github.com/google/uuid"
)

// Campaign statuses derived from the lead snapshot at creation/update time.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusPartial    = "partial"
)

// Campaign is a named grouping of leads with snapshot aggregate counters.
// Counters reflect the linked leads at the time the snapshot was last
// computed; they are not reconciled when lead state changes afterwards.
type Campaign struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	FileName   *string   `json:"fileName"`
	Status     string    `json:"status"`
	LeadsCount int       `json:"leadsCount"`
	Completed  int       `json:"completed"`
	InProgress int       `json:"inProgress"`
	Remaining  int       `json:"remaining"`
	Failed     int       `json:"failed"`
	Duration   float64   `json:"duration"` // minutes
	Cost       float64   `json:"cost"`
	CreatedAt  string    `json:"createdAt"`
	UpdatedAt  string    `json:"updatedAt"`
}

// CampaignLead is a lead row as seen through a campaign link.
type CampaignLead struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	Status      string    `json:"status"`
	Disposition *string   `json:"disposition"`
	Duration    float64   `json:"duration"`
	Cost        float64   `json:"cost"`
}

// Aggregates holds the computed snapshot counters for a campaign.
type Aggregates struct {
	LeadsCount int
	Completed  int
	InProgress int
	Remaining  int
	Failed     int
	Duration   float64
	Cost       float64
}

// Repository is the persistence contract for campaigns.
type Repository interface {
	Create(ctx context.Context, name string, fileName *string) (Campaign, error)
	GetByID(ctx context.Context, id uuid.UUID) (Campaign, error)
	List(ctx context.Context) ([]Campaign, error)

	LinkLeads(ctx context.Context, campaignID uuid.UUID, leadIDs []uuid.UUID) error
	LinkAllLeads(ctx context.Context, campaignID uuid.UUID) (int, error)
	ListLeads(ctx context.Context, campaignID uuid.UUID) ([]CampaignLead, error)
	ListPendingLeadIDs(ctx context.Context, campaignID uuid.UUID) ([]uuid.UUID, error)

	ComputeAggregates(ctx context.Context, campaignID uuid.UUID) (Aggregates, error)
	UpdateSnapshot(ctx context.Context, campaignID uuid.UUID, agg Aggregates, status string) error
}
