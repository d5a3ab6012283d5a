// Package repository provides persistence for leads and the outbound
// caller-ID pool.
package repository

import (
	"context"

	"github.com/google/uuid"
)

// Lead statuses. A lead is callable only while Pending.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusFailed     = "Failed"
)

// Lead is a single calling target.
type Lead struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	Status      string    `json:"status"`
	Disposition *string   `json:"disposition"`
	Duration    float64   `json:"duration"` // minutes
	Cost        float64   `json:"cost"`
	PhoneID     *string   `json:"phoneId"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

// PhoneNumber is a pooled outbound caller-ID resource.
type PhoneNumber struct {
	ID            uuid.UUID `json:"id"`
	PhoneNumberID string    `json:"phoneNumberId"`
	Label         string    `json:"label"`
	Active        bool      `json:"active"`
}

// CreateParams holds the fields needed to insert a lead.
type CreateParams struct {
	Name        string
	PhoneNumber string
	PhoneID     *string
	Status      string
}

// ListParams filters and bounds lead listings.
type ListParams struct {
	Status string
	Limit  int
	Offset int
}

// Repository is the persistence contract for leads.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
	Create(ctx context.Context, params CreateParams) (Lead, error)
	CreateBatch(ctx context.Context, params []CreateParams) ([]uuid.UUID, error)

	FindByPhoneExact(ctx context.Context, phone string) (*Lead, error)
	SearchByPhoneFragment(ctx context.Context, fragment string, limit int) ([]Lead, error)
	SearchByName(ctx context.Context, name string, limit int) ([]Lead, error)
	ListSample(ctx context.Context, limit int) ([]Lead, error)

	UpdateOutcome(ctx context.Context, id uuid.UUID, status string, disposition *string, durationMin, cost float64) (bool, error)
	UpdateStatusDisposition(ctx context.Context, id uuid.UUID, status string, disposition *string) error

	ListActivePhoneIDs(ctx context.Context) ([]string, error)
}
