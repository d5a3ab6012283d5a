// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"callcampaign_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadsImported is published after a CSV import finishes.
type LeadsImported struct {
	BaseEvent
	ImportID     uuid.UUID `json:"importId"`
	FileName     string    `json:"fileName"`
	Imported     int       `json:"imported"`
	Skipped      int       `json:"skipped"`
	ArchiveKey   string    `json:"archiveKey,omitempty"`
	ErrorSamples []string  `json:"errorSamples,omitempty"`
}

func (e LeadsImported) EventName() string { return "leads.imported" }

// =============================================================================
// Dialer Domain Events
// =============================================================================

// CallDispatched is published when an outbound call request is accepted by
// the voice provider.
type CallDispatched struct {
	BaseEvent
	LeadID     uuid.UUID  `json:"leadId"`
	CampaignID *uuid.UUID `json:"campaignId,omitempty"`
	Phone      string     `json:"phone"`
	CallID     string     `json:"callId,omitempty"`
}

func (e CallDispatched) EventName() string { return "dialer.call.dispatched" }

// CallDispatchFailed is published when the voice provider rejects a call
// request. The lead has already been marked Failed by the time this fires.
type CallDispatchFailed struct {
	BaseEvent
	LeadID     uuid.UUID  `json:"leadId"`
	CampaignID *uuid.UUID `json:"campaignId,omitempty"`
	Phone      string     `json:"phone"`
	Reason     string     `json:"reason"`
}

func (e CallDispatchFailed) EventName() string { return "dialer.call.dispatch_failed" }

// =============================================================================
// Webhook Domain Events
// =============================================================================

// CallCompleted is published after a provider webhook has been resolved to a
// lead and the outcome persisted.
type CallCompleted struct {
	BaseEvent
	LeadID      uuid.UUID `json:"leadId"`
	Status      string    `json:"status"`
	Disposition string    `json:"disposition"`
	DurationMin float64   `json:"durationMin"`
	CostDollars float64   `json:"costDollars"`
}

func (e CallCompleted) EventName() string { return "webhook.call.completed" }

// LeadUnresolved is published when a provider webhook could not be matched to
// any lead. The payload was acknowledged and dropped; this event is the only
// trace of it, so handlers should make it visible to operators.
type LeadUnresolved struct {
	BaseEvent
	ContactID  string `json:"contactId,omitempty"`
	Phone      string `json:"phone,omitempty"`
	EndReason  string `json:"endReason,omitempty"`
	RawPreview string `json:"rawPreview,omitempty"`
}

func (e LeadUnresolved) EventName() string { return "webhook.lead.unresolved" }
