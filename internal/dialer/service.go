// Package dialer provides the outbound call bounded context: call
// triggering, the Vapi client, and the asynq-backed campaign dial queue.
package dialer

import (
	"context"
	"fmt"

	"callcampaign_backend/internal/dialer/vapi"
	"callcampaign_backend/internal/events"
	"callcampaign_backend/platform/apperr"
	"callcampaign_backend/platform/logger"

	"github.com/google/uuid"
)

// Lead statuses as the dialer sees them.
const (
	statusPending    = "Pending"
	statusInProgress = "In Progress"
	statusFailed     = "Failed"
)

const dispositionCallInitiated = "Call initiated"

// Lead is the dialer's view of a calling target.
type Lead struct {
	ID          uuid.UUID
	Name        string
	PhoneNumber string
	Status      string
	PhoneID     *string
}

// LeadStore is the lead persistence surface the dialer consumes.
type LeadStore interface {
	GetLead(ctx context.Context, id uuid.UUID) (Lead, error)
	SetCallState(ctx context.Context, id uuid.UUID, status string, disposition *string) error
}

// CallPlacer places calls with the voice provider.
type CallPlacer interface {
	PlaceCall(ctx context.Context, req vapi.CallRequest) (vapi.CallResponse, error)
}

// Service implements call triggering.
type Service struct {
	store  LeadStore
	placer CallPlacer
	bus    events.Bus
	log    *logger.Logger
}

// NewService creates a new dialer service.
func NewService(store LeadStore, placer CallPlacer, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, placer: placer, bus: bus, log: log}
}

// TriggerCall validates that a lead is callable and dispatches the call.
// Preconditions, in order: the lead exists, it has an assigned caller ID,
// and it is still Pending. A provider rejection marks the lead Failed with
// the provider's message and returns the error to the caller.
func (s *Service) TriggerCall(ctx context.Context, leadID uuid.UUID) (vapi.CallResponse, error) {
	lead, err := s.store.GetLead(ctx, leadID)
	if err != nil {
		return vapi.CallResponse{}, err
	}

	if lead.PhoneID == nil || *lead.PhoneID == "" {
		return vapi.CallResponse{}, apperr.BadRequest("lead has no assigned phone number")
	}

	if lead.Status != statusPending {
		return vapi.CallResponse{}, apperr.BadRequest(fmt.Sprintf("lead already has status %s", lead.Status))
	}

	resp, err := s.placer.PlaceCall(ctx, vapi.CallRequest{
		ContactID:     lead.ID.String(),
		Name:          lead.Name,
		Phone:         lead.PhoneNumber,
		PhoneNumberID: *lead.PhoneID,
	})
	if err != nil {
		disposition := "API Error: " + apperrMessage(err)
		if stateErr := s.store.SetCallState(ctx, lead.ID, statusFailed, &disposition); stateErr != nil {
			s.log.DatabaseError("mark lead failed", stateErr)
		}

		s.bus.Publish(ctx, events.CallDispatchFailed{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    lead.ID,
			Phone:     lead.PhoneNumber,
			Reason:    apperrMessage(err),
		})
		s.log.DialEvent("call_dispatch", lead.ID.String(), false, apperrMessage(err))

		return vapi.CallResponse{}, err
	}

	disposition := dispositionCallInitiated
	if err := s.store.SetCallState(ctx, lead.ID, statusInProgress, &disposition); err != nil {
		// The call is already in flight; the webhook overwrite will settle
		// the final state regardless.
		s.log.DatabaseError("mark lead in progress", err)
	}

	s.bus.Publish(ctx, events.CallDispatched{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Phone:     lead.PhoneNumber,
		CallID:    resp.ID,
	})
	s.log.DialEvent("call_dispatch", lead.ID.String(), true, "")

	return resp, nil
}

func apperrMessage(err error) string {
	if e, ok := err.(*apperr.Error); ok {
		return e.Message
	}
	return err.Error()
}
