package webhook

import (
	"context"

	"callcampaign_backend/internal/events"
	"callcampaign_backend/platform/logger"
)

// Lead statuses written by the committer.
const (
	statusCompleted = "Completed"
	statusFailed    = "Failed"
)

// failureEndReasons are end reasons meaning the call never meaningfully
// connected; absent an explicit success evaluation they imply Failed.
var failureEndReasons = map[string]bool{
	"failed":     true,
	"error":      true,
	"no_answer":  true,
	"unanswered": true,
	"user_busy":  true,
	"busy":       true,
	"timeout":    true,
}

// Ack is the body returned for every webhook delivery. The HTTP status is
// always 200; only Success and Message distinguish outcomes, so the provider
// never sees a retry-triggering response.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Service orchestrates the webhook pipeline: parse, classify, resolve,
// commit, acknowledge.
type Service struct {
	store    LeadStore
	resolver *Resolver
	bus      events.Bus
	log      *logger.Logger
}

// NewService creates the webhook service.
func NewService(store LeadStore, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		resolver: NewResolver(store, log),
		bus:      bus,
		log:      log,
	}
}

// Process runs one delivery through the pipeline. It never returns an
// error: every failure terminates in an Ack describing what happened.
func (s *Service) Process(ctx context.Context, raw []byte) Ack {
	ext, err := Extract(raw)
	if err != nil {
		s.log.WebhookEvent("parse_failed", "", err.Error())
		return Ack{Success: false, Message: "invalid payload", Error: err.Error()}
	}

	disposition := Classify(ext.EndReason, ext.Summary, ext.Transcript)
	durationMin, cost := CallCost(ext.DurationSeconds)
	status := outcomeStatus(ext)

	leadID := s.resolver.Resolve(ctx, ext.ContactID, ext.PhoneNumber, ext.CustomerName)
	if leadID == nil {
		s.log.WebhookEvent("unresolved", "", "no identifier matched any lead")
		s.bus.Publish(ctx, events.LeadUnresolved{
			BaseEvent:  events.NewBaseEvent(),
			ContactID:  ext.ContactID,
			Phone:      ext.PhoneNumber,
			EndReason:  ext.EndReason,
			RawPreview: preview(raw),
		})
		return Ack{Success: false, Message: "no matching lead found"}
	}

	found, err := s.store.UpdateOutcome(ctx, *leadID, status, &disposition, durationMin, cost)
	if err != nil {
		s.log.DatabaseError("webhook outcome commit", err)
		return Ack{Success: false, Message: "failed to update lead", Error: err.Error()}
	}
	if !found {
		s.log.WebhookEvent("commit_missed", leadID.String(), "lead no longer exists")
		return Ack{Success: false, Message: "lead not found"}
	}

	s.log.WebhookEvent("committed", leadID.String(), disposition)
	s.bus.Publish(ctx, events.CallCompleted{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      *leadID,
		Status:      status,
		Disposition: disposition,
		DurationMin: durationMin,
		CostDollars: cost,
	})

	return Ack{
		Success: true,
		Message: "lead updated",
		Data: map[string]any{
			"leadId":      leadID.String(),
			"status":      status,
			"disposition": disposition,
			"duration":    durationMin,
			"cost":        cost,
		},
	}
}

// outcomeStatus derives the terminal lead status. An explicit success
// evaluation from the provider is authoritative; otherwise a connected call
// is Completed and a failure end reason is Failed.
func outcomeStatus(ext Extracted) string {
	if ext.Success != nil {
		if *ext.Success {
			return statusCompleted
		}
		return statusFailed
	}

	if failureEndReasons[normalizeReason(ext.EndReason)] {
		return statusFailed
	}
	return statusCompleted
}

func normalizeReason(reason string) string {
	out := make([]rune, 0, len(reason))
	for _, r := range reason {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

// preview truncates the raw body for the unresolved-lead event.
func preview(raw []byte) string {
	const max = 512
	if len(raw) <= max {
		return string(raw)
	}
	return string(raw[:max])
}
