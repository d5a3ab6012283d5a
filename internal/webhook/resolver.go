package webhook

import (
	"context"

	"callcampaign_backend/platform/logger"
	"callcampaign_backend/platform/phone"

	"github.com/google/uuid"
)

// scanLimit bounds the fuzzy phone scan; resolution beyond this sample is
// not attempted.
const scanLimit = 25

// LeadRef is the resolver's view of a stored lead.
type LeadRef struct {
	ID          uuid.UUID
	Name        string
	PhoneNumber string
}

// LeadStore is the lead persistence surface the webhook pipeline consumes.
// It is injected once and shared by the resolver and the committer.
type LeadStore interface {
	FindByPhoneExact(ctx context.Context, phoneNumber string) (*LeadRef, error)
	SearchByPhoneFragment(ctx context.Context, fragment string, limit int) ([]LeadRef, error)
	SearchByName(ctx context.Context, name string, limit int) ([]LeadRef, error)
	ListSample(ctx context.Context, limit int) ([]LeadRef, error)
	UpdateOutcome(ctx context.Context, id uuid.UUID, status string, disposition *string, durationMin, cost float64) (bool, error)
}

// Resolver maps extracted identifiers to a stored lead ID using
// progressively fuzzier strategies. Every strategy is best-effort: store
// errors are logged and treated as no-match, never escalated.
type Resolver struct {
	store LeadStore
	log   *logger.Logger
}

// NewResolver creates a resolver over the given store.
func NewResolver(store LeadStore, log *logger.Logger) *Resolver {
	return &Resolver{store: store, log: log}
}

// Resolve returns the target lead ID or nil. Strategy order, stopping at the
// first match:
//  1. contactId taken directly (existence is verified by the committer);
//  2. exact phone match, then last-10-digit substring match, then a bounded
//     scan comparing digit suffixes both ways;
//  3. loose name match narrowed by the last four phone digits;
//  4. nil.
func (r *Resolver) Resolve(ctx context.Context, contactID, phoneNumber, customerName string) *uuid.UUID {
	if contactID != "" {
		if id, err := uuid.Parse(contactID); err == nil {
			return &id
		}
		r.log.WebhookEvent("resolve", "", "contactId is not a valid lead id: "+contactID)
	}

	if phoneNumber != "" {
		if id := r.resolveByPhone(ctx, phoneNumber); id != nil {
			return id
		}
	}

	if customerName != "" && phoneNumber != "" {
		if id := r.resolveByName(ctx, customerName, phoneNumber); id != nil {
			return id
		}
	}

	return nil
}

func (r *Resolver) resolveByPhone(ctx context.Context, phoneNumber string) *uuid.UUID {
	exact, err := r.store.FindByPhoneExact(ctx, phoneNumber)
	if err != nil {
		r.log.DatabaseError("webhook exact phone lookup", err)
	} else if exact != nil {
		return &exact.ID
	}

	last10 := phone.LastN(phoneNumber, 10)
	if last10 != "" {
		matches, err := r.store.SearchByPhoneFragment(ctx, last10, scanLimit)
		if err != nil {
			r.log.DatabaseError("webhook phone fragment lookup", err)
		} else if len(matches) > 0 {
			return &matches[0].ID
		}
	}

	sample, err := r.store.ListSample(ctx, scanLimit)
	if err != nil {
		r.log.DatabaseError("webhook lead sample scan", err)
		return nil
	}
	for i := range sample {
		if phone.SuffixMatch(sample[i].PhoneNumber, phoneNumber) {
			return &sample[i].ID
		}
	}

	return nil
}

func (r *Resolver) resolveByName(ctx context.Context, customerName, phoneNumber string) *uuid.UUID {
	last4 := phone.LastN(phoneNumber, 4)
	if last4 == "" {
		return nil
	}

	matches, err := r.store.SearchByName(ctx, customerName, scanLimit)
	if err != nil {
		r.log.DatabaseError("webhook name lookup", err)
		return nil
	}

	for i := range matches {
		if phone.LastN(matches[i].PhoneNumber, 4) == last4 {
			return &matches[i].ID
		}
	}

	return nil
}
