package webhook

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"callcampaign_backend/platform/logger"

	"github.com/google/uuid"
)

// fakeLeadStore is an in-memory LeadStore shared by the webhook tests.
type fakeLeadStore struct {
	mu    sync.Mutex
	leads []LeadRef

	failAll   bool
	updateErr error

	updates []outcomeUpdate
}

type outcomeUpdate struct {
	id          uuid.UUID
	status      string
	disposition string
	durationMin float64
	cost        float64
}

func (f *fakeLeadStore) FindByPhoneExact(_ context.Context, phoneNumber string) (*LeadRef, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	for i := range f.leads {
		if f.leads[i].PhoneNumber == phoneNumber {
			ref := f.leads[i]
			return &ref, nil
		}
	}
	return nil, nil
}

func (f *fakeLeadStore) SearchByPhoneFragment(_ context.Context, fragment string, limit int) ([]LeadRef, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	var out []LeadRef
	for i := range f.leads {
		if strings.Contains(f.leads[i].PhoneNumber, fragment) {
			out = append(out, f.leads[i])
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeLeadStore) SearchByName(_ context.Context, name string, limit int) ([]LeadRef, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	var out []LeadRef
	for i := range f.leads {
		if strings.EqualFold(f.leads[i].Name, name) {
			out = append(out, f.leads[i])
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeLeadStore) ListSample(_ context.Context, limit int) ([]LeadRef, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	if len(f.leads) <= limit {
		return f.leads, nil
	}
	return f.leads[:limit], nil
}

func (f *fakeLeadStore) UpdateOutcome(_ context.Context, id uuid.UUID, status string, disposition *string, durationMin, cost float64) (bool, error) {
	if f.updateErr != nil {
		return false, f.updateErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.leads {
		if f.leads[i].ID == id {
			d := ""
			if disposition != nil {
				d = *disposition
			}
			f.updates = append(f.updates, outcomeUpdate{id: id, status: status, disposition: d, durationMin: durationMin, cost: cost})
			return true, nil
		}
	}
	return false, nil
}

func testLogger() *logger.Logger {
	return logger.New("production")
}

func TestResolveContactIDShortCircuits(t *testing.T) {
	id := uuid.New()
	store := &fakeLeadStore{failAll: true} // any store call would error
	r := NewResolver(store, testLogger())

	got := r.Resolve(context.Background(), id.String(), "+15551234567", "Jane")
	if got == nil || *got != id {
		t.Fatalf("Resolve = %v, want %s", got, id)
	}
}

func TestResolveExactPhone(t *testing.T) {
	lead := LeadRef{ID: uuid.New(), Name: "Jane Doe", PhoneNumber: "+15551234567"}
	decoy := LeadRef{ID: uuid.New(), Name: "John Roe", PhoneNumber: "+15559876543"}
	store := &fakeLeadStore{leads: []LeadRef{decoy, lead}}
	r := NewResolver(store, testLogger())

	got := r.Resolve(context.Background(), "", "+15551234567", "")
	if got == nil || *got != lead.ID {
		t.Fatalf("Resolve = %v, want %s", got, lead.ID)
	}
}

func TestResolveFragmentFallback(t *testing.T) {
	// Stored without the country prefix, so exact lookup misses but the
	// last-10-digit fragment search hits.
	lead := LeadRef{ID: uuid.New(), Name: "Jane Doe", PhoneNumber: "5551234567"}
	store := &fakeLeadStore{leads: []LeadRef{lead}}
	r := NewResolver(store, testLogger())

	got := r.Resolve(context.Background(), "", "+15551234567", "")
	if got == nil || *got != lead.ID {
		t.Fatalf("Resolve = %v, want %s", got, lead.ID)
	}
}

func TestResolveSuffixScan(t *testing.T) {
	// Stored number is shorter than ten digits; only the bidirectional
	// suffix scan can match it.
	lead := LeadRef{ID: uuid.New(), Name: "Jane Doe", PhoneNumber: "234567"}
	store := &fakeLeadStore{leads: []LeadRef{lead}}
	r := NewResolver(store, testLogger())

	got := r.Resolve(context.Background(), "", "+15551234567", "")
	if got == nil || *got != lead.ID {
		t.Fatalf("Resolve = %v, want %s", got, lead.ID)
	}
}

func TestResolveByNameWithLastFourDigits(t *testing.T) {
	match := LeadRef{ID: uuid.New(), Name: "Jane Doe", PhoneNumber: "+1 (222) 000-4567"}
	sameName := LeadRef{ID: uuid.New(), Name: "Jane Doe", PhoneNumber: "+12220009999"}
	store := &fakeLeadStore{leads: []LeadRef{sameName, match}}
	r := NewResolver(store, testLogger())

	// The webhook phone shares no ten-digit overlap with either stored
	// number, so phone resolution fails and name+last4 decides.
	got := r.Resolve(context.Background(), "", "+19998884567", "Jane Doe")
	if got == nil || *got != match.ID {
		t.Fatalf("Resolve = %v, want %s", got, match.ID)
	}
}

func TestResolveInvalidContactIDFallsThrough(t *testing.T) {
	lead := LeadRef{ID: uuid.New(), Name: "Jane Doe", PhoneNumber: "+15551234567"}
	store := &fakeLeadStore{leads: []LeadRef{lead}}
	r := NewResolver(store, testLogger())

	got := r.Resolve(context.Background(), "not-a-uuid", "+15551234567", "")
	if got == nil || *got != lead.ID {
		t.Fatalf("Resolve = %v, want %s", got, lead.ID)
	}
}

func TestResolveNoMatch(t *testing.T) {
	store := &fakeLeadStore{leads: []LeadRef{{ID: uuid.New(), Name: "John Roe", PhoneNumber: "+15550000000"}}}
	r := NewResolver(store, testLogger())

	if got := r.Resolve(context.Background(), "", "+19991234567", "Jane Doe"); got != nil {
		t.Fatalf("Resolve = %v, want nil", got)
	}
}

func TestResolveStoreErrorsTreatedAsNoMatch(t *testing.T) {
	store := &fakeLeadStore{failAll: true}
	r := NewResolver(store, testLogger())

	if got := r.Resolve(context.Background(), "", "+15551234567", "Jane Doe"); got != nil {
		t.Fatalf("Resolve = %v, want nil when every lookup errors", got)
	}
}
