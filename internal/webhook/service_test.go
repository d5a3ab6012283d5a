package webhook

import (
	"context"
	"errors"
	"sync"
	"testing"

	"callcampaign_backend/internal/events"

	"github.com/google/uuid"
)

// captureBus records published events without dispatching them.
type captureBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (b *captureBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
}

func (b *captureBus) PublishSync(_ context.Context, event events.Event) error {
	b.Publish(context.Background(), event)
	return nil
}

func (b *captureBus) Subscribe(string, events.Handler) {}

func (b *captureBus) names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.published))
	for _, e := range b.published {
		out = append(out, e.EventName())
	}
	return out
}

func TestProcessCompletedCall(t *testing.T) {
	lead := LeadRef{ID: uuid.New(), Name: "Jane Doe", PhoneNumber: "+15551234567"}
	store := &fakeLeadStore{leads: []LeadRef{lead}}
	bus := &captureBus{}
	svc := NewService(store, bus, testLogger())

	body := `{
		"message": {
			"endedReason": "assistant_hung_up",
			"durationSeconds": 125,
			"customer": {"number": "+15551234567", "name": "Jane Doe"},
			"analysis": {"summary": "Customer booked an appointment for Tuesday", "successEvaluation": true},
			"artifact": {"assistantOverrides": {"metadata": {"contactId": "` + lead.ID.String() + `"}}}
		}
	}`

	ack := svc.Process(context.Background(), []byte(body))
	if !ack.Success {
		t.Fatalf("ack = %+v, want success", ack)
	}

	if len(store.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(store.updates))
	}
	up := store.updates[0]
	if up.id != lead.ID {
		t.Errorf("updated lead = %s, want %s", up.id, lead.ID)
	}
	if up.status != statusCompleted {
		t.Errorf("status = %q, want %q", up.status, statusCompleted)
	}
	if up.disposition != DispositionInterested {
		t.Errorf("disposition = %q, want %q", up.disposition, DispositionInterested)
	}
	if up.durationMin != 2.0833 {
		t.Errorf("durationMin = %v, want 2.0833", up.durationMin)
	}
	if up.cost != 2.06 {
		t.Errorf("cost = %v, want 2.06", up.cost)
	}

	names := bus.names()
	if len(names) != 1 || names[0] != "webhook.call.completed" {
		t.Errorf("published = %v, want [webhook.call.completed]", names)
	}
}

func TestProcessFailedCallWithoutEvaluation(t *testing.T) {
	lead := LeadRef{ID: uuid.New(), Name: "Jane Doe", PhoneNumber: "+15551234567"}
	store := &fakeLeadStore{leads: []LeadRef{lead}}
	svc := NewService(store, &captureBus{}, testLogger())

	body := `{"metadata":{"contactId":"` + lead.ID.String() + `"},"endedReason":"no_answer","durationSeconds":0}`

	ack := svc.Process(context.Background(), []byte(body))
	if !ack.Success {
		t.Fatalf("ack = %+v, want success", ack)
	}

	up := store.updates[0]
	if up.status != statusFailed {
		t.Errorf("status = %q, want %q", up.status, statusFailed)
	}
	if up.disposition != DispositionNoAnswer {
		t.Errorf("disposition = %q, want %q", up.disposition, DispositionNoAnswer)
	}
	if up.durationMin != 0 || up.cost != 0 {
		t.Errorf("durationMin = %v cost = %v, want zeros", up.durationMin, up.cost)
	}
}

func TestProcessExplicitFailureOverridesEndReason(t *testing.T) {
	lead := LeadRef{ID: uuid.New(), Name: "Jane Doe", PhoneNumber: "+15551234567"}
	store := &fakeLeadStore{leads: []LeadRef{lead}}
	svc := NewService(store, &captureBus{}, testLogger())

	body := `{"metadata":{"contactId":"` + lead.ID.String() + `"},"endedReason":"assistant_hung_up","success":false}`

	if ack := svc.Process(context.Background(), []byte(body)); !ack.Success {
		t.Fatalf("ack = %+v, want success", ack)
	}
	if store.updates[0].status != statusFailed {
		t.Errorf("status = %q, want %q", store.updates[0].status, statusFailed)
	}
}

func TestProcessUnresolvedLead(t *testing.T) {
	store := &fakeLeadStore{}
	bus := &captureBus{}
	svc := NewService(store, bus, testLogger())

	body := `{"customer":{"number":"+19990001111"},"endedReason":"voicemail"}`

	ack := svc.Process(context.Background(), []byte(body))
	if ack.Success {
		t.Fatalf("ack = %+v, want failure", ack)
	}
	if ack.Message != "no matching lead found" {
		t.Errorf("message = %q", ack.Message)
	}
	if len(store.updates) != 0 {
		t.Errorf("updates = %d, want 0", len(store.updates))
	}

	names := bus.names()
	if len(names) != 1 || names[0] != "webhook.lead.unresolved" {
		t.Errorf("published = %v, want [webhook.lead.unresolved]", names)
	}
}

func TestProcessInvalidPayload(t *testing.T) {
	store := &fakeLeadStore{}
	bus := &captureBus{}
	svc := NewService(store, bus, testLogger())

	ack := svc.Process(context.Background(), []byte("not json"))
	if ack.Success {
		t.Fatalf("ack = %+v, want failure", ack)
	}
	if ack.Message != "invalid payload" {
		t.Errorf("message = %q", ack.Message)
	}
	if len(store.updates) != 0 || len(bus.names()) != 0 {
		t.Error("invalid payload must not mutate state or publish events")
	}
}

func TestProcessStoreError(t *testing.T) {
	lead := LeadRef{ID: uuid.New(), Name: "Jane Doe", PhoneNumber: "+15551234567"}
	store := &fakeLeadStore{leads: []LeadRef{lead}, updateErr: errors.New("connection reset")}
	svc := NewService(store, &captureBus{}, testLogger())

	body := `{"metadata":{"contactId":"` + lead.ID.String() + `"}}`

	ack := svc.Process(context.Background(), []byte(body))
	if ack.Success {
		t.Fatalf("ack = %+v, want failure", ack)
	}
	if ack.Message != "failed to update lead" {
		t.Errorf("message = %q", ack.Message)
	}
}

func TestProcessVanishedLead(t *testing.T) {
	store := &fakeLeadStore{}
	svc := NewService(store, &captureBus{}, testLogger())

	// contactId parses but no such lead exists anymore.
	body := `{"metadata":{"contactId":"` + uuid.NewString() + `"}}`

	ack := svc.Process(context.Background(), []byte(body))
	if ack.Success || ack.Message != "lead not found" {
		t.Fatalf("ack = %+v, want lead not found", ack)
	}
}

func TestProcessIsIdempotent(t *testing.T) {
	lead := LeadRef{ID: uuid.New(), Name: "Jane Doe", PhoneNumber: "+15551234567"}
	store := &fakeLeadStore{leads: []LeadRef{lead}}
	svc := NewService(store, &captureBus{}, testLogger())

	body := `{"metadata":{"contactId":"` + lead.ID.String() + `"},"endedReason":"voicemail","durationSeconds":42}`

	first := svc.Process(context.Background(), []byte(body))
	second := svc.Process(context.Background(), []byte(body))
	if !first.Success || !second.Success {
		t.Fatalf("acks = %+v / %+v, want both success", first, second)
	}
	if len(store.updates) != 2 {
		t.Fatalf("updates = %d, want 2", len(store.updates))
	}
	if store.updates[0] != store.updates[1] {
		t.Errorf("redelivery wrote a different outcome: %+v vs %+v", store.updates[0], store.updates[1])
	}
}
