package dialer

import (
	"context"
	"errors"
	"testing"

	"callcampaign_backend/internal/dialer/vapi"
	"callcampaign_backend/internal/events"
	"callcampaign_backend/platform/apperr"
	"callcampaign_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeLeadStore struct {
	leads       map[uuid.UUID]Lead
	lastStatus  string
	lastDisp    *string
	stateCalls  int
	stateTarget uuid.UUID
}

func (f *fakeLeadStore) GetLead(_ context.Context, id uuid.UUID) (Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return Lead{}, apperr.NotFound("lead not found")
	}
	return lead, nil
}

func (f *fakeLeadStore) SetCallState(_ context.Context, id uuid.UUID, status string, disposition *string) error {
	f.stateCalls++
	f.stateTarget = id
	f.lastStatus = status
	f.lastDisp = disposition
	return nil
}

type fakePlacer struct {
	calls int
	err   error
	resp  vapi.CallResponse
}

func (f *fakePlacer) PlaceCall(_ context.Context, _ vapi.CallRequest) (vapi.CallResponse, error) {
	f.calls++
	if f.err != nil {
		return vapi.CallResponse{}, f.err
	}
	return f.resp, nil
}

func newTestService(store *fakeLeadStore, placer *fakePlacer) *Service {
	log := logger.New("development")
	return NewService(store, placer, events.NewInMemoryBus(log), log)
}

func strPtr(s string) *string { return &s }

func TestTriggerCallLeadNotFound(t *testing.T) {
	store := &fakeLeadStore{leads: map[uuid.UUID]Lead{}}
	placer := &fakePlacer{}
	svc := newTestService(store, placer)

	_, err := svc.TriggerCall(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if placer.calls != 0 {
		t.Fatal("no call must be placed for a missing lead")
	}
}

func TestTriggerCallMissingPhoneID(t *testing.T) {
	id := uuid.New()
	store := &fakeLeadStore{leads: map[uuid.UUID]Lead{
		id: {ID: id, Name: "Alice", PhoneNumber: "+12125550123", Status: statusPending},
	}}
	placer := &fakePlacer{}
	svc := newTestService(store, placer)

	_, err := svc.TriggerCall(context.Background(), id)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest, got %v", err)
	}
	if placer.calls != 0 {
		t.Fatal("no call must be placed without a caller ID")
	}
}

func TestTriggerCallRejectsNonPendingLead(t *testing.T) {
	id := uuid.New()
	store := &fakeLeadStore{leads: map[uuid.UUID]Lead{
		id: {ID: id, Name: "Alice", PhoneNumber: "+12125550123", Status: "Completed", PhoneID: strPtr("pn_1")},
	}}
	placer := &fakePlacer{}
	svc := newTestService(store, placer)

	_, err := svc.TriggerCall(context.Background(), id)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest, got %v", err)
	}
	if placer.calls != 0 {
		t.Fatal("no external call must be placed for a completed lead")
	}
	if store.stateCalls != 0 {
		t.Fatal("lead state must not change on precondition failure")
	}
}

func TestTriggerCallSuccessMarksInProgress(t *testing.T) {
	id := uuid.New()
	store := &fakeLeadStore{leads: map[uuid.UUID]Lead{
		id: {ID: id, Name: "Alice", PhoneNumber: "+12125550123", Status: statusPending, PhoneID: strPtr("pn_1")},
	}}
	placer := &fakePlacer{resp: vapi.CallResponse{ID: "call_1"}}
	svc := newTestService(store, placer)

	resp, err := svc.TriggerCall(context.Background(), id)
	if err != nil {
		t.Fatalf("TriggerCall returned error: %v", err)
	}
	if resp.ID != "call_1" {
		t.Fatalf("call id = %q, want call_1", resp.ID)
	}
	if store.lastStatus != statusInProgress {
		t.Fatalf("status = %q, want %q", store.lastStatus, statusInProgress)
	}
	if store.lastDisp == nil || *store.lastDisp != dispositionCallInitiated {
		t.Fatalf("disposition = %v, want %q", store.lastDisp, dispositionCallInitiated)
	}
}

func TestTriggerCallProviderRejectionMarksFailed(t *testing.T) {
	id := uuid.New()
	store := &fakeLeadStore{leads: map[uuid.UUID]Lead{
		id: {ID: id, Name: "Alice", PhoneNumber: "+12125550123", Status: statusPending, PhoneID: strPtr("pn_1")},
	}}
	placer := &fakePlacer{err: apperr.Upstream("invalid phone number")}
	svc := newTestService(store, placer)

	_, err := svc.TriggerCall(context.Background(), id)
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected Upstream error, got %v", err)
	}
	if store.lastStatus != statusFailed {
		t.Fatalf("status = %q, want %q", store.lastStatus, statusFailed)
	}
	if store.lastDisp == nil || *store.lastDisp != "API Error: invalid phone number" {
		t.Fatalf("disposition = %v, want API Error prefix", store.lastDisp)
	}
}

func TestTriggerCallNonTypedProviderError(t *testing.T) {
	id := uuid.New()
	store := &fakeLeadStore{leads: map[uuid.UUID]Lead{
		id: {ID: id, Name: "Alice", PhoneNumber: "+12125550123", Status: statusPending, PhoneID: strPtr("pn_1")},
	}}
	placer := &fakePlacer{err: errors.New("dial tcp: connection refused")}
	svc := newTestService(store, placer)

	_, err := svc.TriggerCall(context.Background(), id)
	if err == nil {
		t.Fatal("expected error")
	}
	if store.lastDisp == nil || *store.lastDisp != "API Error: dial tcp: connection refused" {
		t.Fatalf("disposition = %v", store.lastDisp)
	}
}
