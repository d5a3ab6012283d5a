package vapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"callcampaign_backend/platform/apperr"
)

type testConfig struct {
	url string
}

func (c testConfig) GetVapiAPIURL() string      { return c.url }
func (c testConfig) GetVapiAPIKey() string      { return "test-key" }
func (c testConfig) GetVapiAssistantID() string { return "asst_1" }
func (c testConfig) IsVapiEnabled() bool        { return true }

func TestPlaceCallSendsExpectedPayload(t *testing.T) {
	var got map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer auth, got %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"call_42","status":"queued"}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig{url: srv.URL})
	resp, err := client.PlaceCall(context.Background(), CallRequest{
		ContactID:     "lead-1",
		Name:          "Alice",
		Phone:         "+12125550123",
		PhoneNumberID: "pn_1",
	})
	if err != nil {
		t.Fatalf("PlaceCall returned error: %v", err)
	}
	if resp.ID != "call_42" {
		t.Fatalf("call id = %q, want call_42", resp.ID)
	}

	if got["assistantId"] != "asst_1" {
		t.Fatalf("assistantId = %v", got["assistantId"])
	}
	if got["phoneNumberId"] != "pn_1" {
		t.Fatalf("phoneNumberId = %v", got["phoneNumberId"])
	}

	overrides, _ := got["assistantOverrides"].(map[string]any)
	if overrides == nil {
		t.Fatal("assistantOverrides missing")
	}
	metadata, _ := overrides["metadata"].(map[string]any)
	if metadata["contactId"] != "lead-1" {
		t.Fatalf("metadata.contactId = %v, want lead-1", metadata["contactId"])
	}
	variables, _ := overrides["variableValues"].(map[string]any)
	if variables["Name"] != "Alice" || variables["Phone"] != "+12125550123" {
		t.Fatalf("variableValues = %v", variables)
	}

	vmd, _ := overrides["voicemailDetection"].(map[string]any)
	if vmd["provider"] != "twilio" {
		t.Fatalf("voicemailDetection.provider = %v", vmd["provider"])
	}

	cust, _ := got["customer"].(map[string]any)
	if cust["number"] != "+12125550123" {
		t.Fatalf("customer.number = %v", cust["number"])
	}
}

func TestPlaceCallProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"customer.number must be a valid phone number"}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig{url: srv.URL})
	_, err := client.PlaceCall(context.Background(), CallRequest{
		ContactID: "lead-1", Name: "Alice", Phone: "bad", PhoneNumberID: "pn_1",
	})
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected Upstream error, got %v", err)
	}
	if e, ok := err.(*apperr.Error); !ok || e.Message != "customer.number must be a valid phone number" {
		t.Fatalf("provider message not propagated: %v", err)
	}
}

func TestPlaceCallProviderMessageArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":["assistantId must be a UUID","second"]}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig{url: srv.URL})
	_, err := client.PlaceCall(context.Background(), CallRequest{ContactID: "x", PhoneNumberID: "pn_1"})
	if e, ok := err.(*apperr.Error); !ok || e.Message != "assistantId must be a UUID" {
		t.Fatalf("expected first array message, got %v", err)
	}
}
