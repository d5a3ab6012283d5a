package webhook

import "testing"

func TestExtractContactIDPaths(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "top-level metadata",
			body: `{"metadata":{"contactId":"abc-123"}}`,
			want: "abc-123",
		},
		{
			name: "nested artifact overrides",
			body: `{"message":{"artifact":{"assistantOverrides":{"metadata":{"contactId":"deep-id"}}}}}`,
			want: "deep-id",
		},
		{
			name: "top-level assistant overrides",
			body: `{"assistantOverrides":{"metadata":{"contactId":"ovr-id"}}}`,
			want: "ovr-id",
		},
		{
			name: "customer contactId",
			body: `{"customer":{"contactId":"cust-id"}}`,
			want: "cust-id",
		},
		{
			name: "earlier path wins",
			body: `{"metadata":{"contactId":"first"},"customer":{"contactId":"second"}}`,
			want: "first",
		},
		{
			name: "absent everywhere",
			body: `{"customer":{"number":"+15551234567"}}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := Extract([]byte(tt.body))
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if ext.ContactID != tt.want {
				t.Fatalf("ContactID = %q, want %q", ext.ContactID, tt.want)
			}
		})
	}
}

func TestExtractFullPayload(t *testing.T) {
	body := `{
		"message": {
			"endedReason": "assistant_hung_up",
			"durationSeconds": 125,
			"customer": {"number": "+15551234567", "name": "Jane Doe"},
			"analysis": {"summary": "Customer wants an appointment", "successEvaluation": true},
			"artifact": {
				"transcript": "AI: Hello...",
				"assistantOverrides": {"metadata": {"contactId": "7b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"}}
			}
		}
	}`

	ext, err := Extract([]byte(body))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if ext.ContactID != "7b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d" {
		t.Errorf("ContactID = %q", ext.ContactID)
	}
	if ext.PhoneNumber != "+15551234567" {
		t.Errorf("PhoneNumber = %q", ext.PhoneNumber)
	}
	if ext.CustomerName != "Jane Doe" {
		t.Errorf("CustomerName = %q", ext.CustomerName)
	}
	if ext.DurationSeconds != 125 {
		t.Errorf("DurationSeconds = %v", ext.DurationSeconds)
	}
	if ext.EndReason != "assistant_hung_up" {
		t.Errorf("EndReason = %q", ext.EndReason)
	}
	if ext.Summary != "Customer wants an appointment" {
		t.Errorf("Summary = %q", ext.Summary)
	}
	if ext.Transcript != "AI: Hello..." {
		t.Errorf("Transcript = %q", ext.Transcript)
	}
	if ext.Success == nil || !*ext.Success {
		t.Errorf("Success = %v, want true", ext.Success)
	}
}

func TestExtractCoercions(t *testing.T) {
	body := `{
		"durationSeconds": "93.5",
		"message": {"analysis": {"successEvaluation": "false"}}
	}`

	ext, err := Extract([]byte(body))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if ext.DurationSeconds != 93.5 {
		t.Errorf("DurationSeconds = %v, want 93.5 from string", ext.DurationSeconds)
	}
	if ext.Success == nil || *ext.Success {
		t.Errorf("Success = %v, want false from string", ext.Success)
	}
}

func TestExtractMissingFieldsAreZero(t *testing.T) {
	ext, err := Extract([]byte(`{}`))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if ext.ContactID != "" || ext.PhoneNumber != "" || ext.EndReason != "" {
		t.Errorf("expected empty strings, got %+v", ext)
	}
	if ext.DurationSeconds != 0 {
		t.Errorf("DurationSeconds = %v, want 0", ext.DurationSeconds)
	}
	if ext.Success != nil {
		t.Errorf("Success = %v, want nil", ext.Success)
	}
}

func TestExtractRejectsNonJSON(t *testing.T) {
	if _, err := Extract([]byte("not json at all")); err == nil {
		t.Fatal("expected error for non-JSON body")
	}
	if _, err := Extract([]byte(`[1,2,3]`)); err == nil {
		t.Fatal("expected error for non-object body")
	}
}
