package webhook

import "testing"

func TestClassifyEndReasons(t *testing.T) {
	tests := []struct {
		name      string
		endReason string
		want      string
	}{
		{"user busy", "user_busy", DispositionBusy},
		{"busy alias", "busy", DispositionBusy},
		{"no answer", "no_answer", DispositionNoAnswer},
		{"unanswered alias", "unanswered", DispositionNoAnswer},
		{"voicemail", "voicemail", DispositionVoicemail},
		{"failed", "failed", DispositionFailed},
		{"error alias", "error", DispositionFailed},
		{"timeout", "timeout", DispositionTimeout},
		{"case insensitive", "User_Busy", DispositionBusy},
		{"whitespace trimmed", "  voicemail  ", DispositionVoicemail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.endReason, "", ""); got != tt.want {
				t.Fatalf("Classify(%q) = %q, want %q", tt.endReason, got, tt.want)
			}
		})
	}
}

func TestClassifyRefinement(t *testing.T) {
	tests := []struct {
		name      string
		endReason string
		summary   string
		want      string
	}{
		{
			name:      "hangup with no content falls back",
			endReason: "user_hung_up",
			summary:   "",
			want:      DispositionHungUp,
		},
		{
			name:      "assistant hangup with no content falls back",
			endReason: "assistant_hung_up",
			summary:   "",
			want:      DispositionCallCompleted,
		},
		{
			name:      "unknown reason with no content",
			endReason: "something_new",
			summary:   "",
			want:      DispositionUnknown,
		},
		{
			name:      "empty reason with no content",
			endReason: "",
			summary:   "",
			want:      DispositionUnknown,
		},
		{
			name:      "appointment keyword",
			endReason: "assistant_hung_up",
			summary:   "Customer agreed to book an appointment next week",
			want:      DispositionInterested,
		},
		{
			name:      "price objection",
			endReason: "user_hung_up",
			summary:   "Said the offer was too expensive for them",
			want:      DispositionPriceObjection,
		},
		{
			name:      "multi-keyword pattern requires both",
			endReason: "user_hung_up",
			summary:   "Asked to remove her from the list",
			want:      DispositionNotInterested,
		},
		{
			name:      "needs time",
			endReason: "assistant_hung_up",
			summary:   "Wants to think about it over the weekend",
			want:      DispositionNeedsTime,
		},
		{
			name:      "wrong number",
			endReason: "user_hung_up",
			summary:   "Reached a wrong number",
			want:      DispositionWrongNumber,
		},
		{
			name:      "already has service",
			endReason: "assistant_hung_up",
			summary:   "They already have coverage with their current provider",
			want:      DispositionAlreadyHas,
		},
		{
			name:      "interested outranks not interested",
			endReason: "user_hung_up",
			summary:   "Customer said they are not interested",
			want:      DispositionInterested,
		},
		{
			name:      "definite reason skips content",
			endReason: "voicemail",
			summary:   "too expensive",
			want:      DispositionVoicemail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.endReason, tt.summary, ""); got != tt.want {
				t.Fatalf("Classify(%q, %q) = %q, want %q", tt.endReason, tt.summary, got, tt.want)
			}
		})
	}
}

func TestClassifyUsesTranscript(t *testing.T) {
	got := Classify("user_hung_up", "", "User: please stop calling me")
	if got != DispositionNotInterested {
		t.Fatalf("Classify with transcript = %q, want %q", got, DispositionNotInterested)
	}
}
