package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"national format", "(555) 123-4567", "5551234567"},
		{"valid us number", "(212) 555-0123", "+12125550123"},
		{"already e164", "+12125550123", "+12125550123"},
		{"with country code no plus", "1 212 555 0123", "+12125550123"},
		{"empty", "", ""},
		{"garbage keeps digits", "ext. 44-77", "4477"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeE164(tt.input)
			if got != tt.want {
				t.Fatalf("NormalizeE164(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDigits(t *testing.T) {
	if got := Digits("+1 (555) 123-4567", false); got != "15551234567" {
		t.Fatalf("Digits = %q, want 15551234567", got)
	}
	if got := Digits("+1 (555) 123-4567", true); got != "+15551234567" {
		t.Fatalf("Digits keepPlus = %q, want +15551234567", got)
	}
	// Plus only survives in the leading position.
	if got := Digits("555+123", true); got != "555123" {
		t.Fatalf("Digits inner plus = %q, want 555123", got)
	}
}

func TestLastN(t *testing.T) {
	if got := LastN("+1 (555) 123-4567", 10); got != "5551234567" {
		t.Fatalf("LastN = %q, want 5551234567", got)
	}
	if got := LastN("4567", 10); got != "4567" {
		t.Fatalf("LastN short input = %q, want 4567", got)
	}
}

func TestSuffixMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"same number different formats", "+15551234567", "(555) 123-4567", true},
		{"country code mismatch", "15551234567", "5551234567", true},
		{"stored shorter suffix", "5551234567", "234567", true},
		{"different lines", "+15551234567", "+15559876543", false},
		{"empty side", "", "5551234567", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuffixMatch(tt.a, tt.b); got != tt.want {
				t.Fatalf("SuffixMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
