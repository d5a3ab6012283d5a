package webhook

import "strings"

// Dispositions produced by classification.
const (
	DispositionHungUp         = "Hung Up"
	DispositionCallCompleted  = "Call Completed"
	DispositionBusy           = "Busy"
	DispositionNoAnswer       = "No Answer"
	DispositionVoicemail      = "Voicemail"
	DispositionFailed         = "Failed"
	DispositionTimeout        = "Timeout"
	DispositionUnknown        = "Unknown"
	DispositionInterested     = "Interested"
	DispositionNotInterested  = "Not Interested"
	DispositionPriceObjection = "Price Objection"
	DispositionNeedsTime      = "Needs Time"
	DispositionWrongNumber    = "Wrong Number"
	DispositionAlreadyHas     = "Already Has Service"
)

// refineGroups are the content-analysis keyword groups in authoritative
// priority order: the first group with any matching pattern wins. A pattern
// with multiple keywords requires all of them. This is a best-effort
// heuristic over free text, not a guaranteed-correct lookup.
var refineGroups = []struct {
	disposition string
	patterns    [][]string
}{
	{DispositionInterested, [][]string{
		{"interested"}, {"appointment"}, {"callback"}, {"schedule"}, {"meeting"},
	}},
	{DispositionNotInterested, [][]string{
		{"not interested"}, {"no thank"}, {"don't want"}, {"remove", "list"}, {"stop calling"},
	}},
	{DispositionPriceObjection, [][]string{
		{"too expensive"}, {"can't afford"}, {"price", "high"},
	}},
	{DispositionNeedsTime, [][]string{
		{"think about"}, {"call back later"}, {"need time"},
	}},
	{DispositionWrongNumber, [][]string{
		{"wrong number"}, {"wrong person"},
	}},
	{DispositionAlreadyHas, [][]string{
		{"already have"}, {"current provider"},
	}},
}

// Classify maps a call's end reason and free-text content to a disposition.
// End reasons with a definite outcome map directly; ambiguous ones are
// refined through content analysis of summary+transcript with a
// reason-specific fallback.
func Classify(endReason, summary, transcript string) string {
	content := strings.ToLower(summary + " " + transcript)

	switch strings.ToLower(strings.TrimSpace(endReason)) {
	case "":
		return refine(content, DispositionUnknown)
	case "user_hung_up", "hangup":
		return refine(content, DispositionHungUp)
	case "assistant_hung_up":
		return refine(content, DispositionCallCompleted)
	case "user_busy", "busy":
		return DispositionBusy
	case "no_answer", "unanswered":
		return DispositionNoAnswer
	case "voicemail":
		return DispositionVoicemail
	case "failed", "error":
		return DispositionFailed
	case "timeout":
		return DispositionTimeout
	default:
		return refine(content, DispositionUnknown)
	}
}

// refine runs the keyword groups over the lowercased content and returns the
// fallback when nothing matches.
func refine(content, fallback string) string {
	for _, group := range refineGroups {
		for _, pattern := range group.patterns {
			if containsAll(content, pattern) {
				return group.disposition
			}
		}
	}
	return fallback
}

func containsAll(content string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(content, kw) {
			return false
		}
	}
	return true
}
