// Package webhook provides the post-call webhook bounded context: payload
// extraction, outcome classification, lead identity resolution, and the
// always-acknowledge ingestion endpoint.
package webhook

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Extracted holds the fields pulled from a provider webhook payload. Empty
// strings mean the field was absent from every known path; Success is
// tri-state because the provider's evaluation may be missing entirely.
type Extracted struct {
	ContactID       string
	PhoneNumber     string
	CustomerName    string
	DurationSeconds float64
	EndReason       string
	Summary         string
	Transcript      string
	Success         *bool
}

// The provider's payload shape shifted across integration revisions, so each
// field probes an ordered list of known nesting paths. First non-null wins.
// Keep these tables in sync with what the provider actually sends; they are
// the single source of truth for shape handling.
var (
	contactIDPaths = []string{
		"metadata.contactId",
		"message.artifact.assistantOverrides.metadata.contactId",
		"assistantOverrides.metadata.contactId",
		"customer.contactId",
	}
	phoneNumberPaths = []string{
		"customer.number",
		"message.customer.number",
		"call.customer.number",
		"phoneNumber",
	}
	customerNamePaths = []string{
		"customer.name",
		"message.customer.name",
		"call.customer.name",
	}
	durationPaths = []string{
		"durationSeconds",
		"message.durationSeconds",
		"call.durationSeconds",
		"message.artifact.durationSeconds",
	}
	endReasonPaths = []string{
		"endedReason",
		"message.endedReason",
		"call.endedReason",
	}
	summaryPaths = []string{
		"summary",
		"message.analysis.summary",
		"analysis.summary",
	}
	transcriptPaths = []string{
		"transcript",
		"message.artifact.transcript",
		"message.transcript",
	}
	successPaths = []string{
		"message.analysis.successEvaluation",
		"analysis.successEvaluation",
		"success",
	}
)

// Extract parses a raw webhook body and probes the known paths for each
// field. Every field is independently optional; the only error is a body
// that is not JSON at all.
func Extract(raw []byte) (Extracted, error) {
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		return Extracted{}, fmt.Errorf("parse webhook body: %w", err)
	}

	return Extracted{
		ContactID:       firstString(root, contactIDPaths),
		PhoneNumber:     firstString(root, phoneNumberPaths),
		CustomerName:    firstString(root, customerNamePaths),
		DurationSeconds: firstNumber(root, durationPaths),
		EndReason:       firstString(root, endReasonPaths),
		Summary:         firstString(root, summaryPaths),
		Transcript:      firstString(root, transcriptPaths),
		Success:         firstBool(root, successPaths),
	}, nil
}

// lookup walks a dotted path through nested JSON objects.
func lookup(root map[string]any, path string) (any, bool) {
	node := any(root)
	for _, key := range strings.Split(path, ".") {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = obj[key]
		if !ok || node == nil {
			return nil, false
		}
	}
	return node, true
}

func firstString(root map[string]any, paths []string) string {
	for _, path := range paths {
		value, ok := lookup(root, path)
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func firstNumber(root map[string]any, paths []string) float64 {
	for _, path := range paths {
		value, ok := lookup(root, path)
		if !ok {
			continue
		}
		switch v := value.(type) {
		case float64:
			return v
		case string:
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				return parsed
			}
		}
	}
	return 0
}

// firstBool accepts booleans and the provider's stringly success
// evaluations ("true"/"false").
func firstBool(root map[string]any, paths []string) *bool {
	for _, path := range paths {
		value, ok := lookup(root, path)
		if !ok {
			continue
		}
		switch v := value.(type) {
		case bool:
			b := v
			return &b
		case string:
			if parsed, err := strconv.ParseBool(strings.ToLower(v)); err == nil {
				return &parsed
			}
		}
	}
	return nil
}
