// Package vapi is a minimal client for the Vapi outbound call API.
package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"callcampaign_backend/platform/apperr"
	"callcampaign_backend/platform/config"
)

const requestTimeout = 10 * time.Second

// CallRequest describes one outbound call. ContactID rides along as opaque
// metadata and comes back on the post-call webhook; it is the primary
// identity-resolution channel.
type CallRequest struct {
	ContactID     string
	Name          string
	Phone         string
	PhoneNumberID string
}

// CallResponse is the provider's acknowledgement of a placed call.
type CallResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Client places calls against the Vapi API.
type Client struct {
	apiURL      string
	apiKey      string
	assistantID string
	httpClient  *http.Client
}

// NewClient creates a Vapi client from configuration.
func NewClient(cfg config.VapiConfig) *Client {
	return &Client{
		apiURL:      cfg.GetVapiAPIURL(),
		apiKey:      cfg.GetVapiAPIKey(),
		assistantID: cfg.GetVapiAssistantID(),
		httpClient:  &http.Client{Timeout: requestTimeout},
	}
}

// callPayload mirrors the provider's phone-call creation body.
type callPayload struct {
	AssistantID        string             `json:"assistantId"`
	AssistantOverrides assistantOverrides `json:"assistantOverrides"`
	PhoneNumberID      string             `json:"phoneNumberId"`
	Customer           customer           `json:"customer"`
}

type assistantOverrides struct {
	VariableValues     map[string]string  `json:"variableValues"`
	Metadata           map[string]string  `json:"metadata"`
	VoicemailDetection voicemailDetection `json:"voicemailDetection"`
	AnalysisPlan       analysisPlan       `json:"analysisPlan"`
}

type voicemailDetection struct {
	Provider                           string   `json:"provider"`
	VoicemailDetectionTypes            []string `json:"voicemailDetectionTypes"`
	Enabled                            bool     `json:"enabled"`
	MachineDetectionTimeout            int      `json:"machineDetectionTimeout"`
	MachineDetectionSpeechThreshold    int      `json:"machineDetectionSpeechThreshold"`
	MachineDetectionSpeechEndThreshold int      `json:"machineDetectionSpeechEndThreshold"`
	MachineDetectionSilenceTimeout     int      `json:"machineDetectionSilenceTimeout"`
}

type analysisPlan struct {
	StructuredDataPlan    enabledPlan `json:"structuredDataPlan"`
	SummaryPlan           enabledPlan `json:"summaryPlan"`
	SuccessEvaluationPlan enabledPlan `json:"successEvaluationPlan"`
}

type enabledPlan struct {
	Enabled bool `json:"enabled"`
}

type customer struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// PlaceCall dispatches an outbound call. A non-2xx provider response becomes
// an Upstream error carrying the provider's message.
func (c *Client) PlaceCall(ctx context.Context, req CallRequest) (CallResponse, error) {
	payload := callPayload{
		AssistantID: c.assistantID,
		AssistantOverrides: assistantOverrides{
			VariableValues: map[string]string{
				"Name":  req.Name,
				"Phone": req.Phone,
			},
			Metadata: map[string]string{
				"contactId": req.ContactID,
			},
			VoicemailDetection: voicemailDetection{
				Provider:                           "twilio",
				VoicemailDetectionTypes:            []string{"machine_end_beep"},
				Enabled:                            true,
				MachineDetectionTimeout:            30,
				MachineDetectionSpeechThreshold:    2400,
				MachineDetectionSpeechEndThreshold: 1800,
				MachineDetectionSilenceTimeout:     5000,
			},
			AnalysisPlan: analysisPlan{
				StructuredDataPlan:    enabledPlan{Enabled: true},
				SummaryPlan:           enabledPlan{Enabled: true},
				SuccessEvaluationPlan: enabledPlan{Enabled: true},
			},
		},
		PhoneNumberID: req.PhoneNumberID,
		Customer: customer{
			Name:   req.Name,
			Number: req.Phone,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return CallResponse{}, fmt.Errorf("marshal call payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return CallResponse{}, fmt.Errorf("build call request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return CallResponse{}, apperr.Wrap(apperr.KindUpstream, "voice provider unreachable", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return CallResponse{}, apperr.Upstream(providerMessage(respBody, resp.StatusCode))
	}

	var result CallResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		// Dispatch succeeded even if the ack body is unexpected.
		return CallResponse{}, nil
	}

	return result, nil
}

// providerMessage digs a human-readable message out of an error response.
func providerMessage(body []byte, status int) string {
	var parsed struct {
		Message any    `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch m := parsed.Message.(type) {
		case string:
			if m != "" {
				return m
			}
		case []any:
			if len(m) > 0 {
				if s, ok := m[0].(string); ok && s != "" {
					return s
				}
			}
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return fmt.Sprintf("call placement rejected with status %d", status)
}
