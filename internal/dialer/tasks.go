package dialer

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskDialLead is the per-lead dial task enqueued for campaign dialing.
const TaskDialLead = "dialer:call"

// DialLeadPayload identifies the lead a dial task should call.
type DialLeadPayload struct {
	LeadID     string `json:"leadId"`
	CampaignID string `json:"campaignId,omitempty"`
}

// NewDialLeadTask builds an asynq task for one lead.
func NewDialLeadTask(payload DialLeadPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDialLead, data), nil
}

// ParseDialLeadPayload decodes a dial task payload.
func ParseDialLeadPayload(task *asynq.Task) (DialLeadPayload, error) {
	var payload DialLeadPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DialLeadPayload{}, err
	}
	return payload, nil
}
