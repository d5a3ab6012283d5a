package dialer

import (
	"context"
	"net/http"

	"callcampaign_backend/platform/httpkit"
	"callcampaign_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CampaignLeads exposes the campaign lookup the dial route needs.
type CampaignLeads interface {
	PendingLeadIDs(ctx context.Context, campaignID uuid.UUID) ([]uuid.UUID, error)
}

// TriggerCallRequest identifies the lead to call.
type TriggerCallRequest struct {
	LeadID string `json:"leadId" validate:"required,uuid"`
}

// Handler handles HTTP requests for the dialer.
type Handler struct {
	svc       *Service
	queue     DialQueue
	campaigns CampaignLeads
	val       *validator.Validator
}

// NewHandler creates a new dialer handler. queue may be nil when the dial
// queue is not configured.
func NewHandler(svc *Service, queue DialQueue, campaigns CampaignLeads, val *validator.Validator) *Handler {
	return &Handler{svc: svc, queue: queue, campaigns: campaigns, val: val}
}

// TriggerCall dispatches a single outbound call.
// POST /api/v1/calls/trigger
func (h *Handler) TriggerCall(c *gin.Context) {
	var req TriggerCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	leadID, err := uuid.Parse(req.LeadID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead ID", nil)
		return
	}

	resp, err := h.svc.TriggerCall(c.Request.Context(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{
		"success": true,
		"message": "call dispatched",
		"data":    resp,
	})
}

// DialCampaign enqueues a dial task for every Pending lead of a campaign.
// POST /api/v1/campaigns/:id/dial
func (h *Handler) DialCampaign(c *gin.Context) {
	if h.queue == nil {
		httpkit.Error(c, http.StatusServiceUnavailable, "dial queue not configured", nil)
		return
	}

	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign ID", nil)
		return
	}

	leadIDs, err := h.campaigns.PendingLeadIDs(c.Request.Context(), campaignID)
	if httpkit.HandleError(c, err) {
		return
	}

	queued, err := h.queue.EnqueueCampaignDial(c.Request.Context(), campaignID, leadIDs)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusAccepted, gin.H{
		"success": true,
		"message": "campaign dial queued",
		"queued":  queued,
	})
}
