package webhook

import (
	"io"
	"net/http"

	"callcampaign_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// maxBodyBytes caps how much of a webhook delivery is read.
const maxBodyBytes = 1 << 20

// Handler exposes the webhook ingestion endpoint.
type Handler struct {
	svc *Service
	log *logger.Logger
}

// NewHandler creates the webhook handler.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Receive handles POST /webhook/vapi. It replies HTTP 200 unconditionally,
// including on panics and unreadable bodies, so the provider never retries a
// delivery we have already seen.
func (h *Handler) Receive(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			h.log.WebhookEvent("panic", "", "recovered during webhook processing")
			c.JSON(http.StatusOK, Ack{Success: false, Message: "internal error"})
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		h.log.WebhookEvent("read_failed", "", err.Error())
		c.JSON(http.StatusOK, Ack{Success: false, Message: "failed to read body", Error: err.Error()})
		return
	}

	ack := h.svc.Process(c.Request.Context(), raw)
	c.JSON(http.StatusOK, ack)
}
