package webhook

import (
	"callcampaign_backend/internal/events"
	apphttp "callcampaign_backend/internal/http"
	"callcampaign_backend/platform/logger"
)

// Module wires the webhook bounded context.
type Module struct {
	service *Service
	handler *Handler
}

// NewModule builds the webhook module over a lead store.
func NewModule(store LeadStore, bus events.Bus, log *logger.Logger) *Module {
	svc := NewService(store, bus, log)
	return &Module{
		service: svc,
		handler: NewHandler(svc, log),
	}
}

func (m *Module) Name() string { return "webhook" }

// Service exposes the pipeline for out-of-band processing (worker, tests).
func (m *Module) Service() *Service { return m.service }

// RegisterRoutes mounts the ingestion endpoint. It is deliberately public:
// the provider does not authenticate callbacks.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/webhook/vapi", m.handler.Receive)
}
