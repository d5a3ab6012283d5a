package dialer

import (
	"callcampaign_backend/internal/dialer/vapi"
	"callcampaign_backend/internal/events"
	apphttp "callcampaign_backend/internal/http"
	"callcampaign_backend/platform/config"
	"callcampaign_backend/platform/logger"
	"callcampaign_backend/platform/validator"
)

// Module is the dialer bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule creates and initializes the dialer module. queue may be nil.
func NewModule(store LeadStore, cfg config.VapiConfig, queue DialQueue, campaigns CampaignLeads, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := NewService(store, vapi.NewClient(cfg), bus, log)
	h := NewHandler(svc, queue, campaigns, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "dialer"
}

// Service returns the service layer for the queue worker.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts dialer routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/calls/trigger", m.handler.TriggerCall)
	ctx.Protected.POST("/campaigns/:id/dial", m.handler.DialCampaign)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
