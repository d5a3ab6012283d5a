package exports

import (
	apphttp "callcampaign_backend/internal/http"
	"callcampaign_backend/platform/logger"
)

// Module wires the exports bounded context.
type Module struct {
	handler *Handler
}

// NewModule builds the exports module over a lead source.
func NewModule(source LeadSource, log *logger.Logger) *Module {
	return &Module{handler: NewHandler(NewService(source), log)}
}

func (m *Module) Name() string { return "exports" }

// RegisterRoutes mounts the download endpoints. They sit behind auth; the
// middleware also accepts the token as a query parameter so browser
// downloads work without custom headers.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/exports")
	group.GET("/leads.xlsx", m.handler.LeadsXLSX)
	group.GET("/leads.csv", m.handler.LeadsCSV)

	ctx.Protected.GET("/campaigns/:id/leads.xlsx", m.handler.CampaignLeadsXLSX)
	ctx.Protected.GET("/campaigns/:id/leads.csv", m.handler.CampaignLeadsCSV)
}
