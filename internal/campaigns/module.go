// Package campaigns provides the campaign bounded context module: named
// lead groupings with snapshot aggregate counters.
package campaigns

import (
	"callcampaign_backend/internal/campaigns/handler"
	"callcampaign_backend/internal/campaigns/repository"
	"callcampaign_backend/internal/campaigns/service"
	apphttp "callcampaign_backend/internal/http"
	"callcampaign_backend/platform/logger"
	"callcampaign_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the campaigns bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repo
}

// NewModule creates and initializes the campaigns module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "campaigns"
}

// Service returns the service layer for cross-module use (dial dispatch).
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for cross-module adapters (exports).
func (m *Module) Repository() *repository.Repo {
	return m.repo
}

// RegisterRoutes mounts campaign routes on the provided router context.
// The dial route is registered by the dialer module.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/campaigns")
	group.POST("", m.handler.Create)
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.GetByID)
	group.POST("/:id/leads", m.handler.AddLeads)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
