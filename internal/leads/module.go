// Package leads provides the lead management bounded context module:
// CRUD, CSV import, and caller-ID pool assignment.
package leads

import (
	"callcampaign_backend/internal/events"
	apphttp "callcampaign_backend/internal/http"
	"callcampaign_backend/internal/leads/handler"
	"callcampaign_backend/internal/leads/repository"
	"callcampaign_backend/internal/leads/service"
	"callcampaign_backend/internal/storage"
	"callcampaign_backend/platform/logger"
	"callcampaign_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repo
}

// NewModule creates and initializes the leads module with all its
// dependencies. storageSvc may be nil when MinIO is unconfigured.
func NewModule(pool *pgxpool.Pool, bus events.Bus, storageSvc storage.Service, archiveBucket string, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, storageSvc, archiveBucket, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Repository returns the repository for cross-module adapters.
func (m *Module) Repository() *repository.Repo {
	return m.repo
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/leads")
	group.GET("", m.handler.List)
	group.POST("", m.handler.Create)
	group.GET("/:id", m.handler.GetByID)
	group.POST("/import", m.handler.Import)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
