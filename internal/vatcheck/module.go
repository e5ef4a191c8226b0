// Package vatcheck provides the VAT validation bounded context module.
// It owns the check pipeline (normalize, VIES round-trip, parse, report) and
// the persisted check history.
package vatcheck

import (
	apphttp "vies_backend/internal/http"
	"vies_backend/internal/report"
	"vies_backend/internal/vatcheck/cache"
	"vies_backend/internal/vatcheck/handler"
	"vies_backend/internal/vatcheck/repository"
	"vies_backend/internal/vatcheck/service"
	"vies_backend/internal/vies"
	"vies_backend/platform/logger"
	"vies_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the vatcheck bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the vatcheck module with all its dependencies.
func NewModule(pool *pgxpool.Pool, checker vies.Checker, resultCache *cache.Cache, store *report.Store, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(checker, repo, resultCache, store, log)
	h := handler.New(svc, val, log)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "vatcheck"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts the check endpoint and the history API.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Engine.POST("/check-vat", ctx.CheckLimiter.RateLimit(), m.handler.CheckVat)
	ctx.V1.GET("/checks", m.handler.History)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
