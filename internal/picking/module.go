// Package picking wires the spreadsheet ingestion pipeline and the operator
// fulfillment workflow into one HTTP-facing module.
package picking

import (
	"picking_portal_backend/internal/archive"
	"picking_portal_backend/internal/events"
	apphttp "picking_portal_backend/internal/http"
	"picking_portal_backend/internal/picking/handler"
	"picking_portal_backend/internal/picking/repository"
	"picking_portal_backend/internal/picking/service"
	"picking_portal_backend/platform/config"
	"picking_portal_backend/platform/logger"
	"picking_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module bundles the picking handler, service, and repository.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule assembles the picking module with its dependencies.
func NewModule(pool *pgxpool.Pool, cfg config.PickingConfig, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg)
	svc.SetEventBus(bus)

	h := handler.New(svc, val, log)
	h.SetMaxImportBytes(cfg.GetMaxImportBytes())

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "picking"
}

// Service exposes the picking service for cross-module wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// SetArchiver enables source file archival on the import endpoint.
func (m *Module) SetArchiver(a archive.Archiver) {
	m.handler.SetArchiver(a)
}

// SetOperatorNameResolver injects the operator display name lookup used by
// the dashboard rollups.
func (m *Module) SetOperatorNameResolver(r service.OperatorNameResolver) {
	m.service.SetOperatorNameResolver(r)
}

// RegisterRoutes mounts the picking routes on the authenticated group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/picking")
	m.handler.RegisterRoutes(group, ctx.ImportRateLimiter.RateLimit())
}
