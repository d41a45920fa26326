// Package service implements the business logic of the picking module:
// file ingestion, the work item lifecycle, and dashboard aggregation.
package service

import (
	"context"

	"picking_portal_backend/internal/events"
	"picking_portal_backend/internal/picking/repository"
	"picking_portal_backend/platform/config"

	"github.com/google/uuid"
)

// Store is the narrow persistence interface the picking services need.
// Implemented by the pgx repository; replaced by a fake in tests.
type Store interface {
	InsertBatch(ctx context.Context, items []repository.WorkItem) error
	ListActiveOrders(ctx context.Context, tenantID, operatorID uuid.UUID) ([]repository.OrderSummary, error)
	ListOrderItems(ctx context.Context, tenantID uuid.UUID, orderID string, operatorID uuid.UUID) ([]repository.WorkItem, error)
	ConfirmItem(ctx context.Context, itemID, tenantID uuid.UUID, reportedQuantity int) (orderID string, wasPending bool, err error)
	AssignOrder(ctx context.Context, tenantID uuid.UUID, orderID string, operatorID uuid.UUID) (int64, error)
	OrderProgress(ctx context.Context, tenantID uuid.UUID, orderID string) (total, completed int, err error)
	TenantKPIs(ctx context.Context, tenantID uuid.UUID) (repository.TenantKPIs, error)
	OperatorRollups(ctx context.Context, tenantID uuid.UUID) ([]repository.OperatorRollup, error)
}

// OperatorNameResolver resolves operator display names for the dashboard.
// Implemented by an adapter over the external identity service; nil means
// operator ids are shown as-is.
type OperatorNameResolver interface {
	ResolveOperatorName(ctx context.Context, operatorID uuid.UUID) (string, error)
}

// Service provides business logic for the picking module.
type Service struct {
	store Store
	cfg   config.PickingConfig
	bus   events.Bus           // optional; nil means no events published
	names OperatorNameResolver // optional; nil falls back to raw ids
}

// New creates a new picking service.
func New(store Store, cfg config.PickingConfig) *Service {
	return &Service{store: store, cfg: cfg}
}

// SetEventBus injects the event bus (set after construction to keep the
// composition root in charge of wiring).
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

// SetOperatorNameResolver injects the operator name resolver.
func (s *Service) SetOperatorNameResolver(r OperatorNameResolver) {
	s.names = r
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus != nil {
		s.bus.Publish(ctx, event)
	}
}

func nilIfEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
