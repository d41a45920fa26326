package service

import (
	"context"

	"picking_portal_backend/internal/picking/transport"
	"picking_portal_backend/platform/apperr"

	"github.com/google/uuid"
)

// shiftHours is the fixed shift length behind the items-per-hour figure.
// It is an assumption the dashboard makes explicit, not a measured rate.
const shiftHours = 8

// KPIs returns the tenant dashboard counters. Efficiency is the percentage
// of items no longer pending, truncated to an integer; an empty queue
// reports zero rather than dividing by zero.
func (s *Service) KPIs(ctx context.Context, tenantID uuid.UUID) (*transport.KPIResponse, error) {
	raw, err := s.store.TenantKPIs(ctx, tenantID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, msgStoreFailure, err).WithOp("picking.KPIs")
	}

	efficiency := 0
	if raw.TotalItems > 0 {
		efficiency = (raw.TotalItems - raw.PendingItems) * 100 / raw.TotalItems
	}

	return &transport.KPIResponse{
		TotalOrders:     raw.TotalOrders,
		PendingItems:    raw.PendingItems,
		ActiveOperators: raw.ActiveOperators,
		EfficiencyPct:   efficiency,
	}, nil
}

// OperatorRollups returns the per-operator dashboard table. Display names
// come from the injected resolver when available, otherwise the operator id
// is shown as-is.
func (s *Service) OperatorRollups(ctx context.Context, tenantID uuid.UUID) ([]transport.OperatorRollupResponse, error) {
	rollups, err := s.store.OperatorRollups(ctx, tenantID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, msgStoreFailure, err).WithOp("picking.OperatorRollups")
	}

	out := make([]transport.OperatorRollupResponse, len(rollups))
	for i, ru := range rollups {
		name := ru.OperatorID.String()
		if s.names != nil {
			if resolved, err := s.names.ResolveOperatorName(ctx, ru.OperatorID); err == nil && resolved != "" {
				name = resolved
			}
		}

		status := transport.OperatorStatusIdle
		if ru.PendingItems > 0 {
			status = transport.OperatorStatusActive
		}

		out[i] = transport.OperatorRollupResponse{
			OperatorName:   name,
			Status:         status,
			OrdersAssigned: ru.OrdersAssigned,
			ItemsPerHour:   ru.PlannedQuantity / shiftHours,
		}
	}
	return out, nil
}
