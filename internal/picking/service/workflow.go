package service

import (
	"context"

	"picking_portal_backend/internal/events"
	"picking_portal_backend/internal/picking/transport"
	"picking_portal_backend/platform/apperr"

	"github.com/google/uuid"
)

// ListActiveOrders returns the operator's queue: orders that still have
// pending items, ordered by order id. Orders assigned to other operators
// are invisible; unassigned orders are visible to everyone until claimed.
func (s *Service) ListActiveOrders(ctx context.Context, tenantID, operatorID uuid.UUID) ([]transport.ActiveOrderResponse, error) {
	summaries, err := s.store.ListActiveOrders(ctx, tenantID, operatorID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, msgStoreFailure, err).WithOp("picking.ListActiveOrders")
	}

	out := make([]transport.ActiveOrderResponse, len(summaries))
	for i, sum := range summaries {
		out[i] = transport.ActiveOrderResponse{
			OrderID:        sum.OrderID,
			Zone:           sum.Zone,
			TotalItems:     sum.TotalItems,
			CompletedItems: sum.CompletedItems,
		}
	}
	return out, nil
}

// ListOrderItems returns the items of one order visible to the operator,
// unfinished items first.
func (s *Service) ListOrderItems(ctx context.Context, tenantID uuid.UUID, orderID string, operatorID uuid.UUID) ([]transport.OrderItemResponse, error) {
	items, err := s.store.ListOrderItems(ctx, tenantID, orderID, operatorID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, msgStoreFailure, err).WithOp("picking.ListOrderItems")
	}

	out := make([]transport.OrderItemResponse, len(items))
	for i, item := range items {
		out[i] = transport.OrderItemResponse{
			ItemID:             item.ID,
			ProductCode:        item.ProductCode,
			ProductDescription: item.ProductDescription,
			PlannedQuantity:    item.PlannedQuantity,
			CompletedQuantity:  item.CompletedQuantity,
			Status:             transport.ItemStatus(item.Status),
		}
	}
	return out, nil
}

// ConfirmItem records an operator's completion of a work item. The store
// update is idempotent: re-confirming overwrites the same fields and is not
// an error. Concurrent confirms of the same item are last-write-wins.
func (s *Service) ConfirmItem(ctx context.Context, itemID, tenantID, operatorID uuid.UUID, reportedQuantity int) error {
	orderID, wasPending, err := s.store.ConfirmItem(ctx, itemID, tenantID, reportedQuantity)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		return apperr.Wrap(apperr.KindInternal, msgStoreFailure, err).WithOp("picking.ConfirmItem")
	}

	s.publish(ctx, events.ItemConfirmed{
		BaseEvent:        events.NewBaseEvent(),
		TenantID:         tenantID,
		OperatorID:       operatorID,
		ItemID:           itemID,
		OrderID:          orderID,
		ReportedQuantity: reportedQuantity,
	})

	// Completion detection runs only when this confirm actually flipped the
	// item to COMPLETED; a re-confirm of a done item must not re-announce an
	// order that completed earlier. The check itself is best-effort: the
	// confirm is already durable, so a failed progress read must not surface
	// as a confirm failure.
	if !wasPending {
		return nil
	}
	total, completed, err := s.store.OrderProgress(ctx, tenantID, orderID)
	if err == nil && total > 0 && completed == total {
		s.publish(ctx, events.OrderCompleted{
			BaseEvent:  events.NewBaseEvent(),
			TenantID:   tenantID,
			OperatorID: operatorID,
			OrderID:    orderID,
			TotalItems: total,
		})
	}

	return nil
}

// AssignOrder claims the unassigned pending items of an order for the
// operator. Claiming an order that is already fully assigned (or unknown)
// claims zero items; that is not an error.
func (s *Service) AssignOrder(ctx context.Context, tenantID uuid.UUID, orderID string, operatorID uuid.UUID) (*transport.AssignOrderResponse, error) {
	claimed, err := s.store.AssignOrder(ctx, tenantID, orderID, operatorID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, msgStoreFailure, err).WithOp("picking.AssignOrder")
	}

	return &transport.AssignOrderResponse{
		OrderID:      orderID,
		ItemsClaimed: claimed,
	}, nil
}
