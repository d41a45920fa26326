// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"picking_portal_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Picking Domain Events
// =============================================================================

// FileIngested is published after a spreadsheet was ingested into the queue.
type FileIngested struct {
	BaseEvent
	TenantID     uuid.UUID `json:"tenantId"`
	SourceFile   string    `json:"sourceFile"`
	OrderID      string    `json:"orderId"`
	RowsInserted int       `json:"rowsInserted"`
}

func (e FileIngested) EventName() string { return "picking.file.ingested" }

// ItemConfirmed is published when an operator confirms a work item.
type ItemConfirmed struct {
	BaseEvent
	TenantID         uuid.UUID `json:"tenantId"`
	OperatorID       uuid.UUID `json:"operatorId"`
	ItemID           uuid.UUID `json:"itemId"`
	OrderID          string    `json:"orderId"`
	ReportedQuantity int       `json:"reportedQuantity"`
}

func (e ItemConfirmed) EventName() string { return "picking.item.confirmed" }

// OrderCompleted is published when the last pending item of an order is
// confirmed.
type OrderCompleted struct {
	BaseEvent
	TenantID   uuid.UUID `json:"tenantId"`
	OperatorID uuid.UUID `json:"operatorId"`
	OrderID    string    `json:"orderId"`
	TotalItems int       `json:"totalItems"`
}

func (e OrderCompleted) EventName() string { return "picking.order.completed" }
