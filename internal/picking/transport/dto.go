package transport

import "github.com/google/uuid"

// ItemStatus is the closed set of work item states. Stored values never
// leave this vocabulary; free-text status comparisons are not allowed
// anywhere else.
type ItemStatus string

const (
	// ItemStatusPending is the ingestion default: work not yet done.
	ItemStatusPending ItemStatus = "PENDING"
	// ItemStatusCompleted means an operator confirmed the item.
	ItemStatusCompleted ItemStatus = "COMPLETED"
	// ItemStatusCompletedOrder is the derived terminal tag applied once all
	// sibling items of an order are completed. Never written by this core.
	ItemStatusCompletedOrder ItemStatus = "COMPLETED_ORDER"
)

// Valid reports whether the status belongs to the closed set.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusPending, ItemStatusCompleted, ItemStatusCompletedOrder:
		return true
	}
	return false
}

// CanTransitionTo enforces the one-way lifecycle:
// PENDING → COMPLETED → COMPLETED_ORDER, never backwards. Re-entering the
// same state is allowed so confirmation stays idempotent.
func (s ItemStatus) CanTransitionTo(next ItemStatus) bool {
	switch s {
	case ItemStatusPending:
		return next == ItemStatusPending || next == ItemStatusCompleted
	case ItemStatusCompleted:
		return next == ItemStatusCompleted || next == ItemStatusCompletedOrder
	case ItemStatusCompletedOrder:
		return next == ItemStatusCompletedOrder
	}
	return false
}

// OperatorStatus is the derived activity state shown on the dashboard.
type OperatorStatus string

const (
	// OperatorStatusActive means the operator has pending assigned items.
	OperatorStatusActive OperatorStatus = "ACTIVE"
	// OperatorStatusIdle means all of the operator's assigned items are done.
	OperatorStatusIdle OperatorStatus = "IDLE"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// ImportGridRequest is the JSON body for ingesting an already-decoded grid.
// Uploading an xlsx workbook instead goes through the multipart form field.
type ImportGridRequest struct {
	Filename string     `json:"filename" validate:"required,min=1,max=500"`
	Grid     [][]string `json:"grid" validate:"required,min=1"`
}

// ConfirmItemRequest is the body for confirming a work item.
type ConfirmItemRequest struct {
	ReportedQuantity int `json:"reportedQuantity" validate:"min=0"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// ImportResult reports the outcome of one file ingestion.
type ImportResult struct {
	OrderID      string `json:"orderId"`
	Zone         string `json:"zone,omitempty"`
	CreatedLabel string `json:"createdLabel,omitempty"`
	DueLabel     string `json:"dueLabel,omitempty"`
	RowsInserted int    `json:"rowsInserted"`
}

// ActiveOrderResponse is one entry in an operator's order queue.
type ActiveOrderResponse struct {
	OrderID        string  `json:"orderId"`
	Zone           *string `json:"zone"`
	TotalItems     int     `json:"totalItems"`
	CompletedItems int     `json:"completedItems"`
}

// OrderItemResponse is one work item in an order listing.
type OrderItemResponse struct {
	ItemID             uuid.UUID  `json:"itemId"`
	ProductCode        string     `json:"productCode"`
	ProductDescription string     `json:"productDescription"`
	PlannedQuantity    int        `json:"plannedQuantity"`
	CompletedQuantity  *int       `json:"completedQuantity"`
	Status             ItemStatus `json:"status"`
}

// AssignOrderResponse reports how many items an operator claimed.
type AssignOrderResponse struct {
	OrderID      string `json:"orderId"`
	ItemsClaimed int64  `json:"itemsClaimed"`
}

// KPIResponse is the tenant dashboard summary.
type KPIResponse struct {
	TotalOrders     int `json:"totalOrders"`
	PendingItems    int `json:"pendingItems"`
	ActiveOperators int `json:"activeOperators"`
	EfficiencyPct   int `json:"efficiencyPct"`
}

// OperatorRollupResponse is one row of the per-operator dashboard table.
type OperatorRollupResponse struct {
	OperatorName   string         `json:"operatorName"`
	Status         OperatorStatus `json:"status"`
	OrdersAssigned int            `json:"ordersAssigned"`
	ItemsPerHour   int            `json:"itemsPerHour"`
}
