package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"picking_portal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ── Domain Models ─────────────────────────────────────────────────────────────

// WorkItem is the database model for one picking line item.
type WorkItem struct {
	ID                 uuid.UUID  `db:"id"`
	TenantID           uuid.UUID  `db:"tenant_id"`
	SourceFile         string     `db:"source_file"`
	OrderID            string     `db:"order_id"`
	ProductCode        string     `db:"product_code"`
	ProductDescription string     `db:"product_description"`
	PlannedQuantity    int        `db:"planned_quantity"`
	CompletedQuantity  *int       `db:"completed_quantity"`
	Zone               *string    `db:"zone"`
	Warehouse          string     `db:"warehouse"`
	OrderCreatedAt     *string    `db:"order_created_at"`
	OrderDueAt         *string    `db:"order_due_at"`
	AssignedOperatorID *uuid.UUID `db:"assigned_operator_id"`
	Status             string     `db:"status"`
	CompletedAt        *time.Time `db:"completed_at"`
	CreatedAt          time.Time  `db:"created_at"`
}

// OrderSummary aggregates the items of one order for an operator's queue.
type OrderSummary struct {
	OrderID        string
	Zone           *string
	TotalItems     int
	CompletedItems int
}

// TenantKPIs are the per-tenant dashboard counters.
type TenantKPIs struct {
	TotalOrders     int
	PendingItems    int
	ActiveOperators int
	TotalItems      int
}

// OperatorRollup aggregates assigned work per operator.
type OperatorRollup struct {
	OperatorID      uuid.UUID
	OrdersAssigned  int
	PlannedQuantity int
	PendingItems    int
}

// ── Queries ───────────────────────────────────────────────────────────────────

// Every query filters on tenant_id; that filter is the sole isolation
// mechanism between tenants.

const insertWorkItemQuery = `
	INSERT INTO picking_work_items (
		id, tenant_id, source_file, order_id, product_code, product_description,
		planned_quantity, zone, warehouse, order_created_at, order_due_at,
		status, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

const listActiveOrdersQuery = `
	SELECT order_id,
	       MIN(zone) AS zone,
	       COUNT(*) AS total_items,
	       COUNT(*) FILTER (WHERE status <> 'PENDING') AS completed_items
	FROM picking_work_items
	WHERE tenant_id = $1
	  AND status <> 'COMPLETED_ORDER'
	  AND (assigned_operator_id = $2 OR assigned_operator_id IS NULL)
	GROUP BY order_id
	HAVING COUNT(*) FILTER (WHERE status <> 'PENDING') < COUNT(*)
	ORDER BY order_id ASC`

const listOrderItemsQuery = `
	SELECT id, product_code, product_description, planned_quantity,
	       completed_quantity, status
	FROM picking_work_items
	WHERE tenant_id = $1
	  AND order_id = $2
	  AND (assigned_operator_id = $3 OR assigned_operator_id IS NULL)
	ORDER BY CASE WHEN status = 'PENDING' THEN 0 ELSE 1 END ASC,
	         product_description ASC`

// The subselect in RETURNING evaluates against the statement's snapshot,
// so it reports the status from before the update.
const confirmItemQuery = `
	UPDATE picking_work_items
	SET completed_quantity = $3,
	    completed_at = $4,
	    status = 'COMPLETED'
	WHERE id = $1 AND tenant_id = $2
	RETURNING order_id,
	          (SELECT prior.status FROM picking_work_items prior WHERE prior.id = $1)`

const assignOrderQuery = `
	UPDATE picking_work_items
	SET assigned_operator_id = $3
	WHERE tenant_id = $1
	  AND order_id = $2
	  AND status = 'PENDING'
	  AND assigned_operator_id IS NULL`

const orderProgressQuery = `
	SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE status <> 'PENDING')
	FROM picking_work_items
	WHERE tenant_id = $1 AND order_id = $2`

const tenantKPIsQuery = `
	SELECT COUNT(DISTINCT order_id),
	       COUNT(*) FILTER (WHERE status = 'PENDING'),
	       COUNT(DISTINCT assigned_operator_id) FILTER (WHERE assigned_operator_id IS NOT NULL),
	       COUNT(*)
	FROM picking_work_items
	WHERE tenant_id = $1`

const operatorRollupQuery = `
	SELECT assigned_operator_id,
	       COUNT(DISTINCT order_id),
	       COALESCE(SUM(planned_quantity), 0),
	       COUNT(*) FILTER (WHERE status = 'PENDING')
	FROM picking_work_items
	WHERE tenant_id = $1 AND assigned_operator_id IS NOT NULL
	GROUP BY assigned_operator_id
	ORDER BY COUNT(DISTINCT order_id) DESC, assigned_operator_id ASC`

// ── Repository ────────────────────────────────────────────────────────────────

const itemNotFoundMsg = "work item not found"

// Repository provides database operations for picking work items.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new picking repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// InsertBatch persists all items of one ingested file in a single
// transaction. Any insert failure rolls the whole batch back; a file is
// never partially committed.
func (r *Repository) InsertBatch(ctx context.Context, items []WorkItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, item := range items {
		if _, err := tx.Exec(ctx, insertWorkItemQuery,
			item.ID, item.TenantID, item.SourceFile, item.OrderID,
			item.ProductCode, item.ProductDescription, item.PlannedQuantity,
			item.Zone, item.Warehouse, item.OrderCreatedAt, item.OrderDueAt,
			item.Status, item.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert work item %s: %w", item.ProductCode, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// ListActiveOrders returns the orders visible to an operator that still have
// pending items, ordered by order id.
func (r *Repository) ListActiveOrders(ctx context.Context, tenantID, operatorID uuid.UUID) ([]OrderSummary, error) {
	rows, err := r.pool.Query(ctx, listActiveOrdersQuery, tenantID, operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active orders: %w", err)
	}
	defer rows.Close()

	out := make([]OrderSummary, 0)
	for rows.Next() {
		var s OrderSummary
		if err := rows.Scan(&s.OrderID, &s.Zone, &s.TotalItems, &s.CompletedItems); err != nil {
			return nil, fmt.Errorf("failed to scan order summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListOrderItems returns the items of one order visible to an operator,
// pending items first, then by description.
func (r *Repository) ListOrderItems(ctx context.Context, tenantID uuid.UUID, orderID string, operatorID uuid.UUID) ([]WorkItem, error) {
	rows, err := r.pool.Query(ctx, listOrderItemsQuery, tenantID, orderID, operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	out := make([]WorkItem, 0)
	for rows.Next() {
		var item WorkItem
		if err := rows.Scan(&item.ID, &item.ProductCode, &item.ProductDescription,
			&item.PlannedQuantity, &item.CompletedQuantity, &item.Status); err != nil {
			return nil, fmt.Errorf("failed to scan work item: %w", err)
		}
		item.TenantID = tenantID
		item.OrderID = orderID
		out = append(out, item)
	}
	return out, rows.Err()
}

// ConfirmItem marks an item completed with the reported quantity and returns
// the order it belongs to, plus whether the item was still pending before
// the update. Re-confirming overwrites the same fields, so the update is
// idempotent, but only a real PENDING transition reports wasPending true.
// Items outside the tenant scope are not found.
func (r *Repository) ConfirmItem(ctx context.Context, itemID, tenantID uuid.UUID, reportedQuantity int) (string, bool, error) {
	var orderID, priorStatus string
	err := r.pool.QueryRow(ctx, confirmItemQuery, itemID, tenantID, reportedQuantity, time.Now()).Scan(&orderID, &priorStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, apperr.NotFound(itemNotFoundMsg)
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to confirm work item: %w", err)
	}
	return orderID, priorStatus == "PENDING", nil
}

// AssignOrder claims every unassigned pending item of an order for the
// operator and returns how many items were claimed.
func (r *Repository) AssignOrder(ctx context.Context, tenantID uuid.UUID, orderID string, operatorID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, assignOrderQuery, tenantID, orderID, operatorID)
	if err != nil {
		return 0, fmt.Errorf("failed to assign order: %w", err)
	}
	return tag.RowsAffected(), nil
}

// OrderProgress returns total and completed item counts for one order.
func (r *Repository) OrderProgress(ctx context.Context, tenantID uuid.UUID, orderID string) (total, completed int, err error) {
	if err := r.pool.QueryRow(ctx, orderProgressQuery, tenantID, orderID).Scan(&total, &completed); err != nil {
		return 0, 0, fmt.Errorf("failed to read order progress: %w", err)
	}
	return total, completed, nil
}

// TenantKPIs returns the raw dashboard counters for a tenant.
func (r *Repository) TenantKPIs(ctx context.Context, tenantID uuid.UUID) (TenantKPIs, error) {
	var k TenantKPIs
	if err := r.pool.QueryRow(ctx, tenantKPIsQuery, tenantID).Scan(
		&k.TotalOrders, &k.PendingItems, &k.ActiveOperators, &k.TotalItems,
	); err != nil {
		return TenantKPIs{}, fmt.Errorf("failed to read tenant KPIs: %w", err)
	}
	return k, nil
}

// OperatorRollups returns per-operator aggregates for a tenant.
func (r *Repository) OperatorRollups(ctx context.Context, tenantID uuid.UUID) ([]OperatorRollup, error) {
	rows, err := r.pool.Query(ctx, operatorRollupQuery, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to read operator rollups: %w", err)
	}
	defer rows.Close()

	out := make([]OperatorRollup, 0)
	for rows.Next() {
		var ru OperatorRollup
		if err := rows.Scan(&ru.OperatorID, &ru.OrdersAssigned, &ru.PlannedQuantity, &ru.PendingItems); err != nil {
			return nil, fmt.Errorf("failed to scan operator rollup: %w", err)
		}
		out = append(out, ru)
	}
	return out, rows.Err()
}
