package repository

import (
	"strings"
	"testing"
)

// Tenant scoping is the only isolation mechanism between tenants, so every
// query must carry the tenant filter. These tests pin the fragments.

func TestAllQueriesAreTenantScoped(t *testing.T) {
	queries := map[string]string{
		"listActiveOrdersQuery": listActiveOrdersQuery,
		"listOrderItemsQuery":   listOrderItemsQuery,
		"orderProgressQuery":    orderProgressQuery,
		"tenantKPIsQuery":       tenantKPIsQuery,
		"operatorRollupQuery":   operatorRollupQuery,
		"assignOrderQuery":      assignOrderQuery,
	}

	for name, query := range queries {
		if !strings.Contains(strings.ToLower(query), "tenant_id = $1") {
			t.Fatalf("%s is missing the tenant_id filter", name)
		}
	}
}

func TestConfirmItemQueryScopesTenantAndIsOneWay(t *testing.T) {
	query := strings.ToLower(confirmItemQuery)

	if !strings.Contains(query, "where id = $1 and tenant_id = $2") {
		t.Fatal("confirm query must match item inside its tenant scope")
	}
	if !strings.Contains(query, "status = 'completed'") {
		t.Fatal("confirm query must set the terminal COMPLETED state")
	}
	if strings.Contains(query, "status = 'pending'") {
		t.Fatal("confirm query must not filter on current status; re-confirm is idempotent")
	}
	if !strings.Contains(query, "select prior.status") {
		t.Fatal("confirm query must return the pre-update status so callers can tell a transition from a replay")
	}
}

func TestListActiveOrdersQueryOrderingAndFilters(t *testing.T) {
	query := strings.ToLower(listActiveOrdersQuery)

	if !strings.Contains(query, "order by order_id asc") {
		t.Fatal("active orders must be ordered by order id ascending")
	}
	if !strings.Contains(query, "status <> 'completed_order'") {
		t.Fatal("active orders must filter out the derived COMPLETED_ORDER tag")
	}
	if !strings.Contains(query, "having count(*) filter (where status <> 'pending') < count(*)") {
		t.Fatal("active orders must exclude fully completed orders")
	}
}

func TestListOrderItemsQueryListsUnfinishedFirst(t *testing.T) {
	query := strings.ToLower(listOrderItemsQuery)

	if !strings.Contains(query, "case when status = 'pending' then 0 else 1 end") {
		t.Fatal("order items must sort pending items before completed ones")
	}
	if !strings.Contains(query, "product_description asc") {
		t.Fatal("order items must sort by description within a status")
	}
}

func TestAssignOrderQueryOnlyClaimsUnassignedPending(t *testing.T) {
	query := strings.ToLower(assignOrderQuery)

	if !strings.Contains(query, "status = 'pending'") {
		t.Fatal("assignment must only touch pending items")
	}
	if !strings.Contains(query, "assigned_operator_id is null") {
		t.Fatal("assignment must not steal items from another operator")
	}
}
