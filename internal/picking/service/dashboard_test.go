package service

import (
	"context"
	"testing"

	"picking_portal_backend/internal/picking/repository"
	"picking_portal_backend/internal/picking/transport"

	"github.com/google/uuid"
)

func TestKPIsEfficiencyTruncates(t *testing.T) {
	store := &fakeStore{kpis: repository.TenantKPIs{
		TotalOrders:     4,
		PendingItems:    1,
		ActiveOperators: 2,
		TotalItems:      3,
	}}
	svc, _ := newTestService(store)

	kpis, err := svc.KPIs(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2 of 3 items done = 66.67%, truncated to 66.
	if kpis.EfficiencyPct != 66 {
		t.Fatalf("expected efficiency 66, got %d", kpis.EfficiencyPct)
	}
	if kpis.PendingItems > store.kpis.TotalItems {
		t.Fatal("pending items may never exceed total items")
	}
}

func TestKPIsEmptyQueueReportsZeroEfficiency(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestService(store)

	kpis, err := svc.KPIs(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kpis.EfficiencyPct != 0 {
		t.Fatalf("expected 0%% efficiency on empty queue, got %d", kpis.EfficiencyPct)
	}
}

type staticNames map[uuid.UUID]string

func (n staticNames) ResolveOperatorName(_ context.Context, id uuid.UUID) (string, error) {
	return n[id], nil
}

func TestOperatorRollups(t *testing.T) {
	busy := uuid.New()
	idle := uuid.New()
	store := &fakeStore{rollups: []repository.OperatorRollup{
		{OperatorID: busy, OrdersAssigned: 3, PlannedQuantity: 100, PendingItems: 4},
		{OperatorID: idle, OrdersAssigned: 1, PlannedQuantity: 7, PendingItems: 0},
	}}
	svc, _ := newTestService(store)
	svc.SetOperatorNameResolver(staticNames{busy: "Marta"})

	rollups, err := svc.OperatorRollups(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rollups) != 2 {
		t.Fatalf("expected 2 rollups, got %d", len(rollups))
	}

	first := rollups[0]
	if first.OperatorName != "Marta" {
		t.Fatalf("expected resolved name, got %q", first.OperatorName)
	}
	if first.Status != transport.OperatorStatusActive {
		t.Fatalf("expected ACTIVE status, got %s", first.Status)
	}
	// 100 planned units over a fixed 8-hour shift, truncated.
	if first.ItemsPerHour != 12 {
		t.Fatalf("expected 12 items per hour, got %d", first.ItemsPerHour)
	}

	second := rollups[1]
	if second.OperatorName != idle.String() {
		t.Fatalf("expected id fallback for unresolved name, got %q", second.OperatorName)
	}
	if second.Status != transport.OperatorStatusIdle {
		t.Fatalf("expected IDLE status, got %s", second.Status)
	}
	if second.ItemsPerHour != 0 {
		t.Fatalf("expected truncated 0 items per hour, got %d", second.ItemsPerHour)
	}
}
