package service

import (
	"context"
	"errors"
	"testing"

	"picking_portal_backend/internal/events"
	"picking_portal_backend/internal/picking/repository"
	"picking_portal_backend/internal/picking/sheet"
	"picking_portal_backend/internal/picking/transport"
	"picking_portal_backend/platform/apperr"

	"github.com/google/uuid"
)

// fakeStore implements Store in memory for service tests.
type fakeStore struct {
	items []repository.WorkItem

	insertErr  error
	confirmErr error

	activeOrders []repository.OrderSummary
	kpis         repository.TenantKPIs
	rollups      []repository.OperatorRollup
}

func (f *fakeStore) InsertBatch(_ context.Context, items []repository.WorkItem) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeStore) ListActiveOrders(context.Context, uuid.UUID, uuid.UUID) ([]repository.OrderSummary, error) {
	return f.activeOrders, nil
}

func (f *fakeStore) ListOrderItems(_ context.Context, tenantID uuid.UUID, orderID string, _ uuid.UUID) ([]repository.WorkItem, error) {
	out := make([]repository.WorkItem, 0)
	for _, item := range f.items {
		if item.TenantID == tenantID && item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeStore) ConfirmItem(_ context.Context, itemID, tenantID uuid.UUID, reportedQuantity int) (string, bool, error) {
	if f.confirmErr != nil {
		return "", false, f.confirmErr
	}
	for i := range f.items {
		if f.items[i].ID == itemID && f.items[i].TenantID == tenantID {
			wasPending := f.items[i].Status == string(transport.ItemStatusPending)
			qty := reportedQuantity
			f.items[i].CompletedQuantity = &qty
			f.items[i].Status = string(transport.ItemStatusCompleted)
			return f.items[i].OrderID, wasPending, nil
		}
	}
	return "", false, apperr.NotFound("work item not found")
}

func (f *fakeStore) AssignOrder(_ context.Context, tenantID uuid.UUID, orderID string, operatorID uuid.UUID) (int64, error) {
	var claimed int64
	for i := range f.items {
		if f.items[i].TenantID != tenantID || f.items[i].OrderID != orderID {
			continue
		}
		if f.items[i].Status != string(transport.ItemStatusPending) || f.items[i].AssignedOperatorID != nil {
			continue
		}
		op := operatorID
		f.items[i].AssignedOperatorID = &op
		claimed++
	}
	return claimed, nil
}

func (f *fakeStore) OrderProgress(_ context.Context, tenantID uuid.UUID, orderID string) (int, int, error) {
	var total, completed int
	for _, item := range f.items {
		if item.TenantID == tenantID && item.OrderID == orderID {
			total++
			if item.Status != string(transport.ItemStatusPending) {
				completed++
			}
		}
	}
	return total, completed, nil
}

func (f *fakeStore) TenantKPIs(context.Context, uuid.UUID) (repository.TenantKPIs, error) {
	return f.kpis, nil
}

func (f *fakeStore) OperatorRollups(context.Context, uuid.UUID) ([]repository.OperatorRollup, error) {
	return f.rollups, nil
}

// recordingBus captures published events synchronously.
type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

type testPickingConfig struct{}

func (testPickingConfig) GetDefaultWarehouse() string { return "PRINCIPAL" }
func (testPickingConfig) GetMaxImportBytes() int64    { return 1 << 20 }

func newTestService(store *fakeStore) (*Service, *recordingBus) {
	svc := New(store, testPickingConfig{})
	bus := &recordingBus{}
	svc.SetEventBus(bus)
	return svc, bus
}

func importFixtureGrid() sheet.Grid {
	return sheet.Grid{
		{"PLANILLA"},
		{"PED-42"},
		{"OBSERVACIONES", "", "", "ZONA SUR"},
		{"Código", "Descripción", "Cantidad"},
		{"A", "Caja grande", "5"},
		{"B", "Caja mediana", "0"},
		{"C", "Caja chica", "7"},
	}
}

func TestIngestEndToEnd(t *testing.T) {
	store := &fakeStore{}
	svc, bus := newTestService(store)
	tenantID := uuid.New()

	result, err := svc.Ingest(context.Background(), tenantID, "picking.xlsx", importFixtureGrid())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RowsInserted != 2 {
		t.Fatalf("expected 2 rows inserted (zero-quantity row dropped), got %d", result.RowsInserted)
	}
	if result.OrderID != "PED-42" {
		t.Fatalf("expected order id PED-42, got %q", result.OrderID)
	}
	if result.Zone != "ZONA SUR" {
		t.Fatalf("expected zone ZONA SUR, got %q", result.Zone)
	}

	if len(store.items) != 2 {
		t.Fatalf("expected 2 stored items, got %d", len(store.items))
	}
	for _, item := range store.items {
		if item.PlannedQuantity <= 0 {
			t.Fatalf("invariant violated: stored item with quantity %d", item.PlannedQuantity)
		}
		if item.Status != string(transport.ItemStatusPending) {
			t.Fatalf("expected PENDING status, got %q", item.Status)
		}
		if item.TenantID != tenantID {
			t.Fatalf("expected tenant %s, got %s", tenantID, item.TenantID)
		}
		if item.Warehouse != "PRINCIPAL" {
			t.Fatalf("expected default warehouse tag, got %q", item.Warehouse)
		}
		if item.Zone == nil || *item.Zone != "ZONA SUR" {
			t.Fatalf("expected file zone stamped on item, got %v", item.Zone)
		}
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected one FileIngested event, got %d", len(bus.published))
	}
	ingested, ok := bus.published[0].(events.FileIngested)
	if !ok {
		t.Fatalf("expected FileIngested event, got %T", bus.published[0])
	}
	if ingested.RowsInserted != 2 || ingested.OrderID != "PED-42" {
		t.Fatalf("unexpected event payload: %+v", ingested)
	}
}

func TestIngestMissingHeaderAbortsFile(t *testing.T) {
	store := &fakeStore{}
	svc, bus := newTestService(store)

	grid := sheet.Grid{
		{"PLANILLA"},
		{"PED-1"},
		{"no header", "anywhere"},
	}

	_, err := svc.Ingest(context.Background(), uuid.New(), "broken.xlsx", grid)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.items) != 0 {
		t.Fatalf("expected nothing written, got %d items", len(store.items))
	}
	if len(bus.published) != 0 {
		t.Fatalf("expected no events, got %d", len(bus.published))
	}
}

func TestIngestAllRowsRejectedIsNotAnError(t *testing.T) {
	store := &fakeStore{}
	svc, bus := newTestService(store)

	grid := sheet.Grid{
		{"Código", "Descripción", "Cantidad"},
		{"A", "sin stock", "0"},
		{"", "sin codigo", "3"},
	}

	result, err := svc.Ingest(context.Background(), uuid.New(), "empty.xlsx", grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RowsInserted != 0 {
		t.Fatalf("expected 0 rows inserted, got %d", result.RowsInserted)
	}
	if result.OrderID != sheet.OrderIDUnassigned {
		t.Fatalf("expected sentinel order id, got %q", result.OrderID)
	}
	if len(bus.published) != 0 {
		t.Fatalf("expected no events for an empty batch, got %d", len(bus.published))
	}
}

func TestIngestStoreFailureSurfacesGenericInternal(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("duplicate key value violates unique constraint")}
	svc, _ := newTestService(store)

	_, err := svc.Ingest(context.Background(), uuid.New(), "picking.xlsx", importFixtureGrid())
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}

	var domainErr *apperr.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected apperr.Error, got %T", err)
	}
	if domainErr.Message != msgStoreFailure {
		t.Fatalf("expected generic store failure message, got %q", domainErr.Message)
	}
}
