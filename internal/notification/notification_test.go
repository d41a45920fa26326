package notification

import (
	"context"
	"strings"
	"testing"

	"picking_portal_backend/internal/events"
	"picking_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type captureSender struct {
	subjects []string
	bodies   []string
}

func (s *captureSender) Send(_ context.Context, subject, body string) error {
	s.subjects = append(s.subjects, subject)
	s.bodies = append(s.bodies, body)
	return nil
}

func TestFileIngestedProducesNotification(t *testing.T) {
	sender := &captureSender{}
	log := logger.New("development")
	svc := New(sender, log)

	bus := events.NewInMemoryBus(log)
	svc.Subscribe(bus)

	err := bus.PublishSync(context.Background(), events.FileIngested{
		TenantID:     uuid.New(),
		SourceFile:   "pedidos_enero.xlsx",
		OrderID:      "PED-104",
		RowsInserted: 17,
	})
	if err != nil {
		t.Fatalf("PublishSync returned error: %v", err)
	}

	if len(sender.subjects) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sender.subjects))
	}
	if sender.subjects[0] != "Order PED-104 imported" {
		t.Errorf("unexpected subject %q", sender.subjects[0])
	}
	if !strings.Contains(sender.bodies[0], "17 items") {
		t.Errorf("body should mention the row count, got %q", sender.bodies[0])
	}
	if !strings.Contains(sender.bodies[0], "pedidos_enero.xlsx") {
		t.Errorf("body should mention the source file, got %q", sender.bodies[0])
	}
}

func TestOrderCompletedProducesNotification(t *testing.T) {
	sender := &captureSender{}
	log := logger.New("development")
	svc := New(sender, log)

	bus := events.NewInMemoryBus(log)
	svc.Subscribe(bus)

	err := bus.PublishSync(context.Background(), events.OrderCompleted{
		TenantID:   uuid.New(),
		OperatorID: uuid.New(),
		OrderID:    "PED-9",
		TotalItems: 4,
	})
	if err != nil {
		t.Fatalf("PublishSync returned error: %v", err)
	}

	if len(sender.subjects) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sender.subjects))
	}
	if sender.subjects[0] != "Order PED-9 completed" {
		t.Errorf("unexpected subject %q", sender.subjects[0])
	}
}

func TestUnsubscribedEventIsIgnored(t *testing.T) {
	sender := &captureSender{}
	log := logger.New("development")
	svc := New(sender, log)

	bus := events.NewInMemoryBus(log)
	svc.Subscribe(bus)

	err := bus.PublishSync(context.Background(), events.ItemConfirmed{
		TenantID: uuid.New(),
		OrderID:  "PED-1",
	})
	if err != nil {
		t.Fatalf("PublishSync returned error: %v", err)
	}

	if len(sender.subjects) != 0 {
		t.Fatalf("expected no notifications, got %d", len(sender.subjects))
	}
}
