// Package notification subscribes to picking domain events and forwards
// them to a pluggable sender. The default sender only logs, which keeps
// the module useful in environments without an outbound channel.
package notification

import (
	"context"
	"fmt"

	"picking_portal_backend/internal/events"
	"picking_portal_backend/platform/logger"
)

// Sender delivers a rendered notification somewhere. Implementations decide
// the channel (webhook, chat, ...).
type Sender interface {
	Send(ctx context.Context, subject, body string) error
}

// LogSender writes notifications to the structured log.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender creates a sender that only logs.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

// Send implements Sender.
func (s *LogSender) Send(_ context.Context, subject, body string) error {
	s.log.Info("notification", "subject", subject, "body", body)
	return nil
}

// Service renders picking events into notifications.
type Service struct {
	sender Sender
	log    *logger.Logger
}

// New creates the notification service.
func New(sender Sender, log *logger.Logger) *Service {
	return &Service{sender: sender, log: log}
}

// Subscribe registers the service's handlers on the event bus.
func (s *Service) Subscribe(bus events.Bus) {
	bus.Subscribe(events.FileIngested{}.EventName(), events.HandlerFunc(s.onFileIngested))
	bus.Subscribe(events.OrderCompleted{}.EventName(), events.HandlerFunc(s.onOrderCompleted))
}

func (s *Service) onFileIngested(ctx context.Context, event events.Event) error {
	e, ok := event.(events.FileIngested)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventName())
	}

	subject := fmt.Sprintf("Order %s imported", e.OrderID)
	body := fmt.Sprintf("%d items from %s are ready for picking.", e.RowsInserted, e.SourceFile)
	return s.sender.Send(ctx, subject, body)
}

func (s *Service) onOrderCompleted(ctx context.Context, event events.Event) error {
	e, ok := event.(events.OrderCompleted)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventName())
	}

	subject := fmt.Sprintf("Order %s completed", e.OrderID)
	body := fmt.Sprintf("All %d items were confirmed.", e.TotalItems)
	return s.sender.Send(ctx, subject, body)
}
