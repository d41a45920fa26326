package events

import (
	platformevents "picking_portal_backend/platform/events"
	"picking_portal_backend/platform/logger"
)

// InMemoryBus aliases the platform bus so domain code can import the bus
// and the picking event types from a single package.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus constructs the platform in-memory bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
