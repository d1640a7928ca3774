// Package events re-exports the platform event bus and defines the domain
// events shared across modules. Internal modules import events from here
// while the bus implementation lives in platform/events.
package events

import (
	platformevents "freight_leads_backend/platform/events"
	"freight_leads_backend/platform/logger"
)

// Re-exported bus types so modules depend on a single events package.
type (
	Event       = platformevents.Event
	BaseEvent   = platformevents.BaseEvent
	Handler     = platformevents.Handler
	HandlerFunc = platformevents.HandlerFunc
	Bus         = platformevents.Bus
	InMemoryBus = platformevents.InMemoryBus
)

// NewBaseEvent creates a new base event with the current timestamp.
func NewBaseEvent() BaseEvent {
	return platformevents.NewBaseEvent()
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
