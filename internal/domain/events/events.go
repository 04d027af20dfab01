// Package events defines the realtime event envelope pushed to dashboard
// clients and the publishing contract implemented by the WebSocket hub.
package events

import (
	"time"
)

// Event type constants
const (
	TypeSecurityEvent     = "security-event"
	TypeSecurityAlert     = "security-alert"
	TypeSystemStatus      = "system-status"
	TypeRotationCompleted = "rotation-completed"
	TypeEventAcknowledged = "event-acknowledged"
	TypeDashboardData     = "dashboard-data"
)

// Event is one realtime message. An empty OrganizationID broadcasts to every
// connected client; otherwise delivery is scoped to the organization's room.
type Event struct {
	Type           string      `json:"type"`
	OrganizationID string      `json:"-"`
	Payload        interface{} `json:"payload"`
	Timestamp      time.Time   `json:"timestamp"`
}

// Publisher delivers events to connected clients. Implementations must be
// safe for concurrent use.
type Publisher interface {
	Publish(event Event)
}

// NopPublisher discards all events. Used when the realtime channel is
// disabled and in tests.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(Event) {}
