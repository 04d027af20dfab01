// Package ws implements the realtime channel. A Hub fans events out to
// connected dashboard clients over WebSocket, scoped to organization rooms.
package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/events"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// Hub owns the client set and serializes all membership changes and
// broadcasts through its run loop, so no shared map access needs locking.
type Hub struct {
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan events.Event
	rooms      chan chan []string
	done       chan struct{}
	logger     logger.Logger
}

// NewHub creates a new Hub instance. Call Run in its own goroutine before
// serving connections.
func NewHub(logger logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan events.Event, 64),
		rooms:      make(chan chan []string),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations and broadcasts until Close is called.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.logger.Info("websocket client connected (user ", c.userID, ")")
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.logger.Info("websocket client disconnected (user ", c.userID, ")")
			}
		case event := <-h.broadcast:
			h.deliver(event)
		case reply := <-h.rooms:
			reply <- h.roomSnapshot()
		case <-h.done:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		}
	}
}

// Close shuts down the run loop and disconnects every client.
func (h *Hub) Close() {
	close(h.done)
}

// Publish implements events.Publisher. Delivery is best effort; events are
// dropped when the broadcast queue is full rather than blocking the caller.
func (h *Hub) Publish(event events.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("dropping realtime event of type ", event.Type, ": broadcast queue full")
	}
}

// roomSnapshot collects the distinct organization IDs with connected clients.
// Only the run loop may call it.
func (h *Hub) roomSnapshot() []string {
	seen := make(map[string]struct{}, len(h.clients))
	orgs := make([]string, 0, len(h.clients))
	for c := range h.clients {
		if _, ok := seen[c.organizationID]; ok {
			continue
		}
		seen[c.organizationID] = struct{}{}
		orgs = append(orgs, c.organizationID)
	}
	return orgs
}

// organizations asks the run loop for the occupied organization rooms.
func (h *Hub) organizations() []string {
	reply := make(chan []string, 1)
	select {
	case h.rooms <- reply:
		return <-reply
	case <-h.done:
		return nil
	}
}

func (h *Hub) deliver(event events.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode realtime event: ", err)
		return
	}

	for c := range h.clients {
		if event.OrganizationID != "" && c.organizationID != event.OrganizationID {
			continue
		}
		select {
		case c.send <- payload:
		default:
			// Slow consumer; drop it rather than stalling the hub.
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// BroadcastStatus pushes the platform status snapshot to every client on a
// fixed cadence until the context is cancelled.
func (h *Hub) BroadcastStatus(ctx context.Context, svc system.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			status, err := svc.Status(ctx)
			if err != nil {
				h.logger.Error("failed to build status snapshot: ", err)
				continue
			}
			h.Publish(events.Event{
				Type:      events.TypeSystemStatus,
				Payload:   status,
				Timestamp: time.Now(),
			})
		case <-ctx.Done():
			return
		case <-h.done:
			return
		}
	}
}

// dashboardData is the per-organization snapshot pushed as dashboard-data.
type dashboardData struct {
	ActiveKeys           int `json:"activeKeys"`
	QuantumResistantKeys int `json:"quantumResistantKeys"`
	ActiveThreats        int `json:"activeThreats"`
	CriticalLast7Days    int `json:"criticalLast7Days"`
}

// BroadcastDashboard pushes a dashboard snapshot to each occupied
// organization room on a fixed cadence until the context is cancelled.
func (h *Hub) BroadcastDashboard(ctx context.Context, lifecycle keys.LifecycleService, threatService threats.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.publishDashboards(ctx, lifecycle, threatService)
		case <-ctx.Done():
			return
		case <-h.done:
			return
		}
	}
}

func (h *Hub) publishDashboards(ctx context.Context, lifecycle keys.LifecycleService, threatService threats.Service) {
	orgs := h.organizations()
	if len(orgs) == 0 {
		return
	}

	stats, err := threatService.Stats(ctx)
	if err != nil {
		h.logger.Error("failed to build threat summary: ", err)
		return
	}

	for _, org := range orgs {
		records, err := lifecycle.List(ctx, org)
		if err != nil {
			h.logger.Error("failed to list keys for organization ", org, ": ", err)
			continue
		}

		data := dashboardData{
			ActiveThreats:     stats.TotalActive,
			CriticalLast7Days: stats.CriticalLast7,
		}
		for _, k := range records {
			if k.Status != keys.StatusActive {
				continue
			}
			data.ActiveKeys++
			if k.QuantumResistant {
				data.QuantumResistantKeys++
			}
		}

		h.Publish(events.Event{
			Type:           events.TypeDashboardData,
			OrganizationID: org,
			Payload:        data,
			Timestamp:      time.Now(),
		})
	}
}
