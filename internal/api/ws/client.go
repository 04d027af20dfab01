package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/events"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// client is one connected WebSocket peer.
type client struct {
	hub            *Hub
	conn           *websocket.Conn
	send           chan []byte
	userID         string
	organizationID string
}

// inboundMessage is the only client-to-server frame the protocol supports.
type inboundMessage struct {
	Type    string `json:"type"`
	EventID string `json:"eventId"`
}

// readPump consumes client frames. An acknowledge frame is echoed to the
// client's organization room as an event-acknowledged event.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket read error: ", err)
			}
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		if msg.Type == "acknowledge" && msg.EventID != "" {
			c.hub.Publish(events.Event{
				Type:           events.TypeEventAcknowledged,
				OrganizationID: c.organizationID,
				Payload: map[string]string{
					"eventId":        msg.EventID,
					"acknowledgedBy": c.userID,
				},
				Timestamp: time.Now(),
			})
		}
	}
}

// writePump forwards hub messages to the peer and keeps the connection alive
// with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
