package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// ConnectionRecorder receives connection and event counts for monitoring
type ConnectionRecorder interface {
	IncrementWSConnections()
	DecrementWSConnections()
	RecordWSEvent(event string)
}

// ThreadScope is the subscription scope for a single thread's events
func ThreadScope(threadID string) string {
	return "thread:" + threadID
}

// KindScope is the subscription scope for list-level events of a thread kind
func KindScope(kind string) string {
	return "kind:" + kind
}

type envelope struct {
	scope string
	event string
	data  []byte
}

// Hub routes published events to clients subscribed to the matching scopes.
// It implements Notifier; publishing is non-blocking and events are dropped
// when the queue is full rather than stalling a request.
type Hub struct {
	rooms      map[string]map[*Client]bool
	roomsMu    sync.RWMutex
	register   chan *Client
	unregister chan *Client
	publish    chan envelope
	logger     *zap.Logger
	recorder   ConnectionRecorder
}

// NewHub creates a hub and starts its routing loop
func NewHub(logger *zap.Logger, recorder ConnectionRecorder) *Hub {
	hub := &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan envelope, 256),
		logger:     logger,
		recorder:   recorder,
	}

	go hub.run()

	return hub
}

// Publish broadcasts an event to every client subscribed to the scope.
// It never blocks: when the hub queue is full the event is dropped.
func (h *Hub) Publish(scope string, event string, payload interface{}) {
	data, err := json.Marshal(Event{
		Event:     event,
		Scope:     scope,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("Failed to marshal realtime event",
			zap.String("scope", scope),
			zap.String("event", event),
			zap.Error(err))
		return
	}

	select {
	case h.publish <- envelope{scope: scope, event: event, data: data}:
	default:
		h.logger.Warn("Realtime event dropped, hub queue full",
			zap.String("scope", scope),
			zap.String("event", event))
	}
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.roomsMu.Lock()
			for _, scope := range client.scopes {
				if h.rooms[scope] == nil {
					h.rooms[scope] = make(map[*Client]bool)
				}
				h.rooms[scope][client] = true
			}
			h.roomsMu.Unlock()

			if h.recorder != nil {
				h.recorder.IncrementWSConnections()
			}
			h.logger.Info("Client registered",
				zap.Strings("scopes", client.scopes))

		case client := <-h.unregister:
			h.roomsMu.Lock()
			removed := false
			for _, scope := range client.scopes {
				if clients, ok := h.rooms[scope]; ok {
					if _, exists := clients[client]; exists {
						delete(clients, client)
						removed = true
						if len(clients) == 0 {
							delete(h.rooms, scope)
						}
					}
				}
			}
			h.roomsMu.Unlock()

			if removed {
				close(client.send)
				if h.recorder != nil {
					h.recorder.DecrementWSConnections()
				}
				h.logger.Info("Client unregistered",
					zap.Strings("scopes", client.scopes))
			}

		case env := <-h.publish:
			if h.recorder != nil {
				h.recorder.RecordWSEvent(env.event)
			}
			h.roomsMu.RLock()
			for client := range h.rooms[env.scope] {
				select {
				case client.send <- env.data:
				default:
					// Slow consumer, skip rather than block the hub
				}
			}
			h.roomsMu.RUnlock()
		}
	}
}

// Client is a single WebSocket connection subscribed to a set of scopes
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	scopes []string
	hub    *Hub
}

// NewClient wraps a WebSocket connection and registers it with the hub
func (h *Hub) NewClient(conn *websocket.Conn, scopes []string) *Client {
	client := &Client{
		conn:   conn,
		send:   make(chan []byte, 64),
		scopes: scopes,
		hub:    h,
	}
	h.register <- client
	return client
}

// ReadPump drains inbound frames so pong handling works, and unregisters on
// close. The protocol is server-push only; inbound payloads are discarded.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("Unexpected WebSocket close", zap.Error(err))
			}
			return
		}
	}
}

// WritePump forwards hub events to the connection and keeps it alive with pings
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
