package events

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // configure in prod
}

// Event is a real-time update pushed to subscribed clients. Topics carry
// bid and lifecycle activity so UIs do not poll: job:{id} for everyone
// watching a request, user:{id} for a party's own feed.
type Event struct {
	Type    string      `json:"type"`
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload,omitempty"`
}

const (
	EventBidCreated       = "bid.created"
	EventBidAccepted      = "bid.accepted"
	EventJobStatusChanged = "job.status_changed"
	EventJobPaid          = "job.paid"
)

func JobTopic(jobID int64) string { return "job:" + strconv.FormatInt(jobID, 10) }

func UserTopic(userID int64) string { return "user:" + strconv.FormatInt(userID, 10) }

// connection is a single WebSocket client with its topic subscriptions.
type connection struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
	topics map[string]bool
}

// Hub fans events out to live subscribers. Subscriptions are explicitly
// scoped: a client subscribes on mount, unsubscribes on unmount, and every
// disconnect path unregisters the connection.
type Hub struct {
	mu          sync.RWMutex
	connections map[int64]*connection // userID -> connection
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*connection),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c.userID] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.userID]; ok && existing == c {
		delete(h.connections, c.userID)
		close(c.send)
	}
}

// Publish sends an event to every connected subscriber of its topic.
// Publishing never blocks a caller: slow clients are skipped.
func (h *Hub) Publish(topic string, event *Event) {
	event.Topic = topic
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections {
		if c.topics[topic] {
			select {
			case c.send <- data:
			default:
			}
		}
	}
}

// ServeWS registers a new connection and starts the read/write loops. The
// caller's own user topic is subscribed up front.
func (h *Hub) ServeWS(conn *websocket.Conn, userID int64) {
	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 256),
		topics: map[string]bool{UserTopic(userID): true},
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c) // blocks until disconnect
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var cmd struct {
			Type  string `json:"type"`
			Topic string `json:"topic"`
		}
		if err := json.Unmarshal(msg, &cmd); err != nil {
			continue
		}

		switch cmd.Type {
		case "subscribe":
			h.mu.Lock()
			c.topics[cmd.Topic] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.topics, cmd.Topic)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
