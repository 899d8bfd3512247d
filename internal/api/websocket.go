package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/amterp/swatch/internal/logging"
	"github.com/amterp/swatch/internal/model"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
	// A client this far behind is dropped; the page reconnects and is
	// greeted with the current state.
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || isLoopbackOrigin(origin)
	},
}

// Message types sent to browser clients.
const (
	MessageConnected = "connected"
	MessageState     = "state"
)

// WebSocketMessage is the JSON envelope of every message.
type WebSocketMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// connectedData is the payload of the connected message.
type connectedData struct {
	SessionID string `json:"session_id"`
}

// WebSocketHub pushes session state to every open tab. It subscribes to the
// session; tabs never send anything back.
type WebSocketHub struct {
	sessionID string
	snapshot  func() model.State
	log       *logrus.Entry

	mu      sync.RWMutex
	clients map[*WebSocketClient]struct{}
}

// WebSocketClient is one open tab. Its send channel is closed by the hub
// when the client is removed, which tells writePump to hang up.
type WebSocketClient struct {
	hub  *WebSocketHub
	conn *websocket.Conn
	send chan []byte
}

// NewWebSocketHub creates a hub. snapshot supplies the state a newly
// connected client starts from.
func NewWebSocketHub(sessionID string, snapshot func() model.State) *WebSocketHub {
	return &WebSocketHub{
		sessionID: sessionID,
		snapshot:  snapshot,
		log:       logging.Component("ws").WithField("session", sessionID),
		clients:   make(map[*WebSocketClient]struct{}),
	}
}

// OnStateChange implements service.StateSubscriber.
func (h *WebSocketHub) OnStateChange(state model.State) {
	data, err := h.stateMessage(state)
	if err != nil {
		h.log.WithError(err).Warn("Failed to marshal state")
		return
	}
	h.broadcast(data)
}

func (h *WebSocketHub) stateMessage(state model.State) ([]byte, error) {
	return json.Marshal(WebSocketMessage{
		Type: MessageState,
		Data: toStateResponse(h.sessionID, state),
	})
}

// broadcast queues data for every client and drops the ones that are full.
func (h *WebSocketHub) broadcast(data []byte) {
	var slow []*WebSocketClient

	h.mu.RLock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.log.Debug("Dropping slow client")
		h.removeClient(client)
	}
}

// send queues data for one client. It reports false if the client is gone
// or was too far behind and has been dropped.
func (h *WebSocketHub) send(client *WebSocketClient, data []byte) bool {
	h.mu.RLock()
	_, ok := h.clients[client]
	if ok {
		select {
		case client.send <- data:
		default:
			ok = false
		}
	}
	h.mu.RUnlock()

	if !ok {
		h.removeClient(client)
	}
	return ok
}

func (h *WebSocketHub) addClient(client *WebSocketClient) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	metricWebSocketClients.Set(float64(n))
}

// removeClient is safe to call more than once. Sends happen under the read
// lock, so the channel is never closed while a send is in flight.
func (h *WebSocketHub) removeClient(client *WebSocketClient) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	metricWebSocketClients.Set(float64(n))
}

// Close disconnects every client. http.Server.Shutdown does not touch
// hijacked connections, so the server calls this itself.
func (h *WebSocketHub) Close() {
	h.mu.Lock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
	metricWebSocketClients.Set(0)
}

// greet queues the connected message and the current state for a new client.
func (h *WebSocketHub) greet(client *WebSocketClient) {
	hello, err := json.Marshal(WebSocketMessage{
		Type: MessageConnected,
		Data: connectedData{SessionID: h.sessionID},
	})
	if err != nil || !h.send(client, hello) || h.snapshot == nil {
		return
	}
	if data, err := h.stateMessage(h.snapshot()); err == nil {
		h.send(client, data)
	}
}

// ServeWS upgrades the request and starts the client's pumps.
func (h *WebSocketHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := &WebSocketClient{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	h.addClient(client)
	h.log.WithField("remote", r.RemoteAddr).Debug("Client connected")
	h.greet(client)

	go client.writePump()
	go client.readPump()
}

// readPump only exists to notice disconnects and answer pings.
func (c *WebSocketClient) readPump() {
	defer c.hub.removeClient(c)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.WithError(err).Debug("WebSocket read error")
			}
			return
		}
	}
}

// writePump owns the connection: it is the only writer and the one that
// closes it.
func (c *WebSocketClient) writePump() {
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
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			// One frame per message so the page always parses whole JSON
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

// ClientCount returns the number of connected clients.
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
