// Package websockets pushes storage-change events to connected browser
// clients. It replaces the interval polling the original extension-sync
// used: the capture endpoint writes, the event bus publishes, and every
// open tab re-reads its view.
package websockets

import (
	"encoding/json"
	"sync"

	"server/config"
	"server/internal/database"
	"server/internal/events"
	"server/internal/logger"

	"github.com/gofiber/websocket/v2"
)

type Manager struct {
	log logger.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func New(db database.DB, eventBus *events.EventBus, config config.Config) (*Manager, error) {
	m := &Manager{
		log:   logger.New("websockets"),
		conns: make(map[*websocket.Conn]struct{}),
	}

	eventBus.Subscribe(m.broadcast)

	return m, nil
}

// HandleWebSocket owns one client connection for its lifetime. The read
// loop exists only to detect disconnects; clients never send anything the
// server acts on.
func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	m.register(c)
	defer m.unregister(c)

	log.Info("client connected", "remote", c.RemoteAddr().String())

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			log.Info("client disconnected", "remote", c.RemoteAddr().String())
			return
		}
	}
}

func (m *Manager) register(c *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[c] = struct{}{}
}

func (m *Manager) unregister(c *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, c)
	_ = c.Close()
}

func (m *Manager) broadcast(event events.Event) {
	log := m.log.Function("broadcast")

	payload, err := json.Marshal(event)
	if err != nil {
		log.Er("failed to encode event for broadcast", err, "type", event.Type)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for conn := range m.conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warn("dropping unwritable websocket client", "error", err)
			delete(m.conns, conn)
			_ = conn.Close()
		}
	}
}

// ClientCount reports connected clients, for the health endpoint.
func (m *Manager) ClientCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.conns)
}
