// Package events carries storage-change notifications between the API and
// connected clients. Writes publish onto a valkey channel; subscribers
// (the websocket manager, and any out-of-band writer such as the capture
// extension's endpoint) receive them without polling storage.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"server/config"
	"server/internal/database"
	"server/internal/logger"
)

const storageChannel = "storage.events"

// Event types published on storage changes.
const (
	ApplicationChanged = "application.changed"
	ApplicationDeleted = "application.deleted"
	OpportunityChanged = "opportunity.changed"
	OpportunityDeleted = "opportunity.deleted"
	PreferencesChanged = "preferences.changed"
)

type Event struct {
	Type     string    `json:"type"`
	EntityID string    `json:"entityId,omitempty"`
	At       time.Time `json:"at"`
}

type Handler func(Event)

type EventBus struct {
	client database.CacheClient
	log    logger.Logger

	mu       sync.RWMutex
	handlers []Handler

	cancel context.CancelFunc
	done   chan struct{}
}

// New starts the subscriber loop immediately. With a nil client the bus
// still dispatches to local subscribers, so single-process setups and
// tests work without a cache.
func New(client database.CacheClient, config config.Config) *EventBus {
	ctx, cancel := context.WithCancel(context.Background())

	bus := &EventBus{
		client: client,
		log:    logger.New("events"),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go bus.receive(ctx)

	return bus
}

func (b *EventBus) receive(ctx context.Context) {
	defer close(b.done)

	if b.client == nil {
		<-ctx.Done()
		return
	}

	log := b.log.Function("receive")
	for {
		err := b.client.Receive(ctx, b.client.B().Subscribe().Channel(storageChannel).Build(),
			func(msg database.PubSubMessage) {
				var event Event
				if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
					log.Er("failed to decode storage event", err, "payload", msg.Message)
					return
				}
				b.dispatch(event)
			})
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Er("storage event subscription dropped, retrying", err)
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (b *EventBus) dispatch(event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// Subscribe registers a handler for every storage event. Handlers run on
// the bus goroutine and must not block.
func (b *EventBus) Subscribe(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

// Publish emits a storage-change event. Without a cache client the event
// goes straight to local subscribers.
func (b *EventBus) Publish(eventType, entityID string) {
	log := b.log.Function("Publish")

	event := Event{Type: eventType, EntityID: entityID, At: time.Now().UTC()}

	if b.client == nil {
		b.dispatch(event)
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Er("failed to encode storage event", err, "type", eventType)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := b.client.B().Publish().Channel(storageChannel).Message(string(payload)).Build()
	if err := b.client.Do(ctx, cmd).Error(); err != nil {
		log.Er("failed to publish storage event", err, "type", eventType)
	}
}

func (b *EventBus) Close() error {
	b.cancel()
	<-b.done
	return nil
}
