package gateway

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/emonshikder007/chat-app/internal/events"
	"github.com/emonshikder007/chat-app/internal/group"
	"github.com/emonshikder007/chat-app/pkg/logger"
)

// Hub tracks which users are connected and fans bus events out to the right
// connections: a private message goes to both participants, a group message
// to every current member. The delivery layer stops here; filtering down to
// the active conversation is the client store's job.
type Hub struct {
	groups group.GroupRepository
	logger logger.Logger

	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	inbound    chan events.Event

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewHub(groups group.GroupRepository, logger logger.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		groups:     groups,
		logger:     logger,
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan events.Event, 256),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case ev := <-h.inbound:
			h.routeEvent(ev)

		case <-h.ctx.Done():
			h.closeAll()
			return
		}
	}
}

// Route hands a bus event to the hub. Never blocks the bus callback: when
// the hub is saturated the event is dropped, history covers the gap.
func (h *Hub) Route(ev events.Event) {
	select {
	case h.inbound <- ev:
	default:
		eventsDropped.WithLabelValues(ev.Name).Inc()
		h.logger.Warn("hub inbound full, dropping event", "event", ev.Name)
	}
}

func (h *Hub) Shutdown() {
	h.cancel()
	<-h.done
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.clients[c.userID]
	if conns == nil {
		conns = make(map[*Client]bool)
		h.clients[c.userID] = conns
	}
	conns[c] = true
	connectedClients.Inc()
	h.logger.Info("client connected", "user_id", c.userID)
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.clients[c.userID]
	if conns == nil || !conns[c] {
		return
	}
	delete(conns, c)
	if len(conns) == 0 {
		delete(h.clients, c.userID)
	}
	close(c.send)
	connectedClients.Dec()
	h.logger.Info("client disconnected", "user_id", c.userID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conns := range h.clients {
		for c := range conns {
			close(c.send)
		}
	}
	h.clients = make(map[uuid.UUID]map[*Client]bool)
	connectedClients.Set(0)
}

func (h *Hub) routeEvent(ev events.Event) {
	var targets []uuid.UUID

	switch ev.Name {
	case events.NewMessage:
		if ev.Message.RecipientID == nil {
			return
		}
		targets = []uuid.UUID{*ev.Message.RecipientID, ev.Message.SenderID}

	case events.NewGroupMessage:
		if ev.Message.GroupID == nil {
			return
		}
		g, err := h.groups.GetGroupByID(h.ctx, *ev.Message.GroupID)
		if err != nil {
			h.logger.Warn("cannot route group event", "group_id", *ev.Message.GroupID, "err", err)
			return
		}
		targets = g.Members

	default:
		return
	}

	frame, err := encodeFrame(ev)
	if err != nil {
		h.logger.Error("failed to encode frame", "event", ev.Name, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, target := range targets {
		for c := range h.clients[target] {
			select {
			case c.send <- frame:
				eventsDelivered.WithLabelValues(ev.Name).Inc()
			default:
				eventsDropped.WithLabelValues(ev.Name).Inc()
				h.logger.Warn("client send buffer full", "user_id", target)
			}
		}
	}
}

func encodeFrame(ev events.Event) ([]byte, error) {
	data, err := json.Marshal(ev.Message)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}{Event: ev.Name, Data: data})
}
