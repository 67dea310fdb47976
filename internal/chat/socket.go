package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/emonshikder007/chat-app/internal/message"
	"github.com/emonshikder007/chat-app/pkg/logger"
)

// Frame is what travels on the wire in both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WSClient implements Socket over a gorilla/websocket connection. One handler
// per event name; On replaces, Off removes.
type WSClient struct {
	conn   *websocket.Conn
	logger logger.Logger

	mu       sync.Mutex
	handlers map[string]func(message.MessageDTO)

	done chan struct{}
	once sync.Once
}

func DialSocket(ctx context.Context, url, token string, logger logger.Logger) (*WSClient, error) {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	c := &WSClient{
		conn:     conn,
		logger:   logger,
		handlers: make(map[string]func(message.MessageDTO)),
		done:     make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

func (c *WSClient) On(event string, h func(message.MessageDTO)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = h
}

func (c *WSClient) Off(event string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, event)
}

func (c *WSClient) Emit(event string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.conn.WriteJSON(Frame{Event: event, Data: data})
}

func (c *WSClient) Close() error {
	c.once.Do(func() { close(c.done) })
	return c.conn.Close()
}

func (c *WSClient) readLoop() {
	for {
		var f Frame
		if err := c.conn.ReadJSON(&f); err != nil {
			select {
			case <-c.done:
			default:
				c.logger.Warn("socket read failed", "err", err)
			}
			return
		}

		c.mu.Lock()
		h := c.handlers[f.Event]
		c.mu.Unlock()
		if h == nil {
			continue
		}

		var m message.MessageDTO
		if err := json.Unmarshal(f.Data, &m); err != nil {
			c.logger.Warn("dropping undecodable frame", "event", f.Event, "err", err)
			continue
		}
		h(m)
	}
}
