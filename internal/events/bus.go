package events

import (
	"context"
	"sync"

	message "github.com/emonshikder007/chat-app/internal/message"
)

// Event kinds pushed to connected clients. The names travel all the way to
// the socket frame, so they never change independently of the client.
const (
	NewMessage      = "newMessage"
	NewGroupMessage = "newGroupMessage"
)

const (
	SubjectPrefix          = "chat"
	SubjectNewMessage      = SubjectPrefix + "." + NewMessage
	SubjectNewGroupMessage = SubjectPrefix + "." + NewGroupMessage
)

type Event struct {
	Name    string             `json:"name"`
	Message message.MessageDTO `json:"message"`
}

type Handler func(Event)

type Unsubscribe func()

// Bus moves freshly persisted messages from the REST side to whatever pushes
// them out. Delivery is at-most-once; there is no replay.
type Bus interface {
	Publish(ctx context.Context, subject string, ev Event) error
	Subscribe(subject string, h Handler) (Unsubscribe, error)
}

// LocalBus is an in-process Bus for single-node runs and tests.
type LocalBus struct {
	mu       sync.RWMutex
	handlers map[string][]*localSub
}

type localSub struct {
	h Handler
}

func NewLocalBus() *LocalBus {
	return &LocalBus{handlers: make(map[string][]*localSub)}
}

func (b *LocalBus) Publish(_ context.Context, subject string, ev Event) error {
	b.mu.RLock()
	subs := make([]*localSub, len(b.handlers[subject]))
	copy(subs, b.handlers[subject])
	b.mu.RUnlock()

	for _, s := range subs {
		s.h(ev)
	}
	return nil
}

func (b *LocalBus) Subscribe(subject string, h Handler) (Unsubscribe, error) {
	sub := &localSub{h: h}

	b.mu.Lock()
	b.handlers[subject] = append(b.handlers[subject], sub)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.handlers[subject]
		for i, s := range subs {
			if s == sub {
				b.handlers[subject] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}, nil
}
