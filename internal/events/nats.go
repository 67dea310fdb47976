package events

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"

	"github.com/emonshikder007/chat-app/pkg/logger"
)

// NatsBus carries events over core NATS pub/sub. Live events are
// fire-and-forget here; history always comes from the REST fetch, so
// no stream retention is wanted.
type NatsBus struct {
	nc     *nats.Conn
	logger logger.Logger
}

func NewNatsBus(url string, logger logger.Logger) (*NatsBus, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, errors.Wrap(err, "events.NewNatsBus.Connect")
	}
	return &NatsBus{nc: nc, logger: logger}, nil
}

func (b *NatsBus) Publish(_ context.Context, subject string, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "events.NatsBus.Publish.Marshal")
	}
	if err := b.nc.Publish(subject, data); err != nil {
		return errors.Wrapf(err, "events.NatsBus.Publish: subject %s", subject)
	}
	return nil
}

func (b *NatsBus) Subscribe(subject string, h Handler) (Unsubscribe, error) {
	sub, err := b.nc.Subscribe(subject, func(msg *nats.Msg) {
		var ev Event
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			b.logger.Error("dropping undecodable event", "subject", msg.Subject, "err", err)
			return
		}
		h(ev)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "events.NatsBus.Subscribe: subject %s", subject)
	}

	return func() {
		if err := sub.Unsubscribe(); err != nil {
			b.logger.Warn("failed to unsubscribe", "subject", subject, "err", err)
		}
	}, nil
}

func (b *NatsBus) Close() {
	if b.nc != nil {
		b.nc.Close()
	}
}
