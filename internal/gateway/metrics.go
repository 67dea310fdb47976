package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	connectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat_gateway_connected_clients",
		Help: "Currently connected websocket clients.",
	})

	eventsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_gateway_events_delivered_total",
		Help: "Events pushed to client connections.",
	}, []string{"event"})

	eventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_gateway_events_dropped_total",
		Help: "Events dropped because a client send buffer was full.",
	}, []string{"event"})
)
