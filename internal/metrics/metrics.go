// Package metrics collects and exposes Prometheus metrics for the
// service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts the events worth watching on a small community
// backend: chat volume, socket churn and auth activity.
type Collector struct {
	messagesSent    prometheus.Counter
	messagesDropped prometheus.Counter
	chatConnects    prometheus.Counter
	chatDisconnects prometheus.Counter
	signIns         prometheus.Counter
	signUps         prometheus.Counter
	uploads         *prometheus.CounterVec
	registry        *prometheus.Registry
}

// NewCollector creates a Collector registered on its own registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		messagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gymers_chat_messages_sent_total",
			Help: "Chat messages accepted and stored.",
		}),
		messagesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gymers_chat_messages_dropped_total",
			Help: "Messages dropped for slow realtime subscribers.",
		}),
		chatConnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gymers_chat_connects_total",
			Help: "Websocket chat connections opened.",
		}),
		chatDisconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gymers_chat_disconnects_total",
			Help: "Websocket chat connections closed.",
		}),
		signIns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gymers_sign_ins_total",
			Help: "Successful sign-ins.",
		}),
		signUps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gymers_sign_ups_total",
			Help: "Accounts created.",
		}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gymers_uploads_total",
			Help: "Avatar uploads by outcome.",
		}, []string{"outcome"}),
		registry: reg,
	}
	reg.MustRegister(
		c.messagesSent, c.messagesDropped,
		c.chatConnects, c.chatDisconnects,
		c.signIns, c.signUps, c.uploads,
	)
	return c
}

func (c *Collector) RecordMessageSent()    { c.messagesSent.Inc() }
func (c *Collector) RecordMessageDropped() { c.messagesDropped.Inc() }
func (c *Collector) RecordChatConnect()    { c.chatConnects.Inc() }
func (c *Collector) RecordChatDisconnect() { c.chatDisconnects.Inc() }
func (c *Collector) RecordSignIn()         { c.signIns.Inc() }
func (c *Collector) RecordSignUp()         { c.signUps.Inc() }

func (c *Collector) RecordUpload(outcome string) {
	c.uploads.WithLabelValues(outcome).Inc()
}

// Handler serves the /metrics endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
