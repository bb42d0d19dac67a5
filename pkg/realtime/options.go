package realtime

import (
	"time"

	"parlour-api/pkg/logger"
	"parlour-api/pkg/metrics"
)

type Option func(*Hub)

// WithSendBuffer sets the per-connection queue length.
func WithSendBuffer(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.sendBuffer = n
		}
	}
}

// WithLogger sets the hub logger.
func WithLogger(l logger.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.log = l
		}
	}
}

// WithMetrics records broadcasts and the connection count.
func WithMetrics(m *metrics.Manager) Option {
	return func(h *Hub) { h.metrics = m }
}

// WithPingInterval sets how often connections implementing Pinger are pinged. Zero disables pings.
func WithPingInterval(d time.Duration) Option {
	return func(h *Hub) {
		if d >= 0 {
			h.pingInterval = d
		}
	}
}
