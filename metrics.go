package lifo

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics is nil when the stack wasn't configured with Prometheus. All methods are no-ops then.
type metrics struct {
	items       prometheus.Gauge
	capacity    prometheus.Gauge
	pushes      prometheus.Counter
	pops        prometheus.Counter
	clears      prometheus.Counter
	grows       prometheus.Counter
	copiedItems prometheus.Counter
}

func (m *metrics) allocated(capacity int) {
	if m == nil {
		return
	}
	m.capacity.Set(float64(capacity))
}

func (m *metrics) grown(capacity, copied int) {
	if m == nil {
		return
	}
	m.grows.Inc()
	m.copiedItems.Add(float64(copied))
	m.capacity.Set(float64(capacity))
}

func (m *metrics) pushed(size int) {
	if m == nil {
		return
	}
	m.pushes.Inc()
	m.items.Set(float64(size))
}

func (m *metrics) popped(size int) {
	if m == nil {
		return
	}
	m.pops.Inc()
	m.items.Set(float64(size))
}

func (m *metrics) cleared() {
	if m == nil {
		return
	}
	m.clears.Inc()
	m.items.Set(0)
	m.capacity.Set(0)
}
