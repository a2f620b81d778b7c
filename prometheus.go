package lifo

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusConfig is a config of the Prometheus metrics provided by the stack.
//
// An instance can be created only by the [Prometheus] function. The zero value is invalid.
//
// Each stack creates its own collectors. Stacks sharing a registerer must be told apart with
// const labels, for example by wrapping the registerer with [prometheus.WrapRegistererWith].
type PrometheusConfig struct {
	// Namespace of the metrics. Applied to every opts below that doesn't set its own.
	Namespace string
	// Subsystem of the metrics. Applied to every opts below that doesn't set its own.
	Subsystem string
	// Options for the items gauge.
	Items prometheus.GaugeOpts
	// Options for the capacity gauge.
	Capacity prometheus.GaugeOpts
	// Options for the pushes counter.
	Pushes prometheus.CounterOpts
	// Options for the pops counter.
	Pops prometheus.CounterOpts
	// Options for the clears counter.
	Clears prometheus.CounterOpts
	// Options for the buffer reallocations counter.
	Grows prometheus.CounterOpts
	// Options for the counter of items copied during reallocations.
	CopiedItems prometheus.CounterOpts

	registerer prometheus.Registerer
}

// Prometheus returns a [PrometheusConfig] with the provided registerer. If registerer is nil,
// metrics will not be registered. Many default parameters can be configured by passing
// configuration functions.
func Prometheus(
	registerer prometheus.Registerer,
	configFuncs ...func(c *PrometheusConfig),
) *PrometheusConfig {
	const (
		namespace = "lifo"
		subsystem = ""
	)

	c := PrometheusConfig{
		registerer: registerer,
		Namespace:  namespace,
		Subsystem:  subsystem,
		Items: prometheus.GaugeOpts{
			Name: "items",
			Help: "Number of items in stack",
		},
		Capacity: prometheus.GaugeOpts{
			Name: "capacity",
			Help: "Length of stack's storage buffer",
		},
		Pushes: prometheus.CounterOpts{
			Name: "pushes",
			Help: "Number of items pushed into stack",
		},
		Pops: prometheus.CounterOpts{
			Name: "pops",
			Help: "Number of items popped from stack",
		},
		Clears: prometheus.CounterOpts{
			Name: "clears",
			Help: "Number of times stack was cleared",
		},
		Grows: prometheus.CounterOpts{
			Name: "grows",
			Help: "Number of reallocations of stack's storage buffer",
		},
		CopiedItems: prometheus.CounterOpts{
			Name: "copied_items",
			Help: "Number of items copied during reallocations of stack's storage buffer",
		},
	}

	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}

	return &c
}

func (c *PrometheusConfig) metrics() *metrics {
	m := metrics{
		items:       prometheus.NewGauge(c.gaugeOpts(c.Items)),
		capacity:    prometheus.NewGauge(c.gaugeOpts(c.Capacity)),
		pushes:      prometheus.NewCounter(c.counterOpts(c.Pushes)),
		pops:        prometheus.NewCounter(c.counterOpts(c.Pops)),
		clears:      prometheus.NewCounter(c.counterOpts(c.Clears)),
		grows:       prometheus.NewCounter(c.counterOpts(c.Grows)),
		copiedItems: prometheus.NewCounter(c.counterOpts(c.CopiedItems)),
	}

	if c.registerer != nil {
		c.registerer.MustRegister(
			m.items,
			m.capacity,
			m.pushes,
			m.pops,
			m.clears,
			m.grows,
			m.copiedItems,
		)
	}

	return &m
}

func (c *PrometheusConfig) gaugeOpts(opts prometheus.GaugeOpts) prometheus.GaugeOpts {
	if opts.Namespace == "" {
		opts.Namespace = c.Namespace
	}
	if opts.Subsystem == "" {
		opts.Subsystem = c.Subsystem
	}
	return opts
}

func (c *PrometheusConfig) counterOpts(opts prometheus.CounterOpts) prometheus.CounterOpts {
	return prometheus.CounterOpts(c.gaugeOpts(prometheus.GaugeOpts(opts)))
}
