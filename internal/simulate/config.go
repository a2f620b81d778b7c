package simulate

import (
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	logger     log.FieldLogger
	registerer prometheus.Registerer
}

type ConfigFunc = func(c *Config)

func (c *Config) Logger(logger log.FieldLogger) {
	if logger == nil {
		panic("logger can't be nil")
	}
	c.logger = logger
}

// Prometheus makes every simulated stack register its metrics with registerer, labeled with the
// name of its policy.
func (c *Config) Prometheus(registerer prometheus.Registerer) {
	if registerer == nil {
		panic("registerer can't be nil")
	}
	c.registerer = registerer
}

func newConfig(configFuncs ...ConfigFunc) *Config {
	c := Config{}
	c.Logger(log.StandardLogger())
	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}
	return &c
}
