package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once
	pending      []prometheus.Collector
)

// register enqueues collectors at init time; nothing touches the default
// registry until MustRegister runs.
func register(cs ...prometheus.Collector) {
	pending = append(pending, cs...)
}

// MustRegister installs every enqueued collector into the default Prometheus
// registry. Safe to call more than once; only the first call registers.
func MustRegister() {
	registerOnce.Do(func() {
		for _, c := range pending {
			prometheus.MustRegister(c)
		}
		pending = nil
	})
}
