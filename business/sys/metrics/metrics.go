// Package metrics constructs the metrics the application will track.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "powledger"

// Metrics represents the set of metrics we gather. These fields are
// safe to be accessed concurrently.
type Metrics struct {
	registry       *prometheus.Registry
	Requests       prometheus.Counter
	Errors         prometheus.Counter
	Panics         prometheus.Counter
	BlocksMined    prometheus.Counter
	ChainsReplaced prometheus.Counter
}

// New constructs the metrics on their own registry along with the go and
// process collectors.
func New() *Metrics {
	m := Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Number of requests handled by the api.",
		}),
		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Number of requests that ended in an error.",
		}),
		Panics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "panics_total",
			Help:      "Number of panics recovered while handling requests.",
		}),
		BlocksMined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_mined_total",
			Help:      "Number of blocks mined by this node.",
		}),
		ChainsReplaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chains_replaced_total",
			Help:      "Number of times a peer chain replaced the local chain on request.",
		}),
	}

	m.registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.Requests,
		m.Errors,
		m.Panics,
		m.BlocksMined,
		m.ChainsReplaced,
	)

	return &m
}

// AddGaugeFunc registers a gauge whose value is read on every scrape.
func (m *Metrics) AddGaugeFunc(name string, help string, fn func() float64) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		fn,
	))
}

// Handler returns the http handler that serves the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
