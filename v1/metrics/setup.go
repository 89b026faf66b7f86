package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private Prometheus registry, the collectors recorded by the
// service and the HTTP server that exposes them.
type Metrics struct {
	Server   *http.Server
	Registry *prometheus.Registry

	queriesCompiled *prometheus.CounterVec
	leavesSkipped   prometheus.Counter
	inserts         *prometheus.CounterVec
	commandsSent    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewMetrics registers all service collectors on a fresh registry and prepares
// (but does not start) the /metrics server.
func NewMetrics(cfg Config) *Metrics {
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}

	registry := prometheus.NewRegistry()
	registerer := prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)

	m := &Metrics{Registry: registry}
	ns := cfg.Namespace

	m.queriesCompiled = createCounterVec(ns, "queries_compiled_total", "Client queries compiled into store filters", []string{"result"})
	m.leavesSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "tree_leaves_skipped_total",
		Help:      "State leaves left out while building structured JSON",
	})
	m.inserts = createCounterVec(ns, "inserts_total", "Construction state inserts by owner", []string{"owner"})
	m.commandsSent = createCounterVec(ns, "commands_sent_total", "Vehicle commands sent by upstream status code", []string{"status"})
	m.httpRequests = createCounterVec(ns, "http_requests_total", "Handled HTTP requests", []string{"route", "code"})
	m.httpDuration = createHistogramVec(ns, "http_request_duration_seconds", "HTTP request latency", []string{"route"}, prometheus.DefBuckets)

	registerer.MustRegister(
		m.queriesCompiled,
		m.leavesSkipped,
		m.inserts,
		m.commandsSent,
		m.httpRequests,
		m.httpDuration,
	)

	if cfg.EnableDefaultCollectors {
		registerer.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: mux,
	}
	return m
}

func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}
