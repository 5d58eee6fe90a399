// Package metrics exposes Prometheus metrics for the viewer and the glossary
// source server.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"glossgraph/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for one process. Each collector has
// its own registry so tests can create as many as they like.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Graph metrics
	GraphLoads   *prometheus.CounterVec
	GraphNodes   prometheus.Gauge
	GraphEdges   prometheus.Gauge
	DroppedEdges prometheus.Counter

	// Simulation metrics
	SimulationTicks prometheus.Counter
	SimulationAlpha prometheus.Gauge

	// Interaction metrics
	Interactions *prometheus.CounterVec
	SSEClients   prometheus.Gauge
}

// NewCollector creates a collector with every metric registered under namespace
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		GraphLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "graph_loads_total",
				Help:      "Graph loads by result",
			},
			[]string{"result"},
		),
		GraphNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Nodes in the loaded graph",
		}),
		GraphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Resolved edges in the loaded graph",
		}),
		DroppedEdges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graph_dropped_edges_total",
			Help:      "Edges skipped because an endpoint was unknown",
		}),

		SimulationTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulation_ticks_total",
			Help:      "Force simulation ticks run",
		}),
		SimulationAlpha: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "simulation_alpha",
			Help:      "Current simulation alpha",
		}),

		Interactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "interactions_total",
				Help:      "User interactions by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		SSEClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sse_clients",
			Help:      "Connected event stream clients",
		}),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.GraphLoads,
		c.GraphNodes,
		c.GraphEdges,
		c.DroppedEdges,
		c.SimulationTicks,
		c.SimulationAlpha,
		c.Interactions,
		c.SSEClients,
	)

	return c
}

// Registry returns the Prometheus registry for this collector
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one HTTP request
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveLoad records the outcome of a graph load and, on success, its size
func (c *Collector) ObserveLoad(err error, nodes, edges, dropped int) {
	c.GraphLoads.WithLabelValues(LoadResult(err)).Inc()
	if err != nil {
		return
	}
	c.GraphNodes.Set(float64(nodes))
	c.GraphEdges.Set(float64(edges))
	c.DroppedEdges.Add(float64(dropped))
}

// ObserveTick records one simulation tick
func (c *Collector) ObserveTick(alpha float64) {
	c.SimulationTicks.Inc()
	c.SimulationAlpha.Set(alpha)
}

// ObserveInteraction records a user interaction
func (c *Collector) ObserveInteraction(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.Interactions.WithLabelValues(kind, outcome).Inc()
}

// SetClients records the number of connected event stream clients
func (c *Collector) SetClients(n int) {
	c.SSEClients.Set(float64(n))
}

// LoadResult maps a load error to a metric label
func LoadResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, store.ErrFetch):
		return "fetch_error"
	case errors.Is(err, store.ErrDecode):
		return "decode_error"
	case errors.Is(err, store.ErrDanglingEdge),
		errors.Is(err, store.ErrDuplicateNode),
		errors.Is(err, store.ErrEmptyID):
		return "invalid"
	default:
		return "error"
	}
}
