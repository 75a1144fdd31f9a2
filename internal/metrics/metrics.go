package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry so tests can build collectors freely
// without colliding on the default global registry.
type Collector struct {
	reg *prometheus.Registry

	GeocodeAttempts prometheus.Counter
	GeocodeFailures prometheus.Counter

	RoutingRequests prometheus.Counter
	RoutingErrors   prometheus.Counter

	Predictions         prometheus.Counter
	DistanceUnavailable prometheus.Counter

	EstimateDuration prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		GeocodeAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eta_geocode_attempts_total",
			Help: "Total geocoding attempts issued to the lookup service.",
		}),
		GeocodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eta_geocode_failures_total",
			Help: "Total failed geocoding attempts (errors and empty results).",
		}),
		RoutingRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eta_routing_requests_total",
			Help: "Total directions requests issued to the routing service.",
		}),
		RoutingErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eta_routing_errors_total",
			Help: "Total failed directions requests.",
		}),
		Predictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eta_predictions_total",
			Help: "Total ETA predictions served.",
		}),
		DistanceUnavailable: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eta_distance_unavailable_total",
			Help: "Total requests rejected because no distance could be resolved.",
		}),
		EstimateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "eta_estimate_duration_seconds",
			Help:    "End-to-end duration of successful estimate requests.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}

	reg.MustRegister(
		c.GeocodeAttempts,
		c.GeocodeFailures,
		c.RoutingRequests,
		c.RoutingErrors,
		c.Predictions,
		c.DistanceUnavailable,
		c.EstimateDuration,
	)

	return c
}

// Handler serves this collector's registry in Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// StartServer exposes /metrics on addr in a background goroutine.
func (c *Collector) StartServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("metrics listening addr=%s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server stopped: %v", err)
		}
	}()
}
