// Package metrics records trailblazer activity in a Prometheus registry.
//
// [Metrics] implements every hook interface of package observability, so a
// single value can be installed for all of them with [Metrics.Install].
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/trailblazer/pkg/observability"
)

const namespace = "trailblazer"

// Metrics holds the trailblazer collectors.
type Metrics struct {
	registry            *prometheus.Registry
	routes              *prometheus.CounterVec
	routeDuration       prometheus.Histogram
	routeMiles          prometheus.Histogram
	renders             *prometheus.CounterVec
	renderDuration      *prometheus.HistogramVec
	cacheLookups        *prometheus.CounterVec
	cacheBytes          *prometheus.CounterVec
	tileRequests        *prometheus.CounterVec
	tileDuration        prometheus.Histogram
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New creates a registry with every collector registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		routes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routes_total",
			Help:      "Shortest-path searches by outcome (found, none, error).",
		}, []string{"outcome"}),
		routeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_duration_seconds",
			Help:      "Duration of shortest-path searches.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}),
		routeMiles: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_miles",
			Help:      "Length of found routes in miles.",
			Buckets:   []float64{.1, .5, 1, 5, 10, 50, 100, 500},
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Map renders by format and outcome.",
		}, []string{"format", "outcome"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of map renders.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by entry type and result (hit, miss).",
		}, []string{"type", "result"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache by entry type.",
		}, []string{"type"}),
		tileRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tile_requests_total",
			Help:      "Outgoing tile requests by host and status.",
		}, []string{"host", "status"}),
		tileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tile_request_duration_seconds",
			Help:      "Duration of successful tile downloads.",
			Buckets:   prometheus.DefBuckets,
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served by the API.",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests served by the API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}

	m.registry.MustRegister(
		m.routes,
		m.routeDuration,
		m.routeMiles,
		m.renders,
		m.renderDuration,
		m.cacheLookups,
		m.cacheBytes,
		m.tileRequests,
		m.tileDuration,
		m.httpRequests,
		m.httpRequestDuration,
	)
	return m
}

// Install registers m for every observability hook category.
func (m *Metrics) Install() {
	observability.SetRouteHooks(m)
	observability.SetRenderHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// OnRouteComplete implements observability.RouteHooks.
func (m *Metrics) OnRouteComplete(_ context.Context, roads int, miles float64, d time.Duration, err error) {
	m.routeDuration.Observe(d.Seconds())
	switch {
	case err != nil:
		m.routes.WithLabelValues("error").Inc()
	case roads == 0:
		m.routes.WithLabelValues("none").Inc()
	default:
		m.routes.WithLabelValues("found").Inc()
		m.routeMiles.Observe(miles)
	}
}

// OnRenderComplete implements observability.RenderHooks.
func (m *Metrics) OnRenderComplete(_ context.Context, format string, _ int, d time.Duration, err error) {
	m.renders.WithLabelValues(format, outcome(err)).Inc()
	m.renderDuration.WithLabelValues(format).Observe(d.Seconds())
}

// OnCacheHit implements observability.CacheHooks.
func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheLookups.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheLookups.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

// OnRequest implements observability.HTTPHooks. Requests are counted when
// they complete.
func (m *Metrics) OnRequest(context.Context, string) {}

// OnResponse implements observability.HTTPHooks.
func (m *Metrics) OnResponse(_ context.Context, host string, status int, d time.Duration) {
	m.tileRequests.WithLabelValues(host, strconv.Itoa(status)).Inc()
	m.tileDuration.Observe(d.Seconds())
}

// OnError implements observability.HTTPHooks.
func (m *Metrics) OnError(_ context.Context, host string, _ error) {
	m.tileRequests.WithLabelValues(host, "error").Inc()
}

// ObserveHTTPRequest records one request served by the API.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	m.httpRequests.With(labels).Inc()
	m.httpRequestDuration.With(labels).Observe(d.Seconds())
}

// Handler exposes the registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("metrics unavailable"))
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

var (
	_ observability.RouteHooks  = (*Metrics)(nil)
	_ observability.RenderHooks = (*Metrics)(nil)
	_ observability.CacheHooks  = (*Metrics)(nil)
	_ observability.HTTPHooks   = (*Metrics)(nil)
)
