// Package metrics exposes Prometheus instruments for requests, queries and front-desk events.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gymdesk"

// Registry owns every instrument the process exports.
// A fresh Registry per process (and per test) avoids global registration clashes.
type Registry struct {
	reg *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	queryDuration   *prometheus.HistogramVec
	checkins        *prometheus.CounterVec
	reminders       *prometheus.CounterVec
	orphansRemoved  prometheus.Counter
}

// New creates a Registry with Go runtime and process collectors attached.
// POST: All instruments registered; Handler serves them
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "route", "status"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "SQLite statement latency by operation and table.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}, []string{"op", "table"}),
		checkins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkins_total",
			Help:      "Check-in attempts by outcome.",
		}, []string{"outcome"}),
		reminders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_total",
			Help:      "Reminders handed to the SMS transport by category and status.",
		}, []string{"category", "status"}),
		orphansRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orphaned_checkins_removed_total",
			Help:      "Check-ins deleted by the cleanup sweep.",
		}),
	}
	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requestDuration,
		r.queryDuration,
		r.checkins,
		r.reminders,
		r.orphansRemoved,
	)
	return r
}

// ObserveQuery records one SQL statement. Satisfies storage.QueryObserver.
func (r *Registry) ObserveQuery(op, table string, d time.Duration) {
	r.queryDuration.WithLabelValues(op, table).Observe(d.Seconds())
}

// ObserveRequest records one HTTP request. route should be the matched pattern, not the raw path.
func (r *Registry) ObserveRequest(method, route string, status int, d time.Duration) {
	r.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// CheckIn counts a check-in attempt.
func (r *Registry) CheckIn(outcome string) {
	r.checkins.WithLabelValues(outcome).Inc()
}

// Reminder counts a reminder send.
func (r *Registry) Reminder(category, status string) {
	r.reminders.WithLabelValues(category, status).Inc()
}

// CleanupRemoved adds the number of check-ins removed by one sweep.
func (r *Registry) CleanupRemoved(n int) {
	if n > 0 {
		r.orphansRemoved.Add(float64(n))
	}
}

// Gatherer exposes the underlying registry for tests and custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
