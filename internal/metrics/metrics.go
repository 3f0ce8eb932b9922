// Package metrics registers the service's prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "historymap_requests_total",
		Help: "Total HTTP requests by route and status",
	}, []string{"route", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "historymap_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"route"})
	FeatureEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "historymap_feature_events_total",
		Help: "Pointer events delivered to country features",
	}, []string{"event"})
	FactLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "historymap_fact_lookups_total",
		Help: "Fact lookups by outcome",
	}, []string{"result"})
	NarrationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "historymap_narrations_total",
		Help: "Narration requests by outcome",
	}, []string{"status"})
	CanvasDrawsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "historymap_canvas_draws_total",
		Help: "Canvas projections by outcome",
	}, []string{"status"})
	LocateTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "historymap_locate_total",
		Help: "Locate requests by outcome",
	}, []string{"status"})
	DataLoadFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "historymap_data_load_failures_total",
		Help: "Startup resource loads that failed",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(FeatureEventsTotal)
	prometheus.MustRegister(FactLookupsTotal)
	prometheus.MustRegister(NarrationsTotal)
	prometheus.MustRegister(CanvasDrawsTotal)
	prometheus.MustRegister(LocateTotal)
	prometheus.MustRegister(DataLoadFailuresTotal)
}

// Handler exposes the registered collectors.
func Handler() http.Handler { return promhttp.Handler() }
