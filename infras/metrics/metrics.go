package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "studyhall"

const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultStale   = "stale"

	TriggerLoad    = "load"
	TriggerManual  = "manual"
	TriggerChange  = "change"
	TriggerLayout  = "layout"
	SideLogical    = "logical"
	SidePhysical   = "physical"
	DirectionIn    = "received"
	DirectionOut   = "published"
	StageReconcile = "reconcile"
	StageDerive    = "derive"
)

// Metrics owns a private registry so that several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	ReconcilePasses       *prometheus.CounterVec
	StrategyMatches       *prometheus.CounterVec
	UnmappedCabins        *prometheus.CounterVec
	AvailabilityRefreshes *prometheus.CounterVec
	StageDuration         *prometheus.HistogramVec
	StaleCommits          prometheus.Counter
	DebounceCoalesced     prometheus.Counter
	ActiveWatchers        prometheus.Gauge
	ChangeEvents          *prometheus.CounterVec
	HTTPRequests          *prometheus.CounterVec
	HTTPDuration          *prometheus.HistogramVec
}

func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, registry))

	return &Metrics{
		registry: registry,
		ReconcilePasses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_passes_total",
			Help:      "Reconciliation passes by result.",
		}, []string{"result"}),
		StrategyMatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_strategy_matches_total",
			Help:      "Logical cabins matched, by the strategy that matched them.",
		}, []string{"strategy"}),
		UnmappedCabins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unmapped_cabins_total",
			Help:      "Cabins left without a counterpart, by side.",
		}, []string{"side"}),
		AvailabilityRefreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_refreshes_total",
			Help:      "Availability derivations by trigger and result.",
		}, []string{"trigger", "result"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Duration of reconcile and derive stages.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		StaleCommits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_commits_discarded_total",
			Help:      "Results dropped because a newer request was dispatched.",
		}),
		DebounceCoalesced: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "debounce_coalesced_total",
			Help:      "Change notifications folded into an already armed debounce.",
		}),
		ActiveWatchers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_watchers",
			Help:      "Venues currently subscribed to booking changes.",
		}),
		ChangeEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_change_events_total",
			Help:      "Booking change events by direction and operation.",
		}, []string{"direction", "operation"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status class.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// StatusClass folds a status code into 2xx, 4xx and so on.
func StatusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}

	return strconv.Itoa(code/100) + "xx"
}
