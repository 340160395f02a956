// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the registry served by Handler. A dedicated registry keeps
// tests free of duplicate-registration panics from the global one.
var Registry = prometheus.NewRegistry()

var (
	// RequestDuration tracks HTTP request latency by method, route and status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "swiftship",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// PackagesPreAlerted counts packages created through pre-alerts.
	PackagesPreAlerted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "swiftship",
		Subsystem: "ledger",
		Name:      "packages_prealerted_total",
		Help:      "Packages created through pre-alerts.",
	})

	// StatusUpdates counts package status changes by target status.
	StatusUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "swiftship",
			Subsystem: "ledger",
			Name:      "status_updates_total",
			Help:      "Package status updates by new status.",
		},
		[]string{"status"},
	)

	// Registrations counts new accounts by role.
	Registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "swiftship",
			Subsystem: "accounts",
			Name:      "registrations_total",
			Help:      "Accounts registered, by role.",
		},
		[]string{"role"},
	)

	// NotificationsSent counts notification attempts by template and result.
	NotificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "swiftship",
			Subsystem: "notify",
			Name:      "sent_total",
			Help:      "Notification attempts by kind and result.",
		},
		[]string{"kind", "result"},
	)

	// LiveSubscribers is the number of open live package subscriptions.
	LiveSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "swiftship",
		Subsystem: "live",
		Name:      "subscribers",
		Help:      "Open live package subscriptions.",
	})

	// RelayedChanges counts change notices handed to Redis by outcome
	// (sent, failed, dropped).
	RelayedChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "swiftship",
			Subsystem: "live",
			Name:      "relayed_total",
			Help:      "Change notices relayed to other instances by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RequestDuration,
		PackagesPreAlerted,
		StatusUpdates,
		Registrations,
		NotificationsSent,
		LiveSubscribers,
		RelayedChanges,
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
