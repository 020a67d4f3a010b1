package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of registered accounts",
		},
	)

	LoginFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "login_failures_total",
			Help: "Total number of rejected login attempts",
		},
	)

	ItemsListedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "items_listed_total",
			Help: "Total number of items listed in the catalog",
		},
	)

	InterestAddedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interest_added_total",
			Help: "Total number of interest records added",
		},
	)

	InterestRemovedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interest_removed_total",
			Help: "Total number of interest records retracted",
		},
	)

	PurchaseAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchase_attempts_total",
			Help: "Total number of purchase attempts",
		},
	)

	PurchaseSuccessTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchase_success_total",
			Help: "Total number of completed purchases",
		},
	)

	PurchaseFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchase_failure_total",
			Help: "Total number of failed purchases",
		},
		[]string{"reason"},
	)

	NotificationFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_failures_total",
			Help: "Total number of failed outbound notifications",
		},
	)
)

var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"query_type", "table"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

var (
	RedisCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_command_duration_seconds",
			Help:    "Duration of Redis commands in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"command"},
	)

	RedisLockSuccessTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_lock_success_total",
			Help: "Total number of successful lock acquisitions",
		},
		[]string{"lock_type"},
	)

	RedisLockFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_lock_failure_total",
			Help: "Total number of failed lock acquisitions",
		},
		[]string{"lock_type", "reason"},
	)
)

func TimeDBQuery(queryType, table string) func() {
	start := time.Now()
	return func() {
		DBQueryDuration.WithLabelValues(queryType, table).Observe(time.Since(start).Seconds())
	}
}
