package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaFetchErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kafka_fetch_errors_total",
			Help: "Number of failed fetch attempts",
		},
	)
	OrdersPersisted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "accounting_orders_persisted_total",
			Help: "Number of accounting rows written",
		},
	)
	OrdersFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounting_orders_failed_total",
			Help: "Number of messages not persisted",
		},
		[]string{"reason"}, // decode|persist
	)
	OrdersRedelivered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "accounting_orders_redelivered_total",
			Help: "Number of order ids seen again within the redelivery window",
		},
	)
	PersistDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "accounting_persist_duration_seconds",
			Help:    "Latency of a single accounting insert",
			Buckets: prometheus.DefBuckets,
		},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redelivery_cache_operations_total",
			Help: "Redelivery cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "redelivery_cache_size",
			Help: "Number of order ids currently tracked",
		},
	)
)

var registerOnce sync.Once

// MustRegister регистрирует коллекторы в default registry; повторные вызовы игнорируются.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaFetchErrors,
			OrdersPersisted, OrdersFailed, OrdersRedelivered, PersistDuration,
			CacheOps, CacheSize,
		)
	})
}
