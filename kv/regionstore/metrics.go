package regionstore

import "github.com/prometheus/client_golang/prometheus"

var (
	regionCmdDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "txnkv",
			Subsystem: "region",
			Name:      "command_duration_seconds",
			Help:      "Bucketed histogram of time (s) from proposing a command to its region loop answering it.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16),
		}, []string{"type"})

	regionErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "txnkv",
			Subsystem: "region",
			Name:      "error_total",
			Help:      "Counter of commands rejected by region validation.",
		}, []string{"type"})

	regionAdminCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "txnkv",
			Subsystem: "region",
			Name:      "admin_total",
			Help:      "Counter of region admin commands.",
		}, []string{"type", "result"})

	regionCountGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "txnkv",
			Subsystem: "region",
			Name:      "count",
			Help:      "Number of regions served by this store.",
		})

	regionPendingGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "txnkv",
			Subsystem: "region",
			Name:      "pending_commands",
			Help:      "Commands queued in region loops and not yet applied.",
		})
)

func init() {
	prometheus.MustRegister(regionCmdDuration)
	prometheus.MustRegister(regionErrorCounter)
	prometheus.MustRegister(regionAdminCounter)
	prometheus.MustRegister(regionCountGauge)
	prometheus.MustRegister(regionPendingGauge)
}
