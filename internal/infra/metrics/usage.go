package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(usageWritesTotal) }

var usageWritesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "usage_writes_total",
		Help: "Daily usage writes by destination store.",
	},
	[]string{"store"}, // "remote" | "local" | "lost"
)

func IncUsageWrite(store string) {
	usageWritesTotal.WithLabelValues(store).Inc()
}
