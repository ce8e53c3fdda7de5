package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(guardCallsTotal, guardOfflineTransitions, guardOffline) }

var guardCallsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "guard_calls_total",
		Help: "Guarded remote calls by operation and outcome.",
	},
	[]string{"op", "result"}, // result="ok"|"connectivity"|"logic"
)

var guardOfflineTransitions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "guard_offline_transitions_total",
		Help: "Transitions of the connectivity state.",
	},
	[]string{"to"}, // to="offline"|"online"
)

var guardOffline = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "guard_offline",
		Help: "1 while the process considers the backend unreachable.",
	},
)

func IncGuardCall(op, result string) {
	guardCallsTotal.WithLabelValues(op, result).Inc()
}

func IncOfflineTransition(to string) {
	guardOfflineTransitions.WithLabelValues(to).Inc()
	if to == "offline" {
		guardOffline.Set(1)
	} else {
		guardOffline.Set(0)
	}
}
