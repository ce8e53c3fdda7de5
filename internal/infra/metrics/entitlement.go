package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(entitlementDecisions) }

var entitlementDecisions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "entitlement_decisions_total",
		Help: "CanPerform outcomes by action and decision.",
	},
	[]string{"action", "decision"}, // decision="allow"|"deny"
)

func IncEntitlementDecision(action string, allowed bool) {
	decision := "deny"
	if allowed {
		decision = "allow"
	}
	entitlementDecisions.WithLabelValues(action, decision).Inc()
}
