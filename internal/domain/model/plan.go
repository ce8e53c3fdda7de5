package model

// Unlimited is the ceiling sentinel meaning "no daily limit".
const Unlimited = -1

type PlanID string

const (
	PlanFree     PlanID = "free"
	PlanBasic    PlanID = "basic"
	PlanStandard PlanID = "standard"
	PlanPremium  PlanID = "premium"
)

type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

// Plan defines a subscription tier and its daily action ceilings.
// Plans are static; there is exactly one Plan per PlanID and the free
// plan always exists with finite ceilings.
type Plan struct {
	ID                 PlanID
	Name               string
	MaxScenariosPerDay int
	MaxQuestionsPerDay int
	PriceCents         int64
	BillingCycle       BillingCycle
}

// UnlimitedScenarios reports whether the plan has no scenario ceiling.
func (p *Plan) UnlimitedScenarios() bool { return p.MaxScenariosPerDay == Unlimited }

// UnlimitedQuestions reports whether the plan has no question ceiling.
func (p *Plan) UnlimitedQuestions() bool { return p.MaxQuestionsPerDay == Unlimited }

// Limit returns the daily ceiling for the given action type.
func (p *Plan) Limit(action ActionType) int {
	if action == ActionScenario {
		return p.MaxScenariosPerDay
	}
	return p.MaxQuestionsPerDay
}
