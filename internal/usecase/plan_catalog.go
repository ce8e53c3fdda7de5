package usecase

import "learner-practice-portal/internal/domain/model"

// PlanCatalog is the static table of subscription tiers. It is the
// single source of truth for daily ceilings; nothing else hardcodes
// them. The free plan always exists and has finite ceilings.
type PlanCatalog struct {
	plans map[model.PlanID]*model.Plan
}

func NewPlanCatalog() *PlanCatalog {
	return &PlanCatalog{plans: map[model.PlanID]*model.Plan{
		model.PlanFree: {
			ID:                 model.PlanFree,
			Name:               "Free",
			MaxScenariosPerDay: 5,
			MaxQuestionsPerDay: 10,
			PriceCents:         0,
			BillingCycle:       model.BillingMonthly,
		},
		model.PlanBasic: {
			ID:                 model.PlanBasic,
			Name:               "Basic",
			MaxScenariosPerDay: 20,
			MaxQuestionsPerDay: 50,
			PriceCents:         499,
			BillingCycle:       model.BillingMonthly,
		},
		model.PlanStandard: {
			ID:                 model.PlanStandard,
			Name:               "Standard",
			MaxScenariosPerDay: 50,
			MaxQuestionsPerDay: 200,
			PriceCents:         999,
			BillingCycle:       model.BillingMonthly,
		},
		model.PlanPremium: {
			ID:                 model.PlanPremium,
			Name:               "Premium",
			MaxScenariosPerDay: model.Unlimited,
			MaxQuestionsPerDay: model.Unlimited,
			PriceCents:         1999,
			BillingCycle:       model.BillingMonthly,
		},
	}}
}

// Get returns the plan for the given id, if it exists.
func (c *PlanCatalog) Get(id model.PlanID) (*model.Plan, bool) {
	p, ok := c.plans[id]
	return p, ok
}

// Free returns the free tier, the fallback for users without an
// entitling subscription.
func (c *PlanCatalog) Free() *model.Plan {
	return c.plans[model.PlanFree]
}

// List returns all plans, for display surfaces.
func (c *PlanCatalog) List() []*model.Plan {
	out := make([]*model.Plan, 0, len(c.plans))
	for _, p := range c.plans {
		out = append(out, p)
	}
	return out
}
