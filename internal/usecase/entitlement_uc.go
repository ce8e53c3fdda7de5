// File: internal/usecase/entitlement_uc.go
package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"learner-practice-portal/internal/domain/model"
	"learner-practice-portal/internal/infra/logging"
	"learner-practice-portal/internal/infra/metrics"
)

// Compile-time check
var _ EntitlementResolver = (*entitlementUC)(nil)

// EntitlementResolver answers "may this user perform action X now?" and
// charges completed actions against the daily quota. Both operations are
// total: they never fail, they only allow or deny. Callers must check
// CanPerform before the action and call RecordUsage only after the
// action actually happened, so users are never charged for actions that
// did not complete.
type EntitlementResolver interface {
	CanPerform(ctx context.Context, userID string, action model.ActionType) bool
	RecordUsage(ctx context.Context, userID string, action model.ActionType) bool
}

type entitlementUC struct {
	subs    SubscriptionLookup
	usage   UsageStore
	catalog *PlanCatalog

	log *zerolog.Logger
}

func NewEntitlementUseCase(subs SubscriptionLookup, usage UsageStore, catalog *PlanCatalog, logger *zerolog.Logger) *entitlementUC {
	return &entitlementUC{subs: subs, usage: usage, catalog: catalog, log: logger}
}

// effectivePlanID maps the user's subscription state to the plan that
// governs their ceilings. Anything short of an active, unexpired
// subscription means the free tier.
func (uc *entitlementUC) effectivePlanID(ctx context.Context, userID string) model.PlanID {
	sub := uc.subs.Current(ctx, userID)
	if !sub.Entitled(time.Now()) {
		return model.PlanFree
	}
	return sub.PlanID
}

func (uc *entitlementUC) CanPerform(ctx context.Context, userID string, action model.ActionType) bool {
	defer logging.TraceDuration(uc.log, "EntitlementUC.CanPerform")()

	if !action.Valid() {
		return false
	}

	plan, ok := uc.catalog.Get(uc.effectivePlanID(ctx, userID))
	if !ok {
		// Catalog corruption: fail closed.
		uc.log.Error().Str("user_id", userID).Msg("effective plan missing from catalog, denying")
		metrics.IncEntitlementDecision(string(action), false)
		return false
	}

	usage := uc.usage.GetUsage(ctx, userID)

	limit := plan.Limit(action)
	allowed := limit == model.Unlimited || usage.Used(action) < limit
	metrics.IncEntitlementDecision(string(action), allowed)
	return allowed
}

// RecordUsage increments the action's counter by one. It does not
// re-check the limit. The read-compute-write happens inside the usage
// store's per-(user, date) critical section.
func (uc *entitlementUC) RecordUsage(ctx context.Context, userID string, action model.ActionType) bool {
	defer logging.TraceDuration(uc.log, "EntitlementUC.RecordUsage")()

	if userID == "" || !action.Valid() {
		return false
	}
	return uc.usage.Increment(ctx, userID, action)
}
