package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"learner-practice-portal/internal/domain/model"
)

func TestCanPerform_FreeTierDefaultCeilings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, usageRepo, _, _, ent := newTestStack()

	today := model.DateKey(time.Now())
	seed := func(scenarios int) {
		if err := usageRepo.Save(ctx, &model.DailyUsage{
			UserID: "user-1", Date: today,
			ScenariosUsed: scenarios,
			MaxScenarios:  5, MaxQuestions: 10,
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	seed(4)
	if !ent.CanPerform(ctx, "user-1", model.ActionScenario) {
		t.Fatal("4/5 scenarios used: expected allow")
	}
	seed(5)
	if ent.CanPerform(ctx, "user-1", model.ActionScenario) {
		t.Fatal("5/5 scenarios used: expected deny")
	}
}

func TestCanPerform_UnlimitedSentinel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	subRepo, usageRepo, _, _, ent := newTestStack()

	sub, _ := model.NewSubscription(uuid.NewString(), "user-1", model.PlanPremium, 30*24*time.Hour)
	if err := subRepo.Save(ctx, sub); err != nil {
		t.Fatalf("save sub: %v", err)
	}
	if err := usageRepo.Save(ctx, &model.DailyUsage{
		UserID: "user-1", Date: model.DateKey(time.Now()),
		ScenariosUsed: 1_000_000, QuestionsUsed: 1_000_000,
	}); err != nil {
		t.Fatalf("seed usage: %v", err)
	}

	if !ent.CanPerform(ctx, "user-1", model.ActionScenario) {
		t.Fatal("unlimited plan must always allow scenarios")
	}
	if !ent.CanPerform(ctx, "user-1", model.ActionQuestion) {
		t.Fatal("unlimited plan must always allow questions")
	}
}

func TestCanPerform_PaidPlanCeilings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	subRepo, usageRepo, _, _, ent := newTestStack()

	sub, _ := model.NewSubscription(uuid.NewString(), "user-1", model.PlanBasic, 30*24*time.Hour)
	if err := subRepo.Save(ctx, sub); err != nil {
		t.Fatalf("save sub: %v", err)
	}
	// Over the free ceiling but under basic's.
	if err := usageRepo.Save(ctx, &model.DailyUsage{
		UserID: "user-1", Date: model.DateKey(time.Now()),
		ScenariosUsed: 7,
	}); err != nil {
		t.Fatalf("seed usage: %v", err)
	}

	if !ent.CanPerform(ctx, "user-1", model.ActionScenario) {
		t.Fatal("7/20 scenarios on basic: expected allow")
	}
}

func TestCanPerform_ExpiredSubscriptionFallsBackToFree(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	subRepo, usageRepo, _, _, ent := newTestStack()

	// Status is still "active" but the period already ended.
	past := time.Now().Add(-time.Hour)
	start := past.Add(-30 * 24 * time.Hour)
	if err := subRepo.Save(ctx, &model.Subscription{
		ID: uuid.NewString(), UserID: "user-1", PlanID: model.PlanPremium,
		Status:             model.SubscriptionStatusActive,
		CurrentPeriodStart: &start,
		CurrentPeriodEnd:   &past,
		CreatedAt:          start,
	}); err != nil {
		t.Fatalf("save sub: %v", err)
	}
	if err := usageRepo.Save(ctx, &model.DailyUsage{
		UserID: "user-1", Date: model.DateKey(time.Now()),
		ScenariosUsed: 5,
	}); err != nil {
		t.Fatalf("seed usage: %v", err)
	}

	if ent.CanPerform(ctx, "user-1", model.ActionScenario) {
		t.Fatal("expired subscription must be treated as free tier and denied at 5/5")
	}
}

func TestCanPerform_InactiveStatusFallsBackToFree(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	subRepo, usageRepo, _, _, ent := newTestStack()

	end := time.Now().Add(30 * 24 * time.Hour)
	if err := subRepo.Save(ctx, &model.Subscription{
		ID: uuid.NewString(), UserID: "user-1", PlanID: model.PlanPremium,
		Status:           model.SubscriptionStatusCanceled,
		CurrentPeriodEnd: &end,
		CreatedAt:        time.Now(),
	}); err != nil {
		t.Fatalf("save sub: %v", err)
	}
	if err := usageRepo.Save(ctx, &model.DailyUsage{
		UserID: "user-1", Date: model.DateKey(time.Now()),
		QuestionsUsed: 10,
	}); err != nil {
		t.Fatalf("seed usage: %v", err)
	}

	if ent.CanPerform(ctx, "user-1", model.ActionQuestion) {
		t.Fatal("canceled subscription must be treated as free tier and denied at 10/10")
	}
}

func TestCanPerform_InvalidAction(t *testing.T) {
	t.Parallel()

	_, _, _, _, ent := newTestStack()
	if ent.CanPerform(context.Background(), "user-1", model.ActionType("export")) {
		t.Fatal("unknown action must be denied")
	}
}

func TestCanPerform_NeverPanicsWhenEverythingIsDown(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	subRepo, usageRepo, cache, g, ent := newTestStack()
	subRepo.findErr = errConnRefused
	usageRepo.failAll(errConnRefused)
	cache.getErr = errConnRefused
	cache.putErr = errConnRefused

	// With every remote touchpoint failing, the caller is treated as a
	// fresh free-tier user: zero usage against the free ceiling.
	if !ent.CanPerform(ctx, "user-1", model.ActionScenario) {
		t.Fatal("expected allow from computed defaults")
	}
	if !g.State().Offline() {
		t.Fatal("expected offline flag")
	}
}

func TestRecordUsage_IncrementsCounter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, usageRepo, _, _, ent := newTestStack()

	for i := 0; i < 3; i++ {
		if !ent.RecordUsage(ctx, "user-1", model.ActionScenario) {
			t.Fatalf("RecordUsage #%d failed", i+1)
		}
	}
	if !ent.RecordUsage(ctx, "user-1", model.ActionQuestion) {
		t.Fatal("RecordUsage question failed")
	}

	today := model.DateKey(time.Now())
	got, err := usageRepo.Find(ctx, "user-1", today)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ScenariosUsed != 3 {
		t.Fatalf("expected 3 scenarios used, got %d", got.ScenariosUsed)
	}
	if got.QuestionsUsed != 1 {
		t.Fatalf("expected 1 question used, got %d", got.QuestionsUsed)
	}
}

// Concurrent records for the same user must all land: the counter is
// read and rewritten inside one critical section per (user, date).
func TestRecordUsage_ConcurrentCallsLoseNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, usageRepo, _, _, ent := newTestStack()

	const calls = 100
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(calls)
	for i := 0; i < calls; i++ {
		go func() {
			defer wg.Done()
			<-start
			if !ent.RecordUsage(ctx, "user-1", model.ActionScenario) {
				t.Error("RecordUsage failed")
			}
		}()
	}
	close(start)
	wg.Wait()

	got, err := usageRepo.Find(ctx, "user-1", model.DateKey(time.Now()))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ScenariosUsed != calls {
		t.Fatalf("expected %d scenarios used, got %d", calls, got.ScenariosUsed)
	}
}

func TestRecordUsage_EmptyUserID(t *testing.T) {
	t.Parallel()

	_, _, _, _, ent := newTestStack()
	if ent.RecordUsage(context.Background(), "", model.ActionScenario) {
		t.Fatal("empty user id must not record usage")
	}
}

// Full quota lifecycle: five scenario starts exhaust the free tier, the
// sixth is denied, and a reset opens the gate again.
func TestEntitlement_FreeTierQuotaLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, _, _, _, ent := newTestStack()
	store := ent.usage

	for i := 0; i < 5; i++ {
		if !ent.CanPerform(ctx, "user-1", model.ActionScenario) {
			t.Fatalf("attempt %d: expected allow", i+1)
		}
		if !ent.RecordUsage(ctx, "user-1", model.ActionScenario) {
			t.Fatalf("attempt %d: record failed", i+1)
		}
	}

	if ent.CanPerform(ctx, "user-1", model.ActionScenario) {
		t.Fatal("6th attempt: expected deny")
	}

	if !store.ResetUsage(ctx, "user-1") {
		t.Fatal("reset failed")
	}
	if !ent.CanPerform(ctx, "user-1", model.ActionScenario) {
		t.Fatal("post-reset attempt: expected allow")
	}
}
