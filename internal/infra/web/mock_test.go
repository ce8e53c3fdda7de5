package web

import (
	"context"

	"learner-practice-portal/internal/domain/model"
)

// fakeResolver scripts entitlement answers for handler tests.
type fakeResolver struct {
	allow    bool
	recorded bool

	lastUserID string
	lastAction model.ActionType
}

func (f *fakeResolver) CanPerform(ctx context.Context, userID string, action model.ActionType) bool {
	f.lastUserID = userID
	f.lastAction = action
	return f.allow
}

func (f *fakeResolver) RecordUsage(ctx context.Context, userID string, action model.ActionType) bool {
	f.lastUserID = userID
	f.lastAction = action
	return f.recorded
}

// fakeUsageStore returns a canned record and tracks reset calls.
type fakeUsageStore struct {
	record    *model.DailyUsage
	resetOK   bool
	resetUser string
}

func (f *fakeUsageStore) GetUsage(ctx context.Context, userID string, date ...string) *model.DailyUsage {
	return f.record
}

func (f *fakeUsageStore) Increment(ctx context.Context, userID string, action model.ActionType) bool {
	return true
}

func (f *fakeUsageStore) UpdateUsage(ctx context.Context, userID string, patch model.UsagePatch) bool {
	return true
}

func (f *fakeUsageStore) ResetUsage(ctx context.Context, userID string) bool {
	f.resetUser = userID
	return f.resetOK
}
