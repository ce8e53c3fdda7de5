package repository

import (
	"context"

	"learner-practice-portal/internal/domain/model"
)

// DailyUsageRepository is the port for the remote usage table.
type DailyUsageRepository interface {
	// Find returns the record for (userID, date) or domain.ErrNotFound.
	Find(ctx context.Context, userID, date string) (*model.DailyUsage, error)
	// Create inserts the record if absent. Inserting over an existing
	// (userID, date) pair is not an error; the existing row wins.
	Create(ctx context.Context, u *model.DailyUsage) error
	// Save upserts the record (last-write-wins).
	Save(ctx context.Context, u *model.DailyUsage) error
	// Delete removes the record for (userID, date) if present.
	Delete(ctx context.Context, userID, date string) error
}

// UsageCache is the port for the device-local persistent cache used
// when the remote table is unavailable. Keys derive from (userID, date);
// entries have no cross-device visibility.
type UsageCache interface {
	Get(ctx context.Context, userID, date string) (*model.DailyUsage, error)
	Put(ctx context.Context, u *model.DailyUsage) error
	Delete(ctx context.Context, userID, date string) error
}
