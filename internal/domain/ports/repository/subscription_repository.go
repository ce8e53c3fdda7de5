package repository

import (
	"context"

	"learner-practice-portal/internal/domain/model"
)

// SubscriptionRepository is the port for reading subscription rows
// written by the billing flow.
type SubscriptionRepository interface {
	// FindActiveByUser returns the user's single active subscription.
	// Returns domain.ErrNotFound when none exists and domain.ErrAmbiguous
	// when more than one row claims to be active.
	FindActiveByUser(ctx context.Context, userID string) (*model.Subscription, error)
	// Save upserts a subscription row. Used by seeding and tests; the
	// entitlement core itself never writes subscriptions.
	Save(ctx context.Context, s *model.Subscription) error
}
