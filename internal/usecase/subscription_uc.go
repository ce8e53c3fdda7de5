// File: internal/usecase/subscription_uc.go
package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"learner-practice-portal/internal/domain"
	"learner-practice-portal/internal/domain/model"
	"learner-practice-portal/internal/domain/ports/repository"
	"learner-practice-portal/internal/infra/guard"
)

// Compile-time check
var _ SubscriptionLookup = (*subscriptionUC)(nil)

// SubscriptionLookup resolves the caller's current subscription.
// "Not found", "remote unavailable" and "multiple ambiguous rows" all
// normalize to nil: the resolver treats nil as the free tier, which is
// the most restrictive and therefore safe default. No local cache —
// subscription state is not worth caching when unknown degrades safely.
type SubscriptionLookup interface {
	Current(ctx context.Context, userID string) *model.Subscription
}

type subscriptionUC struct {
	repo  repository.SubscriptionRepository
	guard *guard.Guard

	log *zerolog.Logger
}

func NewSubscriptionUseCase(repo repository.SubscriptionRepository, g *guard.Guard, logger *zerolog.Logger) *subscriptionUC {
	return &subscriptionUC{repo: repo, guard: g, log: logger}
}

func (uc *subscriptionUC) Current(ctx context.Context, userID string) *model.Subscription {
	if userID == "" {
		return nil
	}
	return guard.Read(ctx, uc.guard, "subscription.current", (*model.Subscription)(nil),
		func(ctx context.Context) (*model.Subscription, error) {
			s, err := uc.repo.FindActiveByUser(ctx, userID)
			if err != nil {
				// Both are definitive answers from a reachable backend,
				// not failures: the user simply has no single active row.
				if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrAmbiguous) {
					return nil, nil
				}
				return nil, err
			}
			return s, nil
		})
}
