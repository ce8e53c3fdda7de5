package model

import (
	"time"

	"learner-practice-portal/internal/domain"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusExpired  SubscriptionStatus = "expired"
	SubscriptionStatusTrial    SubscriptionStatus = "trial"
	SubscriptionStatusPending  SubscriptionStatus = "pending"
)

// Subscription represents a user's current plan assignment. Rows are
// written by the billing flow; this core only reads them.
type Subscription struct {
	ID                 string // UUID
	UserID             string
	PlanID             PlanID
	Status             SubscriptionStatus
	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
	CreatedAt          time.Time
}

// NewSubscription validates and constructs an active subscription
// starting now and running for the given period.
func NewSubscription(id, userID string, planID PlanID, period time.Duration) (*Subscription, error) {
	if id == "" || userID == "" || planID == "" || period <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	end := now.Add(period)
	return &Subscription{
		ID:                 id,
		UserID:             userID,
		PlanID:             planID,
		Status:             SubscriptionStatusActive,
		CurrentPeriodStart: &now,
		CurrentPeriodEnd:   &end,
		CreatedAt:          now,
	}, nil
}

// Entitled reports whether the subscription grants its plan at the given
// instant: status must be active and the current period, if bounded,
// must not have ended. An expired paid plan grants nothing.
func (s *Subscription) Entitled(now time.Time) bool {
	if s == nil || s.Status != SubscriptionStatusActive {
		return false
	}
	if s.CurrentPeriodEnd != nil && !s.CurrentPeriodEnd.After(now) {
		return false
	}
	return true
}
