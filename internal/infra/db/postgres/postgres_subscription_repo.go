package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"learner-practice-portal/internal/domain"
	"learner-practice-portal/internal/domain/model"
	"learner-practice-portal/internal/domain/ports/repository"
)

// Ensure subscriptionRepo implements repository.SubscriptionRepository
var _ repository.SubscriptionRepository = (*subscriptionRepo)(nil)

type subscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepo(pool *pgxpool.Pool) *subscriptionRepo {
	return &subscriptionRepo{pool: pool}
}

// FindActiveByUser returns the single active subscription for the user.
// Zero rows map to ErrNotFound; more than one row is ErrAmbiguous, which
// the lookup usecase treats the same as none (free tier).
func (r *subscriptionRepo) FindActiveByUser(ctx context.Context, userID string) (*model.Subscription, error) {
	const q = `
SELECT id, user_id, plan_id, status, current_period_start, current_period_end, created_at
  FROM subscriptions
 WHERE user_id=$1 AND status='active'
 ORDER BY created_at DESC;`

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query active subscription: %w", err)
	}
	defer rows.Close()

	var out []*model.Subscription
	for rows.Next() {
		s := &model.Subscription{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.PlanID, &s.Status,
			&s.CurrentPeriodStart, &s.CurrentPeriodEnd, &s.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read subscription rows: %w", err)
	}

	switch len(out) {
	case 0:
		return nil, domain.ErrNotFound
	case 1:
		return out[0], nil
	default:
		return nil, domain.ErrAmbiguous
	}
}

func (r *subscriptionRepo) Save(ctx context.Context, s *model.Subscription) error {
	const q = `
INSERT INTO subscriptions (id, user_id, plan_id, status, current_period_start, current_period_end, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET
  plan_id=$3, status=$4, current_period_start=$5, current_period_end=$6;`

	_, err := r.pool.Exec(ctx, q,
		s.ID, s.UserID, s.PlanID, s.Status,
		s.CurrentPeriodStart, s.CurrentPeriodEnd, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}
	return nil
}
