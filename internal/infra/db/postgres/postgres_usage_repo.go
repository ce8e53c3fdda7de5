package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"learner-practice-portal/internal/domain"
	"learner-practice-portal/internal/domain/model"
	"learner-practice-portal/internal/domain/ports/repository"
)

// Ensure dailyUsageRepo implements repository.DailyUsageRepository
var _ repository.DailyUsageRepository = (*dailyUsageRepo)(nil)

// dailyUsageRepo persists usage counters in the remote daily_usage table.
// Errors other than "no rows" are wrapped, not swallowed, so the guard
// layer can classify connectivity failures from the underlying cause.
type dailyUsageRepo struct {
	pool *pgxpool.Pool
}

func NewDailyUsageRepo(pool *pgxpool.Pool) *dailyUsageRepo {
	return &dailyUsageRepo{pool: pool}
}

func (r *dailyUsageRepo) Find(ctx context.Context, userID, date string) (*model.DailyUsage, error) {
	const q = `
SELECT user_id, date, scenarios_used, questions_used, max_scenarios, max_questions, updated_at
  FROM daily_usage
 WHERE user_id=$1 AND date=$2;`

	u := &model.DailyUsage{}
	err := r.pool.QueryRow(ctx, q, userID, date).Scan(
		&u.UserID, &u.Date, &u.ScenariosUsed, &u.QuestionsUsed,
		&u.MaxScenarios, &u.MaxQuestions, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find daily usage: %w", err)
	}
	return u, nil
}

func (r *dailyUsageRepo) Create(ctx context.Context, u *model.DailyUsage) error {
	const q = `
INSERT INTO daily_usage (user_id, date, scenarios_used, questions_used, max_scenarios, max_questions, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (user_id, date) DO NOTHING;`

	_, err := r.pool.Exec(ctx, q,
		u.UserID, u.Date, u.ScenariosUsed, u.QuestionsUsed,
		u.MaxScenarios, u.MaxQuestions, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create daily usage: %w", err)
	}
	return nil
}

func (r *dailyUsageRepo) Save(ctx context.Context, u *model.DailyUsage) error {
	const q = `
INSERT INTO daily_usage (user_id, date, scenarios_used, questions_used, max_scenarios, max_questions, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (user_id, date) DO UPDATE SET
  scenarios_used=$3, questions_used=$4, max_scenarios=$5, max_questions=$6, updated_at=$7;`

	_, err := r.pool.Exec(ctx, q,
		u.UserID, u.Date, u.ScenariosUsed, u.QuestionsUsed,
		u.MaxScenarios, u.MaxQuestions, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save daily usage: %w", err)
	}
	return nil
}

func (r *dailyUsageRepo) Delete(ctx context.Context, userID, date string) error {
	const q = `DELETE FROM daily_usage WHERE user_id=$1 AND date=$2;`

	_, err := r.pool.Exec(ctx, q, userID, date)
	if err != nil {
		return fmt.Errorf("delete daily usage: %w", err)
	}
	return nil
}
