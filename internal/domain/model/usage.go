package model

import "time"

type ActionType string

const (
	ActionScenario ActionType = "scenario"
	ActionQuestion ActionType = "question"
)

// Valid reports whether the action type is one of the metered actions.
func (a ActionType) Valid() bool {
	return a == ActionScenario || a == ActionQuestion
}

// DateKey formats an instant as the calendar-day key used for usage
// records: YYYY-MM-DD in the instant's own location.
func DateKey(t time.Time) string { return t.Format("2006-01-02") }

// DailyUsage is the per-user, per-calendar-day counter record. At most
// one record exists per (UserID, Date). MaxScenarios/MaxQuestions are a
// copy of the ceilings at creation time; entitlement decisions compare
// against the plan catalog, not this copy.
type DailyUsage struct {
	UserID        string    `json:"user_id"`
	Date          string    `json:"date"` // YYYY-MM-DD
	ScenariosUsed int       `json:"scenarios_used"`
	QuestionsUsed int       `json:"questions_used"`
	MaxScenarios  int       `json:"max_scenarios"`
	MaxQuestions  int       `json:"max_questions"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewDefaultDailyUsage builds a fresh zero-counter record for the day,
// with ceilings taken from the given plan.
func NewDefaultDailyUsage(userID, date string, plan *Plan) *DailyUsage {
	return &DailyUsage{
		UserID:       userID,
		Date:         date,
		MaxScenarios: plan.MaxScenariosPerDay,
		MaxQuestions: plan.MaxQuestionsPerDay,
		UpdatedAt:    time.Now(),
	}
}

// Used returns the consumed count for the given action type.
func (u *DailyUsage) Used(action ActionType) int {
	if action == ActionScenario {
		return u.ScenariosUsed
	}
	return u.QuestionsUsed
}

// UsagePatch is a partial update to a DailyUsage record. Nil fields are
// left untouched; set fields replace the stored value (last-write-wins,
// no compare-and-swap).
type UsagePatch struct {
	ScenariosUsed *int
	QuestionsUsed *int
}

// Apply merges the patch into a copy of the record and stamps UpdatedAt.
func (u *DailyUsage) Apply(p UsagePatch) *DailyUsage {
	merged := *u
	if p.ScenariosUsed != nil {
		merged.ScenariosUsed = *p.ScenariosUsed
	}
	if p.QuestionsUsed != nil {
		merged.QuestionsUsed = *p.QuestionsUsed
	}
	merged.UpdatedAt = time.Now()
	return &merged
}
