package models

import (
	"time"

	"github.com/averyquinn/daybook/internal/ledger"
)

// PolicyType discriminates the recurrence policy union.
type PolicyType string

const (
	PolicyDaily          PolicyType = "daily"
	PolicyWeekdays       PolicyType = "weekdays"
	PolicyWeekends       PolicyType = "weekends"
	PolicyWeeklyOnDays   PolicyType = "weekly_on_days"
	PolicyEveryNDays     PolicyType = "every_n_days"
	PolicyNTimesPerWeek  PolicyType = "n_per_week"
	PolicyNTimesPerMonth PolicyType = "n_per_month"
	PolicyMonthlyOnDays  PolicyType = "monthly_on_days"
)

// RecurrencePolicy describes which calendar days a habit is expected on.
// Only the fields relevant to Type are set; the rest stay at their zero
// values and are omitted from serialization.
type RecurrencePolicy struct {
	Type PolicyType `json:"type"`

	// Weekdays drives weekly_on_days.
	Weekdays []time.Weekday `json:"weekdays,omitempty"`

	// IntervalDays and Anchor drive every_n_days. Anchor is a YYYY-MM-DD
	// day; for habits it is the creation day.
	IntervalDays int    `json:"interval_days,omitempty"`
	Anchor       string `json:"anchor,omitempty"`

	// Target is the per-period goal for n_per_week and n_per_month.
	Target int `json:"target,omitempty"`

	// MonthDays drives monthly_on_days (1-31).
	MonthDays []int `json:"month_days,omitempty"`
}

// IsPeriodGoal reports whether the policy is evaluated in aggregate over a
// rolling period rather than per day.
func (p RecurrencePolicy) IsPeriodGoal() bool {
	return p.Type == PolicyNTimesPerWeek || p.Type == PolicyNTimesPerMonth
}

// Habit represents a recurring practice to track. Streak and BestStreak
// are memoized projections of CompletionLog plus Policy; they are
// recomputed on every ledger mutation and must never be written by hand.
type Habit struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Icon          string           `json:"icon,omitempty"`
	Policy        RecurrencePolicy `json:"policy"`
	CompletionLog ledger.Ledger    `json:"completion_log"`
	Streak        int              `json:"streak"`
	BestStreak    int              `json:"best_streak"`
	CreatedAt     string           `json:"created_at"` // YYYY-MM-DD
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Clone returns a deep copy, so callers can hand habits to asynchronous
// consumers without racing the store's in-memory snapshot.
func (h Habit) Clone() Habit {
	out := h
	out.CompletionLog = h.CompletionLog.Clone()
	if h.Policy.Weekdays != nil {
		out.Policy.Weekdays = append([]time.Weekday(nil), h.Policy.Weekdays...)
	}
	if h.Policy.MonthDays != nil {
		out.Policy.MonthDays = append([]int(nil), h.Policy.MonthDays...)
	}
	return out
}
