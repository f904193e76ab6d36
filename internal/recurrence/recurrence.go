// Package recurrence decides whether a habit is due on a given calendar
// day. Evaluation is pure and total: any policy and any date, including
// dates before the habit existed, produce a boolean without error.
package recurrence

import (
	"time"

	"github.com/averyquinn/daybook/internal/models"
	"github.com/averyquinn/daybook/internal/utils"
)

// IsDue reports whether a habit governed by the policy is expected on the
// given date.
//
// Period-goal policies (n_per_week, n_per_month) return true for every
// date: they have no per-day schedule, and the streak calculator evaluates
// them in aggregate over the period. Do not "fix" this to per-day logic.
func IsDue(p models.RecurrencePolicy, date time.Time) bool {
	d := utils.Day(date)

	switch p.Type {
	case models.PolicyDaily:
		return true
	case models.PolicyWeekdays:
		return utils.IsWeekday(d)
	case models.PolicyWeekends:
		return !utils.IsWeekday(d)
	case models.PolicyWeeklyOnDays:
		// An empty day set is legacy data, kept as an always-due habit
		// rather than rejected.
		if len(p.Weekdays) == 0 {
			return true
		}
		for _, wd := range p.Weekdays {
			if d.Weekday() == wd {
				return true
			}
		}
		return false
	case models.PolicyEveryNDays:
		if p.IntervalDays < 2 {
			return false
		}
		anchor, err := utils.ParseDay(p.Anchor)
		if err != nil {
			return false
		}
		since := utils.DaysBetween(anchor, d)
		return since >= 0 && since%p.IntervalDays == 0
	case models.PolicyNTimesPerWeek, models.PolicyNTimesPerMonth:
		return true
	case models.PolicyMonthlyOnDays:
		for _, md := range p.MonthDays {
			if d.Day() == md {
				return true
			}
		}
		return false
	default:
		return false
	}
}
