// Package validation rejects malformed entities at the store boundary,
// before any mutation is applied.
package validation

import (
	"fmt"
	"strings"

	"github.com/averyquinn/daybook/internal/constants"
	"github.com/averyquinn/daybook/internal/models"
	"github.com/averyquinn/daybook/internal/utils"
)

// FieldError reports a rejected field. It is returned synchronously to the
// caller and is never fatal.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func fieldErr(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

// Habit checks a habit's required fields and policy shape.
func Habit(h models.Habit) error {
	if strings.TrimSpace(h.Name) == "" {
		return fieldErr("name", "must not be empty")
	}
	return Policy(h.Policy)
}

// Policy checks that a recurrence policy's fields fit its variant.
func Policy(p models.RecurrencePolicy) error {
	switch p.Type {
	case models.PolicyDaily, models.PolicyWeekdays, models.PolicyWeekends, models.PolicyWeeklyOnDays:
		return nil
	case models.PolicyEveryNDays:
		if p.IntervalDays < 2 {
			return fieldErr("interval_days", "must be at least 2")
		}
		if _, err := utils.ParseDay(p.Anchor); err != nil {
			return fieldErr("anchor", "must be a YYYY-MM-DD date")
		}
		return nil
	case models.PolicyNTimesPerWeek:
		if p.Target < 1 || p.Target > 7 {
			return fieldErr("target", "must be between 1 and 7")
		}
		return nil
	case models.PolicyNTimesPerMonth:
		if p.Target < 1 || p.Target > 31 {
			return fieldErr("target", "must be between 1 and 31")
		}
		return nil
	case models.PolicyMonthlyOnDays:
		if len(p.MonthDays) == 0 {
			return fieldErr("month_days", "must name at least one day of month")
		}
		for _, d := range p.MonthDays {
			if d < 1 || d > 31 {
				return fieldErr("month_days", fmt.Sprintf("day %d out of range 1-31", d))
			}
		}
		return nil
	default:
		return fieldErr("policy", fmt.Sprintf("unknown type %q", p.Type))
	}
}

// Task checks a task's required fields.
func Task(t models.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return fieldErr("title", "must not be empty")
	}
	if t.PriorityScore < 0 || t.PriorityScore > constants.MaxPriority {
		return fieldErr("priority_score", fmt.Sprintf("must be between 0 and %d", constants.MaxPriority))
	}
	if t.ScheduledDate != "" {
		if _, err := utils.ParseDay(t.ScheduledDate); err != nil {
			return fieldErr("scheduled_date", "must be a YYYY-MM-DD date")
		}
	}
	if t.Deadline != "" {
		if _, err := utils.ParseDay(t.Deadline); err != nil {
			return fieldErr("deadline", "must be a YYYY-MM-DD date")
		}
	}
	return nil
}

// Project checks a project's required fields.
func Project(p models.Project) error {
	if strings.TrimSpace(p.Name) == "" {
		return fieldErr("name", "must not be empty")
	}
	return nil
}

// Note checks a note's required fields.
func Note(n models.Note) error {
	if strings.TrimSpace(n.Title) == "" {
		return fieldErr("title", "must not be empty")
	}
	return nil
}

// Day checks a completion day string.
func Day(s string) error {
	if _, err := utils.ParseDay(s); err != nil {
		return fieldErr("date", "must be a YYYY-MM-DD date")
	}
	return nil
}
