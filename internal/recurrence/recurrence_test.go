package recurrence

import (
	"testing"
	"time"

	"github.com/averyquinn/daybook/internal/models"
	"github.com/averyquinn/daybook/internal/utils"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDay(s)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", s, err)
	}
	return d
}

func TestIsDueDaily(t *testing.T) {
	p := models.RecurrencePolicy{Type: models.PolicyDaily}
	for _, s := range []string{"2025-01-01", "2025-06-15", "1999-12-31"} {
		if !IsDue(p, day(t, s)) {
			t.Errorf("expected daily habit due on %s", s)
		}
	}
}

func TestIsDueWeekdaysAndWeekends(t *testing.T) {
	weekdays := models.RecurrencePolicy{Type: models.PolicyWeekdays}
	weekends := models.RecurrencePolicy{Type: models.PolicyWeekends}

	// 2025-01-06 is a Monday.
	for i := 0; i < 7; i++ {
		d := utils.AddDays(day(t, "2025-01-06"), i)
		isWeekend := d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
		if IsDue(weekdays, d) == isWeekend {
			t.Errorf("weekdays policy wrong on %s (%s)", utils.DayString(d), d.Weekday())
		}
		if IsDue(weekends, d) != isWeekend {
			t.Errorf("weekends policy wrong on %s (%s)", utils.DayString(d), d.Weekday())
		}
	}
}

func TestIsDueWeeklyOnDays(t *testing.T) {
	p := models.RecurrencePolicy{
		Type:     models.PolicyWeeklyOnDays,
		Weekdays: []time.Weekday{time.Monday, time.Thursday},
	}

	if !IsDue(p, day(t, "2025-01-06")) { // Monday
		t.Error("expected due on Monday")
	}
	if !IsDue(p, day(t, "2025-01-09")) { // Thursday
		t.Error("expected due on Thursday")
	}
	if IsDue(p, day(t, "2025-01-07")) { // Tuesday
		t.Error("expected not due on Tuesday")
	}
}

func TestIsDueWeeklyEmptySetFallsBackToAlways(t *testing.T) {
	p := models.RecurrencePolicy{Type: models.PolicyWeeklyOnDays}
	if !IsDue(p, day(t, "2025-01-07")) {
		t.Error("expected empty weekday set to behave as always due")
	}
}

func TestIsDueEveryNDaysPeriodicity(t *testing.T) {
	p := models.RecurrencePolicy{
		Type:         models.PolicyEveryNDays,
		IntervalDays: 3,
		Anchor:       "2025-01-01",
	}

	due := map[string]bool{
		"2025-01-01": true, "2025-01-04": true, "2025-01-07": true,
		"2025-01-10": true, "2025-01-13": true,
	}
	for i := 0; i < 14; i++ {
		d := utils.AddDays(day(t, "2025-01-01"), i)
		s := utils.DayString(d)
		if IsDue(p, d) != due[s] {
			t.Errorf("IsDue(every 3 days, %s) = %v, want %v", s, !due[s], due[s])
		}
	}

	// Dates before the anchor are never due.
	for _, s := range []string{"2024-12-31", "2024-12-29", "2020-01-01"} {
		if IsDue(p, day(t, s)) {
			t.Errorf("expected %s (before anchor) not due", s)
		}
	}
}

func TestIsDueEveryNDaysRejectsShortInterval(t *testing.T) {
	for _, n := range []int{-1, 0, 1} {
		p := models.RecurrencePolicy{Type: models.PolicyEveryNDays, IntervalDays: n, Anchor: "2025-01-01"}
		if IsDue(p, day(t, "2025-01-01")) {
			t.Errorf("expected interval %d never due", n)
		}
	}
}

func TestIsDuePeriodGoalsAlwaysEligible(t *testing.T) {
	week := models.RecurrencePolicy{Type: models.PolicyNTimesPerWeek, Target: 3}
	month := models.RecurrencePolicy{Type: models.PolicyNTimesPerMonth, Target: 5}
	for _, s := range []string{"2025-01-01", "2025-01-02", "2025-02-28"} {
		if !IsDue(week, day(t, s)) || !IsDue(month, day(t, s)) {
			t.Errorf("expected period-goal policies eligible on %s", s)
		}
	}
}

func TestIsDueMonthlyOnDays(t *testing.T) {
	p := models.RecurrencePolicy{Type: models.PolicyMonthlyOnDays, MonthDays: []int{1, 15}}

	if !IsDue(p, day(t, "2025-03-01")) || !IsDue(p, day(t, "2025-03-15")) {
		t.Error("expected due on the 1st and 15th")
	}
	if IsDue(p, day(t, "2025-03-14")) {
		t.Error("expected not due on the 14th")
	}
	// Day 31 in a 30-day month simply never matches.
	p31 := models.RecurrencePolicy{Type: models.PolicyMonthlyOnDays, MonthDays: []int{31}}
	for i := 0; i < 30; i++ {
		d := utils.AddDays(day(t, "2025-04-01"), i)
		if IsDue(p31, d) {
			t.Errorf("expected day-31 policy not due on %s", utils.DayString(d))
		}
	}
}

// Totality: every variant over a 400-day window spanning an every_n_days
// anchor terminates and returns a boolean, malformed fields included.
func TestIsDueTotality(t *testing.T) {
	policies := []models.RecurrencePolicy{
		{Type: models.PolicyDaily},
		{Type: models.PolicyWeekdays},
		{Type: models.PolicyWeekends},
		{Type: models.PolicyWeeklyOnDays, Weekdays: []time.Weekday{time.Wednesday}},
		{Type: models.PolicyWeeklyOnDays},
		{Type: models.PolicyEveryNDays, IntervalDays: 3, Anchor: "2025-01-01"},
		{Type: models.PolicyEveryNDays, IntervalDays: 0, Anchor: "2025-01-01"},
		{Type: models.PolicyEveryNDays, IntervalDays: 5, Anchor: "garbage"},
		{Type: models.PolicyNTimesPerWeek, Target: 3},
		{Type: models.PolicyNTimesPerMonth, Target: 10},
		{Type: models.PolicyMonthlyOnDays, MonthDays: []int{1, 31}},
		{Type: models.PolicyMonthlyOnDays},
		{Type: models.PolicyType("unknown")},
	}

	start := utils.AddDays(day(t, "2025-01-01"), -100)
	for _, p := range policies {
		for i := 0; i < 400; i++ {
			_ = IsDue(p, utils.AddDays(start, i))
		}
	}
}
