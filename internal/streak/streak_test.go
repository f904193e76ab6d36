package streak

import (
	"testing"
	"time"

	"github.com/averyquinn/daybook/internal/ledger"
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

func dailyHabit(created string, completions ...string) models.Habit {
	return models.Habit{
		ID:            "h",
		Name:          "test",
		Policy:        models.RecurrencePolicy{Type: models.PolicyDaily},
		CompletionLog: ledger.Normalize(completions),
		CreatedAt:     created,
	}
}

func TestDailyStreakCountsConsecutiveDueDays(t *testing.T) {
	h := dailyHabit("2025-01-06",
		"2025-01-06", "2025-01-07", "2025-01-08", "2025-01-09", "2025-01-10")

	r := Compute(h, day(t, "2025-01-10"))
	if r.Streak != 5 {
		t.Errorf("streak = %d, want 5", r.Streak)
	}
	if r.SuccessRate != 100 {
		t.Errorf("success rate = %d, want 100", r.SuccessRate)
	}
}

func TestStreakBreakPropagatesButBestDoesNot(t *testing.T) {
	h := dailyHabit("2025-01-06",
		"2025-01-06", "2025-01-07", "2025-01-08", "2025-01-09", "2025-01-10")
	today := day(t, "2025-01-10")

	Recompute(&h, today)
	if h.Streak != 5 || h.BestStreak != 5 {
		t.Fatalf("streak/best = %d/%d, want 5/5", h.Streak, h.BestStreak)
	}

	// Uncomplete the middle day: the streak is the run ending at the most
	// recent day, the best streak never decreases.
	h.CompletionLog, _ = h.CompletionLog.Remove("2025-01-08")
	Recompute(&h, today)
	if h.Streak != 2 {
		t.Errorf("streak after uncompletion = %d, want 2", h.Streak)
	}
	if h.BestStreak != 5 {
		t.Errorf("best streak after uncompletion = %d, want 5", h.BestStreak)
	}
}

func TestGraceDayLeniency(t *testing.T) {
	// Completions through yesterday, nothing yet today. The streak reads
	// as if today did not exist, not zero.
	h := dailyHabit("2025-01-06",
		"2025-01-06", "2025-01-07", "2025-01-08", "2025-01-09")

	r := Compute(h, day(t, "2025-01-10"))
	if r.Streak != 4 {
		t.Errorf("streak = %d, want 4 (today still in grace)", r.Streak)
	}
}

func TestNonDueTodaySkipsBackToLastDueDay(t *testing.T) {
	// Weekday habit checked on a Saturday: the walk starts from Friday.
	h := models.Habit{
		Policy:    models.RecurrencePolicy{Type: models.PolicyWeekdays},
		CreatedAt: "2025-01-06",
		CompletionLog: ledger.Normalize([]string{
			"2025-01-06", "2025-01-07", "2025-01-08", "2025-01-09", "2025-01-10",
		}),
	}

	r := Compute(h, day(t, "2025-01-11")) // Saturday
	if r.Streak != 5 {
		t.Errorf("streak on Saturday = %d, want 5", r.Streak)
	}

	r = Compute(h, day(t, "2025-01-12")) // Sunday, still fine
	if r.Streak != 5 {
		t.Errorf("streak on Sunday = %d, want 5", r.Streak)
	}
}

func TestEveryNDaysStreakSkipsOffDays(t *testing.T) {
	h := models.Habit{
		Policy: models.RecurrencePolicy{
			Type: models.PolicyEveryNDays, IntervalDays: 3, Anchor: "2025-01-01",
		},
		CreatedAt:     "2025-01-01",
		CompletionLog: ledger.Normalize([]string{"2025-01-01", "2025-01-04", "2025-01-07"}),
	}

	if r := Compute(h, day(t, "2025-01-07")); r.Streak != 3 {
		t.Errorf("streak on due day = %d, want 3", r.Streak)
	}
	// Off-cycle days neither count nor break.
	if r := Compute(h, day(t, "2025-01-09")); r.Streak != 3 {
		t.Errorf("streak on off day = %d, want 3", r.Streak)
	}
	// The next due day is in grace until it ends.
	if r := Compute(h, day(t, "2025-01-10")); r.Streak != 3 {
		t.Errorf("streak on unmet due day = %d, want 3 (grace)", r.Streak)
	}
}

func TestDailySuccessRate(t *testing.T) {
	h := dailyHabit("2025-01-01",
		"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04", "2025-01-05")

	r := Compute(h, day(t, "2025-01-10"))
	if r.SuccessRate != 50 {
		t.Errorf("success rate = %d, want 50", r.SuccessRate)
	}
}

func TestSuccessRateWithNoDueDaysIsHundred(t *testing.T) {
	h := models.Habit{
		Policy:    models.RecurrencePolicy{Type: models.PolicyMonthlyOnDays, MonthDays: []int{31}},
		CreatedAt: "2025-04-01", // April has no 31st
	}
	r := Compute(h, day(t, "2025-04-10"))
	if r.SuccessRate != 100 {
		t.Errorf("success rate with zero due days = %d, want 100", r.SuccessRate)
	}
}

func TestWeeklyGoalCurrentPeriodCountsOnceTargetReached(t *testing.T) {
	policy := models.RecurrencePolicy{Type: models.PolicyNTimesPerWeek, Target: 3}
	today := day(t, "2025-01-08") // Wednesday, week of Jan 6

	met := models.Habit{
		Policy:        policy,
		CreatedAt:     "2025-01-06",
		CompletionLog: ledger.Normalize([]string{"2025-01-06", "2025-01-07", "2025-01-08"}),
	}
	if r := Compute(met, today); r.Streak != 1 {
		t.Errorf("streak with target met mid-week = %d, want 1", r.Streak)
	}

	unmet := models.Habit{
		Policy:        policy,
		CreatedAt:     "2025-01-06",
		CompletionLog: ledger.Normalize([]string{"2025-01-06", "2025-01-07"}),
	}
	if r := Compute(unmet, today); r.Streak != 0 {
		t.Errorf("streak with target unmet mid-week = %d, want 0", r.Streak)
	}
}

func TestWeeklyGoalConsecutivePeriods(t *testing.T) {
	h := models.Habit{
		Policy:    models.RecurrencePolicy{Type: models.PolicyNTimesPerWeek, Target: 2},
		CreatedAt: "2024-12-30",
		CompletionLog: ledger.Normalize([]string{
			"2024-12-30", "2025-01-01", // week of Dec 30: 2 of 2
			"2025-01-06", "2025-01-09", // week of Jan 6: 2 of 2
			"2025-01-13", // current week: 1 of 2, in progress
		}),
	}

	r := Compute(h, day(t, "2025-01-15"))
	if r.Streak != 2 {
		t.Errorf("streak = %d, want 2 (unfinished current week neither counts nor breaks)", r.Streak)
	}
	// Two elapsed weeks, both successful.
	if r.SuccessRate != 100 {
		t.Errorf("success rate = %d, want 100", r.SuccessRate)
	}
}

func TestWeeklyGoalSuccessRateExcludesCurrentPeriod(t *testing.T) {
	h := models.Habit{
		Policy:    models.RecurrencePolicy{Type: models.PolicyNTimesPerWeek, Target: 2},
		CreatedAt: "2024-12-30",
		CompletionLog: ledger.Normalize([]string{
			"2024-12-30", "2024-12-31", // success
			"2025-01-06", // failure: 1 of 2
		}),
	}

	r := Compute(h, day(t, "2025-01-15"))
	if r.SuccessRate != 50 {
		t.Errorf("success rate = %d, want 50", r.SuccessRate)
	}
}

func TestMonthlyGoal(t *testing.T) {
	h := models.Habit{
		Policy:    models.RecurrencePolicy{Type: models.PolicyNTimesPerMonth, Target: 2},
		CreatedAt: "2024-11-01",
		CompletionLog: ledger.Normalize([]string{
			"2024-11-05", "2024-11-20", // November: success
			"2024-12-01", "2024-12-25", // December: success
			"2025-01-03", "2025-01-04", // January (current): success already
		}),
	}

	r := Compute(h, day(t, "2025-01-10"))
	if r.Streak != 3 {
		t.Errorf("streak = %d, want 3", r.Streak)
	}
	if r.SuccessRate != 100 {
		t.Errorf("success rate = %d, want 100", r.SuccessRate)
	}
}

func TestWalkIsCapped(t *testing.T) {
	// 400 consecutive completed days: the safety cap keeps the walk (and
	// the reported streak) bounded.
	today := day(t, "2025-06-01")
	var log []string
	for i := 0; i < 400; i++ {
		log = append(log, utils.DayString(utils.AddDays(today, -i)))
	}
	h := dailyHabit(utils.DayString(utils.AddDays(today, -399)), log...)

	r := Compute(h, today)
	if r.Streak != 365 {
		t.Errorf("capped streak = %d, want 365", r.Streak)
	}
}
