// Package streak derives a habit's current streak, best streak, and
// success rate from its completion ledger and recurrence policy. The
// calculator is stateless: the cached fields on the habit are a memoized
// view of what Compute returns, nothing more.
package streak

import (
	"math"
	"time"

	"github.com/averyquinn/daybook/internal/models"
	"github.com/averyquinn/daybook/internal/recurrence"
	"github.com/averyquinn/daybook/internal/utils"
)

const (
	// maxWalkDays caps the backward day walk so malformed data can never
	// loop unbounded.
	maxWalkDays = 365

	// graceSearchDays bounds the search for the most recent due day when
	// today itself is not due.
	graceSearchDays = 7
)

// Result is the derived view of a habit's history.
type Result struct {
	Streak      int
	BestStreak  int
	SuccessRate int // whole percent
}

// Compute derives streak, best streak, and success rate for a habit as of
// the given day. BestStreak is the monotonic max of the habit's cached
// best and the freshly computed streak; it never decreases.
func Compute(h models.Habit, today time.Time) Result {
	var r Result
	if h.Policy.IsPeriodGoal() {
		r = computePeriodGoal(h, utils.Day(today))
	} else {
		r = computeFixed(h, utils.Day(today))
	}
	r.BestStreak = h.BestStreak
	if r.Streak > r.BestStreak {
		r.BestStreak = r.Streak
	}
	return r
}

// Recompute refreshes the memoized fields on a habit in place. It is the
// only sanctioned way to update Streak and BestStreak.
func Recompute(h *models.Habit, today time.Time) {
	r := Compute(*h, today)
	h.Streak = r.Streak
	h.BestStreak = r.BestStreak
}

// computeFixed handles per-day schedules: walk backward from today, count
// completed due days, stop at the first due day that was missed, and skip
// days the policy does not cover.
func computeFixed(h models.Habit, today time.Time) Result {
	log := h.CompletionLog

	// Today stays in grace until it ends: a due-but-not-yet-completed
	// today starts the walk at yesterday instead of breaking the streak.
	start := today
	if recurrence.IsDue(h.Policy, today) {
		if !log.Has(utils.DayString(today)) {
			start = utils.AddDays(today, -1)
		}
	} else {
		for i := 1; i <= graceSearchDays; i++ {
			prev := utils.AddDays(today, -i)
			if recurrence.IsDue(h.Policy, prev) {
				start = prev
				break
			}
		}
	}

	streak := 0
	day := start
	for i := 0; i < maxWalkDays; i++ {
		if recurrence.IsDue(h.Policy, day) {
			if !log.Has(utils.DayString(day)) {
				break
			}
			streak++
		}
		day = utils.AddDays(day, -1)
	}

	return Result{Streak: streak, SuccessRate: fixedSuccessRate(h, today)}
}

func fixedSuccessRate(h models.Habit, today time.Time) int {
	created, err := utils.ParseDay(h.CreatedAt)
	if err != nil || created.After(today) {
		created = today
	}

	due, done := 0, 0
	for d := created; !d.After(today); d = utils.AddDays(d, 1) {
		if !recurrence.IsDue(h.Policy, d) {
			continue
		}
		due++
		if h.CompletionLog.Has(utils.DayString(d)) {
			done++
		}
	}
	return percent(done, due)
}

// computePeriodGoal handles n-per-week and n-per-month habits. A period
// succeeds when its completion count reaches the target; the streak is the
// run of consecutive successful periods ending at the current one. The
// still-in-progress period joins the streak only once it has already hit
// the target.
func computePeriodGoal(h models.Habit, today time.Time) Result {
	target := h.Policy.Target
	if target < 1 {
		target = 1
	}
	weekly := h.Policy.Type == models.PolicyNTimesPerWeek

	periodStart := func(t time.Time) time.Time {
		if weekly {
			return utils.StartOfWeek(t)
		}
		return utils.StartOfMonth(t)
	}
	next := func(start time.Time) time.Time {
		if weekly {
			return utils.AddDays(start, 7)
		}
		return start.AddDate(0, 1, 0)
	}
	prev := func(start time.Time) time.Time {
		if weekly {
			return utils.AddDays(start, -7)
		}
		return start.AddDate(0, -1, 0)
	}
	countIn := func(start time.Time) int {
		end := next(start)
		n := 0
		for _, s := range h.CompletionLog {
			d, err := utils.ParseDay(s)
			if err != nil {
				continue
			}
			if !d.Before(start) && d.Before(end) {
				n++
			}
		}
		return n
	}

	current := periodStart(today)

	streak := 0
	p := current
	if countIn(p) < target {
		// The current period has not reached the target yet; it neither
		// counts nor breaks.
		p = prev(p)
	}
	for i := 0; i < maxWalkDays; i++ {
		if countIn(p) < target {
			break
		}
		streak++
		p = prev(p)
	}

	created, err := utils.ParseDay(h.CreatedAt)
	if err != nil || created.After(today) {
		created = today
	}
	total, succeeded := 0, 0
	for p := periodStart(created); p.Before(current); p = next(p) {
		total++
		if countIn(p) >= target {
			succeeded++
		}
	}

	return Result{Streak: streak, SuccessRate: percent(succeeded, total)}
}

// percent rounds done/total to the nearest whole percent. When nothing was
// ever expected, the rate is 100 by definition.
func percent(done, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
