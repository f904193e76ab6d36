package cli

import (
	"fmt"
	"strings"

	"github.com/averyquinn/daybook/internal/models"
	"github.com/averyquinn/daybook/internal/utils"
)

type HabitCmd struct {
	Add      HabitAddCmd      `cmd:"" help:"Add a new habit."`
	List     HabitListCmd     `cmd:"" help:"List habits."`
	Toggle   HabitToggleCmd   `cmd:"" help:"Toggle a habit's completion for a day."`
	Backfill HabitBackfillCmd `cmd:"" help:"Record completions for several past days at once."`
	Today    HabitTodayCmd    `cmd:"" help:"Show which habits are due today."`
	Stats    HabitStatsCmd    `cmd:"" help:"Show streak and success rate for a habit."`
	Delete   HabitDeleteCmd   `cmd:"" help:"Delete a habit permanently."`
}

type HabitAddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Icon     string `help:"Display icon."`
	Policy   string `default:"daily" help:"Recurrence policy: daily, weekdays, weekends, weekly_on_days, every_n_days, n_per_week, n_per_month, monthly_on_days."`
	Days     string `help:"Weekday list for weekly_on_days (e.g. mon,wed,fri)."`
	Every    int    `help:"Interval for every_n_days."`
	Anchor   string `help:"Anchor date for every_n_days (YYYY-MM-DD, defaults to today)."`
	Target   int    `help:"Completions per period for n_per_week / n_per_month."`
	MonthDay string `help:"Day-of-month list for monthly_on_days (e.g. 1,15)."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	policy := models.RecurrencePolicy{
		Type:         models.PolicyType(c.Policy),
		IntervalDays: c.Every,
		Anchor:       c.Anchor,
		Target:       c.Target,
	}
	if c.Days != "" {
		weekdays, err := ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		policy.Weekdays = weekdays
	}
	if c.MonthDay != "" {
		days, err := ParseMonthDays(c.MonthDay)
		if err != nil {
			return err
		}
		policy.MonthDays = days
	}

	if _, err := ctx.Store.GetHabitByName(c.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	habit, err := ctx.Store.AddHabit(models.Habit{
		Name:   c.Name,
		Icon:   c.Icon,
		Policy: policy,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", habit.Name, FormatPolicy(habit.Policy))
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits := ctx.Store.GetHabits()
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		icon := habit.Icon
		if icon == "" {
			icon = "•"
		}
		fmt.Printf("%s %s — %s (streak %d, best %d)\n",
			icon, habit.Name, FormatPolicy(habit.Policy), habit.Streak, habit.BestStreak)
	}
	return nil
}

type HabitToggleCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Day to toggle (YYYY-MM-DD, defaults to today)."`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = utils.DayString(utils.Today())
	}

	updated, err := ctx.Store.ToggleCompletion(habit.ID, day)
	if err != nil {
		return err
	}

	if updated.CompletionLog.Has(day) {
		fmt.Printf("Marked %s done for %s (streak %d)\n", updated.Name, day, updated.Streak)
	} else {
		fmt.Printf("Cleared %s for %s (streak %d)\n", updated.Name, day, updated.Streak)
	}
	return nil
}

type HabitBackfillCmd struct {
	Name string   `arg:"" help:"Habit name."`
	Days []string `arg:"" help:"Days to record (YYYY-MM-DD)."`
}

func (c *HabitBackfillCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return err
	}

	_, added, err := ctx.Store.Backfill(habit.ID, c.Days)
	if err != nil {
		return err
	}

	if len(added) == 0 {
		fmt.Println("Nothing to backfill; all days were already recorded.")
		return nil
	}
	fmt.Printf("Recorded %d day(s): %s\n", len(added), strings.Join(added, ", "))
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *Context) error {
	today := utils.Today()
	due := ctx.Store.DueToday()
	if len(due) == 0 {
		fmt.Println("No habits due today.")
		return nil
	}

	day := utils.DayString(today)
	for _, habit := range due {
		mark := " "
		if habit.CompletionLog.Has(day) {
			mark = "x"
		}
		fmt.Printf("[%s] %s\n", mark, habit.Name)
	}
	return nil
}

type HabitStatsCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitStatsCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return err
	}

	stats, err := ctx.Store.HabitStats(habit.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", habit.Name)
	fmt.Printf("  Policy:       %s\n", FormatPolicy(habit.Policy))
	fmt.Printf("  Streak:       %d\n", stats.Streak)
	fmt.Printf("  Best streak:  %d\n", stats.BestStreak)
	fmt.Printf("  Success rate: %d%%\n", stats.SuccessRate)
	fmt.Printf("  Completions:  %d\n", len(habit.CompletionLog))
	if last := habit.CompletionLog.Latest(); last != "" {
		fmt.Printf("  Last done:    %s\n", last)
	}
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}
