package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/averyquinn/daybook/internal/models"
	"github.com/averyquinn/daybook/internal/storage"
	"github.com/averyquinn/daybook/internal/store"
	"github.com/averyquinn/daybook/internal/sync"
)

// Context carries the wired-up core into every command.
type Context struct {
	AccountKey string
	DataPath   string
	Store      *store.Store
	Provider   storage.Provider

	// Sync is nil when no remote is configured for the account.
	Sync *sync.Client
}

// FlushSync pushes any pending debounced snapshot before the process
// exits; short-lived CLI invocations would otherwise outrun the debounce
// window every time.
func (c *Context) FlushSync() {
	if c.Sync != nil {
		c.Sync.Flush()
		c.Sync.Close()
	}
	if c.Provider != nil {
		c.Provider.Close()
	}
}

var dayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers
// (0=Sunday through 6=Saturday).
func ParseWeekdays(s string) ([]time.Weekday, error) {
	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayNames[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, time.Weekday(num))
	}
	return weekdays, nil
}

// ParseMonthDays parses a comma-separated list of days of month (1-31).
func ParseMonthDays(s string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(s, ",") {
		num, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid day of month: %s", part)
		}
		days = append(days, num)
	}
	return days, nil
}

// FormatPolicy renders a recurrence policy for humans.
func FormatPolicy(p models.RecurrencePolicy) string {
	switch p.Type {
	case models.PolicyDaily:
		return "daily"
	case models.PolicyWeekdays:
		return "weekdays"
	case models.PolicyWeekends:
		return "weekends"
	case models.PolicyWeeklyOnDays:
		if len(p.Weekdays) == 0 {
			return "weekly (any day)"
		}
		var days []string
		for _, wd := range p.Weekdays {
			days = append(days, wd.String()[:3])
		}
		return "weekly on " + strings.Join(days, ",")
	case models.PolicyEveryNDays:
		return fmt.Sprintf("every %d days from %s", p.IntervalDays, p.Anchor)
	case models.PolicyNTimesPerWeek:
		return fmt.Sprintf("%d times per week", p.Target)
	case models.PolicyNTimesPerMonth:
		return fmt.Sprintf("%d times per month", p.Target)
	case models.PolicyMonthlyOnDays:
		var days []string
		for _, d := range p.MonthDays {
			days = append(days, strconv.Itoa(d))
		}
		return "monthly on " + strings.Join(days, ",")
	default:
		return "unknown"
	}
}
