package cli

import (
	"reflect"
	"testing"
	"time"

	"github.com/averyquinn/daybook/internal/models"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		input   string
		want    []time.Weekday
		wantErr bool
	}{
		{"mon,wed,fri", []time.Weekday{time.Monday, time.Wednesday, time.Friday}, false},
		{"Monday", []time.Weekday{time.Monday}, false},
		{"0,6", []time.Weekday{time.Sunday, time.Saturday}, false},
		{" tue , thu ", []time.Weekday{time.Tuesday, time.Thursday}, false},
		{"blursday", nil, true},
		{"7", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseWeekdays(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseWeekdays(%q): expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseWeekdays(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseWeekdays(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseMonthDays(t *testing.T) {
	got, err := ParseMonthDays("1, 15,28")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []int{1, 15, 28}) {
		t.Errorf("got %v", got)
	}

	if _, err := ParseMonthDays("1,next"); err == nil {
		t.Error("expected error for non-numeric day")
	}
}

func TestFormatPolicy(t *testing.T) {
	tests := []struct {
		policy models.RecurrencePolicy
		want   string
	}{
		{models.RecurrencePolicy{Type: models.PolicyDaily}, "daily"},
		{models.RecurrencePolicy{Type: models.PolicyWeekdays}, "weekdays"},
		{models.RecurrencePolicy{
			Type:     models.PolicyWeeklyOnDays,
			Weekdays: []time.Weekday{time.Monday, time.Friday},
		}, "weekly on Mon,Fri"},
		{models.RecurrencePolicy{Type: models.PolicyWeeklyOnDays}, "weekly (any day)"},
		{models.RecurrencePolicy{
			Type:         models.PolicyEveryNDays,
			IntervalDays: 3,
			Anchor:       "2025-01-01",
		}, "every 3 days from 2025-01-01"},
		{models.RecurrencePolicy{Type: models.PolicyNTimesPerWeek, Target: 4}, "4 times per week"},
		{models.RecurrencePolicy{Type: models.PolicyNTimesPerMonth, Target: 10}, "10 times per month"},
		{models.RecurrencePolicy{Type: models.PolicyMonthlyOnDays, MonthDays: []int{1, 15}}, "monthly on 1,15"},
		{models.RecurrencePolicy{Type: "bogus"}, "unknown"},
	}

	for _, tt := range tests {
		if got := FormatPolicy(tt.policy); got != tt.want {
			t.Errorf("FormatPolicy(%v) = %q, want %q", tt.policy.Type, got, tt.want)
		}
	}
}
