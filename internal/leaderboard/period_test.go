package leaderboard

import (
	"testing"
	"time"
)

func TestPeriodID(t *testing.T) {
	// 2023-07-15 12:00 UTC is 08:00 in the board timezone.
	at := time.Date(2023, time.July, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		period   Period
		expected string
	}{
		{PeriodDaily, "2023:d:6:15"},
		{PeriodMonthly, "2023:m:6"},
		{PeriodSeasonally, "2023:s:summer"},
		{PeriodYearly, "2023:y"},
		{PeriodAllTime, "all"},
	}
	for _, test := range tests {
		if got := test.period.ID(at); got != test.expected {
			t.Errorf("%s.ID() = %q; expected %q", test.period, got, test.expected)
		}
	}
}

func TestPeriodIDRollsOverInBoardTime(t *testing.T) {
	// 03:00 UTC is still 23:00 the previous day in UTC-4, so the daily
	// window must not have rolled over yet.
	beforeMidnight := time.Date(2023, time.July, 15, 3, 0, 0, 0, time.UTC)
	if got := PeriodDaily.ID(beforeMidnight); got != "2023:d:6:14" {
		t.Errorf("daily ID at 03:00 UTC = %q; expected previous board day 2023:d:6:14", got)
	}

	// 05:00 UTC is 01:00 board time, the new day.
	afterMidnight := time.Date(2023, time.July, 15, 5, 0, 0, 0, time.UTC)
	if got := PeriodDaily.ID(afterMidnight); got != "2023:d:6:15" {
		t.Errorf("daily ID at 05:00 UTC = %q; expected 2023:d:6:15", got)
	}
}

func TestPeriodIDWeekly(t *testing.T) {
	// 2024-01-01 12:00 UTC is a Monday, ISO week 1 of 2024.
	at := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	if got := PeriodWeekly.ID(at); got != "2024:w:1" {
		t.Errorf("weekly ID = %q; expected 2024:w:1", got)
	}
}

func TestSeasonOf(t *testing.T) {
	tests := []struct {
		month    time.Month
		expected string
	}{
		{time.January, "winter"},
		{time.February, "winter"},
		{time.March, "spring"},
		{time.April, "spring"},
		{time.May, "summer"},
		{time.August, "summer"},
		{time.September, "autumn"},
		{time.October, "autumn"},
		{time.November, "winter"},
		{time.December, "winter"},
	}
	for _, test := range tests {
		if got := seasonOf(test.month); got != test.expected {
			t.Errorf("seasonOf(%s) = %q; expected %q", test.month, got, test.expected)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	if p, ok := ParsePeriod("WEEKLY"); !ok || p != PeriodWeekly {
		t.Errorf("ParsePeriod(WEEKLY) = %v, %v", p, ok)
	}
	if _, ok := ParsePeriod("weekly"); ok {
		t.Error("ParsePeriod must be case sensitive")
	}
	if _, ok := ParsePeriod("FORTNIGHTLY"); ok {
		t.Error("ParsePeriod accepted an unknown period")
	}
}
