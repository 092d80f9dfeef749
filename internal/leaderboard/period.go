package leaderboard

import (
	"fmt"
	"time"
)

// Period selects one rolling window of a leaderboard.
type Period string

const (
	PeriodDaily      Period = "DAILY"
	PeriodWeekly     Period = "WEEKLY"
	PeriodMonthly    Period = "MONTHLY"
	PeriodSeasonally Period = "SEASONALLY"
	PeriodYearly     Period = "YEARLY"
	PeriodAllTime    Period = "ALL_TIME"
)

var AllPeriods = []Period{
	PeriodDaily, PeriodWeekly, PeriodMonthly,
	PeriodSeasonally, PeriodYearly, PeriodAllTime,
}

func ParsePeriod(raw string) (Period, bool) {
	p := Period(raw)
	for _, known := range AllPeriods {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// boardClock pins period boundaries to the community's home timezone
// (UTC-4, no DST) so "today" rolls over at the same local moment all year.
var boardClock = time.FixedZone("UTC-4", -4*60*60)

// ID renders the Redis key segment for the window containing now.
// Months are zero-based, a leftover from the first deployment that is now
// load-bearing in historic keys.
func (p Period) ID(now time.Time) string {
	t := now.In(boardClock)
	year := t.Year()
	month0 := int(t.Month()) - 1
	switch p {
	case PeriodDaily:
		return fmt.Sprintf("%d:d:%d:%d", year, month0, t.Day())
	case PeriodWeekly:
		isoYear, isoWeek := t.ISOWeek()
		return fmt.Sprintf("%d:w:%d", isoYear, isoWeek)
	case PeriodMonthly:
		return fmt.Sprintf("%d:m:%d", year, month0)
	case PeriodSeasonally:
		return fmt.Sprintf("%d:s:%s", year, seasonOf(t.Month()))
	case PeriodYearly:
		return fmt.Sprintf("%d:y", year)
	default:
		return "all"
	}
}

func seasonOf(m time.Month) string {
	switch m {
	case time.March, time.April:
		return "spring"
	case time.May, time.June, time.July, time.August:
		return "summer"
	case time.September, time.October:
		return "autumn"
	default:
		return "winter"
	}
}
