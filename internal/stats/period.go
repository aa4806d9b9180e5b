package stats

import "time"

// Period names a calendar window anchored on "today".
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ResolveRange turns a named period into an inclusive [start, end] date pair.
// Explicit dates always win over the named period. An unrecognized period
// falls back to the last seven days ending today.
func ResolveRange(period Period, start, end *time.Time, today time.Time) (time.Time, time.Time) {
	if start != nil && end != nil {
		return DateOnly(*start), DateOnly(*end)
	}

	t := DateOnly(today)
	switch period {
	case PeriodDay:
		return t, t
	case PeriodWeek:
		// Most recent Monday at or before today.
		offset := (int(t.Weekday()) + 6) % 7
		monday := t.AddDate(0, 0, -offset)
		return monday, monday.AddDate(0, 0, 6)
	case PeriodMonth:
		first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		last := first.AddDate(0, 1, -1)
		return first, last
	case PeriodYear:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location()),
			time.Date(t.Year(), 12, 31, 0, 0, 0, 0, t.Location())
	default:
		return t.AddDate(0, 0, -6), t
	}
}

// DateOnly truncates a timestamp to midnight of its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay is the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// DaysBetween counts calendar days in the inclusive range [start, end].
func DaysBetween(start, end time.Time) int {
	s, e := DateOnly(start), DateOnly(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
