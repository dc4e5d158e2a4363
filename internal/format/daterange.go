package format

import (
	"fmt"
	"time"
)

// DateRange is an inclusive day-granular interval used by list filters.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Named date ranges accepted by the --range filter flags.
const (
	RangeToday      = "today"
	RangeYesterday  = "yesterday"
	RangeThisWeek   = "this-week"
	RangeLastWeek   = "last-week"
	RangeThisMonth  = "this-month"
	RangeLastMonth  = "last-month"
	RangeLast30Days = "last-30-days"
)

// RangeNames lists the supported named ranges in display order.
var RangeNames = []string{
	RangeToday, RangeYesterday,
	RangeThisWeek, RangeLastWeek,
	RangeThisMonth, RangeLastMonth,
	RangeLast30Days,
}

// ResolveRange converts a named range into concrete day bounds relative to
// now. From is midnight at the start of the range, To is the last instant of
// its final day. Weeks start on Monday.
func ResolveRange(name string, now time.Time) (DateRange, error) {
	today := startOfDay(now)

	switch name {
	case RangeToday:
		return DateRange{From: today, To: endOfDay(today)}, nil
	case RangeYesterday:
		y := today.AddDate(0, 0, -1)
		return DateRange{From: y, To: endOfDay(y)}, nil
	case RangeThisWeek:
		start := startOfWeek(today)
		return DateRange{From: start, To: endOfDay(today)}, nil
	case RangeLastWeek:
		start := startOfWeek(today).AddDate(0, 0, -7)
		return DateRange{From: start, To: endOfDay(start.AddDate(0, 0, 6))}, nil
	case RangeThisMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return DateRange{From: start, To: endOfDay(today)}, nil
	case RangeLastMonth:
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		start := firstOfThis.AddDate(0, -1, 0)
		return DateRange{From: start, To: endOfDay(firstOfThis.AddDate(0, 0, -1))}, nil
	case RangeLast30Days:
		return DateRange{From: today.AddDate(0, 0, -29), To: endOfDay(today)}, nil
	default:
		return DateRange{}, fmt.Errorf("unknown date range %q", name)
	}
}

// ParseCustomRange builds a range from explicit YYYY-MM-DD bounds.
func ParseCustomRange(from, to string, loc *time.Location) (DateRange, error) {
	f, err := time.ParseInLocation("2006-01-02", from, loc)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid from date %q: %w", from, err)
	}
	t, err := time.ParseInLocation("2006-01-02", to, loc)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid to date %q: %w", to, err)
	}
	if t.Before(f) {
		return DateRange{}, fmt.Errorf("date range ends (%s) before it starts (%s)", to, from)
	}
	return DateRange{From: f, To: endOfDay(t)}, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Second)
}

func startOfWeek(day time.Time) time.Time {
	wd := int(day.Weekday())
	if wd == 0 {
		wd = 7 // Sunday belongs to the week that started the previous Monday
	}
	return day.AddDate(0, 0, -(wd - 1))
}
