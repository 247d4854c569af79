// Package daterange resolves CLI date selections into inclusive calendar
// windows. Weeks run Sunday through Saturday, matching restaurant reporting
// convention.
package daterange

import (
	"errors"
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

var (
	ErrMultipleSelections = errors.New("specify only one date selection")
	ErrCompareWithRange   = errors.New("--compare can only be used with single-day selections (--today, --yesterday or --date)")
	ErrEndBeforeStart     = errors.New("end date must be on or after start date")
)

// Range is an inclusive calendar window.
type Range struct {
	Start time.Time
	End   time.Time
}

// SingleDay reports whether the range covers exactly one calendar day.
func (r Range) SingleDay() bool {
	return r.Start.Equal(r.End)
}

// Days returns the number of calendar days covered.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func (r Range) String() string {
	if r.SingleDay() {
		return r.Start.Format(dayLayout)
	}
	return r.Start.Format(dayLayout) + " to " + r.End.Format(dayLayout)
}

// Selection mirrors the mutually exclusive CLI date flags.
type Selection struct {
	Today     bool
	Yesterday bool
	Date      string
	RangeArgs []string // [start, end]
	ThisWeek  bool
	LastWeek  bool
	ThisMonth bool
	LastMonth bool
	ThisYear  bool
	LastYear  bool
	Compare   bool
}

func (s Selection) count() int {
	n := 0
	for _, set := range []bool{
		s.Today, s.Yesterday, s.Date != "", len(s.RangeArgs) > 0,
		s.ThisWeek, s.LastWeek, s.ThisMonth, s.LastMonth, s.ThisYear, s.LastYear,
	} {
		if set {
			n++
		}
	}
	return n
}

// Resolve turns a selection into a window and, when comparison is requested,
// the same weekday of the previous week. now is injected for testability.
func Resolve(s Selection, now time.Time) (Range, *Range, error) {
	today := truncate(now)

	if s.count() > 1 {
		return Range{}, nil, ErrMultipleSelections
	}
	if s.Compare && !(s.Today || s.Yesterday || s.Date != "") {
		return Range{}, nil, ErrCompareWithRange
	}

	var r Range
	switch {
	case s.Today || s.count() == 0:
		r = Range{today, today}
	case s.Yesterday:
		y := today.AddDate(0, 0, -1)
		r = Range{y, y}
	case s.Date != "":
		d, err := parseDay(s.Date)
		if err != nil {
			return Range{}, nil, err
		}
		r = Range{d, d}
	case len(s.RangeArgs) > 0:
		if len(s.RangeArgs) != 2 {
			return Range{}, nil, fmt.Errorf("--range requires exactly two dates")
		}
		start, err := parseDay(s.RangeArgs[0])
		if err != nil {
			return Range{}, nil, err
		}
		end, err := parseDay(s.RangeArgs[1])
		if err != nil {
			return Range{}, nil, err
		}
		if end.Before(start) {
			return Range{}, nil, ErrEndBeforeStart
		}
		r = Range{start, end}
	case s.ThisWeek:
		r = Range{weekStart(today), today}
	case s.LastWeek:
		thisSunday := weekStart(today)
		r = Range{thisSunday.AddDate(0, 0, -7), thisSunday.AddDate(0, 0, -1)}
	case s.ThisMonth:
		r = Range{time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()), today}
	case s.LastMonth:
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		r = Range{firstOfThis.AddDate(0, -1, 0), firstOfThis.AddDate(0, 0, -1)}
	case s.ThisYear:
		r = Range{time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location()), today}
	case s.LastYear:
		r = Range{
			time.Date(today.Year()-1, 1, 1, 0, 0, 0, 0, today.Location()),
			time.Date(today.Year()-1, 12, 31, 0, 0, 0, 0, today.Location()),
		}
	}

	if s.Compare {
		c := Range{r.Start.AddDate(0, 0, -7), r.End.AddDate(0, 0, -7)}
		return r, &c, nil
	}
	return r, nil, nil
}

// ParseDay validates and parses a YYYY-MM-DD date argument.
func ParseDay(value string) (time.Time, error) {
	return parseDay(value)
}

func parseDay(value string) (time.Time, error) {
	d, err := time.Parse(dayLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD format", value)
	}
	return d, nil
}

// weekStart returns the Sunday on or before the given day.
func weekStart(day time.Time) time.Time {
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// PreviousWeek returns the most recently completed Sunday-to-Saturday week.
func PreviousWeek(now time.Time) Range {
	today := truncate(now)
	thisSunday := weekStart(today)
	return Range{thisSunday.AddDate(0, 0, -7), thisSunday.AddDate(0, 0, -1)}
}
