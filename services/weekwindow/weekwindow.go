// Package weekwindow computes calendar week boundaries and the sliding window of
// week-start dates a client loads schedules for. Every date that leaves this
// package is a plain YYYY-MM-DD string.
package weekwindow

import (
	"fmt"
	"strings"
	"time"
)

// ISOLayout is the only textual date format accepted or produced.
const ISOLayout = "2006-01-02"

// MaxWeeks caps WeeksBack and WeeksForward, about ten years each way.
const MaxWeeks = 520

// Dates outside these years do not fit YYYY-MM-DD.
const (
	minYear = 0
	maxYear = 9999
)

// WeekStartsOn selects the first day of a calendar week.
type WeekStartsOn int

const (
	Monday WeekStartsOn = iota
	Sunday
)

func (w WeekStartsOn) String() string {
	switch w {
	case Monday:
		return "monday"
	case Sunday:
		return "sunday"
	default:
		return fmt.Sprintf("WeekStartsOn(%d)", int(w))
	}
}

func (w WeekStartsOn) weekday() (time.Weekday, bool) {
	switch w {
	case Monday:
		return time.Monday, true
	case Sunday:
		return time.Sunday, true
	default:
		return 0, false
	}
}

// ParseWeekStartsOn accepts "monday" or "sunday" in any case. Empty means Monday.
func ParseWeekStartsOn(s string) (WeekStartsOn, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monday", "mon":
		return Monday, nil
	case "sunday", "sun":
		return Sunday, nil
	default:
		return Monday, invalid("weekStartsOn", fmt.Sprintf("unknown week start %q, expected monday or sunday", s))
	}
}

// Config bounds the window around the reference week.
type Config struct {
	WeeksBack    int
	WeeksForward int
	WeekStartsOn WeekStartsOn
}

// Validate reports counts outside [0, MaxWeeks] or an unknown week start.
// Values are never clamped.
func (c Config) Validate() error {
	if err := checkCount("weeksBack", c.WeeksBack); err != nil {
		return err
	}
	if err := checkCount("weeksForward", c.WeeksForward); err != nil {
		return err
	}
	if _, ok := c.WeekStartsOn.weekday(); !ok {
		return invalid("weekStartsOn", fmt.Sprintf("unsupported value %d", int(c.WeekStartsOn)))
	}
	return nil
}

func checkCount(field string, n int) error {
	if n < 0 {
		return invalid(field, fmt.Sprintf("must be non-negative, got %d", n))
	}
	if n > MaxWeeks {
		return invalid(field, fmt.Sprintf("must be at most %d, got %d", MaxWeeks, n))
	}
	return nil
}

// Len is the number of weeks the window covers. Only meaningful after Validate.
func (c Config) Len() int {
	return c.WeeksBack + c.WeeksForward + 1
}

// CalendarDate truncates t to midnight UTC using t's own calendar fields, so
// a late-evening local time keeps its local day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the most recent first-day-of-week on or before date.
// An unknown convention falls back to Monday.
func WeekStart(date time.Time, startsOn WeekStartsOn) time.Time {
	first, ok := startsOn.weekday()
	if !ok {
		first = time.Monday
	}
	day := CalendarDate(date)
	offset := (int(day.Weekday()) - int(first) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// IsWeekStart reports whether date already falls on the first day of its week.
func IsWeekStart(date time.Time, startsOn WeekStartsOn) bool {
	return WeekStart(date, startsOn).Equal(CalendarDate(date))
}

// WeeksToLoad returns the ascending week starts from WeeksBack weeks before the
// reference week through WeeksForward weeks after it. Windows reaching outside
// years 0000-9999 are rejected.
func WeeksToLoad(reference time.Time, cfg Config) ([]string, error) {
	if reference.IsZero() {
		return nil, invalid("referenceDate", "must be set")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	center := WeekStart(reference, cfg.WeekStartsOn)
	first := center.AddDate(0, 0, -7*cfg.WeeksBack)
	last := center.AddDate(0, 0, 7*cfg.WeeksForward)
	if first.Year() < minYear {
		return nil, invalid("weeksBack", fmt.Sprintf("window starts before year %04d", minYear))
	}
	if last.Year() > maxYear {
		return nil, invalid("weeksForward", fmt.Sprintf("window ends after year %d", maxYear))
	}

	weeks := make([]string, 0, cfg.Len())
	for i := 0; i < cfg.Len(); i++ {
		weeks = append(weeks, FormatISO(first.AddDate(0, 0, 7*i)))
	}
	return weeks, nil
}

// WeekDates lists the seven calendar days of the week beginning at weekStart.
func WeekDates(weekStart time.Time) []string {
	start := CalendarDate(weekStart)
	days := make([]string, 7)
	for i := range days {
		days[i] = FormatISO(start.AddDate(0, 0, i))
	}
	return days
}

// FormatISO renders the calendar fields of date as YYYY-MM-DD.
func FormatISO(date time.Time) string {
	y, m, d := date.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// ParseISO parses a strict YYYY-MM-DD string into a CalendarDate.
func ParseISO(s string) (time.Time, error) {
	if len(s) != len(ISOLayout) {
		return time.Time{}, invalid("date", fmt.Sprintf("%q is not in YYYY-MM-DD format", s))
	}
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return time.Time{}, invalid("date", fmt.Sprintf("%q is not a valid calendar date", s))
	}
	return t, nil
}

// NormalizeWeekStart parses s and requires it to already be a week start.
func NormalizeWeekStart(s string, startsOn WeekStartsOn) (time.Time, error) {
	t, err := ParseISO(s)
	if err != nil {
		return time.Time{}, err
	}
	if !IsWeekStart(t, startsOn) {
		return time.Time{}, invalid("weekStart", fmt.Sprintf("%s is not a %s", s, startsOn))
	}
	return t, nil
}
