// Package calendar maps due dates onto the day, week and month views of the
// planner. Every function is pure: the viewer's location is carried by the
// time values passed in, and "now" is only read by callers.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

func ParseViewMode(value string) (ViewMode, error) {
	switch mode := ViewMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case ViewDay, ViewWeek, ViewMonth:
		return mode, nil
	case "":
		return ViewMonth, nil
	default:
		return "", fmt.Errorf("unknown calendar view %q", value)
	}
}

// Fallback components used when a date or time string cannot be parsed.
const (
	FallbackYear         = 2025
	FallbackMonth        = 1
	FallbackDay          = 1
	FallbackTaskHour     = 12
	FallbackCalendarHour = 9
	FallbackMinute       = 0
)

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// AddDays moves t by n calendar days, keeping the wall clock time.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AddMonths moves t by n months, clamping the day to the last day of the
// target month (Jan 31 + 1 month is Feb 28 or 29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// WeekStart returns midnight of the Sunday on or before ref.
func WeekStart(ref time.Time) time.Time {
	day := StartOfDay(ref)
	return AddDays(day, -int(day.Weekday()))
}

// WeekDays returns the seven days Sunday through Saturday containing ref.
func WeekDays(ref time.Time) []time.Time {
	start := WeekStart(ref)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = AddDays(start, i)
	}
	return days
}

// MonthGrid returns every day of ref's month, padded before with the
// trailing days of the previous month so the first day sits in its weekday
// column and after with leading days of the next month so the cell count
// is a multiple of seven.
func MonthGrid(ref time.Time) []time.Time {
	day := StartOfDay(ref)
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	count := daysIn(first.Year(), first.Month(), first.Location())

	lead := int(first.Weekday())
	total := lead + count
	trail := 0
	if rem := total % 7; rem != 0 {
		trail = 7 - rem
	}

	grid := make([]time.Time, 0, total+trail)
	for i := -lead; i < count+trail; i++ {
		grid = append(grid, AddDays(first, i))
	}
	return grid
}

// Days returns the cells of the given view around ref.
func Days(ref time.Time, mode ViewMode) []time.Time {
	switch mode {
	case ViewDay:
		return []time.Time{StartOfDay(ref)}
	case ViewWeek:
		return WeekDays(ref)
	default:
		return MonthGrid(ref)
	}
}

// Step moves ref by delta units of the view.
func Step(ref time.Time, mode ViewMode, delta int) time.Time {
	switch mode {
	case ViewDay:
		return AddDays(ref, delta)
	case ViewWeek:
		return AddDays(ref, 7*delta)
	default:
		return AddMonths(ref, delta)
	}
}

// Today is the start of the current day in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	return StartOfDay(now.In(loc))
}

// DueWithin reports whether due falls on a day in [from, from+days] in
// from's location.
func DueWithin(due, from time.Time, days int) bool {
	dueDay := StartOfDay(due.In(from.Location()))
	start := StartOfDay(from)
	end := AddDays(start, days)
	return !dueDay.Before(start) && !dueDay.After(end)
}

// CombineLocal builds a timestamp in loc from a YYYY-MM-DD date and an
// HH:mm time, component by component. Missing or unparseable components
// fall back to 2025-01-01, fallbackHour and minute 0.
func CombineLocal(date, clock string, loc *time.Location, fallbackHour int) time.Time {
	dateParts := splitNumbers(date, "-")
	clockParts := splitNumbers(clock, ":")

	year := pick(dateParts, 0, FallbackYear)
	month := pick(dateParts, 1, FallbackMonth)
	day := pick(dateParts, 2, FallbackDay)
	hour := pick(clockParts, 0, fallbackHour)
	minute := pick(clockParts, 1, FallbackMinute)

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
}

func splitNumbers(value, sep string) []*int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, sep)
	out := make([]*int, len(parts))
	for i, part := range parts {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			out[i] = &n
		}
	}
	return out
}

func pick(parts []*int, index, fallback int) int {
	if index < len(parts) && parts[index] != nil {
		return *parts[index]
	}
	return fallback
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// Bucket assigns each item with a due date to the day cell it falls on.
// Cells are compared in their own location; undated items are skipped.
func Bucket[T any](days []time.Time, items []T, due func(T) *time.Time) [][]T {
	buckets := make([][]T, len(days))
	for _, item := range items {
		at := due(item)
		if at == nil {
			continue
		}
		for i, day := range days {
			if SameDay(*at, day, day.Location()) {
				buckets[i] = append(buckets[i], item)
				break
			}
		}
	}
	return buckets
}
