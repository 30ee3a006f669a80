// Package calendar provides pure date arithmetic for the planner:
// today/week-range helpers evaluated in a configured timezone, and the
// recurrence expander that materializes concrete occurrence dates for
// repeating events. Nothing in this package performs I/O.
package calendar

import "time"

// DefaultTimezone is the IANA zone the planner evaluates "today" in when
// no other zone is configured.
const DefaultTimezone = "Europe/Prague"

// DateOf strips the time-of-day and location from t and returns the bare
// calendar date as midnight UTC. All dates handled by this package are in
// this normalized form, so they compare and subtract exactly.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date evaluated in loc.
// A nil loc falls back to UTC; callers load DefaultTimezone at startup.
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(time.Now().In(loc))
}

// WeekRange returns the Monday and Sunday of the ISO week containing d.
// Monday is day 0 of the week.
func WeekRange(d time.Time) (monday, sunday time.Time) {
	d = DateOf(d)
	offset := (int(d.Weekday()) + 6) % 7 // Monday -> 0, Sunday -> 6
	monday = d.AddDate(0, 0, -offset)
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// IsOverdue reports whether a due timestamp lies strictly in the past.
// A nil due date is never overdue.
func IsOverdue(due *time.Time, now time.Time) bool {
	if due == nil {
		return false
	}
	return due.Before(now)
}

// IsLeapYear reports whether year has a February 29th:
// divisible by 4 and either not divisible by 100 or divisible by 400.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// LastDayOfMonth returns the number of days in the given month.
func LastDayOfMonth(year int, month time.Month) int {
	switch month {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}
