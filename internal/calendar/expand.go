package calendar

import (
	"fmt"
	"time"

	"plannerx/internal/domain/entity"
)

// Occurrence is one concrete calendar-date materialization of a (possibly
// repeating) event. Occurrences are projections computed per query; they
// are never stored and never mutated.
type Occurrence struct {
	Event *entity.Event
	Date  time.Time // normalized via DateOf
}

// Expand materializes every occurrence of the given events that falls in
// [rangeStart, rangeEnd], inclusive on both ends. The range bounds are
// normalized to bare dates before use.
//
// Output ordering: occurrences appear in the order their source events
// were given, and within one event in ascending date order. No global
// re-sort is performed; callers needing cross-event ordering sort by Date.
//
// Expand is pure and deterministic. An event carrying a repeat rule
// outside the closed entity.RepeatRule set is a caller bug and panics.
func Expand(events []*entity.Event, rangeStart, rangeEnd time.Time) []Occurrence {
	rangeStart = DateOf(rangeStart)
	rangeEnd = DateOf(rangeEnd)

	var out []Occurrence
	if rangeEnd.Before(rangeStart) {
		return out
	}

	for _, ev := range events {
		switch ev.RepeatRule {
		case entity.RepeatNone:
			anchor := DateOf(ev.StartAt)
			if !anchor.Before(rangeStart) && !anchor.After(rangeEnd) {
				out = append(out, Occurrence{Event: ev, Date: anchor})
			}
		case entity.RepeatDaily:
			out = appendStepped(out, ev, rangeStart, rangeEnd, 1)
		case entity.RepeatWeekly:
			out = appendStepped(out, ev, rangeStart, rangeEnd, 7)
		case entity.RepeatMonthly:
			out = appendMonthly(out, ev, rangeStart, rangeEnd)
		default:
			panic(fmt.Sprintf("calendar: event %d has unknown repeat rule %v", ev.ID, ev.RepeatRule))
		}
	}

	return out
}

// appendStepped emits occurrences for fixed-step rules (daily, weekly).
// The weekday of weekly occurrences is preserved by construction, since
// every step is an exact multiple of seven days from the anchor.
func appendStepped(out []Occurrence, ev *entity.Event, rangeStart, rangeEnd time.Time, stepDays int) []Occurrence {
	first := DateOf(ev.StartAt)
	if first.Before(rangeStart) {
		// Jump to the first occurrence inside the range instead of
		// stepping day by day from an arbitrarily old anchor.
		gapDays := int(rangeStart.Sub(first).Hours() / 24)
		steps := (gapDays + stepDays - 1) / stepDays
		first = first.AddDate(0, 0, steps*stepDays)
	}
	for d := first; !d.After(rangeEnd); d = d.AddDate(0, 0, stepDays) {
		out = append(out, Occurrence{Event: ev, Date: d})
	}
	return out
}

// appendMonthly emits occurrences for the monthly rule. Each target month
// is derived from the anchor, not from the previous occurrence, so an
// anchor on the 31st keeps producing the 31st in long months even after
// being clamped to the 30th (or to February's last day) in short ones.
func appendMonthly(out []Occurrence, ev *entity.Event, rangeStart, rangeEnd time.Time) []Occurrence {
	anchor := DateOf(ev.StartAt)
	anchorDay := anchor.Day()

	for k := 0; ; k++ {
		year, month := addMonths(anchor.Year(), anchor.Month(), k)
		day := anchorDay
		if last := LastDayOfMonth(year, month); day > last {
			day = last
		}
		occ := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if occ.After(rangeEnd) {
			return out
		}
		if !occ.Before(rangeStart) {
			out = append(out, Occurrence{Event: ev, Date: occ})
		}
	}
}

// addMonths advances a year/month pair by n months without touching days,
// avoiding time.AddDate's day-overflow normalization.
func addMonths(year int, month time.Month, n int) (int, time.Month) {
	m := int(month) - 1 + n
	return year + m/12, time.Month(m%12 + 1)
}
