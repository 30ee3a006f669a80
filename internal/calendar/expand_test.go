package calendar

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plannerx/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func event(id int64, rule entity.RepeatRule, start time.Time) *entity.Event {
	return &entity.Event{ID: id, UserID: 1, Title: "ev", StartAt: start, RepeatRule: rule}
}

func dates(occs []Occurrence) []time.Time {
	out := make([]time.Time, 0, len(occs))
	for _, o := range occs {
		out = append(out, o.Date)
	}
	return out
}

func TestExpand_None_InclusiveBounds(t *testing.T) {
	ev := event(1, entity.RepeatNone, time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC))

	// Anchor on the range start boundary.
	occs := Expand([]*entity.Event{ev}, date(2024, 6, 15), date(2024, 6, 20))
	require.Len(t, occs, 1)
	assert.Equal(t, date(2024, 6, 15), occs[0].Date)

	// Anchor on the range end boundary.
	occs = Expand([]*entity.Event{ev}, date(2024, 6, 10), date(2024, 6, 15))
	require.Len(t, occs, 1)

	// Anchor outside the range.
	occs = Expand([]*entity.Event{ev}, date(2024, 6, 16), date(2024, 6, 30))
	assert.Empty(t, occs)
	occs = Expand([]*entity.Event{ev}, date(2024, 6, 1), date(2024, 6, 14))
	assert.Empty(t, occs)
}

func TestExpand_Daily_CountsAndBounds(t *testing.T) {
	ev := event(1, entity.RepeatDaily, date(2024, 1, 1))

	occs := Expand([]*entity.Event{ev}, date(2024, 3, 1), date(2024, 3, 10))
	// Anchor precedes the range: one occurrence per day in range.
	require.Len(t, occs, 10)
	assert.Equal(t, date(2024, 3, 1), occs[0].Date)
	assert.Equal(t, date(2024, 3, 10), occs[9].Date)
}

func TestExpand_Daily_AnchorInsideRange(t *testing.T) {
	ev := event(1, entity.RepeatDaily, date(2024, 3, 5))

	occs := Expand([]*entity.Event{ev}, date(2024, 3, 1), date(2024, 3, 8))
	// Nothing is emitted before the anchor.
	require.Len(t, occs, 4)
	assert.Equal(t, date(2024, 3, 5), occs[0].Date)
}

func TestExpand_Weekly_PreservesWeekday(t *testing.T) {
	// 2024-01-03 is a Wednesday.
	ev := event(1, entity.RepeatWeekly, date(2024, 1, 3))

	occs := Expand([]*entity.Event{ev}, date(2024, 2, 1), date(2024, 2, 29))
	require.Len(t, occs, 4)
	for _, o := range occs {
		assert.Equal(t, time.Wednesday, o.Date.Weekday())
	}
	assert.Equal(t, date(2024, 2, 7), occs[0].Date)
	assert.Equal(t, date(2024, 2, 28), occs[3].Date)
}

func TestExpand_Monthly_Day31AcrossFullYear(t *testing.T) {
	ev := event(1, entity.RepeatMonthly, date(2024, 1, 31))

	occs := Expand([]*entity.Event{ev}, date(2024, 1, 1), date(2024, 12, 31))
	want := []time.Time{
		date(2024, 1, 31),
		date(2024, 2, 29), // leap year February, clamped
		date(2024, 3, 31), // clamping in February must not lose the 31st
		date(2024, 4, 30),
		date(2024, 5, 31),
		date(2024, 6, 30),
		date(2024, 7, 31),
		date(2024, 8, 31),
		date(2024, 9, 30),
		date(2024, 10, 31),
		date(2024, 11, 30),
		date(2024, 12, 31),
	}
	if diff := cmp.Diff(want, dates(occs)); diff != "" {
		t.Errorf("occurrence dates mismatch (-want +got):\n%s", diff)
	}
}

func TestExpand_Monthly_FebruaryClamp(t *testing.T) {
	// Anchor 2024-01-31, range covering only February 2024.
	ev := event(1, entity.RepeatMonthly, date(2024, 1, 31))

	occs := Expand([]*entity.Event{ev}, date(2024, 2, 1), date(2024, 2, 29))
	require.Len(t, occs, 1)
	assert.Equal(t, date(2024, 2, 29), occs[0].Date)
}

func TestExpand_Monthly_NonLeapFebruary(t *testing.T) {
	ev := event(1, entity.RepeatMonthly, date(2023, 1, 29))

	occs := Expand([]*entity.Event{ev}, date(2023, 2, 1), date(2023, 2, 28))
	require.Len(t, occs, 1)
	assert.Equal(t, date(2023, 2, 28), occs[0].Date)
}

func TestExpand_Monthly_YearRollover(t *testing.T) {
	ev := event(1, entity.RepeatMonthly, date(2023, 11, 30))

	occs := Expand([]*entity.Event{ev}, date(2023, 11, 1), date(2024, 2, 29))
	want := []time.Time{
		date(2023, 11, 30),
		date(2023, 12, 30),
		date(2024, 1, 30),
		date(2024, 2, 29),
	}
	if diff := cmp.Diff(want, dates(occs)); diff != "" {
		t.Errorf("occurrence dates mismatch (-want +got):\n%s", diff)
	}
}

func TestExpand_OrderingFollowsInputEvents(t *testing.T) {
	// Occurrences are grouped by source event in input order, not
	// globally sorted by date.
	early := event(1, entity.RepeatNone, date(2024, 5, 1))
	late := event(2, entity.RepeatNone, date(2024, 5, 20))

	occs := Expand([]*entity.Event{late, early}, date(2024, 5, 1), date(2024, 5, 31))
	require.Len(t, occs, 2)
	assert.Equal(t, int64(2), occs[0].Event.ID)
	assert.Equal(t, int64(1), occs[1].Event.ID)
}

func TestExpand_Deterministic(t *testing.T) {
	events := []*entity.Event{
		event(1, entity.RepeatDaily, date(2024, 1, 1)),
		event(2, entity.RepeatMonthly, date(2024, 1, 31)),
	}
	a := Expand(events, date(2024, 2, 1), date(2024, 3, 31))
	b := Expand(events, date(2024, 2, 1), date(2024, 3, 31))
	if diff := cmp.Diff(dates(a), dates(b)); diff != "" {
		t.Errorf("expansion is not deterministic:\n%s", diff)
	}
}

func TestExpand_EmptyRange(t *testing.T) {
	ev := event(1, entity.RepeatDaily, date(2024, 1, 1))
	occs := Expand([]*entity.Event{ev}, date(2024, 3, 10), date(2024, 3, 1))
	assert.Empty(t, occs)
}

func TestExpand_NormalizesTimestamps(t *testing.T) {
	// Anchors carrying a time of day expand to bare dates.
	ev := event(1, entity.RepeatDaily, time.Date(2024, 3, 1, 23, 45, 0, 0, time.UTC))
	occs := Expand([]*entity.Event{ev}, date(2024, 3, 1), date(2024, 3, 2))
	require.Len(t, occs, 2)
	assert.Equal(t, date(2024, 3, 1), occs[0].Date)
}
