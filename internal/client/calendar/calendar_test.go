package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/khonsu303/estudio/internal/client/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthGrid_LeadingBlanks(t *testing.T) {
	// June 2024 starts on a Saturday.
	cells := MonthGrid(2024, time.June, time.Sunday)
	require.Len(t, cells, 6+30)
	for i := 0; i < 6; i++ {
		assert.True(t, cells[i].Blank(), "cell %d", i)
	}
	assert.Equal(t, 1, cells[6].Date.Day())
	assert.Equal(t, 30, cells[len(cells)-1].Date.Day())

	monday := MonthGrid(2024, time.June, time.Monday)
	assert.Len(t, monday, 5+30)
}

func TestMonthGrid_LeapFebruaryStartingOnFirstWeekday(t *testing.T) {
	// February 2032 starts on a Sunday and has 29 days.
	cells := MonthGrid(2032, time.February, time.Sunday)
	require.Len(t, cells, 29)
	assert.False(t, cells[0].Blank())
}

func TestShiftMonth(t *testing.T) {
	y, m := ShiftMonth(2024, time.December, 1)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.January, m)

	y, m = ShiftMonth(2024, time.January, -1)
	assert.Equal(t, 2023, y)
	assert.Equal(t, time.December, m)

	y, m = ShiftMonth(2024, time.March, 0)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.March, m)
}

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestEventsOn(t *testing.T) {
	events := []api.Event{
		{ID: "a", Date: at(2024, time.June, 10, 9)},
		{ID: "b", Date: at(2024, time.June, 10, 23)},
		{ID: "c", Date: at(2024, time.June, 11, 0)},
	}

	got := EventsOn(events, at(2024, time.June, 10, 0))
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)

	assert.Empty(t, EventsOn(events, at(2024, time.June, 12, 0)))
}

func TestHasUpcoming(t *testing.T) {
	now := at(2024, time.June, 10, 12)

	assert.True(t, HasUpcoming([]api.Event{{Date: at(2024, time.June, 10, 8)}}, now))
	assert.True(t, HasUpcoming([]api.Event{{Date: at(2024, time.June, 11, 20)}}, now))
	assert.False(t, HasUpcoming([]api.Event{{Date: at(2024, time.June, 12, 0)}}, now))
	assert.False(t, HasUpcoming([]api.Event{{Date: at(2024, time.June, 9, 23)}}, now))
	assert.False(t, HasUpcoming(nil, now))
}

func TestDaysLeft(t *testing.T) {
	now := at(2024, time.June, 10, 23)

	assert.Equal(t, 0, DaysLeft(at(2024, time.June, 10, 1), now))
	assert.Equal(t, 1, DaysLeft(at(2024, time.June, 11, 0), now))
	assert.Equal(t, -3, DaysLeft(at(2024, time.June, 7, 12), now))
	assert.Equal(t, 21, DaysLeft(at(2024, time.July, 1, 0), now))
}

func TestRender(t *testing.T) {
	now := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.Local)
	events := []api.Event{{Date: time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)}}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, 2024, time.June, time.Sunday, events, now))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "June 2024\n"))
	assert.Contains(t, out, " Su  Mo")
	assert.Contains(t, out, "[ 3]")
	assert.Contains(t, out, " 20*")
}

func TestDatesWestOfUTC(t *testing.T) {
	art := time.FixedZone("ART", -3*3600)
	event := []api.Event{{ID: "exam", Date: time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC)}}

	tests := []struct {
		name     string
		now      time.Time
		onDay    bool
		upcoming bool
		daysLeft int
	}{
		{name: "day before", now: time.Date(2026, time.October, 19, 22, 0, 0, 0, art), upcoming: true, daysLeft: 1},
		{name: "same day morning", now: time.Date(2026, time.October, 20, 9, 0, 0, 0, art), onDay: true, upcoming: true, daysLeft: 0},
		{name: "same day late", now: time.Date(2026, time.October, 20, 23, 30, 0, 0, art), onDay: true, upcoming: true, daysLeft: 0},
		{name: "day after", now: time.Date(2026, time.October, 21, 1, 0, 0, 0, art), upcoming: false, daysLeft: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m, d := tt.now.Date()
			day := time.Date(y, m, d, 0, 0, 0, 0, art)

			assert.Equal(t, tt.onDay, len(EventsOn(event, day)) == 1)
			assert.Equal(t, tt.upcoming, HasUpcoming(event, tt.now))
			assert.Equal(t, tt.daysLeft, DaysLeft(event[0].Date, tt.now))
		})
	}
}

func TestRender_UTCDateInWesternZone(t *testing.T) {
	art := time.FixedZone("ART", -3*3600)
	prev := time.Local
	time.Local = art
	t.Cleanup(func() { time.Local = prev })

	now := time.Date(2026, time.October, 20, 9, 0, 0, 0, art)
	events := []api.Event{{Date: time.Date(2026, time.October, 22, 0, 0, 0, 0, time.UTC)}}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, 2026, time.October, time.Sunday, events, now))

	out := buf.String()
	assert.Contains(t, out, "[20]")
	assert.Contains(t, out, " 22*")
	assert.Contains(t, out, " 21 ")
	assert.NotContains(t, out, " 21*")
}
