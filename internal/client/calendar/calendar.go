// Package calendar does the date arithmetic behind the client's month view:
// grid layout, per-day event buckets and the "something is due soon" check.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/khonsu303/estudio/internal/client/api"
)

// Cell is one slot of a month grid. Leading slots before the first day of
// the month are blank.
type Cell struct {
	Date time.Time
}

func (c Cell) Blank() bool { return c.Date.IsZero() }

// MonthGrid lays out month in rows of seven starting at firstWeekday: blank
// cells up to the weekday of the 1st, then one cell per day at local
// midnight.
func MonthGrid(year int, month time.Month, firstWeekday time.Weekday) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	days := first.AddDate(0, 1, -1).Day()
	lead := (int(first.Weekday()) - int(firstWeekday) + 7) % 7

	cells := make([]Cell, lead, lead+days)
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell{Date: time.Date(year, month, d, 0, 0, 0, 0, time.Local)})
	}
	return cells
}

// ShiftMonth moves (year, month) by offset months.
func ShiftMonth(year int, month time.Month, offset int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
	return t.Year(), t.Month()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// eventDay returns the calendar day an event date names. The server sends
// dates as UTC midnight, so the day is read in UTC and carried over to loc
// unchanged.
func eventDay(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// EventsOn returns the events falling on day.
func EventsOn(events []api.Event, day time.Time) []api.Event {
	var out []api.Event
	for _, e := range events {
		if sameDay(eventDay(e.Date, day.Location()), day) {
			out = append(out, e)
		}
	}
	return out
}

// HasUpcoming reports whether any event falls today or tomorrow, with today
// taken from now's location.
func HasUpcoming(events []api.Event, now time.Time) bool {
	for _, e := range events {
		if n := DaysLeft(e.Date, now); n == 0 || n == 1 {
			return true
		}
	}
	return false
}

// DaysLeft counts whole calendar days from now until date; negative once
// the date has passed.
func DaysLeft(date, now time.Time) int {
	ny, nm, nd := now.Date()
	due := eventDay(date, time.UTC)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(due.Sub(today).Hours() / 24)
}

// Render writes a plain-text month view. Days with events are starred and
// today is bracketed.
func Render(w io.Writer, year int, month time.Month, firstWeekday time.Weekday, events []api.Event, now time.Time) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d\n", month, year)
	for i := 0; i < 7; i++ {
		fmt.Fprintf(&b, " %-3s", time.Weekday((int(firstWeekday)+i)%7).String()[:2])
	}
	b.WriteString("\n")

	for i, c := range MonthGrid(year, month, firstWeekday) {
		switch {
		case c.Blank():
			b.WriteString("    ")
		default:
			mark := " "
			if len(EventsOn(events, c.Date)) > 0 {
				mark = "*"
			}
			if sameDay(c.Date, now.In(c.Date.Location())) {
				fmt.Fprintf(&b, "[%2d]", c.Date.Day())
			} else {
				fmt.Fprintf(&b, " %2d%s", c.Date.Day(), mark)
			}
		}
		if i%7 == 6 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
