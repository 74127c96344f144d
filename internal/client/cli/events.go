package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/khonsu303/estudio/internal/client/api"
	"github.com/khonsu303/estudio/internal/client/calendar"
	"github.com/khonsu303/estudio/internal/common"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

func (a *App) Events(ctx context.Context) error {
	events, err := a.repo.Events(ctx)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(a.out, "No events, add one with 'addevent'")
		return nil
	}
	return a.printEvents(events, func(int) bool { return true })
}

// printEvents writes the events keep accepts, numbered by their position
// in events so numbers stay valid for editevent and friends.
func (a *App) printEvents(events []api.Event, keep func(i int) bool) error {
	now := a.now()
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDATE\tTYPE\tTITLE\tSUBJECT\tSTATUS")
	for i, e := range events {
		if !keep(i) {
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, e.Date.UTC().Format(dateLayout), e.Type,
			e.Title, subjectName(e.Subject), eventStatus(e, now))
	}
	return tw.Flush()
}

func eventStatus(e api.Event, now time.Time) string {
	if e.Completed {
		return "done"
	}
	switch days := calendar.DaysLeft(e.Date, now); {
	case days < 0:
		return fmt.Sprintf("overdue by %d d", -days)
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d d", days)
	}
}

// canonicalType matches s against the known event types ignoring case.
// Unknown values pass through so the server can reject them.
func canonicalType(s string) string {
	for _, t := range common.EventTypes {
		if strings.EqualFold(t, s) {
			return t
		}
	}
	return s
}

func (a *App) AddEvent(ctx context.Context) error {
	var in api.EventInput
	var err error

	if in.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if in.Date, err = getSimpleText(a.reader, "Date (YYYY-MM-DD)", a.out); err != nil {
		return err
	}
	typ, err := getSimpleText(a.reader, "Type ("+strings.Join(common.EventTypes, ", ")+")", a.out)
	if err != nil {
		return err
	}
	in.Type = canonicalType(typ)

	ref, err := getSimpleText(a.reader, "Subject (optional)", a.out)
	if err != nil {
		return err
	}
	if ref != "" {
		s, err := a.pickSubject(ctx, ref)
		if err != nil {
			return err
		}
		in.Subject = s.ID
	}
	if in.Description, err = getSimpleText(a.reader, "Description (optional)", a.out); err != nil {
		return err
	}

	e, err := a.repo.CreateEvent(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Event %q scheduled for %s\n", e.Title, e.Date.UTC().Format(dateLayout))
	return nil
}

// EditEvent updates an event. Blank answers keep the current values and
// "-" as subject detaches the event from its subject.
func (a *App) EditEvent(ctx context.Context, args []string) error {
	e, err := a.pickEvent(ctx, args)
	if err != nil {
		return err
	}

	var p api.EventPatch
	if p.Title, err = a.edit("Title", e.Title); err != nil {
		return err
	}
	if p.Date, err = a.edit("Date", e.Date.UTC().Format(dateLayout)); err != nil {
		return err
	}
	typ, err := a.edit("Type", e.Type)
	if err != nil {
		return err
	}
	if typ != nil {
		t := canonicalType(*typ)
		p.Type = &t
	}

	subject, err := a.edit("Subject (- to clear)", subjectName(e.Subject))
	if err != nil {
		return err
	}
	switch {
	case subject == nil:
	case *subject == "-":
		none := ""
		p.Subject = &none
	default:
		s, err := a.pickSubject(ctx, *subject)
		if err != nil {
			return err
		}
		p.Subject = &s.ID
	}

	if p.Description, err = a.edit("Description", e.Description); err != nil {
		return err
	}

	updated, err := a.repo.UpdateEvent(ctx, e.ID, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Event %q updated\n", updated.Title)
	return nil
}

func (a *App) DeleteEvent(ctx context.Context, args []string) error {
	e, err := a.pickEvent(ctx, args)
	if err != nil {
		return err
	}
	if err := a.repo.DeleteEvent(ctx, e.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Event %q deleted\n", e.Title)
	return nil
}

func (a *App) Complete(ctx context.Context, args []string) error {
	e, err := a.pickEvent(ctx, args)
	if err != nil {
		return err
	}
	updated, err := a.repo.ToggleComplete(ctx, e.ID)
	if err != nil {
		return err
	}
	if updated.Completed {
		fmt.Fprintf(a.out, "%q completed\n", updated.Title)
	} else {
		fmt.Fprintf(a.out, "%q reopened\n", updated.Title)
	}
	return nil
}

// Calendar renders a month with its events. The month moves with "next"
// and "prev", jumps back with "today" or to any "YYYY-MM".
func (a *App) Calendar(ctx context.Context, args []string) error {
	now := a.now()
	if a.calYear == 0 {
		a.calYear, a.calMonth = now.Year(), now.Month()
	}

	if len(args) > 0 {
		switch arg := strings.ToLower(args[0]); arg {
		case "next":
			a.calYear, a.calMonth = calendar.ShiftMonth(a.calYear, a.calMonth, 1)
		case "prev":
			a.calYear, a.calMonth = calendar.ShiftMonth(a.calYear, a.calMonth, -1)
		case "today":
			a.calYear, a.calMonth = now.Year(), now.Month()
		default:
			t, err := time.Parse("2006-01", arg)
			if err != nil {
				return fmt.Errorf("expected next, prev, today or YYYY-MM, got %q", args[0])
			}
			a.calYear, a.calMonth = t.Year(), t.Month()
		}
	}

	events, err := a.repo.Events(ctx)
	if err != nil {
		return err
	}
	if err := calendar.Render(a.out, a.calYear, a.calMonth, a.config.WeekStart, events, now); err != nil {
		return err
	}

	inMonth := func(i int) bool {
		d := events[i].Date.UTC()
		return d.Year() == a.calYear && d.Month() == a.calMonth
	}
	for i := range events {
		if inMonth(i) {
			return a.printEvents(events, inMonth)
		}
	}
	fmt.Fprintln(a.out, "No events this month")
	return nil
}
