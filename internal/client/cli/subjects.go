package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/khonsu303/estudio/internal/client/api"
)

func (a *App) Subjects(ctx context.Context) error {
	subjects, err := a.repo.Subjects(ctx)
	if err != nil {
		return err
	}
	if len(subjects) == 0 {
		fmt.Fprintln(a.out, "No subjects yet, add one with 'addsubject'")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tPROFESSOR\tCOLOR\tID")
	for i, s := range subjects {
		fmt.Fprintf(tw, "%d\t%s %s\t%s\t%s\t%s\n", i+1, s.Icon, s.Name, s.Professor, s.Color, s.ID)
	}
	return tw.Flush()
}

// AddSubject prompts for a new subject. Only the name is required; the
// server fills in the default color and icon.
func (a *App) AddSubject(ctx context.Context) error {
	var in api.SubjectInput
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Name", &in.Name},
		{"Professor (optional)", &in.Professor},
		{"Color as #RRGGBB (optional)", &in.Color},
		{"Icon (optional)", &in.Icon},
		{"Description (optional)", &in.Description},
	} {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	s, err := a.repo.CreateSubject(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Subject %q created\n", s.Name)
	return nil
}

func (a *App) EditSubject(ctx context.Context, args []string) error {
	ref, err := a.ref(args, "Enter subject number, name or id")
	if err != nil {
		return err
	}
	s, err := a.pickSubject(ctx, ref)
	if err != nil {
		return err
	}

	var p api.SubjectPatch
	for _, f := range []struct {
		label   string
		current string
		dst     **string
	}{
		{"Name", s.Name, &p.Name},
		{"Professor", s.Professor, &p.Professor},
		{"Color", s.Color, &p.Color},
		{"Icon", s.Icon, &p.Icon},
		{"Description", s.Description, &p.Description},
	} {
		v, err := a.edit(f.label, f.current)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	updated, err := a.repo.UpdateSubject(ctx, s.ID, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Subject %q updated\n", updated.Name)
	return nil
}

// DeleteSubject removes a subject after confirmation. Its notes go with it;
// what happens to its events depends on the server.
func (a *App) DeleteSubject(ctx context.Context, args []string) error {
	ref, err := a.ref(args, "Enter subject number, name or id")
	if err != nil {
		return err
	}
	s, err := a.pickSubject(ctx, ref)
	if err != nil {
		return err
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete %q and all its notes? (y/N)", s.Name), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	res, err := a.repo.DeleteSubject(ctx, s.ID)
	if err != nil {
		return err
	}
	a.shownNotes = nil

	fmt.Fprintf(a.out, "Subject %q deleted", s.Name)
	if res != nil {
		fmt.Fprintf(a.out, " (%d notes", res.Notes)
		if res.EventsDeleted > 0 {
			fmt.Fprintf(a.out, ", %d events", res.EventsDeleted)
		}
		if res.EventsDetached > 0 {
			fmt.Fprintf(a.out, ", %d events detached", res.EventsDetached)
		}
		fmt.Fprint(a.out, ")")
	}
	fmt.Fprintln(a.out)
	return nil
}
