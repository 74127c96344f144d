package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/khonsu303/estudio/internal/client/api"
)

// Notes lists notes, most recently updated first. An optional argument
// narrows the list to one subject.
func (a *App) Notes(ctx context.Context, args []string) error {
	subjectID := ""
	if len(args) > 0 {
		s, err := a.pickSubject(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		subjectID = s.ID
	}

	notes, err := a.repo.Notes(ctx, subjectID)
	if err != nil {
		return err
	}

	a.shownNotes = make([]string, len(notes))
	for i, n := range notes {
		a.shownNotes[i] = n.ID
	}
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\t\tTITLE\tSUBJECT\tTAGS\tUPDATED")
	for i, n := range notes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, star(n.Favorite), n.Title,
			subjectName(n.Subject), strings.Join(n.Tags, ","), n.UpdatedAt.Local().Format(dateLayout))
	}
	return tw.Flush()
}

func (a *App) ShowNote(ctx context.Context, args []string) error {
	n, err := a.pickNote(ctx, args)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s %s\n", star(n.Favorite), n.Title)
	fmt.Fprintf(a.out, "Subject: %s\n", subjectName(n.Subject))
	if len(n.Tags) > 0 {
		fmt.Fprintf(a.out, "Tags:    %s\n", strings.Join(n.Tags, ", "))
	}
	fmt.Fprintf(a.out, "Updated: %s\n\n%s\n", n.UpdatedAt.Local().Format(dateTimeLayout), n.Content)
	return nil
}

// AddNote creates a note under a subject given as argument or asked for.
func (a *App) AddNote(ctx context.Context, args []string) error {
	ref := strings.Join(args, " ")
	if ref == "" {
		var err error
		if ref, err = getSimpleText(a.reader, "Subject (number, name or id)", a.out); err != nil {
			return err
		}
	}
	s, err := a.pickSubject(ctx, ref)
	if err != nil {
		return err
	}

	in := api.NoteInput{Subject: s.ID}
	if in.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if in.Content, err = getMultiline(a.reader, "Content", a.out); err != nil {
		return err
	}
	tags, err := getSimpleText(a.reader, "Tags, comma-separated (optional)", a.out)
	if err != nil {
		return err
	}
	in.Tags = SplitList(tags)

	n, err := a.repo.CreateNote(ctx, in)
	if err != nil {
		return err
	}
	a.shownNotes = nil
	fmt.Fprintf(a.out, "Note %q added to %s\n", n.Title, s.Name)
	return nil
}

// EditNote updates a note. Blank answers keep the current values; the
// content is only replaced when the user asks to.
func (a *App) EditNote(ctx context.Context, args []string) error {
	n, err := a.pickNote(ctx, args)
	if err != nil {
		return err
	}

	var p api.NotePatch
	if p.Title, err = a.edit("Title", n.Title); err != nil {
		return err
	}

	subject, err := a.edit("Subject", subjectName(n.Subject))
	if err != nil {
		return err
	}
	if subject != nil {
		s, err := a.pickSubject(ctx, *subject)
		if err != nil {
			return err
		}
		p.Subject = &s.ID
	}

	tags, err := a.edit("Tags", strings.Join(n.Tags, ","))
	if err != nil {
		return err
	}
	if tags != nil {
		list := SplitList(*tags)
		p.Tags = &list
	}

	answer, err := getSimpleText(a.reader, "Replace content? (y/N)", a.out)
	if err != nil {
		return err
	}
	if strings.EqualFold(answer, "y") {
		content, err := getMultiline(a.reader, "Content", a.out)
		if err != nil {
			return err
		}
		p.Content = &content
	}

	updated, err := a.repo.UpdateNote(ctx, n.ID, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Note %q updated\n", updated.Title)
	return nil
}

func (a *App) DeleteNote(ctx context.Context, args []string) error {
	n, err := a.pickNote(ctx, args)
	if err != nil {
		return err
	}
	if err := a.repo.DeleteNote(ctx, n.ID); err != nil {
		return err
	}
	a.shownNotes = nil
	fmt.Fprintf(a.out, "Note %q deleted\n", n.Title)
	return nil
}

func (a *App) Favorite(ctx context.Context, args []string) error {
	n, err := a.pickNote(ctx, args)
	if err != nil {
		return err
	}
	updated, err := a.repo.ToggleFavorite(ctx, n.ID)
	if err != nil {
		return err
	}
	if updated.Favorite {
		fmt.Fprintf(a.out, "%q added to favorites\n", updated.Title)
	} else {
		fmt.Fprintf(a.out, "%q removed from favorites\n", updated.Title)
	}
	return nil
}

func star(on bool) string {
	if on {
		return "*"
	}
	return " "
}

func subjectName(s *api.SubjectSummary) string {
	if s == nil {
		return "-"
	}
	return s.Name
}
