package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/khonsu303/estudio/internal/client/api"
)

var errNoSuchItem = errors.New("no such item")

// describe turns an error into a line for the user.
func describe(err error) string {
	if errors.Is(err, api.ErrUnavailable) {
		return "server unavailable, try again later"
	}

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	if len(apiErr.Fields) == 0 {
		return apiErr.Message
	}
	var b strings.Builder
	b.WriteString(apiErr.Message)
	for _, f := range apiErr.Fields {
		fmt.Fprintf(&b, "\n  %s: %s", f.Field, f.Message)
	}
	return b.String()
}

// pick maps ref, a 1-based position in ids or an id itself, to an id.
func pick(ref string, ids []string) (string, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(ids) {
			return "", fmt.Errorf("%w: #%d", errNoSuchItem, n)
		}
		return ids[n-1], nil
	}
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %s", errNoSuchItem, ref)
}

// ref returns args[0] or asks for it.
func (a *App) ref(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) pickSubject(ctx context.Context, ref string) (*api.Subject, error) {
	subjects, err := a.repo.Subjects(ctx)
	if err != nil {
		return nil, err
	}
	for i := range subjects {
		if strings.EqualFold(subjects[i].Name, ref) {
			return &subjects[i], nil
		}
	}

	ids := make([]string, len(subjects))
	for i, s := range subjects {
		ids[i] = s.ID
	}
	id, err := pick(ref, ids)
	if err != nil {
		return nil, err
	}
	for i := range subjects {
		if subjects[i].ID == id {
			return &subjects[i], nil
		}
	}
	return nil, errNoSuchItem
}

func (a *App) pickNote(ctx context.Context, args []string) (*api.Note, error) {
	ref, err := a.ref(args, "Enter note number or id")
	if err != nil {
		return nil, err
	}
	notes, err := a.repo.Notes(ctx, "")
	if err != nil {
		return nil, err
	}

	ids := a.shownNotes
	if ids == nil {
		for _, n := range notes {
			ids = append(ids, n.ID)
		}
	}
	id, err := pick(ref, ids)
	if err != nil {
		return nil, err
	}
	for i := range notes {
		if notes[i].ID == id {
			return &notes[i], nil
		}
	}
	return nil, errNoSuchItem
}

func (a *App) pickEvent(ctx context.Context, args []string) (*api.Event, error) {
	ref, err := a.ref(args, "Enter event number or id")
	if err != nil {
		return nil, err
	}
	events, err := a.repo.Events(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	id, err := pick(ref, ids)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id {
			return &events[i], nil
		}
	}
	return nil, errNoSuchItem
}

// edit asks for a new value showing the current one. A blank answer keeps
// it and yields nil.
func (a *App) edit(label, current string) (*string, error) {
	v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", label, current), a.out)
	if err != nil || v == "" {
		return nil, err
	}
	return &v, nil
}
