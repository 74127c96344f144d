// Package store is the client-side repository of the signed-in user's
// subjects, notes and events. Reads return copies of cached collections;
// every mutation drops the collections it affects and fetches them again
// from the server, so callers never see stale data after their own writes.
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/khonsu303/estudio/internal/client/api"
)

// Backend is the part of *api.Client the repository uses.
type Backend interface {
	ListSubjects(ctx context.Context) ([]api.Subject, error)
	CreateSubject(ctx context.Context, in api.SubjectInput) (*api.Subject, error)
	UpdateSubject(ctx context.Context, id string, p api.SubjectPatch) (*api.Subject, error)
	DeleteSubject(ctx context.Context, id string) (*api.DeleteResult, error)

	ListNotes(ctx context.Context, subjectID string) ([]api.Note, error)
	CreateNote(ctx context.Context, in api.NoteInput) (*api.Note, error)
	UpdateNote(ctx context.Context, id string, p api.NotePatch) (*api.Note, error)
	DeleteNote(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, id string) (*api.Note, error)

	ListEvents(ctx context.Context) ([]api.Event, error)
	CreateEvent(ctx context.Context, in api.EventInput) (*api.Event, error)
	UpdateEvent(ctx context.Context, id string, p api.EventPatch) (*api.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	ToggleComplete(ctx context.Context, id string) (*api.Event, error)
}

type collection uint8

const (
	subjectsCol collection = 1 << iota
	notesCol
	eventsCol

	allCols = subjectsCol | notesCol | eventsCol
)

type Repository struct {
	backend Backend

	mu       sync.Mutex
	subjects []api.Subject
	notes    []api.Note
	events   []api.Event
	loaded   collection
}

func New(b Backend) *Repository {
	return &Repository{backend: b}
}

// Reset forgets everything, e.g. after the user changes.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subjects, r.notes, r.events = nil, nil, nil
	r.loaded = 0
}

// Subjects returns the user's subjects, newest first.
func (r *Repository) Subjects(ctx context.Context) ([]api.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensure(ctx, subjectsCol); err != nil {
		return nil, err
	}
	return slices.Clone(r.subjects), nil
}

// Notes returns the user's notes, most recently updated first. A non-empty
// subjectID keeps only the notes of that subject.
func (r *Repository) Notes(ctx context.Context, subjectID string) ([]api.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensure(ctx, notesCol); err != nil {
		return nil, err
	}

	out := make([]api.Note, 0, len(r.notes))
	for _, n := range r.notes {
		if subjectID == "" || (n.Subject != nil && n.Subject.ID == subjectID) {
			n.Tags = slices.Clone(n.Tags)
			n.Subject = cloneSummary(n.Subject)
			out = append(out, n)
		}
	}
	return out, nil
}

// Events returns the user's events ordered by date.
func (r *Repository) Events(ctx context.Context) ([]api.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensure(ctx, eventsCol); err != nil {
		return nil, err
	}

	out := slices.Clone(r.events)
	for i := range out {
		out[i].Subject = cloneSummary(out[i].Subject)
	}
	return out, nil
}

func cloneSummary(s *api.SubjectSummary) *api.SubjectSummary {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// ensure loads the missing collections in cols. Callers hold r.mu.
func (r *Repository) ensure(ctx context.Context, cols collection) error {
	if cols&subjectsCol != 0 && r.loaded&subjectsCol == 0 {
		list, err := r.backend.ListSubjects(ctx)
		if err != nil {
			return err
		}
		r.subjects = list
		r.loaded |= subjectsCol
	}
	if cols&notesCol != 0 && r.loaded&notesCol == 0 {
		list, err := r.backend.ListNotes(ctx, "")
		if err != nil {
			return err
		}
		r.notes = list
		r.loaded |= notesCol
	}
	if cols&eventsCol != 0 && r.loaded&eventsCol == 0 {
		list, err := r.backend.ListEvents(ctx)
		if err != nil {
			return err
		}
		r.events = list
		r.loaded |= eventsCol
	}
	return nil
}

// refresh invalidates cols and fetches them again. Callers hold r.mu.
func (r *Repository) refresh(ctx context.Context, cols collection) error {
	r.loaded &^= cols
	return r.ensure(ctx, cols)
}

// mutate runs a write and, if it succeeded, re-fetches what it touched.
func (r *Repository) mutate(ctx context.Context, cols collection, write func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := write(); err != nil {
		return err
	}
	return r.refresh(ctx, cols)
}

func (r *Repository) CreateSubject(ctx context.Context, in api.SubjectInput) (*api.Subject, error) {
	var out *api.Subject
	err := r.mutate(ctx, subjectsCol, func() (err error) {
		out, err = r.backend.CreateSubject(ctx, in)
		return err
	})
	return out, err
}

// UpdateSubject also re-fetches notes and events, which embed the subject's
// name and color.
func (r *Repository) UpdateSubject(ctx context.Context, id string, p api.SubjectPatch) (*api.Subject, error) {
	var out *api.Subject
	err := r.mutate(ctx, allCols, func() (err error) {
		out, err = r.backend.UpdateSubject(ctx, id, p)
		return err
	})
	return out, err
}

// DeleteSubject re-fetches every collection: the server removes the
// subject's notes and may detach or delete its events.
func (r *Repository) DeleteSubject(ctx context.Context, id string) (*api.DeleteResult, error) {
	var out *api.DeleteResult
	err := r.mutate(ctx, allCols, func() (err error) {
		out, err = r.backend.DeleteSubject(ctx, id)
		return err
	})
	return out, err
}

func (r *Repository) CreateNote(ctx context.Context, in api.NoteInput) (*api.Note, error) {
	var out *api.Note
	err := r.mutate(ctx, notesCol, func() (err error) {
		out, err = r.backend.CreateNote(ctx, in)
		return err
	})
	return out, err
}

func (r *Repository) UpdateNote(ctx context.Context, id string, p api.NotePatch) (*api.Note, error) {
	var out *api.Note
	err := r.mutate(ctx, notesCol, func() (err error) {
		out, err = r.backend.UpdateNote(ctx, id, p)
		return err
	})
	return out, err
}

func (r *Repository) DeleteNote(ctx context.Context, id string) error {
	return r.mutate(ctx, notesCol, func() error {
		return r.backend.DeleteNote(ctx, id)
	})
}

func (r *Repository) ToggleFavorite(ctx context.Context, id string) (*api.Note, error) {
	var out *api.Note
	err := r.mutate(ctx, notesCol, func() (err error) {
		out, err = r.backend.ToggleFavorite(ctx, id)
		return err
	})
	return out, err
}

func (r *Repository) CreateEvent(ctx context.Context, in api.EventInput) (*api.Event, error) {
	var out *api.Event
	err := r.mutate(ctx, eventsCol, func() (err error) {
		out, err = r.backend.CreateEvent(ctx, in)
		return err
	})
	return out, err
}

func (r *Repository) UpdateEvent(ctx context.Context, id string, p api.EventPatch) (*api.Event, error) {
	var out *api.Event
	err := r.mutate(ctx, eventsCol, func() (err error) {
		out, err = r.backend.UpdateEvent(ctx, id, p)
		return err
	})
	return out, err
}

func (r *Repository) DeleteEvent(ctx context.Context, id string) error {
	return r.mutate(ctx, eventsCol, func() error {
		return r.backend.DeleteEvent(ctx, id)
	})
}

func (r *Repository) ToggleComplete(ctx context.Context, id string) (*api.Event, error) {
	var out *api.Event
	err := r.mutate(ctx, eventsCol, func() (err error) {
		out, err = r.backend.ToggleComplete(ctx, id)
		return err
	})
	return out, err
}
