// Package memory is an in-process RepositoryManager for local development
// and tests. Data lives only as long as the process.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/khonsu303/estudio/internal/common"
	"github.com/khonsu303/estudio/internal/dbx"
	"github.com/khonsu303/estudio/internal/server/models"
	"github.com/khonsu303/estudio/internal/server/repositories/events"
	"github.com/khonsu303/estudio/internal/server/repositories/notes"
	"github.com/khonsu303/estudio/internal/server/repositories/subjects"
	"github.com/khonsu303/estudio/internal/server/repositories/users"
)

type store struct {
	mu       sync.Mutex
	clock    time.Time
	users    map[string]*models.User
	subjects map[string]*models.Subject
	notes    map[string]*models.Note
	events   map[string]*models.Event
}

func newStore() *store {
	return &store{
		clock:    time.Now().UTC(),
		users:    map[string]*models.User{},
		subjects: map[string]*models.Subject{},
		notes:    map[string]*models.Note{},
		events:   map[string]*models.Event{},
	}
}

// tick returns a strictly increasing timestamp so orderings are stable even
// when operations land within the clock resolution.
func (s *store) tick() time.Time {
	now := time.Now().UTC()
	if !now.After(s.clock) {
		now = s.clock.Add(time.Microsecond)
	}
	s.clock = now
	return now
}

// Manager hands out repositories over one shared in-process store. The db
// handle is ignored, so multi-step operations are not atomic.
type Manager struct{ s *store }

func NewManager() *Manager {
	return &Manager{s: newStore()}
}

func (m *Manager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *Manager) Users(dbx.DBTX) users.Repository              { return &userRepo{m.s} }
func (m *Manager) Subjects(dbx.DBTX) subjects.Repository        { return &subjectRepo{m.s} }
func (m *Manager) Notes(dbx.DBTX) notes.Repository              { return &noteRepo{m.s} }
func (m *Manager) Events(dbx.DBTX) events.Repository            { return &eventRepo{m.s} }

type userRepo struct{ s *store }

func (r *userRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.users {
		if x.Email == u.Email {
			return nil, common.ErrDuplicate
		}
	}
	c := *u
	c.ID = uuid.NewString()
	c.CreatedAt = r.s.tick()
	c.UpdatedAt = c.CreatedAt
	r.s.users[c.ID] = &c
	out := c
	return &out, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.users {
		if x.Email == email {
			c := *x
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *x
	c.PasswordHash = ""
	return &c, nil
}

func (r *userRepo) Update(ctx context.Context, id string, name, email *string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if email != nil {
		for _, o := range r.s.users {
			if o.ID != id && o.Email == *email {
				return nil, common.ErrDuplicate
			}
		}
		x.Email = *email
	}
	if name != nil {
		x.Name = *name
	}
	x.UpdatedAt = r.s.tick()
	c := *x
	c.PasswordHash = ""
	return &c, nil
}

func (r *userRepo) SetAvatar(ctx context.Context, id, avatar string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	x.Avatar = avatar
	x.UpdatedAt = r.s.tick()
	return nil
}

type subjectRepo struct{ s *store }

func (r *subjectRepo) List(ctx context.Context, userID string) ([]*models.Subject, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Subject{}
	for _, x := range r.s.subjects {
		if x.UserID == userID {
			c := *x
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *subjectRepo) Get(ctx context.Context, userID, id string) (*models.Subject, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.subjects[id]
	if !ok || x.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *x
	return &c, nil
}

func (r *subjectRepo) Create(ctx context.Context, sub *models.Subject) (*models.Subject, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.subjects {
		if x.UserID == sub.UserID && x.Name == sub.Name {
			return nil, common.ErrDuplicate
		}
	}
	c := *sub
	c.ID = uuid.NewString()
	c.CreatedAt = r.s.tick()
	c.UpdatedAt = c.CreatedAt
	r.s.subjects[c.ID] = &c
	out := c
	return &out, nil
}

func (r *subjectRepo) Update(ctx context.Context, userID, id string, p models.SubjectPatch) (*models.Subject, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.subjects[id]
	if !ok || x.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if p.Name != nil {
		for _, o := range r.s.subjects {
			if o.ID != id && o.UserID == userID && o.Name == *p.Name {
				return nil, common.ErrDuplicate
			}
		}
		x.Name = *p.Name
	}
	if p.Color != nil {
		x.Color = *p.Color
	}
	if p.Icon != nil {
		x.Icon = *p.Icon
	}
	if p.Description != nil {
		x.Description = *p.Description
	}
	if p.Professor != nil {
		x.Professor = *p.Professor
	}
	x.UpdatedAt = r.s.tick()
	c := *x
	return &c, nil
}

func (r *subjectRepo) Delete(ctx context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.subjects[id]
	if !ok || x.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.s.subjects, id)
	return nil
}

type noteRepo struct{ s *store }

func (r *noteRepo) summary(n *models.Note) *models.Note {
	c := *n
	c.Tags = append([]string{}, n.Tags...)
	if sub, ok := r.s.subjects[n.SubjectID]; ok && sub.UserID == n.UserID {
		c.Subject = &models.SubjectSummary{ID: sub.ID, Name: sub.Name, Color: sub.Color, Icon: sub.Icon}
	}
	return &c
}

func (r *noteRepo) List(ctx context.Context, userID, subjectID string) ([]*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Note{}
	for _, x := range r.s.notes {
		if x.UserID == userID && (subjectID == "" || x.SubjectID == subjectID) {
			out = append(out, r.summary(x))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *noteRepo) Get(ctx context.Context, userID, id string) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.notes[id]
	if !ok || x.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return r.summary(x), nil
}

func (r *noteRepo) Create(ctx context.Context, n *models.Note) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *n
	c.Tags = append([]string{}, n.Tags...)
	c.ID = uuid.NewString()
	c.CreatedAt = r.s.tick()
	c.UpdatedAt = c.CreatedAt
	r.s.notes[c.ID] = &c
	out := c
	out.Tags = append([]string{}, c.Tags...)
	return &out, nil
}

func (r *noteRepo) Update(ctx context.Context, userID, id string, p models.NotePatch) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.notes[id]
	if !ok || x.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if p.Title != nil {
		x.Title = *p.Title
	}
	if p.Content != nil {
		x.Content = *p.Content
	}
	if p.SubjectID != nil {
		x.SubjectID = *p.SubjectID
	}
	if p.Tags != nil {
		x.Tags = append([]string{}, *p.Tags...)
	}
	x.UpdatedAt = r.s.tick()
	return r.summary(x), nil
}

func (r *noteRepo) Delete(ctx context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.notes[id]
	if !ok || x.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.s.notes, id)
	return nil
}

func (r *noteRepo) SetFavorite(ctx context.Context, userID, id string, fav bool) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.notes[id]
	if !ok || x.UserID != userID {
		return nil, common.ErrorNotFound
	}
	x.Favorite = fav
	x.UpdatedAt = r.s.tick()
	return r.summary(x), nil
}

func (r *noteRepo) DeleteBySubject(ctx context.Context, userID, subjectID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, x := range r.s.notes {
		if x.UserID == userID && x.SubjectID == subjectID {
			delete(r.s.notes, id)
			n++
		}
	}
	return n, nil
}

type eventRepo struct{ s *store }

func (r *eventRepo) summary(e *models.Event) *models.Event {
	c := *e
	c.Subject = nil
	if e.SubjectID != nil {
		if sub, ok := r.s.subjects[*e.SubjectID]; ok && sub.UserID == e.UserID {
			c.Subject = &models.SubjectSummary{ID: sub.ID, Name: sub.Name, Color: sub.Color}
		}
	}
	return &c
}

func (r *eventRepo) List(ctx context.Context, userID string) ([]*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Event{}
	for _, x := range r.s.events {
		if x.UserID == userID {
			out = append(out, r.summary(x))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *eventRepo) Get(ctx context.Context, userID, id string) (*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.events[id]
	if !ok || x.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return r.summary(x), nil
}

func (r *eventRepo) Create(ctx context.Context, e *models.Event) (*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *e
	c.ID = uuid.NewString()
	c.CreatedAt = r.s.tick()
	c.UpdatedAt = c.CreatedAt
	r.s.events[c.ID] = &c
	out := c
	return &out, nil
}

func (r *eventRepo) Update(ctx context.Context, userID, id string, p models.EventPatch) (*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.events[id]
	if !ok || x.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if p.Title != nil {
		x.Title = *p.Title
	}
	if p.Date != nil {
		x.Date = *p.Date
	}
	if p.Type != nil {
		x.Type = *p.Type
	}
	if p.ClearSubject {
		x.SubjectID = nil
	} else if p.SubjectID != nil {
		id := *p.SubjectID
		x.SubjectID = &id
	}
	if p.Description != nil {
		x.Description = *p.Description
	}
	if p.Completed != nil {
		x.Completed = *p.Completed
	}
	x.UpdatedAt = r.s.tick()
	return r.summary(x), nil
}

func (r *eventRepo) Delete(ctx context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.events[id]
	if !ok || x.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.s.events, id)
	return nil
}

func (r *eventRepo) DetachSubject(ctx context.Context, userID, subjectID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, x := range r.s.events {
		if x.UserID == userID && x.SubjectID != nil && *x.SubjectID == subjectID {
			x.SubjectID = nil
			n++
		}
	}
	return n, nil
}

func (r *eventRepo) DeleteBySubject(ctx context.Context, userID, subjectID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, x := range r.s.events {
		if x.UserID == userID && x.SubjectID != nil && *x.SubjectID == subjectID {
			delete(r.s.events, id)
			n++
		}
	}
	return n, nil
}
