package services

import (
	"context"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/khonsu303/estudio/internal/dbx"
	"github.com/khonsu303/estudio/internal/server/activity"
	"github.com/khonsu303/estudio/internal/server/repositories/memory"
	"github.com/khonsu303/estudio/internal/server/repositories/notes"
)

type recordingPublisher struct {
	mu   sync.Mutex
	seen []activity.Activity
}

func (p *recordingPublisher) Publish(ctx context.Context, a activity.Activity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen = append(p.seen, a)
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.seen))
	for _, a := range p.seen {
		out = append(out, a.Type)
	}
	return out
}

// failingNotesRM makes the cascade step of a subject deletion fail.
type failingNotesRM struct {
	*memory.Manager
	err error
}

func (f failingNotesRM) Notes(db dbx.DBTX) notes.Repository {
	return failingNotes{Repository: f.Manager.Notes(db), err: f.err}
}

type failingNotes struct {
	notes.Repository
	err error
}

func (f failingNotes) DeleteBySubject(context.Context, string, string) (int64, error) {
	return 0, f.err
}

// newDeps returns deps over an in-memory store and a sqlmock database, so
// transactional paths must declare their Begin/Commit expectations.
func newDeps(t *testing.T) (Deps, *memory.Manager, *recordingPublisher, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	m := memory.NewManager()
	pub := &recordingPublisher{}
	return Deps{DB: db, Repomanager: m, Activity: pub}, m, pub, mock
}
