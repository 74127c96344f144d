package memory

import (
	"context"
	"testing"
	"time"

	"github.com/khonsu303/estudio/internal/common"
	"github.com/khonsu303/estudio/internal/server/models"
	"github.com/khonsu303/estudio/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ repomanager.RepositoryManager = (*Manager)(nil)

func TestUsers_UniqueEmailAndHashHidden(t *testing.T) {
	m := NewManager()
	ctx := context.Background()
	repo := m.Users(nil)

	u, err := repo.Create(ctx, &models.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Name: "Other", Email: "ana@x.com"})
	assert.ErrorIs(t, err, common.ErrDuplicate)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, byID.PasswordHash)

	byEmail, err := repo.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, "h", byEmail.PasswordHash)
}

func TestSubjects_ScopedAndOrdered(t *testing.T) {
	m := NewManager()
	ctx := context.Background()
	repo := m.Subjects(nil)

	a, err := repo.Create(ctx, &models.Subject{UserID: "u1", Name: "A"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.Subject{UserID: "u1", Name: "B"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.Subject{UserID: "u1", Name: "A"})
	assert.ErrorIs(t, err, common.ErrDuplicate)

	list, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Name)

	_, err = repo.Get(ctx, "u2", a.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "u2", a.ID), common.ErrorNotFound)
}

func TestNotes_SummaryFollowsSubject(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	s, err := m.Subjects(nil).Create(ctx, &models.Subject{UserID: "u1", Name: "Math", Color: "#fff", Icon: "x"})
	require.NoError(t, err)
	n, err := m.Notes(nil).Create(ctx, &models.Note{UserID: "u1", SubjectID: s.ID, Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, n.Tags)

	got, err := m.Notes(nil).Get(ctx, "u1", n.ID)
	require.NoError(t, err)
	assert.Equal(t, &models.SubjectSummary{ID: s.ID, Name: "Math", Color: "#fff", Icon: "x"}, got.Subject)

	deleted, err := m.Notes(nil).DeleteBySubject(ctx, "u1", s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestEvents_OrderAndCascadeHelpers(t *testing.T) {
	m := NewManager()
	ctx := context.Background()
	repo := m.Events(nil)
	sid := "s1"

	d := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, &models.Event{UserID: "u1", Title: "late", Date: d.AddDate(0, 1, 0), SubjectID: &sid})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.Event{UserID: "u1", Title: "early", Date: d, SubjectID: &sid})
	require.NoError(t, err)

	list, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "early", list[0].Title)
	assert.Nil(t, list[0].Subject, "dangling reference has no summary")

	n, err := repo.DetachSubject(ctx, "u1", sid)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.DeleteBySubject(ctx, "u1", sid)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTickIsMonotonic(t *testing.T) {
	s := newStore()
	prev := s.tick()
	for i := 0; i < 100; i++ {
		next := s.tick()
		require.True(t, next.After(prev))
		prev = next
	}
}

func TestNotes_TagsNotShared(t *testing.T) {
	m := NewManager()
	ctx := context.Background()
	repo := m.Notes(nil)

	tags := []string{"exam", "ch1"}
	n, err := repo.Create(ctx, &models.Note{UserID: "u1", Title: "T", Tags: tags})
	require.NoError(t, err)
	tags[0] = "changed"
	n.Tags[1] = "changed"

	got, err := repo.Get(ctx, "u1", n.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"exam", "ch1"}, got.Tags)

	patch := []string{"final"}
	_, err = repo.Update(ctx, "u1", n.ID, models.NotePatch{Tags: &patch})
	require.NoError(t, err)
	patch[0] = "changed"

	got, err = repo.Get(ctx, "u1", n.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"final"}, got.Tags)
}
