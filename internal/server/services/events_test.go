package services

import (
	"context"
	"testing"
	"time"

	"github.com/khonsu303/estudio/internal/common"
	"github.com/khonsu303/estudio/internal/server/activity"
	"github.com/khonsu303/estudio/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCreate_InvalidTypeNamesField(t *testing.T) {
	d, _, _, _ := newDeps(t)
	svc := NewEventService(d)

	_, err := svc.Create(context.Background(), alice, EventInput{Title: "Quiz", Date: "2024-06-01", Type: "Invalid"})
	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "type", verr.Fields[0].Field)

	list, err := svc.List(context.Background(), alice)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEventCreate_WithAndWithoutSubject(t *testing.T) {
	d, _, pub, _ := newDeps(t)
	ctx := context.Background()
	s, err := NewSubjectService(d, config.CascadeKeep).Create(ctx, alice, SubjectInput{Name: "Math"})
	require.NoError(t, err)
	svc := NewEventService(d)

	e, err := svc.Create(ctx, alice, EventInput{Title: "Final", Date: "2024-06-01T09:00", Type: "Exam", Subject: s.ID, Description: "room 4"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), e.Date)
	require.NotNil(t, e.Subject)
	assert.Equal(t, "Math", e.Subject.Name)
	assert.Empty(t, e.Subject.Icon)

	free, err := svc.Create(ctx, alice, EventInput{Title: "Standup", Date: "2024-06-02", Type: "Other"})
	require.NoError(t, err)
	assert.Nil(t, free.SubjectID)
	assert.Nil(t, free.Subject)

	assert.Contains(t, pub.types(), activity.EventCreated)
}

func TestEventCreate_ForeignSubject(t *testing.T) {
	d, _, _, _ := newDeps(t)
	ctx := context.Background()
	bs, err := NewSubjectService(d, config.CascadeKeep).Create(ctx, bob, SubjectInput{Name: "Bio"})
	require.NoError(t, err)

	_, err = NewEventService(d).Create(ctx, alice, EventInput{Title: "x", Date: "2024-06-01", Type: "Exam", Subject: bs.ID})
	assert.ErrorIs(t, err, common.ErrInvalidReference)
}

func TestEventList_DateAscending(t *testing.T) {
	d, _, _, _ := newDeps(t)
	svc := NewEventService(d)
	ctx := context.Background()

	for _, in := range []EventInput{
		{Title: "later", Date: "2024-07-01", Type: "Project"},
		{Title: "soon", Date: "2024-06-01", Type: "Assignment"},
		{Title: "middle", Date: "2024-06-15", Type: "Presentation"},
	} {
		_, err := svc.Create(ctx, alice, in)
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"soon", "middle", "later"}, []string{list[0].Title, list[1].Title, list[2].Title})
}

func TestEventUpdate(t *testing.T) {
	d, _, _, _ := newDeps(t)
	ctx := context.Background()
	s, err := NewSubjectService(d, config.CascadeKeep).Create(ctx, alice, SubjectInput{Name: "Math"})
	require.NoError(t, err)
	svc := NewEventService(d)

	e, err := svc.Create(ctx, alice, EventInput{Title: "Final", Date: "2024-06-01", Type: "Exam", Subject: s.ID})
	require.NoError(t, err)

	date := "2024-06-03"
	typ := "Presentation"
	got, err := svc.Update(ctx, alice, e.ID, EventPatchInput{Date: &date, Type: &typ})
	require.NoError(t, err)
	assert.Equal(t, "Presentation", got.Type)
	assert.Equal(t, 3, got.Date.Day())
	assert.Equal(t, "Final", got.Title)
	require.NotNil(t, got.SubjectID)

	none := ""
	got, err = svc.Update(ctx, alice, e.ID, EventPatchInput{Subject: &none})
	require.NoError(t, err)
	assert.Nil(t, got.SubjectID)

	bad := "Party"
	_, err = svc.Update(ctx, alice, e.ID, EventPatchInput{Type: &bad})
	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Fields[0].Field)

	_, err = svc.Update(ctx, bob, e.ID, EventPatchInput{Type: &typ})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestEventToggleComplete(t *testing.T) {
	d, _, _, _ := newDeps(t)
	svc := NewEventService(d)
	ctx := context.Background()

	e, err := svc.Create(ctx, alice, EventInput{Title: "HW", Date: "2024-06-01", Type: "Assignment"})
	require.NoError(t, err)

	got, err := svc.ToggleComplete(ctx, alice, e.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	got, err = svc.ToggleComplete(ctx, alice, e.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
}

func TestEventDelete_Scoped(t *testing.T) {
	d, _, _, _ := newDeps(t)
	svc := NewEventService(d)
	ctx := context.Background()

	e, err := svc.Create(ctx, alice, EventInput{Title: "HW", Date: "2024-06-01", Type: "Assignment"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, bob, e.ID), common.ErrorNotFound)
	assert.NoError(t, svc.Delete(ctx, alice, e.ID))
}
