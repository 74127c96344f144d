package services

import (
	"context"
	"errors"
	"strings"

	"github.com/khonsu303/estudio/internal/common"
	"github.com/khonsu303/estudio/internal/dbx"
	"github.com/khonsu303/estudio/internal/server/activity"
	"github.com/khonsu303/estudio/internal/server/models"
)

type NoteInput struct {
	Title   string   `json:"title" validate:"required,max=100"`
	Content string   `json:"content" validate:"required"`
	Subject string   `json:"subject" validate:"required"`
	Tags    []string `json:"tags"`
}

type NotePatchInput struct {
	Title   *string   `json:"title" validate:"omitempty,min=1,max=100"`
	Content *string   `json:"content" validate:"omitempty,min=1"`
	Subject *string   `json:"subject" validate:"omitempty,min=1"`
	Tags    *[]string `json:"tags"`
}

type NoteService struct {
	Deps
}

func NewNoteService(d Deps) *NoteService {
	return &NoteService{Deps: d.withDefaults()}
}

// List returns the user's notes, most recently updated first, optionally
// only those of one subject.
func (s *NoteService) List(ctx context.Context, userID, subjectID string) ([]*models.Note, error) {
	return s.Repomanager.Notes(s.DB).List(ctx, userID, strings.TrimSpace(subjectID))
}

func (s *NoteService) Get(ctx context.Context, userID, id string) (*models.Note, error) {
	return s.Repomanager.Notes(s.DB).Get(ctx, userID, id)
}

func (s *NoteService) Create(ctx context.Context, userID string, in NoteInput) (*models.Note, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Subject = strings.TrimSpace(in.Subject)
	if err := s.Validator.Struct(in); err != nil {
		return nil, err
	}

	subject, err := ownedSubject(ctx, s.Repomanager.Subjects(s.DB), userID, in.Subject)
	if err != nil {
		return nil, err
	}

	note, err := s.Repomanager.Notes(s.DB).Create(ctx, &models.Note{
		UserID:    userID,
		SubjectID: subject.ID,
		Title:     in.Title,
		Content:   in.Content,
		Tags:      cleanTags(in.Tags),
	})
	if err != nil {
		return nil, err
	}
	note.Subject = &models.SubjectSummary{ID: subject.ID, Name: subject.Name, Color: subject.Color, Icon: subject.Icon}

	s.Log.Info(ctx, "note created", "user_id", userID, "note_id", note.ID)
	s.publish(ctx, activity.NoteCreated, userID, note.ID)

	return note, nil
}

// Update applies a partial change. Moving a note to another subject requires
// that subject to belong to the same user.
func (s *NoteService) Update(ctx context.Context, userID, id string, in NotePatchInput) (*models.Note, error) {
	trimPtr(in.Title)
	trimPtr(in.Subject)
	if err := s.Validator.Struct(in); err != nil {
		return nil, err
	}

	patch := models.NotePatch{Title: in.Title, Content: in.Content}
	if in.Tags != nil {
		tags := cleanTags(*in.Tags)
		patch.Tags = &tags
	}

	var note *models.Note
	err := s.inTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if in.Subject != nil {
			subject, err := ownedSubject(ctx, s.Repomanager.Subjects(tx), userID, *in.Subject)
			if err != nil {
				return err
			}
			patch.SubjectID = &subject.ID
		}

		var err error
		note, err = s.Repomanager.Notes(tx).Update(ctx, userID, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, activity.NoteUpdated, userID, id)

	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repomanager.Notes(s.DB).Delete(ctx, userID, id); err != nil {
		return err
	}

	s.publish(ctx, activity.NoteDeleted, userID, id)

	return nil
}

// ToggleFavorite flips the favorite flag. Concurrent toggles are last writer
// wins.
func (s *NoteService) ToggleFavorite(ctx context.Context, userID, id string) (*models.Note, error) {
	repo := s.Repomanager.Notes(s.DB)

	note, err := repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	note, err = repo.SetFavorite(ctx, userID, id, !note.Favorite)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, activity.NoteFavoriteToggled, userID, id)

	return note, nil
}

type subjectGetter interface {
	Get(ctx context.Context, userID, id string) (*models.Subject, error)
}

// ownedSubject resolves a subject reference; a missing or foreign subject is
// common.ErrInvalidReference.
func ownedSubject(ctx context.Context, repo subjectGetter, userID, subjectID string) (*models.Subject, error) {
	subject, err := repo.Get(ctx, userID, subjectID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidReference
		}
		return nil, err
	}
	return subject, nil
}
