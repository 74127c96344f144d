package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/khonsu303/estudio/internal/dbx"
	"github.com/khonsu303/estudio/internal/server/activity"
	"github.com/khonsu303/estudio/internal/server/config"
	"github.com/khonsu303/estudio/internal/server/models"
)

const (
	DefaultSubjectColor = "#ec4899"
	DefaultSubjectIcon  = "📚"
)

type SubjectInput struct {
	Name        string `json:"name" validate:"required,max=50"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Description string `json:"description" validate:"max=200"`
	Professor   string `json:"professor" validate:"max=50"`
}

type SubjectPatchInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=50"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	Description *string `json:"description" validate:"omitempty,max=200"`
	Professor   *string `json:"professor" validate:"omitempty,max=50"`
}

// DeleteResult reports what a subject deletion removed or detached.
type DeleteResult struct {
	Notes          int64 `json:"notesDeleted"`
	EventsDeleted  int64 `json:"eventsDeleted"`
	EventsDetached int64 `json:"eventsDetached"`
}

type SubjectService struct {
	Deps
	eventCascade string
}

// NewSubjectService builds the subject store. eventCascade is one of the
// config.Cascade* policies; anything unknown behaves like config.CascadeKeep.
func NewSubjectService(d Deps, eventCascade string) *SubjectService {
	return &SubjectService{Deps: d.withDefaults(), eventCascade: eventCascade}
}

func (s *SubjectService) List(ctx context.Context, userID string) ([]*models.Subject, error) {
	return s.Repomanager.Subjects(s.DB).List(ctx, userID)
}

func (s *SubjectService) Get(ctx context.Context, userID, id string) (*models.Subject, error) {
	return s.Repomanager.Subjects(s.DB).Get(ctx, userID, id)
}

func (s *SubjectService) Create(ctx context.Context, userID string, in SubjectInput) (*models.Subject, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Professor = strings.TrimSpace(in.Professor)
	if err := s.Validator.Struct(in); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		UserID:      userID,
		Name:        in.Name,
		Color:       in.Color,
		Icon:        in.Icon,
		Description: in.Description,
		Professor:   in.Professor,
	}
	if subject.Color == "" {
		subject.Color = DefaultSubjectColor
	}
	if subject.Icon == "" {
		subject.Icon = DefaultSubjectIcon
	}

	created, err := s.Repomanager.Subjects(s.DB).Create(ctx, subject)
	if err != nil {
		return nil, err
	}

	s.Log.Info(ctx, "subject created", "user_id", userID, "subject_id", created.ID)
	s.publish(ctx, activity.SubjectCreated, userID, created.ID)

	return created, nil
}

func (s *SubjectService) Update(ctx context.Context, userID, id string, in SubjectPatchInput) (*models.Subject, error) {
	trimPtr(in.Name)
	trimPtr(in.Description)
	trimPtr(in.Professor)
	if err := s.Validator.Struct(in); err != nil {
		return nil, err
	}

	updated, err := s.Repomanager.Subjects(s.DB).Update(ctx, userID, id, models.SubjectPatch{
		Name:        in.Name,
		Color:       in.Color,
		Icon:        in.Icon,
		Description: in.Description,
		Professor:   in.Professor,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, activity.SubjectUpdated, userID, id)

	return updated, nil
}

// Delete removes the subject together with its notes in one transaction and
// applies the configured policy to events that reference it.
func (s *SubjectService) Delete(ctx context.Context, userID, id string) (*DeleteResult, error) {
	res := &DeleteResult{}

	err := s.inTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		subjects := s.Repomanager.Subjects(tx)
		if _, err := subjects.Get(ctx, userID, id); err != nil {
			return err
		}

		n, err := s.Repomanager.Notes(tx).DeleteBySubject(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("delete notes: %w", err)
		}
		res.Notes = n

		events := s.Repomanager.Events(tx)
		switch s.eventCascade {
		case config.CascadeDetach:
			if res.EventsDetached, err = events.DetachSubject(ctx, userID, id); err != nil {
				return fmt.Errorf("detach events: %w", err)
			}
		case config.CascadeDelete:
			if res.EventsDeleted, err = events.DeleteBySubject(ctx, userID, id); err != nil {
				return fmt.Errorf("delete events: %w", err)
			}
		}

		return subjects.Delete(ctx, userID, id)
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info(ctx, "subject deleted", "user_id", userID, "subject_id", id,
		"notes", res.Notes, "events_deleted", res.EventsDeleted, "events_detached", res.EventsDetached)
	s.publish(ctx, activity.SubjectDeleted, userID, id)

	return res, nil
}
