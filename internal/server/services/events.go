package services

import (
	"context"
	"strings"

	"github.com/khonsu303/estudio/internal/server/activity"
	"github.com/khonsu303/estudio/internal/server/models"
	"github.com/khonsu303/estudio/internal/server/validation"
)

type EventInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	Date        string `json:"date" validate:"required,isodate"`
	Type        string `json:"type" validate:"required,oneof=Exam Presentation Assignment Project Other"`
	Subject     string `json:"subject"`
	Description string `json:"description" validate:"max=200"`
}

// EventPatchInput is a partial update. An empty Subject clears the reference.
type EventPatchInput struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=100"`
	Date        *string `json:"date" validate:"omitempty,isodate"`
	Type        *string `json:"type" validate:"omitempty,oneof=Exam Presentation Assignment Project Other"`
	Subject     *string `json:"subject"`
	Description *string `json:"description" validate:"omitempty,max=200"`
	Completed   *bool   `json:"completed"`
}

type EventService struct {
	Deps
}

func NewEventService(d Deps) *EventService {
	return &EventService{Deps: d.withDefaults()}
}

// List returns the user's events ordered by date ascending.
func (s *EventService) List(ctx context.Context, userID string) ([]*models.Event, error) {
	return s.Repomanager.Events(s.DB).List(ctx, userID)
}

func (s *EventService) Get(ctx context.Context, userID, id string) (*models.Event, error) {
	return s.Repomanager.Events(s.DB).Get(ctx, userID, id)
}

func (s *EventService) Create(ctx context.Context, userID string, in EventInput) (*models.Event, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Description = strings.TrimSpace(in.Description)
	if err := s.Validator.Struct(in); err != nil {
		return nil, err
	}
	date, _ := validation.ParseISODate(in.Date)

	event := &models.Event{
		UserID:      userID,
		Title:       in.Title,
		Date:        date,
		Type:        in.Type,
		Description: in.Description,
	}

	var summary *models.SubjectSummary
	if in.Subject != "" {
		subject, err := ownedSubject(ctx, s.Repomanager.Subjects(s.DB), userID, in.Subject)
		if err != nil {
			return nil, err
		}
		event.SubjectID = &subject.ID
		summary = &models.SubjectSummary{ID: subject.ID, Name: subject.Name, Color: subject.Color}
	}

	created, err := s.Repomanager.Events(s.DB).Create(ctx, event)
	if err != nil {
		return nil, err
	}
	created.Subject = summary

	s.Log.Info(ctx, "event created", "user_id", userID, "event_id", created.ID, "type", created.Type)
	s.publish(ctx, activity.EventCreated, userID, created.ID)

	return created, nil
}

func (s *EventService) Update(ctx context.Context, userID, id string, in EventPatchInput) (*models.Event, error) {
	trimPtr(in.Title)
	trimPtr(in.Subject)
	trimPtr(in.Description)
	if err := s.Validator.Struct(in); err != nil {
		return nil, err
	}

	patch := models.EventPatch{
		Title:       in.Title,
		Type:        in.Type,
		Description: in.Description,
		Completed:   in.Completed,
	}
	if in.Date != nil {
		date, _ := validation.ParseISODate(*in.Date)
		patch.Date = &date
	}
	if in.Subject != nil {
		if *in.Subject == "" {
			patch.ClearSubject = true
		} else {
			subject, err := ownedSubject(ctx, s.Repomanager.Subjects(s.DB), userID, *in.Subject)
			if err != nil {
				return nil, err
			}
			patch.SubjectID = &subject.ID
		}
	}

	event, err := s.Repomanager.Events(s.DB).Update(ctx, userID, id, patch)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, activity.EventUpdated, userID, id)

	return event, nil
}

func (s *EventService) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repomanager.Events(s.DB).Delete(ctx, userID, id); err != nil {
		return err
	}

	s.publish(ctx, activity.EventDeleted, userID, id)

	return nil
}

// ToggleComplete flips the completion flag, last writer wins.
func (s *EventService) ToggleComplete(ctx context.Context, userID, id string) (*models.Event, error) {
	repo := s.Repomanager.Events(s.DB)

	event, err := repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	done := !event.Completed
	event, err = repo.Update(ctx, userID, id, models.EventPatch{Completed: &done})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, activity.EventCompletionToggled, userID, id)

	return event, nil
}
