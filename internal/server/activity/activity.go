// Package activity publishes a feed of user-visible mutations. Consumers are
// out of process; delivery is best effort and never fails the request that
// produced the activity.
package activity

import (
	"context"
	"time"
)

// Activity types.
const (
	UserRegistered         = "user.registered"
	UserUpdated            = "user.updated"
	SubjectCreated         = "subject.created"
	SubjectUpdated         = "subject.updated"
	SubjectDeleted         = "subject.deleted"
	NoteCreated            = "note.created"
	NoteUpdated            = "note.updated"
	NoteDeleted            = "note.deleted"
	NoteFavoriteToggled    = "note.favorite_toggled"
	EventCreated           = "event.created"
	EventUpdated           = "event.updated"
	EventDeleted           = "event.deleted"
	EventCompletionToggled = "event.completion_toggled"
)

type Activity struct {
	Type       string    `json:"type"`
	UserID     string    `json:"userId"`
	ResourceID string    `json:"resourceId,omitempty"`
	At         time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, a Activity)
	Close() error
}

// Noop is used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, Activity) {}
func (Noop) Close() error                      { return nil }
