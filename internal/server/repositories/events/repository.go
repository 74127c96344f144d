package events

import (
	"context"

	"github.com/khonsu303/estudio/internal/server/models"
)

// Repository stores calendar events scoped by owner.
type Repository interface {
	// List returns the owner's events ordered by date ascending.
	List(ctx context.Context, userID string) ([]*models.Event, error)
	Get(ctx context.Context, userID, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
	Update(ctx context.Context, userID, id string, patch models.EventPatch) (*models.Event, error)
	Delete(ctx context.Context, userID, id string) error
	DetachSubject(ctx context.Context, userID, subjectID string) (int64, error)
	DeleteBySubject(ctx context.Context, userID, subjectID string) (int64, error)
}
