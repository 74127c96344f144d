package notes

import (
	"context"

	"github.com/khonsu303/estudio/internal/server/models"
)

// Repository stores notes scoped by owner. Reads embed the summary of the
// referenced subject.
type Repository interface {
	// List returns the owner's notes, most recently updated first. An empty
	// subjectID disables the filter.
	List(ctx context.Context, userID, subjectID string) ([]*models.Note, error)
	Get(ctx context.Context, userID, id string) (*models.Note, error)
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	Update(ctx context.Context, userID, id string, patch models.NotePatch) (*models.Note, error)
	Delete(ctx context.Context, userID, id string) error
	SetFavorite(ctx context.Context, userID, id string, favorite bool) (*models.Note, error)
	DeleteBySubject(ctx context.Context, userID, subjectID string) (int64, error)
}
