package subjects

import (
	"context"

	"github.com/khonsu303/estudio/internal/server/models"
)

// Repository stores subjects. Every method is scoped by owner; a subject of
// another owner is reported as common.ErrorNotFound.
type Repository interface {
	List(ctx context.Context, userID string) ([]*models.Subject, error)
	Get(ctx context.Context, userID, id string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) (*models.Subject, error)
	Update(ctx context.Context, userID, id string, patch models.SubjectPatch) (*models.Subject, error)
	Delete(ctx context.Context, userID, id string) error
}
