package users

import (
	"context"

	"github.com/khonsu303/estudio/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByEmail is the only read that returns the password hash.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, name, email *string) (*models.User, error)
	SetAvatar(ctx context.Context, id, avatar string) error
}
