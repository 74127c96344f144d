package users

import (
	"context"

	"github.com/khonsu303/estudio/internal/common"
	"github.com/khonsu303/estudio/internal/dbx"
	"github.com/khonsu303/estudio/internal/server/models"
	"github.com/khonsu303/estudio/internal/server/repositories/pgerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (name, email, password_hash, avatar)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Avatar).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, pgerr.Translate(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, avatar, created_at, updated_at FROM users
		 WHERE email = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Name, &user.Email,
		&user.PasswordHash, &user.Avatar, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, pgerr.Translate(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if !pgerr.ValidID(id) {
		return nil, common.ErrorNotFound
	}

	query :=
		`SELECT id, name, email, avatar, created_at, updated_at FROM users
		 WHERE id = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Name, &user.Email,
		&user.Avatar, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, pgerr.Translate(err)
	}

	return user, nil
}

// Update changes the non-nil fields and returns the stored user without its
// password hash.
func (r *PostgresRepository) Update(ctx context.Context, id string, name, email *string) (*models.User, error) {
	if !pgerr.ValidID(id) {
		return nil, common.ErrorNotFound
	}

	query :=
		`UPDATE users SET name = COALESCE($2, name), email = COALESCE($3, email), updated_at = now()
		 WHERE id = $1
		 RETURNING id, name, email, avatar, created_at, updated_at
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id, name, email).Scan(&user.ID, &user.Name, &user.Email,
		&user.Avatar, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, pgerr.Translate(err)
	}

	return user, nil
}

func (r *PostgresRepository) SetAvatar(ctx context.Context, id, avatar string) error {
	if !pgerr.ValidID(id) {
		return common.ErrorNotFound
	}

	query :=
		`UPDATE users SET avatar = $2, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, avatar)
	if err != nil {
		return pgerr.Translate(err)
	}

	return pgerr.Affected(res)
}
