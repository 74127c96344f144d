package subjects

import (
	"context"

	"github.com/khonsu303/estudio/internal/common"
	"github.com/khonsu303/estudio/internal/dbx"
	"github.com/khonsu303/estudio/internal/server/models"
	"github.com/khonsu303/estudio/internal/server/repositories/pgerr"
)

const columns = `id, user_id, name, color, icon, description, professor, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubject(row scanner) (*models.Subject, error) {
	s := &models.Subject{}
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Color, &s.Icon, &s.Description, &s.Professor,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Subject, error) {
	query :=
		`SELECT ` + columns + ` FROM subjects
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	defer rows.Close()

	result := make([]*models.Subject, 0)
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, pgerr.Translate(err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Translate(err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Subject, error) {
	if !pgerr.ValidID(id) {
		return nil, common.ErrorNotFound
	}

	query :=
		`SELECT ` + columns + ` FROM subjects
		 WHERE id = $1 AND user_id = $2
		 `

	s, err := scanSubject(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, pgerr.Translate(err)
	}

	return s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, subject *models.Subject) (*models.Subject, error) {

	query :=
		`INSERT INTO subjects (user_id, name, color, icon, description, professor)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		subject.UserID, subject.Name, subject.Color, subject.Icon, subject.Description, subject.Professor).
		Scan(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt)

	if err != nil {
		return nil, pgerr.Translate(err)
	}

	return subject, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, patch models.SubjectPatch) (*models.Subject, error) {
	if !pgerr.ValidID(id) {
		return nil, common.ErrorNotFound
	}

	query :=
		`UPDATE subjects SET
		   name = COALESCE($3, name),
		   color = COALESCE($4, color),
		   icon = COALESCE($5, icon),
		   description = COALESCE($6, description),
		   professor = COALESCE($7, professor),
		   updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + columns

	s, err := scanSubject(r.db.QueryRowContext(ctx, query, id, userID,
		patch.Name, patch.Color, patch.Icon, patch.Description, patch.Professor))
	if err != nil {
		return nil, pgerr.Translate(err)
	}

	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	if !pgerr.ValidID(id) {
		return common.ErrorNotFound
	}

	query :=
		`DELETE FROM subjects
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return pgerr.Translate(err)
	}

	return pgerr.Affected(res)
}
