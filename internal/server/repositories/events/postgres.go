package events

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/khonsu303/estudio/internal/common"
	"github.com/khonsu303/estudio/internal/dbx"
	"github.com/khonsu303/estudio/internal/server/models"
	"github.com/khonsu303/estudio/internal/server/repositories/pgerr"
)

// The join is owner-scoped, so a dangling or foreign subject id yields a nil
// summary.
const selectEvents = `SELECT e.id, e.user_id, e.subject_id, e.title, e.date, e.type, e.description,
		   e.completed, e.created_at, e.updated_at, s.name, s.color
		 FROM events e
		 LEFT JOIN subjects s ON s.id = e.subject_id AND s.user_id = e.user_id
		 `

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*models.Event, error) {
	var (
		e            models.Event
		subjectID    sql.NullString
		sName, sColr sql.NullString
	)
	err := row.Scan(&e.ID, &e.UserID, &subjectID, &e.Title, &e.Date, &e.Type, &e.Description,
		&e.Completed, &e.CreatedAt, &e.UpdatedAt, &sName, &sColr)
	if err != nil {
		return nil, err
	}

	if subjectID.Valid {
		id := subjectID.String
		e.SubjectID = &id
		if sName.Valid {
			e.Subject = &models.SubjectSummary{ID: id, Name: sName.String, Color: sColr.String}
		}
	}

	return &e, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Event, error) {
	query := selectEvents + `WHERE e.user_id = $1 ORDER BY e.date ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	defer rows.Close()

	result := make([]*models.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, pgerr.Translate(err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Translate(err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Event, error) {
	if !pgerr.ValidID(id) {
		return nil, common.ErrorNotFound
	}

	query := selectEvents + `WHERE e.id = $1 AND e.user_id = $2`

	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, pgerr.Translate(err)
	}

	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {

	query :=
		`INSERT INTO events (user_id, subject_id, title, date, type, description)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, completed, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		event.UserID, event.SubjectID, event.Title, event.Date, event.Type, event.Description).
		Scan(&event.ID, &event.Completed, &event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		return nil, pgerr.Translate(err)
	}

	return event, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, patch models.EventPatch) (*models.Event, error) {
	if !pgerr.ValidID(id) {
		return nil, common.ErrorNotFound
	}

	query :=
		`UPDATE events SET
		   title = COALESCE($3, title),
		   date = COALESCE($4, date),
		   type = COALESCE($5, type),
		   subject_id = CASE WHEN $6 THEN NULL ELSE COALESCE($7::uuid, subject_id) END,
		   description = COALESCE($8, description),
		   completed = COALESCE($9, completed),
		   updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID,
		patch.Title, patch.Date, patch.Type, patch.ClearSubject, patch.SubjectID, patch.Description, patch.Completed)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	if err := pgerr.Affected(res); err != nil {
		return nil, err
	}

	return r.Get(ctx, userID, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	if !pgerr.ValidID(id) {
		return common.ErrorNotFound
	}

	query :=
		`DELETE FROM events
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return pgerr.Translate(err)
	}

	return pgerr.Affected(res)
}

func (r *PostgresRepository) DetachSubject(ctx context.Context, userID, subjectID string) (int64, error) {
	query :=
		`UPDATE events SET subject_id = NULL, updated_at = now()
		 WHERE user_id = $1 AND subject_id = $2
		 `
	return r.execCount(ctx, query, userID, subjectID)
}

func (r *PostgresRepository) DeleteBySubject(ctx context.Context, userID, subjectID string) (int64, error) {
	query :=
		`DELETE FROM events
		 WHERE user_id = $1 AND subject_id = $2
		 `
	return r.execCount(ctx, query, userID, subjectID)
}

func (r *PostgresRepository) execCount(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, pgerr.Translate(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
