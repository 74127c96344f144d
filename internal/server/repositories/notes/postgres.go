package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/khonsu303/estudio/internal/common"
	"github.com/khonsu303/estudio/internal/dbx"
	"github.com/khonsu303/estudio/internal/server/models"
	"github.com/khonsu303/estudio/internal/server/repositories/pgerr"
)

const selectNotes = `SELECT n.id, n.user_id, n.subject_id, n.title, n.content, n.tags, n.is_favorite,
		   n.created_at, n.updated_at, s.name, s.color, s.icon
		 FROM notes n
		 LEFT JOIN subjects s ON s.id = n.subject_id AND s.user_id = n.user_id
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

func scanNote(row scanner) (*models.Note, error) {
	var (
		n                  models.Note
		tags               []byte
		sName, sCol, sIcon sql.NullString
	)
	err := row.Scan(&n.ID, &n.UserID, &n.SubjectID, &n.Title, &n.Content, &tags, &n.Favorite,
		&n.CreatedAt, &n.UpdatedAt, &sName, &sCol, &sIcon)
	if err != nil {
		return nil, err
	}

	n.Tags = []string{}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &n.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}

	if sName.Valid {
		n.Subject = &models.SubjectSummary{ID: n.SubjectID, Name: sName.String, Color: sCol.String, Icon: sIcon.String}
	}

	return &n, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

func (r *PostgresRepository) List(ctx context.Context, userID, subjectID string) ([]*models.Note, error) {
	query := selectNotes + `WHERE n.user_id = $1`
	args := []any{userID}

	if subjectID != "" {
		if !pgerr.ValidID(subjectID) {
			return []*models.Note{}, nil
		}
		query += ` AND n.subject_id = $2`
		args = append(args, subjectID)
	}
	query += ` ORDER BY n.updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	defer rows.Close()

	result := make([]*models.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, pgerr.Translate(err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Translate(err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Note, error) {
	if !pgerr.ValidID(id) {
		return nil, common.ErrorNotFound
	}

	query := selectNotes + `WHERE n.id = $1 AND n.user_id = $2`

	n, err := scanNote(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, pgerr.Translate(err)
	}

	return n, nil
}

// Create inserts the note. The subject summary is left to the caller, which
// has already resolved the subject.
func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	tags, err := encodeTags(note.Tags)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO notes (user_id, subject_id, title, content, tags)
		 VALUES ($1, $2, $3, $4, $5::jsonb)
		 RETURNING id, is_favorite, created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		note.UserID, note.SubjectID, note.Title, note.Content, tags).
		Scan(&note.ID, &note.Favorite, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		return nil, pgerr.Translate(err)
	}

	if note.Tags == nil {
		note.Tags = []string{}
	}

	return note, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, patch models.NotePatch) (*models.Note, error) {
	if !pgerr.ValidID(id) {
		return nil, common.ErrorNotFound
	}

	var tags any
	if patch.Tags != nil {
		encoded, err := encodeTags(*patch.Tags)
		if err != nil {
			return nil, err
		}
		tags = encoded
	}

	query :=
		`UPDATE notes SET
		   title = COALESCE($3, title),
		   content = COALESCE($4, content),
		   subject_id = COALESCE($5::uuid, subject_id),
		   tags = COALESCE($6::jsonb, tags),
		   updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID, patch.Title, patch.Content, patch.SubjectID, tags)
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
		`DELETE FROM notes
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return pgerr.Translate(err)
	}

	return pgerr.Affected(res)
}

func (r *PostgresRepository) SetFavorite(ctx context.Context, userID, id string, favorite bool) (*models.Note, error) {
	if !pgerr.ValidID(id) {
		return nil, common.ErrorNotFound
	}

	query :=
		`UPDATE notes SET is_favorite = $3, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID, favorite)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	if err := pgerr.Affected(res); err != nil {
		return nil, err
	}

	return r.Get(ctx, userID, id)
}

// DeleteBySubject removes every note of the owner that references subjectID
// and reports how many were removed.
func (r *PostgresRepository) DeleteBySubject(ctx context.Context, userID, subjectID string) (int64, error) {
	query :=
		`DELETE FROM notes
		 WHERE user_id = $1 AND subject_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, userID, subjectID)
	if err != nil {
		return 0, pgerr.Translate(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
