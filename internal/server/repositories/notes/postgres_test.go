package notes

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/khonsu303/estudio/internal/common"
	"github.com/khonsu303/estudio/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerID   = "11111111-1111-4111-8111-111111111111"
	subjectID = "22222222-2222-4222-8222-222222222222"
	noteID    = "44444444-4444-4444-8444-444444444444"
)

var noteCols = []string{"id", "user_id", "subject_id", "title", "content", "tags", "is_favorite",
	"created_at", "updated_at", "name", "color", "icon"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func noteRow(now time.Time, fav bool) *sqlmock.Rows {
	return sqlmock.NewRows(noteCols).
		AddRow(noteID, ownerID, subjectID, "Limits", "epsilon-delta", []byte(`["calc","exam"]`), fav,
			now, now, "Math", "#ec4899", "📚")
}

func TestList_AllWithSubjectSummary(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)FROM\s+notes\s+n\s+LEFT\s+JOIN\s+subjects\s+s.*WHERE\s+n\.user_id\s*=\s*\$1\s+ORDER\s+BY\s+n\.updated_at\s+DESC`).
		WithArgs(ownerID).
		WillReturnRows(noteRow(now, false))

	got, err := repo.List(context.Background(), ownerID, "")
	require.NoError(t, err)
	require.Len(t, got, 1)

	want := &models.Note{
		ID: noteID, UserID: ownerID, SubjectID: subjectID,
		Subject: &models.SubjectSummary{ID: subjectID, Name: "Math", Color: "#ec4899", Icon: "📚"},
		Title:   "Limits", Content: "epsilon-delta", Tags: []string{"calc", "exam"},
		CreatedAt: now, UpdatedAt: now,
	}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Fatalf("note mismatch (-want +got):\n%s", diff)
	}
}

func TestList_SubjectFilter(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)WHERE\s+n\.user_id\s*=\s*\$1\s+AND\s+n\.subject_id\s*=\s*\$2\s+ORDER\s+BY`).
		WithArgs(ownerID, subjectID).
		WillReturnRows(sqlmock.NewRows(noteCols))

	got, err := repo.List(context.Background(), ownerID, subjectID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestList_MalformedSubjectFilterIsEmpty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	got, err := repo.List(context.Background(), ownerID, "nope")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_NullTagsDecodeAsEmpty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	mock.ExpectQuery(`FROM\s+notes`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(noteID, ownerID, subjectID, "t", "c", nil, false, now, now, nil, nil, nil))

	got, err := repo.List(context.Background(), ownerID, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{}, got[0].Tags)
	assert.Nil(t, got[0].Subject)
}

func TestGet_OtherOwnerNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)WHERE\s+n\.id\s*=\s*\$1\s+AND\s+n\.user_id\s*=\s*\$2`).
		WithArgs(noteID, "someone-else").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "someone-else", noteID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate_EncodesTags(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+notes\s*\(user_id,\s*subject_id,\s*title,\s*content,\s*tags\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5::jsonb\)`).
		WithArgs(ownerID, subjectID, "Limits", "body", `["a","b"]`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_favorite", "created_at", "updated_at"}).AddRow(noteID, false, now, now))

	got, err := repo.Create(context.Background(), &models.Note{
		UserID: ownerID, SubjectID: subjectID, Title: "Limits", Content: "body", Tags: []string{"a", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, noteID, got.ID)
}

func TestCreate_NilTags(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT\s+INTO\s+notes`).
		WithArgs(ownerID, subjectID, "t", "c", `[]`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_favorite", "created_at", "updated_at"}).AddRow(noteID, false, now, now))

	got, err := repo.Create(context.Background(), &models.Note{UserID: ownerID, SubjectID: subjectID, Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Tags)
}

func TestCreate_ForeignKeyViolation(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+notes`).WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := repo.Create(context.Background(), &models.Note{UserID: ownerID, SubjectID: subjectID})
	assert.ErrorIs(t, err, common.ErrInvalidReference)
}

func TestUpdate_ThenReload(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	title := "Derivatives"
	tags := []string{"calc"}
	mock.ExpectExec(`(?s)^UPDATE\s+notes\s+SET\s+title\s*=\s*COALESCE\(\$3,\s*title\)`).
		WithArgs(noteID, ownerID, title, nil, nil, `["calc"]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`WHERE\s+n\.id\s*=\s*\$1`).
		WithArgs(noteID, ownerID).
		WillReturnRows(noteRow(time.Now(), false))

	got, err := repo.Update(context.Background(), ownerID, noteID, models.NotePatch{Title: &title, Tags: &tags})
	require.NoError(t, err)
	assert.Equal(t, noteID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE\s+notes`).WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), ownerID, noteID, models.NotePatch{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSetFavorite(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^UPDATE\s+notes\s+SET\s+is_favorite\s*=\s*\$3`).
		WithArgs(noteID, ownerID, true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM\s+notes`).
		WithArgs(noteID, ownerID).
		WillReturnRows(noteRow(time.Now(), true))

	got, err := repo.SetFavorite(context.Background(), ownerID, noteID, true)
	require.NoError(t, err)
	assert.True(t, got.Favorite)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+notes\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WithArgs(noteID, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), ownerID, noteID), common.ErrorNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), ownerID, "bad"), common.ErrorNotFound)
}

func TestDeleteBySubject(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+notes\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+subject_id\s*=\s*\$2`).
		WithArgs(ownerID, subjectID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteBySubject(context.Background(), ownerID, subjectID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
