package subjects

import (
	"context"
	"database/sql"
	"errors"
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
)

var subjectCols = []string{"id", "user_id", "name", "color", "icon", "description", "professor", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestList_OrderedByCreatedDesc(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	t1 := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	t0 := t1.Add(-time.Hour)
	mock.ExpectQuery(`(?s)FROM\s+subjects\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows(subjectCols).
			AddRow(subjectID, ownerID, "Physics", "#ec4899", "📚", "", "", t1, t1).
			AddRow("33333333-3333-4333-8333-333333333333", ownerID, "Math", "#000", "∑", "algebra", "Dr. X", t0, t0))

	got, err := repo.List(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	want := &models.Subject{ID: subjectID, UserID: ownerID, Name: "Physics", Color: "#ec4899", Icon: "📚", CreatedAt: t1, UpdatedAt: t1}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Fatalf("first subject mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Math", got[1].Name)
}

func TestList_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM\s+subjects`).WithArgs(ownerID).WillReturnRows(sqlmock.NewRows(subjectCols))

	got, err := repo.List(context.Background(), ownerID)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGet_ScopedByOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)FROM\s+subjects\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WithArgs(subjectID, "other-owner").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "other-owner", subjectID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGet_MalformedID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	_, err := repo.Get(context.Background(), ownerID, "abc")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+subjects\s*\(user_id,\s*name,\s*color,\s*icon,\s*description,\s*professor\)`).
		WithArgs(ownerID, "Math", "#ec4899", "📚", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(subjectID, now, now))

	got, err := repo.Create(context.Background(), &models.Subject{UserID: ownerID, Name: "Math", Color: "#ec4899", Icon: "📚"})
	require.NoError(t, err)
	assert.Equal(t, subjectID, got.ID)
}

func TestCreate_DuplicateName(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+subjects`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "subjects_user_name_uidx"})

	_, err := repo.Create(context.Background(), &models.Subject{UserID: ownerID, Name: "Math"})
	assert.ErrorIs(t, err, common.ErrDuplicate)
}

func TestUpdate_Partial(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	color := "#123456"
	mock.ExpectQuery(`(?s)^UPDATE\s+subjects\s+SET\s+name\s*=\s*COALESCE\(\$3,\s*name\)`).
		WithArgs(subjectID, ownerID, nil, color, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows(subjectCols).
			AddRow(subjectID, ownerID, "Math", color, "📚", "", "", now, now))

	got, err := repo.Update(context.Background(), ownerID, subjectID, models.SubjectPatch{Color: &color})
	require.NoError(t, err)
	assert.Equal(t, color, got.Color)
	assert.Equal(t, "Math", got.Name)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`UPDATE\s+subjects`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), ownerID, subjectID, models.SubjectPatch{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^DELETE\s+FROM\s+subjects\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`
	mock.ExpectExec(q).WithArgs(subjectID, ownerID).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), ownerID, subjectID))

	mock.ExpectExec(q).WithArgs(subjectID, ownerID).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), ownerID, subjectID), common.ErrorNotFound)

	mock.ExpectExec(q).WithArgs(subjectID, ownerID).WillReturnError(errors.New("boom"))
	err := repo.Delete(context.Background(), ownerID, subjectID)
	assert.ErrorContains(t, err, "db error")
}
