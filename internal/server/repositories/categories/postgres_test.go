package categories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/savvysnip/internal/common"
	"github.com/dmitrijs2005/savvysnip/internal/server/models"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+categories\s*\(id,\s*user_id,\s*name,\s*ord\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)$`).
		WithArgs(sqlmock.AnyArg(), "u1", "Go", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), &models.Category{UserID: "u1", Name: "Go", Order: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNextOrder(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `^SELECT\s+COALESCE\(MAX\(ord\)\s*\+\s*1,\s*0\)\s+FROM\s+categories\s+WHERE\s+user_id\s*=\s*\$1$`

	mock.ExpectQuery(q).WithArgs("u1").WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(0))
	mock.ExpectQuery(q).WithArgs("u2").WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(5))
	mock.ExpectQuery(q).WithArgs("u3").WillReturnError(errors.New("boom"))

	n, err := repo.NextOrder(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = repo.NextOrder(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = repo.NextOrder(context.Background(), "u3")
	assert.ErrorContains(t, err, "db error")
}

func TestList_SkipsRowsWithoutName(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "name", "ord"}).
		AddRow("c1", "Go", 0).
		AddRow("c2", nil, 1).
		AddRow("c3", "SQL", 2)
	mock.ExpectQuery(`(?s)SELECT\s+id,\s*name,\s*ord\s+FROM\s+categories\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+ord,\s*id$`).
		WithArgs("u1").
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)

	want := []*models.Category{
		{ID: "c1", UserID: "u1", Name: "Go", Order: 0},
		{ID: "c3", UserID: "u1", Name: "SQL", Order: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestList_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM\s+categories`).WillReturnRows(sqlmock.NewRows([]string{"id", "name", "ord"}))

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindByName(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `(?s)WHERE\s+user_id\s*=\s*\$1\s+AND\s+name\s*=\s*\$2\s+ORDER\s+BY\s+ord,\s*id\s+LIMIT\s+1$`

	mock.ExpectQuery(q).WithArgs("u1", "Go").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "ord"}).AddRow("c1", "Go", 0))
	mock.ExpectQuery(q).WithArgs("u1", "Rust").WillReturnError(sql.ErrNoRows)

	got, err := repo.FindByName(context.Background(), "u1", "Go")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)

	_, err = repo.FindByName(context.Background(), "u1", "Rust")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`WHERE\s+user_id\s*=\s*\$1\s+AND\s+id\s*=\s*\$2`).
		WithArgs("u1", "c9").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "u1", "c9")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdates(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^UPDATE\s+categories\s+SET\s+name\s*=\s*\$3`).
		WithArgs("u1", "c1", "New").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^UPDATE\s+categories\s+SET\s+ord\s*=\s*\$3`).
		WithArgs("u1", "c1", 4).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`^DELETE\s+FROM\s+categories\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+id\s*=\s*\$2$`).
		WithArgs("u1", "c1").WillReturnError(errors.New("fk"))
	mock.ExpectExec(`^DELETE\s+FROM\s+categories\s+WHERE\s+user_id\s*=\s*\$1$`).
		WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 3))

	ctx := context.Background()
	assert.NoError(t, repo.Rename(ctx, "u1", "c1", "New"))
	assert.ErrorIs(t, repo.SetOrder(ctx, "u1", "c1", 4), common.ErrorNotFound)
	assert.ErrorContains(t, repo.Delete(ctx, "u1", "c1"), "db error: fk")
	assert.NoError(t, repo.DeleteAllByUser(ctx, "u1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMalformedID_IsNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	badUUID := &pgconn.PgError{Code: "22P02"}

	mock.ExpectQuery(`WHERE\s+user_id\s*=\s*\$1\s+AND\s+id\s*=\s*\$2`).
		WithArgs("u1", "nope").WillReturnError(badUUID)
	mock.ExpectExec(`^UPDATE\s+categories\s+SET\s+name`).
		WithArgs("u1", "nope", "New").WillReturnError(badUUID)
	mock.ExpectExec(`^UPDATE\s+categories\s+SET\s+ord`).
		WithArgs("u1", "nope", 1).WillReturnError(badUUID)
	mock.ExpectExec(`^DELETE\s+FROM\s+categories\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+id`).
		WithArgs("u1", "nope").WillReturnError(badUUID)

	ctx := context.Background()
	_, err := repo.Get(ctx, "u1", "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, repo.Rename(ctx, "u1", "nope", "New"), common.ErrorNotFound)
	assert.ErrorIs(t, repo.SetOrder(ctx, "u1", "nope", 1), common.ErrorNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "u1", "nope"), common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
