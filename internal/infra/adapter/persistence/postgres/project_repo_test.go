package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plannerx/internal/domain/entity"
)

func projectRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "name", "color", "description", "created_at", "updated_at",
	})
}

func TestProjectRepo_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	now := time.Now()
	rows := projectRows().
		AddRow(int64(1), int64(7), "Práca", "#3B82F6", "pracovné úlohy", now, now).
		AddRow(int64(2), int64(7), "Záhrada", "#10B981", nil, now, now)

	mock.ExpectQuery(`SELECT (.+) FROM projects`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	repo := NewProjectRepo(db)
	projects, err := repo.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	assert.Equal(t, "Práca", projects[0].Name)
	assert.Equal(t, "pracovné úlohy", projects[0].Description)
	assert.Empty(t, projects[1].Description, "NULL description comes out empty")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT (.+) FROM projects`).
		WithArgs(int64(99)).
		WillReturnRows(projectRows())

	repo := NewProjectRepo(db)
	project, err := repo.Get(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, project, "missing project returns nil, not an error")
}

func TestProjectRepo_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`UPDATE projects`).
		WithArgs(int64(99), "Práca", "#3B82F6", "").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewProjectRepo(db)
	err = repo.Update(context.Background(), &entity.Project{
		ID: 99, Name: "Práca", Color: "#3B82F6",
	})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestProjectRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`DELETE FROM projects`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewProjectRepo(db)
	require.NoError(t, repo.Delete(context.Background(), 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
