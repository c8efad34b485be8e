package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptforge/promptforge-backend/internal/projects/domain"
)

var projectRowColumns = []string{
	"id", "name", "description", "refined_prompt", "frameworks_languages",
	"checklist_steps", "cursor_rules_content", "created_at", "updated_at",
}

func setupProjectRepo(t *testing.T) (*ProjectRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewProjectRepository(db)
	return repo, mock, db
}

func TestProjectRepository_ListAll(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM projects ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows(projectRowColumns).
			AddRow(2, "Shop", nil, "p2", "Go", "1. a", "rules", now, now).
			AddRow(1, "Blog", "simple blog", "p1", "Python", "1. b", "rules", now.Add(-time.Hour), now))
	mock.ExpectCommit()

	items, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Shop", items[0].Name)
	assert.Equal(t, "", items[0].Description)
	assert.Equal(t, "simple blog", items[1].Description)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_FindByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock, db := setupProjectRepo(t)
		defer db.Close()

		now := time.Now()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM projects WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(projectRowColumns).
				AddRow(7, "Blog", "simple blog", "p", "Go", "1.", "r", now, now))
		mock.ExpectCommit()

		p, err := repo.FindByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), p.ID)
		assert.Equal(t, `Project(id=7, name="Blog")`, p.String())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing id yields ErrNotFound", func(t *testing.T) {
		repo, mock, db := setupProjectRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM projects WHERE id = \$1`).
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows(projectRowColumns))
		mock.ExpectRollback()

		p, err := repo.FindByID(context.Background(), 404)
		assert.Nil(t, p)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepository_FindByName(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock, db := setupProjectRepo(t)
		defer db.Close()

		now := time.Now()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM projects WHERE name = \$1`).
			WithArgs("Blog").
			WillReturnRows(sqlmock.NewRows(projectRowColumns).
				AddRow(3, "Blog", nil, "p", "Go", "1.", "r", now, now))
		mock.ExpectCommit()

		p, err := repo.FindByName(context.Background(), "Blog")
		require.NoError(t, err)
		assert.Equal(t, int64(3), p.ID)
		assert.Equal(t, "", p.Description)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown name yields ErrNotFound", func(t *testing.T) {
		repo, mock, db := setupProjectRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM projects WHERE name = \$1`).
			WithArgs("Nope").
			WillReturnRows(sqlmock.NewRows(projectRowColumns))
		mock.ExpectRollback()

		p, err := repo.FindByName(context.Background(), "Nope")
		assert.Nil(t, p)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepository_CreateUnique(t *testing.T) {
	newProject := func() *domain.Project {
		return &domain.Project{
			Name:                "Blog",
			Description:         "simple blog",
			RefinedPrompt:       "Project: Blog",
			FrameworksLanguages: "Go",
			ChecklistSteps:      "1. init",
			CursorRulesContent:  "// rules",
		}
	}

	t.Run("inserts when name is free", func(t *testing.T) {
		repo, mock, db := setupProjectRepo(t)
		defer db.Close()

		now := time.Now()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM projects WHERE name = \$1`).
			WithArgs("Blog").
			WillReturnRows(sqlmock.NewRows(projectRowColumns))
		mock.ExpectQuery(`INSERT INTO projects`).
			WithArgs("Blog", "simple blog", "Project: Blog", "Go", "1. init", "// rules").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(11, now, now))
		mock.ExpectCommit()

		p := newProject()
		require.NoError(t, repo.CreateUnique(context.Background(), p))
		assert.Equal(t, int64(11), p.ID)
		assert.False(t, p.CreatedAt.IsZero())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing name rolls back without insert", func(t *testing.T) {
		repo, mock, db := setupProjectRepo(t)
		defer db.Close()

		now := time.Now()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM projects WHERE name = \$1`).
			WithArgs("Blog").
			WillReturnRows(sqlmock.NewRows(projectRowColumns).
				AddRow(3, "Blog", nil, nil, nil, nil, nil, now, now))
		mock.ExpectRollback()

		err := repo.CreateUnique(context.Background(), newProject())
		assert.True(t, errors.Is(err, domain.ErrDuplicateName))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation on insert maps to ErrDuplicateName", func(t *testing.T) {
		repo, mock, db := setupProjectRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM projects WHERE name = \$1`).
			WithArgs("Blog").
			WillReturnRows(sqlmock.NewRows(projectRowColumns))
		mock.ExpectQuery(`INSERT INTO projects`).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})
		mock.ExpectRollback()

		err := repo.CreateUnique(context.Background(), newProject())
		assert.True(t, errors.Is(err, domain.ErrDuplicateName))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store failure rolls back", func(t *testing.T) {
		repo, mock, db := setupProjectRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM projects WHERE name = \$1`).
			WithArgs("Blog").
			WillReturnRows(sqlmock.NewRows(projectRowColumns))
		mock.ExpectQuery(`INSERT INTO projects`).
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := repo.CreateUnique(context.Background(), newProject())
		require.Error(t, err)
		assert.False(t, errors.Is(err, domain.ErrDuplicateName))
		assert.Contains(t, err.Error(), "disk full")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		repo, mock, db := setupProjectRepo(t)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

		err := repo.CreateUnique(context.Background(), newProject())
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
