package repository

import (
	"context"
	"testing"
	"time"

	"axis6/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestCategoryRepoListCategories(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepo(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM "categories" ORDER BY position`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name", "color", "icon", "position", "created_at", "updated_at"}).
			AddRow(1, "physical", "Physical", "#A6C26F", "activity", 0, now, now).
			AddRow(2, "mental", "Mental", "#365D63", "brain", 1, now, now))

	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "physical", categories[0].Slug)
	assert.Equal(t, "mental", categories[1].Slug)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepoGetCategoryById(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCategoryRepo(db)

		now := time.Now()
		mock.ExpectQuery(`SELECT .* FROM "categories" WHERE .*id.*`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name", "color", "icon", "position", "created_at", "updated_at"}).
				AddRow(3, "emotional", "Emotional", "#D36C50", "heart", 2, now, now))

		category, err := repo.GetCategoryById(context.Background(), 3)
		require.NoError(t, err)
		require.NotNil(t, category)
		assert.Equal(t, "emotional", category.Slug)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCategoryRepo(db)

		mock.ExpectQuery(`SELECT .* FROM "categories" WHERE .*id.*`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		category, err := repo.GetCategoryById(context.Background(), 99)
		require.NoError(t, err)
		assert.Nil(t, category)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCategoryRepoUpdateCategory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "categories" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateCategory(context.Background(), &model.Category{
		ID:    1,
		Name:  "Body",
		Color: "#A6C26F",
		Icon:  "activity",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckinRepoDeleteCheckin(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("reports affected rows", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCheckinRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "checkins"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		affected, err := repo.DeleteCheckin(context.Background(), 7, 1, day)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows when nothing matched", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCheckinRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "checkins"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		affected, err := repo.DeleteCheckin(context.Background(), 7, 1, day)
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
