package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsudoi-app/tsudoi/models"
	"github.com/tsudoi-app/tsudoi/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB backs gorm with a sqlmock connection so repository SQL can be
// exercised without a live postgres
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func bannerRows(banners ...*models.Banner) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "uuid", "title", "image_url", "priority", "placement", "is_active", "created_at"})
	for _, b := range banners {
		rows.AddRow(b.ID, b.UUID.String(), b.Title, b.ImageURL, b.Priority, b.Placement, b.IsActive, b.CreatedAt)
	}
	return rows
}

func TestBannerRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Save", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBannerRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "banners"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		banner := &models.Banner{UUID: uuid.New(), Title: "gala", ImageURL: "https://cdn.example.com/gala.png"}
		require.NoError(t, repo.Save(ctx, banner))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Update", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBannerRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "banners" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		banner := &models.Banner{ID: 7, UUID: uuid.New(), Title: "gala updated", ImageURL: "https://cdn.example.com/gala.png"}
		require.NoError(t, repo.Update(ctx, banner))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateRollsBackOnError", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBannerRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "banners" SET`).
			WillReturnError(errors.New("deadlock detected"))
		mock.ExpectRollback()

		banner := &models.Banner{ID: 7, UUID: uuid.New(), Title: "gala"}
		require.Error(t, repo.Update(ctx, banner))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SaveBatch", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBannerRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "banners"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
		mock.ExpectCommit()

		batch := []*models.Banner{
			{UUID: uuid.New(), Title: "one", ImageURL: "https://cdn.example.com/one.png"},
			{UUID: uuid.New(), Title: "two", ImageURL: "https://cdn.example.com/two.png"},
		}
		require.NoError(t, repo.SaveBatch(ctx, batch))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ByID", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBannerRepository(db)

		stored := &models.Banner{ID: 3, UUID: uuid.New(), Title: "gala", Priority: 10, Placement: models.BannerPlacementHome, IsActive: utils.ToPtr(true), CreatedAt: utils.UTCNow()}
		mock.ExpectQuery(`SELECT \* FROM "banners"`).
			WillReturnRows(bannerRows(stored))

		got, err := repo.ByID(ctx, 3)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, stored.UUID, got.UUID)
		assert.Equal(t, "gala", got.Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ByIDNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBannerRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "banners"`).
			WillReturnRows(bannerRows())

		got, err := repo.ByID(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ByUUID", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBannerRepository(db)

		stored := &models.Banner{ID: 3, UUID: uuid.New(), Title: "gala", CreatedAt: utils.UTCNow()}
		mock.ExpectQuery(`SELECT \* FROM "banners" WHERE uuid = \$1`).
			WillReturnRows(bannerRows(stored))

		got, err := repo.ByUUID(ctx, stored.UUID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, stored.UUID, got.UUID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListEligible", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBannerRepository(db)

		now := utils.UTCNow()
		pinned := &models.Banner{ID: 1, UUID: uuid.New(), Title: "pinned", Priority: 10, Placement: models.BannerPlacementHome, IsActive: utils.ToPtr(true), CreatedAt: now}
		rotation := &models.Banner{ID: 2, UUID: uuid.New(), Title: "rotation", Priority: 2, Placement: models.BannerPlacementHome, IsActive: utils.ToPtr(true), CreatedAt: now}

		mock.ExpectQuery(`SELECT \* FROM "banners" WHERE placement = \$1 AND is_active = \$2`).
			WillReturnRows(bannerRows(pinned, rotation))

		got, err := repo.ListEligible(ctx, models.BannerPlacementHome, now, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "pinned", got[0].Title)
		assert.Equal(t, "rotation", got[1].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeactivateExpired", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBannerRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "banners" SET`).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		n, err := repo.DeactivateExpired(ctx, utils.UTCNow())
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CountAndExists", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBannerRepository(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "banners"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		n, err := repo.Count(ctx, models.BannerFilter{Placement: utils.ToPtr(models.BannerPlacementHome)})
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "banners"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.Exists(ctx, models.BannerFilter{Placement: utils.ToPtr(models.BannerPlacementDeals)})
		require.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMemberRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("ListRecentCandidates", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMemberRepository(db)

		now := utils.UTCNow()
		rows := sqlmock.NewRows([]string{"id", "uuid", "display_name", "created_at"}).
			AddRow(2, uuid.New().String(), "Newest", now).
			AddRow(1, uuid.New().String(), "Older", now.Add(-time.Hour))

		mock.ExpectQuery(`SELECT \* FROM "members" WHERE is_admin = \$1 AND is_active = \$2`).
			WillReturnRows(rows)

		got, err := repo.ListRecentCandidates(ctx, 50)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Newest", got[0].DisplayName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ByUUIDNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMemberRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "members" WHERE uuid = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "uuid", "display_name"}))

		got, err := repo.ByUUID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWithTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("CommitsOnSuccess", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBannerRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "banners"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		err := WithTransaction(ctx, db, func(txCtx context.Context) error {
			return repo.Save(txCtx, &models.Banner{UUID: uuid.New(), Title: "gala", ImageURL: "https://cdn.example.com/gala.png"})
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackOnError", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := WithTransaction(ctx, db, func(txCtx context.Context) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
