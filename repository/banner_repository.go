package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tsudoi-app/tsudoi/models"
	"gorm.io/gorm"
)

// BannerRepositoryImpl implements BannerRepository interface
type BannerRepositoryImpl struct {
	*BaseRepository[models.Banner, models.BannerFilter]
}

// NewBannerRepository creates a new banner repository
func NewBannerRepository(db *gorm.DB) BannerRepository {
	return &BannerRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Banner, models.BannerFilter](db),
	}
}

// ByID retrieves a banner by its ID
func (r *BannerRepositoryImpl) ByID(ctx context.Context, id uint) (*models.Banner, error) {
	db := r.getDB(ctx)
	var row models.Banner
	if err := db.Last(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ByUUID retrieves a banner by its public UUID
func (r *BannerRepositoryImpl) ByUUID(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	filter := models.BannerFilter{UUID: &id}
	rows, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Update persists changes to an existing banner
func (r *BannerRepositoryImpl) Update(ctx context.Context, banner *models.Banner) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}
	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}
	err = db.Save(banner).Error
	if err != nil {
		return err
	}
	return nil
}

// ListEligible returns active banners for a placement whose schedule window
// contains now, ordered by priority DESC then created_at DESC
func (r *BannerRepositoryImpl) ListEligible(ctx context.Context, placement string, now time.Time, limit int) ([]*models.Banner, error) {
	db := r.getDB(ctx)

	query := db.Model(&models.Banner{}).
		Where("placement = ?", placement).
		Where("is_active = ?", true).
		Where("start_at IS NULL OR start_at <= ?", now).
		Where("end_at IS NULL OR end_at >= ?", now).
		Order("priority DESC, created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []*models.Banner
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeactivateExpired clears the active flag on banners whose end date has passed
func (r *BannerRepositoryImpl) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return 0, err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	res := db.Model(&models.Banner{}).
		Where("is_active = ?", true).
		Where("end_at IS NOT NULL AND end_at < ?", now).
		Update("is_active", false)
	if res.Error != nil {
		err = res.Error
		return 0, err
	}
	return res.RowsAffected, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *BannerRepositoryImpl) applyFilter(query *gorm.DB, filter models.BannerFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.Placement != nil {
		query = query.Where("placement = ?", *filter.Placement)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.MinPriority != nil {
		query = query.Where("priority >= ?", *filter.MinPriority)
	}
	if filter.ActiveAt != nil {
		query = query.Where("start_at IS NULL OR start_at <= ?", *filter.ActiveAt)
		query = query.Where("end_at IS NULL OR end_at >= ?", *filter.ActiveAt)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves banners based on filter criteria
func (r *BannerRepositoryImpl) ByFilter(ctx context.Context, filter models.BannerFilter, orderBy string, limit, offset int) ([]*models.Banner, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Banner{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "priority DESC, created_at DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Banner
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of banners matching the filter
func (r *BannerRepositoryImpl) Count(ctx context.Context, filter models.BannerFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Banner{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any banner matching the filter exists
func (r *BannerRepositoryImpl) Exists(ctx context.Context, filter models.BannerFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
