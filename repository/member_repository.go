package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tsudoi-app/tsudoi/models"
	"gorm.io/gorm"
)

// MemberRepositoryImpl implements MemberRepository interface
type MemberRepositoryImpl struct {
	*BaseRepository[models.Member, models.MemberFilter]
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &MemberRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Member, models.MemberFilter](db),
	}
}

// ByID retrieves a member by its ID
func (r *MemberRepositoryImpl) ByID(ctx context.Context, id uint) (*models.Member, error) {
	db := r.getDB(ctx)
	var row models.Member
	if err := db.Last(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ByUUID retrieves a member by its public UUID
func (r *MemberRepositoryImpl) ByUUID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	filter := models.MemberFilter{UUID: &id}
	rows, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ListRecentCandidates returns the most recent non-admin active members,
// ordered by created_at DESC, bounded to limit
func (r *MemberRepositoryImpl) ListRecentCandidates(ctx context.Context, limit int) ([]*models.Member, error) {
	db := r.getDB(ctx)

	query := db.Model(&models.Member{}).
		Where("is_admin = ?", false).
		Where("is_active = ?", true).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []*models.Member
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *MemberRepositoryImpl) applyFilter(query *gorm.DB, filter models.MemberFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.DisplayName != nil {
		query = query.Where("display_name = ?", *filter.DisplayName)
	}
	if filter.IsAdmin != nil {
		query = query.Where("is_admin = ?", *filter.IsAdmin)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves members based on filter criteria
func (r *MemberRepositoryImpl) ByFilter(ctx context.Context, filter models.MemberFilter, orderBy string, limit, offset int) ([]*models.Member, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Member{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Member
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of members matching the filter
func (r *MemberRepositoryImpl) Count(ctx context.Context, filter models.MemberFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Member{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any member matching the filter exists
func (r *MemberRepositoryImpl) Exists(ctx context.Context, filter models.MemberFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
