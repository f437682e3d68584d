// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tsudoi-app/tsudoi/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// BannerRepository defines operations for promotional banners
type BannerRepository interface {
	Repository[models.Banner, models.BannerFilter]
	ByUUID(ctx context.Context, uuid uuid.UUID) (*models.Banner, error)
	// Update persists changes to an existing banner
	Update(ctx context.Context, banner *models.Banner) error
	// ListEligible returns banners for a placement that are active and whose
	// schedule window contains now, ordered by priority DESC then
	// created_at DESC (the order the feed merger expects)
	ListEligible(ctx context.Context, placement string, now time.Time, limit int) ([]*models.Banner, error)
	// DeactivateExpired clears the active flag on banners whose end date has
	// passed and returns how many rows were touched
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// MemberRepository defines operations for club member profiles
type MemberRepository interface {
	Repository[models.Member, models.MemberFilter]
	ByUUID(ctx context.Context, uuid uuid.UUID) (*models.Member, error)
	// ListRecentCandidates returns the most recent non-admin active members,
	// ordered by created_at DESC, bounded to limit
	ListRecentCandidates(ctx context.Context, limit int) ([]*models.Member, error)
}
