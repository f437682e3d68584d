// Package models contains the persistent entities of the membership club
package models

import (
	"time"

	"github.com/google/uuid"
)

// Banner placements (which page section a banner belongs to)
const (
	BannerPlacementHome   = "home"
	BannerPlacementDeals  = "deals"
	BannerPlacementEvents = "events"
)

// Banner represents a promotional record shown in the feed carousel
// Table: banners
// Priority: higher means more important; at or above the pinning threshold
// the banner bypasses rotation and is shown first
// StartAt/EndAt: optional scheduling window; a missing bound is unbounded
type Banner struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UUID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uk_banners_uuid" json:"uuid"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	ImageURL  string     `gorm:"size:2048;not null" json:"image_url"`
	LinkURL   string     `gorm:"size:2048" json:"link_url"`
	Priority  int        `gorm:"not null;default:0;index:idx_banners_priority" json:"priority"`
	Placement string     `gorm:"size:50;not null;default:'home';index:idx_banners_placement" json:"placement"`
	IsActive  *bool      `gorm:"default:true;index:idx_banners_is_active" json:"is_active"`
	StartAt   *time.Time `gorm:"index:idx_banners_start_at" json:"start_at,omitempty"`
	EndAt     *time.Time `gorm:"index:idx_banners_end_at" json:"end_at,omitempty"`
	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_banners_created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Banner) TableName() string { return "banners" }

// IsEligibleAt reports whether the banner may be shown at the given time:
// active and inside its schedule window (missing bounds are unbounded)
func (b *Banner) IsEligibleAt(now time.Time) bool {
	if b.IsActive == nil || !*b.IsActive {
		return false
	}
	if b.StartAt != nil && now.Before(*b.StartAt) {
		return false
	}
	if b.EndAt != nil && now.After(*b.EndAt) {
		return false
	}
	return true
}

// BannerFilter represents filter criteria for banner queries
type BannerFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Placement     *string
	IsActive      *bool
	MinPriority   *int
	ActiveAt      *time.Time
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
