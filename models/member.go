package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Member represents a club member profile
// Table: members
// Tags are free-text interest labels stored as a PostgreSQL TEXT[] column
// Admin accounts never appear as feed suggestion candidates
type Member struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UUID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uk_members_uuid" json:"uuid"`
	DisplayName  string         `gorm:"size:255;not null" json:"display_name"`
	Organization string         `gorm:"size:255" json:"organization"`
	Title        string         `gorm:"size:255" json:"title"`
	ImageURL     string         `gorm:"size:2048" json:"image_url"`
	Tags         pq.StringArray `gorm:"type:text[];index:idx_members_tags_gin,using:gin" json:"tags"`
	IsAdmin      *bool          `gorm:"default:false;index:idx_members_is_admin" json:"is_admin"`
	IsActive     *bool          `gorm:"default:true;index:idx_members_is_active" json:"is_active"`
	CreatedAt    time.Time      `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_members_created_at" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Member) TableName() string { return "members" }

// IsRecentlyCreatedAt reports whether the account is younger than the given
// threshold at the given time
func (m *Member) IsRecentlyCreatedAt(now time.Time, threshold time.Duration) bool {
	return now.Sub(m.CreatedAt) < threshold
}

// MemberFilter represents filter criteria for member queries
type MemberFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	DisplayName   *string
	IsAdmin       *bool
	IsActive      *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
