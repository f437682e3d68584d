package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tsudoi-app/tsudoi/utils"
)

func TestBanner(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("PlacementConstants", func(t *testing.T) {
		assert.Equal(t, "home", BannerPlacementHome)
		assert.Equal(t, "deals", BannerPlacementDeals)
		assert.Equal(t, "events", BannerPlacementEvents)
	})

	t.Run("TableName", func(t *testing.T) {
		assert.Equal(t, "banners", Banner{}.TableName())
	})

	t.Run("EligibleWithoutWindow", func(t *testing.T) {
		b := &Banner{UUID: uuid.New(), IsActive: utils.ToPtr(true)}
		assert.True(t, b.IsEligibleAt(now))
	})

	t.Run("InactiveNeverEligible", func(t *testing.T) {
		b := &Banner{UUID: uuid.New(), IsActive: utils.ToPtr(false)}
		assert.False(t, b.IsEligibleAt(now))

		b.IsActive = nil
		assert.False(t, b.IsEligibleAt(now))
	})

	t.Run("ScheduleWindow", func(t *testing.T) {
		start := now.Add(-time.Hour)
		end := now.Add(time.Hour)
		b := &Banner{UUID: uuid.New(), IsActive: utils.ToPtr(true), StartAt: &start, EndAt: &end}

		assert.True(t, b.IsEligibleAt(now))
		assert.False(t, b.IsEligibleAt(now.Add(-2*time.Hour)))
		assert.False(t, b.IsEligibleAt(now.Add(2*time.Hour)))

		// Bounds are inclusive
		assert.True(t, b.IsEligibleAt(start))
		assert.True(t, b.IsEligibleAt(end))
	})

	t.Run("OpenEndedWindow", func(t *testing.T) {
		start := now.Add(-time.Hour)
		b := &Banner{UUID: uuid.New(), IsActive: utils.ToPtr(true), StartAt: &start}
		assert.True(t, b.IsEligibleAt(now.Add(24*time.Hour)))
	})
}

func TestMember(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("TableName", func(t *testing.T) {
		assert.Equal(t, "members", Member{}.TableName())
	})

	t.Run("RecentlyCreated", func(t *testing.T) {
		m := &Member{UUID: uuid.New(), CreatedAt: now.Add(-10 * 24 * time.Hour)}
		assert.True(t, m.IsRecentlyCreatedAt(now, utils.RecentMemberThreshold))

		m.CreatedAt = now.Add(-20 * 24 * time.Hour)
		assert.False(t, m.IsRecentlyCreatedAt(now, utils.RecentMemberThreshold))
	})

	t.Run("ThresholdBoundaryIsExclusive", func(t *testing.T) {
		m := &Member{UUID: uuid.New(), CreatedAt: now.Add(-utils.RecentMemberThreshold)}
		assert.False(t, m.IsRecentlyCreatedAt(now, utils.RecentMemberThreshold))
	})
}
