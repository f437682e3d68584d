package businessflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsudoi-app/tsudoi/config"
	"github.com/tsudoi-app/tsudoi/feed"
	"github.com/tsudoi-app/tsudoi/models"
	"github.com/tsudoi-app/tsudoi/utils"
)

// orderedRand keeps the shuffle a no-op so assertions on suggestion order
// stay deterministic
type orderedRand struct{}

func (orderedRand) Intn(n int) int { return n - 1 }

type stubMemberRepo struct {
	members    map[uuid.UUID]*models.Member
	candidates []*models.Member

	byUUIDErr     error
	candidatesErr error

	lastCandidateLimit int
}

func (s *stubMemberRepo) ByID(ctx context.Context, id uint) (*models.Member, error) { return nil, nil }
func (s *stubMemberRepo) ByFilter(ctx context.Context, filter models.MemberFilter, orderBy string, limit, offset int) ([]*models.Member, error) {
	return nil, nil
}
func (s *stubMemberRepo) Save(ctx context.Context, entity *models.Member) error        { return nil }
func (s *stubMemberRepo) SaveBatch(ctx context.Context, entities []*models.Member) error { return nil }
func (s *stubMemberRepo) Count(ctx context.Context, filter models.MemberFilter) (int64, error) {
	return 0, nil
}
func (s *stubMemberRepo) Exists(ctx context.Context, filter models.MemberFilter) (bool, error) {
	return false, nil
}

func (s *stubMemberRepo) ByUUID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	if s.byUUIDErr != nil {
		return nil, s.byUUIDErr
	}
	return s.members[id], nil
}

func (s *stubMemberRepo) ListRecentCandidates(ctx context.Context, limit int) ([]*models.Member, error) {
	s.lastCandidateLimit = limit
	if s.candidatesErr != nil {
		return nil, s.candidatesErr
	}
	return s.candidates, nil
}

type stubBannerRepo struct {
	banners     []*models.Banner
	eligibleErr error

	lastPlacement string
}

func (s *stubBannerRepo) ByID(ctx context.Context, id uint) (*models.Banner, error) { return nil, nil }
func (s *stubBannerRepo) ByFilter(ctx context.Context, filter models.BannerFilter, orderBy string, limit, offset int) ([]*models.Banner, error) {
	return nil, nil
}
func (s *stubBannerRepo) Save(ctx context.Context, entity *models.Banner) error        { return nil }
func (s *stubBannerRepo) SaveBatch(ctx context.Context, entities []*models.Banner) error { return nil }
func (s *stubBannerRepo) Count(ctx context.Context, filter models.BannerFilter) (int64, error) {
	return 0, nil
}
func (s *stubBannerRepo) Exists(ctx context.Context, filter models.BannerFilter) (bool, error) {
	return false, nil
}
func (s *stubBannerRepo) ByUUID(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	return nil, nil
}
func (s *stubBannerRepo) Update(ctx context.Context, banner *models.Banner) error { return nil }

func (s *stubBannerRepo) ListEligible(ctx context.Context, placement string, now time.Time, limit int) ([]*models.Banner, error) {
	s.lastPlacement = placement
	if s.eligibleErr != nil {
		return nil, s.eligibleErr
	}
	return s.banners, nil
}

func (s *stubBannerRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func newTestMember(name string, age time.Duration, tags ...string) *models.Member {
	return &models.Member{
		UUID:        uuid.New(),
		DisplayName: name,
		Tags:        tags,
		IsAdmin:     utils.ToPtr(false),
		IsActive:    utils.ToPtr(true),
		CreatedAt:   utils.UTCNow().Add(-age),
	}
}

func newTestBanner(title string, priority int) *models.Banner {
	return &models.Banner{
		UUID:     uuid.New(),
		Title:    title,
		ImageURL: "https://cdn.example.com/" + title + ".png",
		Priority: priority,
		IsActive: utils.ToPtr(true),
	}
}

func newTestFlow(memberRepo *stubMemberRepo, bannerRepo *stubBannerRepo) HomeFeedFlow {
	return NewHomeFeedFlow(
		memberRepo,
		bannerRepo,
		feed.NewComposer(orderedRand{}),
		nil, // cache disabled in unit tests
		&config.CacheConfig{Enabled: false},
		&config.FeedConfig{CandidateWindow: 50, BannerCacheTTL: time.Minute},
	)
}

func TestBuildHomeFeed(t *testing.T) {
	ctx := context.Background()

	t.Run("FullFeed", func(t *testing.T) {
		viewer := newTestMember("Viewer", 60*24*time.Hour, "wine")
		recent := newTestMember("Recent", 24*time.Hour)
		matched := newTestMember("Matched", 60*24*time.Hour, "wine")

		memberRepo := &stubMemberRepo{
			members:    map[uuid.UUID]*models.Member{viewer.UUID: viewer},
			candidates: []*models.Member{recent, matched},
		}
		bannerRepo := &stubBannerRepo{
			banners: []*models.Banner{
				newTestBanner("pinned", utils.BannerPinPriority),
				newTestBanner("rotation", 2),
			},
		}

		res, err := newTestFlow(memberRepo, bannerRepo).BuildHomeFeed(ctx, viewer.UUID, "", nil)

		require.NoError(t, err)
		require.NotNil(t, res)
		assert.False(t, res.Degraded)
		assert.Equal(t, models.BannerPlacementHome, bannerRepo.lastPlacement)
		assert.Equal(t, 50, memberRepo.lastCandidateLimit)

		require.Len(t, res.Items, 4)
		assert.Equal(t, "pinned", res.Items[0].Promo.Title)
		assert.Equal(t, "rotation", res.Items[1].Promo.Title)
		assert.Equal(t, "Recent", res.Items[2].Suggestion.DisplayName)
		assert.Equal(t, string(feed.ReasonNew), res.Items[2].Suggestion.Reason)
		assert.Equal(t, "Matched", res.Items[3].Suggestion.DisplayName)
		assert.Equal(t, string(feed.ReasonMatch), res.Items[3].Suggestion.Reason)
		assert.Equal(t, []string{"wine"}, res.Items[3].Suggestion.MatchingTags)
	})

	t.Run("ViewerExcludedFromSuggestions", func(t *testing.T) {
		viewer := newTestMember("Viewer", 24*time.Hour, "wine")

		memberRepo := &stubMemberRepo{
			members:    map[uuid.UUID]*models.Member{viewer.UUID: viewer},
			candidates: []*models.Member{viewer},
		}
		bannerRepo := &stubBannerRepo{}

		res, err := newTestFlow(memberRepo, bannerRepo).BuildHomeFeed(ctx, viewer.UUID, "", nil)

		require.NoError(t, err)
		assert.Empty(t, res.Items)
	})

	t.Run("ExplicitPlacementPassedThrough", func(t *testing.T) {
		viewer := newTestMember("Viewer", 24*time.Hour)
		memberRepo := &stubMemberRepo{
			members: map[uuid.UUID]*models.Member{viewer.UUID: viewer},
		}
		bannerRepo := &stubBannerRepo{}

		_, err := newTestFlow(memberRepo, bannerRepo).BuildHomeFeed(ctx, viewer.UUID, models.BannerPlacementDeals, nil)

		require.NoError(t, err)
		assert.Equal(t, models.BannerPlacementDeals, bannerRepo.lastPlacement)
	})

	t.Run("UnknownViewerDegradesToBannersOnly", func(t *testing.T) {
		memberRepo := &stubMemberRepo{members: map[uuid.UUID]*models.Member{}}
		bannerRepo := &stubBannerRepo{
			banners: []*models.Banner{newTestBanner("pinned", utils.BannerPinPriority)},
		}

		res, err := newTestFlow(memberRepo, bannerRepo).BuildHomeFeed(ctx, uuid.New(), "", nil)

		require.NoError(t, err)
		assert.True(t, res.Degraded)
		require.Len(t, res.Items, 1)
		assert.Equal(t, "pinned", res.Items[0].Promo.Title)
	})

	t.Run("InactiveViewerDegradesToBannersOnly", func(t *testing.T) {
		viewer := newTestMember("Viewer", 24*time.Hour)
		viewer.IsActive = utils.ToPtr(false)

		memberRepo := &stubMemberRepo{
			members: map[uuid.UUID]*models.Member{viewer.UUID: viewer},
		}
		bannerRepo := &stubBannerRepo{
			banners: []*models.Banner{newTestBanner("rotation", 1)},
		}

		res, err := newTestFlow(memberRepo, bannerRepo).BuildHomeFeed(ctx, viewer.UUID, "", nil)

		require.NoError(t, err)
		assert.True(t, res.Degraded)
		assert.Len(t, res.Items, 1)
	})

	t.Run("CandidateFetchFailureDegradesToBannersOnly", func(t *testing.T) {
		viewer := newTestMember("Viewer", 24*time.Hour)

		memberRepo := &stubMemberRepo{
			members:       map[uuid.UUID]*models.Member{viewer.UUID: viewer},
			candidatesErr: errors.New("connection reset"),
		}
		bannerRepo := &stubBannerRepo{
			banners: []*models.Banner{newTestBanner("rotation", 1)},
		}

		res, err := newTestFlow(memberRepo, bannerRepo).BuildHomeFeed(ctx, viewer.UUID, "", nil)

		require.NoError(t, err)
		assert.True(t, res.Degraded)
		assert.Len(t, res.Items, 1)
	})

	t.Run("BannerFetchFailureFailsRequest", func(t *testing.T) {
		viewer := newTestMember("Viewer", 24*time.Hour)
		repoErr := errors.New("banners table unavailable")

		memberRepo := &stubMemberRepo{
			members: map[uuid.UUID]*models.Member{viewer.UUID: viewer},
		}
		bannerRepo := &stubBannerRepo{eligibleErr: repoErr}

		res, err := newTestFlow(memberRepo, bannerRepo).BuildHomeFeed(ctx, viewer.UUID, "", nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, repoErr)
		assert.Nil(t, res)

		// The flow wraps failures with its business error code
		var bizErr *BusinessError
		require.ErrorAs(t, err, &bizErr)
		assert.Equal(t, "HOME_FEED_FAILED", bizErr.Code)
	})

	t.Run("EmptyInputsYieldEmptyFeed", func(t *testing.T) {
		viewer := newTestMember("Viewer", 60*24*time.Hour)
		memberRepo := &stubMemberRepo{
			members: map[uuid.UUID]*models.Member{viewer.UUID: viewer},
		}
		bannerRepo := &stubBannerRepo{}

		res, err := newTestFlow(memberRepo, bannerRepo).BuildHomeFeed(ctx, viewer.UUID, "", nil)

		require.NoError(t, err)
		assert.False(t, res.Degraded)
		assert.Empty(t, res.Items)
	})
}
