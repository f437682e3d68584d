// Package businessflow contains the use case composing the personalized home feed
package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/tsudoi-app/tsudoi/app/dto"
	"github.com/tsudoi-app/tsudoi/config"
	"github.com/tsudoi-app/tsudoi/feed"
	"github.com/tsudoi-app/tsudoi/models"
	"github.com/tsudoi-app/tsudoi/repository"
	"github.com/tsudoi-app/tsudoi/utils"
)

// HomeFeedFlow defines the use case building the personalized home feed
type HomeFeedFlow interface {
	BuildHomeFeed(ctx context.Context, viewerUUID uuid.UUID, placement string, metadata *ClientMetadata) (*dto.HomeFeedResponse, error)
}

type HomeFeedFlowImpl struct {
	memberRepo  repository.MemberRepository
	bannerRepo  repository.BannerRepository
	composer    *feed.Composer
	rc          *redis.Client
	cacheConfig *config.CacheConfig
	feedConfig  *config.FeedConfig
}

func NewHomeFeedFlow(
	memberRepo repository.MemberRepository,
	bannerRepo repository.BannerRepository,
	composer *feed.Composer,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
	feedConfig *config.FeedConfig,
) HomeFeedFlow {
	return &HomeFeedFlowImpl{
		memberRepo:  memberRepo,
		bannerRepo:  bannerRepo,
		composer:    composer,
		rc:          rc,
		cacheConfig: cacheConfig,
		feedConfig:  feedConfig,
	}
}

// BuildHomeFeed fetches eligible banners and recent member candidates, runs
// the carousel composer, and returns the ordered feed.
//
// Banner fetch failures fail the request. Failures while building member
// suggestions (viewer profile or candidate fetch) degrade to a banners-only
// feed instead, so promotional content still renders.
func (f *HomeFeedFlowImpl) BuildHomeFeed(ctx context.Context, viewerUUID uuid.UUID, placement string, metadata *ClientMetadata) (res *dto.HomeFeedResponse, err error) {
	defer func() {
		if err != nil {
			err = NewBusinessError("HOME_FEED_FAILED", "Failed to build home feed", err)
		}
	}()

	if placement == "" {
		placement = models.BannerPlacementHome
	}

	now := utils.UTCNow()

	banners, err := f.loadEligibleBanners(ctx, placement, now)
	if err != nil {
		return nil, err
	}

	suggestions, suggErr := f.buildSuggestions(ctx, viewerUUID, now)
	if suggErr != nil {
		// Degraded feed: banners only
		log.Printf("Home feed suggestions unavailable for viewer %s: %v", viewerUUID, suggErr)
		items := f.composer.MergeCarousel(banners, nil)
		return &dto.HomeFeedResponse{
			Message:  "Home feed retrieved without suggestions",
			Items:    ToHomeFeedItems(items),
			Degraded: true,
		}, nil
	}

	items := f.composer.MergeCarousel(banners, suggestions)

	return &dto.HomeFeedResponse{
		Message: "Home feed retrieved successfully",
		Items:   ToHomeFeedItems(items),
	}, nil
}

// buildSuggestions loads the viewer profile and the recent candidate window
// and runs the suggestion scorer
func (f *HomeFeedFlowImpl) buildSuggestions(ctx context.Context, viewerUUID uuid.UUID, now time.Time) ([]feed.ScoredSuggestion, error) {
	viewer, err := f.memberRepo.ByUUID(ctx, viewerUUID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, ErrMemberNotFound
	}
	if !utils.IsTrue(viewer.IsActive) {
		return nil, ErrMemberInactive
	}

	rows, err := f.memberRepo.ListRecentCandidates(ctx, f.feedConfig.CandidateWindow)
	if err != nil {
		return nil, err
	}

	candidates := make([]feed.Candidate, 0, len(rows))
	for _, m := range rows {
		candidates = append(candidates, feed.Candidate{
			ID:                m.UUID,
			DisplayName:       m.DisplayName,
			Organization:      m.Organization,
			Title:             m.Title,
			ImageURL:          m.ImageURL,
			Tags:              m.Tags,
			CreatedAt:         m.CreatedAt,
			IsRecentlyCreated: m.IsRecentlyCreatedAt(now, utils.RecentMemberThreshold),
		})
	}

	return f.composer.ScoreSuggestions(candidates, viewer.Tags, viewer.UUID), nil
}

// loadEligibleBanners returns the eligible banner list for a placement,
// serving from redis when possible. Cached rows are re-checked against now
// so a banner expiring inside the cache TTL never leaks into the feed.
func (f *HomeFeedFlowImpl) loadEligibleBanners(ctx context.Context, placement string, now time.Time) ([]*models.Banner, error) {
	cacheKey := bannersCacheKey(f.cacheConfig, placement)

	if f.rc != nil && f.cacheConfig != nil && f.cacheConfig.Enabled {
		if bs, err := f.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var cached []*models.Banner
			if err := json.Unmarshal(bs, &cached); err == nil {
				eligible := make([]*models.Banner, 0, len(cached))
				for _, b := range cached {
					if b.IsEligibleAt(now) {
						eligible = append(eligible, b)
					}
				}
				return eligible, nil
			}
		}
	}

	banners, err := f.bannerRepo.ListEligible(ctx, placement, now, f.feedConfig.BannerLimit)
	if err != nil {
		return nil, err
	}

	// Cache fill is best-effort
	if f.rc != nil && f.cacheConfig != nil && f.cacheConfig.Enabled {
		if bs, err := json.Marshal(banners); err == nil {
			_ = f.rc.Set(ctx, cacheKey, bs, f.feedConfig.BannerCacheTTL).Err()
		}
	}

	return banners, nil
}

func bannersCacheKey(cfg *config.CacheConfig, placement string) string {
	prefix := ""
	if cfg != nil {
		prefix = cfg.RedisPrefix
	}
	return fmt.Sprintf("%s%s:%s", prefix, utils.EligibleBannersCacheKey, placement)
}
