// Package scheduler
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/tsudoi-app/tsudoi/repository"
	"github.com/tsudoi-app/tsudoi/utils"
)

// BannerSweeper periodically deactivates banners whose end date has passed so
// the eligibility query and cache never serve stale promotions
type BannerSweeper struct {
	bannerRepo repository.BannerRepository
	logger     *log.Logger
	interval   time.Duration
}

func NewBannerSweeper(bannerRepo repository.BannerRepository, logger *log.Logger, interval time.Duration) *BannerSweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if logger == nil {
		logger = log.Default()
	}

	return &BannerSweeper{
		bannerRepo: bannerRepo,
		logger:     logger,
		interval:   interval,
	}
}

// Start launches the sweep loop and returns a cancel function for shutdown
func (s *BannerSweeper) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	return cancel
}

func (s *BannerSweeper) runOnce(ctx context.Context) {
	now := utils.UTCNow()
	affected, err := s.bannerRepo.DeactivateExpired(ctx, now)
	if err != nil {
		s.logger.Printf("sweeper: deactivate expired banners failed: %v", err)
		return
	}
	if affected > 0 {
		s.logger.Printf("sweeper: deactivated %d expired banners", affected)
	}
}
