package feed

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/tsudoi-app/tsudoi/models"
	"github.com/tsudoi-app/tsudoi/utils"
)

// Composer builds the ordered home-feed carousel from pre-fetched inputs.
// It is stateless apart from the random source and safe for concurrent use
// as long as each call receives its own input slices (the shuffle step
// mutates the ranked slice in place).
type Composer struct {
	rng Rand
}

// NewComposer creates a composer using the provided random source.
// Passing nil is a programming error and panics immediately rather than
// failing at the first compose call.
func NewComposer(rng Rand) *Composer {
	if rng == nil {
		panic("feed: nil random source")
	}
	return &Composer{rng: rng}
}

// ScoreSuggestions ranks candidates against the viewer's tags and returns
// at most utils.SuggestionLimit suggestions for discovery placement.
//
// The viewer is always excluded from the output. Every other candidate gets
// a reason and a score, so the feed still shows passive discovery
// suggestions when nothing matches. Scoring: base 1, +10 when recently
// created, +(5 + matches) when at least one tag matches; both bonuses
// stack. The ranked list is cut to the top utils.SuggestionRankingPool,
// shuffled for variety among near-ties, then truncated to the final limit.
// The sort -> pool -> shuffle -> truncate order is observable behavior:
// collapsing it to a plain top-5 sort would always pin the same members.
func (c *Composer) ScoreSuggestions(candidates []Candidate, viewerTags []string, viewerID uuid.UUID) []ScoredSuggestion {
	viewerSet := make(map[string]struct{}, len(viewerTags))
	for _, t := range viewerTags {
		viewerSet[strings.ToLower(t)] = struct{}{}
	}

	scored := make([]ScoredSuggestion, 0, len(candidates))
	for _, cand := range candidates {
		if cand.ID == viewerID {
			continue
		}

		var matching []string
		for _, t := range cand.Tags {
			if _, ok := viewerSet[strings.ToLower(t)]; ok {
				matching = append(matching, t)
			}
		}

		reason := ReasonMatch
		if cand.IsRecentlyCreated {
			reason = ReasonNew
		}

		score := 1
		if cand.IsRecentlyCreated {
			score += 10
		}
		if len(matching) > 0 {
			score += 5 + len(matching)
		}

		scored = append(scored, ScoredSuggestion{
			Candidate:    cand,
			Reason:       reason,
			MatchingTags: matching,
			Score:        score,
		})
	}

	// Stable sort keeps insertion order among ties deterministic
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > utils.SuggestionRankingPool {
		scored = scored[:utils.SuggestionRankingPool]
	}

	Shuffle(c.rng, scored)

	if len(scored) > utils.SuggestionLimit {
		scored = scored[:utils.SuggestionLimit]
	}
	return scored
}

// MergeCarousel combines eligible banners and scored suggestions into the
// final ordered feed.
//
// Banners at or above utils.BannerPinPriority are pinned first, in the
// order supplied (callers sort by priority then recency upstream; the
// merger never re-sorts). The remaining banners are interleaved with the
// suggestions banner-first index by index, so promotional content is broken
// up by personalized cards instead of stacking. Both inputs empty yields an
// empty feed, never an error.
func (c *Composer) MergeCarousel(banners []*models.Banner, suggestions []ScoredSuggestion) []Item {
	var pinned, rotation []*models.Banner
	for _, b := range banners {
		if b.Priority >= utils.BannerPinPriority {
			pinned = append(pinned, b)
		} else {
			rotation = append(rotation, b)
		}
	}

	items := make([]Item, 0, len(banners)+len(suggestions))
	for _, b := range pinned {
		items = append(items, PromoItem(b))
	}

	n := len(rotation)
	if len(suggestions) > n {
		n = len(suggestions)
	}
	for i := 0; i < n; i++ {
		if i < len(rotation) {
			items = append(items, PromoItem(rotation[i]))
		}
		if i < len(suggestions) {
			items = append(items, SuggestionItem(suggestions[i]))
		}
	}
	return items
}
