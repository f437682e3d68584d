// Package feed composes the home-feed carousel: it scores member
// suggestions against the viewer's profile tags and interleaves them with
// promotional banners into a single ordered list.
//
// Everything in this package is pure, synchronous, in-memory computation.
// Inputs are assumed to be pre-filtered and pre-sorted by the caller
// (active banners inside their schedule window, ordered by priority then
// recency). The only external dependency is a random source, injected so
// tests can seed it.
package feed

import (
	"time"

	"github.com/google/uuid"
	"github.com/tsudoi-app/tsudoi/models"
)

// Reason classifies why a member shows up as a suggestion
type Reason string

const (
	// ReasonNew marks a recently created member account
	ReasonNew Reason = "NEW"

	// ReasonMatch marks a member surfaced by tag affinity (or as a passive
	// discovery suggestion when no tags intersect)
	ReasonMatch Reason = "MATCH"
)

// Candidate is a read-only snapshot of a member profile considered for the
// suggestion slots. IsRecentlyCreated is precomputed by the caller from the
// account age threshold; the composer never looks at the clock itself.
type Candidate struct {
	ID                uuid.UUID
	DisplayName       string
	Organization      string
	Title             string
	ImageURL          string
	Tags              []string
	CreatedAt         time.Time
	IsRecentlyCreated bool
}

// ScoredSuggestion is a Candidate augmented with its ranking outcome.
// Instances only live for the duration of one compose call.
type ScoredSuggestion struct {
	Candidate

	Reason Reason

	// MatchingTags holds the candidate's tags that intersect the viewer's,
	// in the candidate's original casing
	MatchingTags []string

	Score int
}

// ItemKind discriminates the carousel item union
type ItemKind string

const (
	ItemKindPromo            ItemKind = "promo"
	ItemKindMemberSuggestion ItemKind = "member_suggestion"
)

// Item is one entry of the composed carousel. Exactly one of Promo and
// Suggestion is set, according to Kind.
type Item struct {
	Kind       ItemKind
	Promo      *models.Banner
	Suggestion *Suggestion
}

// Suggestion is the reduced member projection exposed to the renderer
type Suggestion struct {
	ID           uuid.UUID
	DisplayName  string
	Organization string
	Title        string
	ImageURL     string
	Tags         []string
	MatchingTags []string
	Reason       Reason
}

// PromoItem wraps a banner as a carousel entry
func PromoItem(b *models.Banner) Item {
	return Item{Kind: ItemKindPromo, Promo: b}
}

// SuggestionItem projects a scored suggestion into a carousel entry
func SuggestionItem(s ScoredSuggestion) Item {
	return Item{
		Kind: ItemKindMemberSuggestion,
		Suggestion: &Suggestion{
			ID:           s.ID,
			DisplayName:  s.DisplayName,
			Organization: s.Organization,
			Title:        s.Title,
			ImageURL:     s.ImageURL,
			Tags:         s.Tags,
			MatchingTags: s.MatchingTags,
			Reason:       s.Reason,
		},
	}
}
