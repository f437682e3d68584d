package dto

// HomeFeedRequest carries the query parameters of the home feed endpoint
type HomeFeedRequest struct {
	Placement string `query:"placement" json:"placement" validate:"omitempty,oneof=home deals events"`
}

// PromoDTO is the renderer-facing projection of a promotional banner
type PromoDTO struct {
	UUID      string `json:"uuid"`
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
	LinkURL   string `json:"link_url,omitempty"`
	Priority  int    `json:"priority"`
	Placement string `json:"placement"`
}

// MemberSuggestionDTO is the renderer-facing projection of a member
// suggestion card. Reason is NEW or MATCH.
type MemberSuggestionDTO struct {
	UUID         string   `json:"uuid"`
	DisplayName  string   `json:"display_name"`
	Organization string   `json:"organization,omitempty"`
	Title        string   `json:"title,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
	Tags         []string `json:"tags"`
	MatchingTags []string `json:"matching_tags"`
	Reason       string   `json:"reason"`
}

// HomeFeedItem is one ordered entry of the home feed. Type discriminates
// which payload is set: "promo" or "member_suggestion".
type HomeFeedItem struct {
	Type       string               `json:"type"`
	Promo      *PromoDTO            `json:"promo,omitempty"`
	Suggestion *MemberSuggestionDTO `json:"suggestion,omitempty"`
}

// HomeFeedResponse is the composed feed returned to the client. Degraded is
// set when member suggestions could not be built and the feed fell back to
// banners only.
type HomeFeedResponse struct {
	Message  string         `json:"message"`
	Items    []HomeFeedItem `json:"items"`
	Degraded bool           `json:"degraded,omitempty"`
}
