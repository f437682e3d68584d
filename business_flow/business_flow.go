// Package businessflow contains the business logic for the application.
package businessflow

import (
	"github.com/tsudoi-app/tsudoi/app/dto"
	"github.com/tsudoi-app/tsudoi/feed"
	"github.com/tsudoi-app/tsudoi/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all client-related information for audit logging and request tracking
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	RequestID  string            `json:"request_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Additional: make(map[string]string),
	}
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToPromoDTO converts a banner model to the feed promo projection
func ToPromoDTO(b *models.Banner) dto.PromoDTO {
	return dto.PromoDTO{
		UUID:      b.UUID.String(),
		Title:     b.Title,
		ImageURL:  b.ImageURL,
		LinkURL:   b.LinkURL,
		Priority:  b.Priority,
		Placement: b.Placement,
	}
}

// ToMemberSuggestionDTO converts a composed suggestion to its API projection
func ToMemberSuggestionDTO(s *feed.Suggestion) dto.MemberSuggestionDTO {
	return dto.MemberSuggestionDTO{
		UUID:         s.ID.String(),
		DisplayName:  s.DisplayName,
		Organization: s.Organization,
		Title:        s.Title,
		ImageURL:     s.ImageURL,
		Tags:         s.Tags,
		MatchingTags: s.MatchingTags,
		Reason:       string(s.Reason),
	}
}

// ToHomeFeedItems converts composed carousel items to their API projection,
// preserving order
func ToHomeFeedItems(items []feed.Item) []dto.HomeFeedItem {
	out := make([]dto.HomeFeedItem, 0, len(items))
	for _, it := range items {
		switch it.Kind {
		case feed.ItemKindPromo:
			promo := ToPromoDTO(it.Promo)
			out = append(out, dto.HomeFeedItem{
				Type:  string(feed.ItemKindPromo),
				Promo: &promo,
			})
		case feed.ItemKindMemberSuggestion:
			sugg := ToMemberSuggestionDTO(it.Suggestion)
			out = append(out, dto.HomeFeedItem{
				Type:       string(feed.ItemKindMemberSuggestion),
				Suggestion: &sugg,
			})
		}
	}
	return out
}
