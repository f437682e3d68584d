package utils

import (
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Home feed constants
const (
	// BannerPinPriority is the priority at or above which a banner is pinned
	// to the top of the feed instead of entering the rotation
	BannerPinPriority = 10

	// SuggestionRankingPool is how many top-ranked candidates enter the
	// shuffle before the final cut
	SuggestionRankingPool = 8

	// SuggestionLimit is the maximum number of member suggestions per feed
	SuggestionLimit = 5

	// RecentMemberThreshold is the account age below which a member counts
	// as recently created
	RecentMemberThreshold = 15 * 24 * time.Hour

	// EligibleBannersCacheKey is the redis key fragment for the per-placement
	// eligible banner list
	EligibleBannersCacheKey = "feed:banners"
)

// ContextKey is the type for request-scoped context values
type ContextKey string

// Request context keys set by handlers and read by flows
const (
	RequestIDKey  ContextKey = "request_id"
	UserAgentKey  ContextKey = "user_agent"
	IPAddressKey  ContextKey = "ip_address"
	EndpointKey   ContextKey = "endpoint"
	TimeoutKey    ContextKey = "timeout"
	CancelFuncKey ContextKey = "cancel_func"
)
