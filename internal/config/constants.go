package config

import "time"

const (
	// Sessions (auth)
	SessionTokenTTL   = 72 * time.Hour
	SessionCookieName = "skillswap_session"
	TokenIssuer       = "skillswap-backend"

	// Reviews
	MinRating = 1
	MaxRating = 5

	// Pagination
	DefaultMessagePageSize = 50
	MaxMessagePageSize     = 200

	// Booking
	MinSessionMinutes = 15
	MaxSessionMinutes = 240
)
