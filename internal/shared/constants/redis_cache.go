package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the CineBook application
// Pattern: cinebook:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // 24 hours - for theatre catalog
	TTL_STATIC_SHORT  = 6 * time.Hour  // 6 hours - for user profiles
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // 2 hours - for movie details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // 1 hour - for movie listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // 15 minutes - for showtime windows
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // 10 minutes - for user bookings
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // 5 minutes - for booking detail
)

// Highly Dynamic (Micro TTL: real-time sensitive)
const (
	TTL_REALTIME_SHORT = 30 * time.Second // 30 seconds - for live seat maps
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "cinebook"
)

// ================== MOVIES MODULE ==================

const (
	CACHE_KEY_MOVIES_LIST   = CACHE_PREFIX + ":movies:list"
	CACHE_KEY_MOVIE_DETAIL  = CACHE_PREFIX + ":movies:detail:uuid:" // + movie-id
)

const (
	TTL_MOVIES_LIST  = TTL_SEMI_STATIC_SHORT  // 1 hour
	TTL_MOVIE_DETAIL = TTL_SEMI_STATIC_MEDIUM // 2 hours
)

// ================== THEATRES MODULE ==================

const (
	CACHE_KEY_THEATRES_LIST  = CACHE_PREFIX + ":theatres:list"
	CACHE_KEY_THEATRE_DETAIL = CACHE_PREFIX + ":theatres:detail:uuid:" // + theatre-id
)

const (
	TTL_THEATRES_LIST  = TTL_STATIC_LONG // 24 hours
	TTL_THEATRE_DETAIL = TTL_STATIC_LONG // 24 hours
)

// ================== SHOWTIMES MODULE ==================

const (
	CACHE_KEY_SHOWTIMES_BY_MOVIE = CACHE_PREFIX + ":showtimes:movie:uuid:" // + movie-id
	CACHE_KEY_SHOWTIME_DETAIL    = CACHE_PREFIX + ":showtimes:detail:"     // + showtime-id
)

const (
	TTL_SHOWTIMES_BY_MOVIE = TTL_SEMI_STATIC_QUICK // 15 minutes
	TTL_SHOWTIME_DETAIL    = TTL_SEMI_STATIC_QUICK // 15 minutes
)

// ================== SEATS MODULE ==================

const (
	CACHE_KEY_SEAT_MAP = CACHE_PREFIX + ":seats:map:showtime:" // + showtime-id
)

const (
	TTL_SEAT_MAP = TTL_REALTIME_SHORT // 30 seconds
)

// Pub/sub channel for live seat map updates
const (
	CHANNEL_SEAT_UPDATES = CACHE_PREFIX + ":seats:updates:showtime:" // + showtime-id
)

// ================== AUTH MODULE ==================

const (
	CACHE_KEY_USER_PROFILE = CACHE_PREFIX + ":auth:user:profile:uuid:" // + user-id
)

const (
	TTL_USER_PROFILE = TTL_STATIC_SHORT // 6 hours
)

// ================== BOOKINGS MODULE ==================

const (
	CACHE_KEY_USER_BOOKINGS  = CACHE_PREFIX + ":bookings:user:uuid:"   // + user-id
	CACHE_KEY_BOOKING_DETAIL = CACHE_PREFIX + ":bookings:detail:ref:"  // + booking-ref
	KEY_BOOKING_LEDGER       = CACHE_PREFIX + ":bookings:ledger:user:" // + user-id (fallback ledger, no TTL)
)

const (
	TTL_USER_BOOKINGS  = TTL_DYNAMIC_MEDIUM // 10 minutes
	TTL_BOOKING_DETAIL = TTL_DYNAMIC_SHORT  // 5 minutes
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_MOVIES_ALL    = CACHE_PREFIX + ":movies:*"
	PATTERN_INVALIDATE_THEATRES_ALL  = CACHE_PREFIX + ":theatres:*"
	PATTERN_INVALIDATE_SHOWTIMES_ALL = CACHE_PREFIX + ":showtimes:*"
	PATTERN_INVALIDATE_SEATS_ALL     = CACHE_PREFIX + ":seats:*"
	PATTERN_INVALIDATE_USER_ALL      = CACHE_PREFIX + ":*:user:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildMovieDetailKey(movieID string) string {
	return CACHE_KEY_MOVIE_DETAIL + movieID
}

func BuildTheatreDetailKey(theatreID string) string {
	return CACHE_KEY_THEATRE_DETAIL + theatreID
}

func BuildShowtimesByMovieKey(movieID string, date string) string {
	return CACHE_KEY_SHOWTIMES_BY_MOVIE + movieID + ":date:" + date
}

func BuildSeatMapKey(showtimeID string) string {
	return CACHE_KEY_SEAT_MAP + showtimeID
}

func BuildSeatUpdatesChannel(showtimeID string) string {
	return CHANNEL_SEAT_UPDATES + showtimeID
}

func BuildUserBookingsKey(userID string, page int) string {
	return CACHE_KEY_USER_BOOKINGS + userID + ":page:" + fmt.Sprintf("%d", page)
}

func BuildBookingLedgerKey(userID string) string {
	return KEY_BOOKING_LEDGER + userID
}

func BuildBookingDetailKey(bookingRef string) string {
	return CACHE_KEY_BOOKING_DETAIL + bookingRef
}
