package seats

import (
	"time"

	"github.com/google/uuid"
)

type SeatStatus string

const (
	StatusAvailable SeatStatus = "available"
	StatusBooked    SeatStatus = "booked"
)

func (s SeatStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBooked:
		return true
	default:
		return false
	}
}

type Tier string

const (
	TierPremium  Tier = "premium"
	TierStandard Tier = "standard"
)

// Seat is a per-screening seat status record, keyed by the composite
// showtime instance id. Only seats that have ever been booked get a row;
// the rest of the grid is synthesized.
type Seat struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ShowtimeKey string     `json:"showtime_key" gorm:"not null;size:120;uniqueIndex:idx_seats_showtime_seat"`
	SeatID      string     `json:"seat_id" gorm:"not null;size:4;uniqueIndex:idx_seats_showtime_seat"`
	Status      SeatStatus `json:"status" gorm:"type:varchar(20);not null;default:'available'"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// SeatView is a single cell of the synthesized seat map
type SeatView struct {
	SeatID string     `json:"seat_id"`
	Row    string     `json:"row"`
	Column int        `json:"column"`
	Tier   Tier       `json:"tier"`
	Price  int        `json:"price"`
	Status SeatStatus `json:"status"`

	// Aisle marks the display gap after this column; it has no effect on
	// availability or pricing
	Aisle bool `json:"aisle,omitempty"`
}

// SeatMapResponse is the full grid for one screening
type SeatMapResponse struct {
	ShowtimeKey     string     `json:"showtime_key"`
	Rows            []string   `json:"rows"`
	SeatsPerRow     int        `json:"seats_per_row"`
	PriceMultiplier float64    `json:"price_multiplier"`
	Seats           []SeatView `json:"seats"`
}

// SeatUpdateEvent is published on the Redis channel whenever a seat status
// changes, and relayed to SSE subscribers
type SeatUpdateEvent struct {
	ShowtimeKey string     `json:"showtime_key"`
	SeatID      string     `json:"seat_id"`
	Status      SeatStatus `json:"status"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type UpdateSeatStatusRequest struct {
	SeatID string `json:"seat_id" binding:"required"`
	Status string `json:"status" binding:"required,oneof=available booked"`
}

type QuoteRequest struct {
	Seats []string `json:"seats" binding:"required,min=1"`
}

type QuoteResponse struct {
	ShowtimeKey     string         `json:"showtime_key"`
	Seats           []string       `json:"seats"`
	PriceMultiplier float64        `json:"price_multiplier"`
	PerSeat         map[string]int `json:"per_seat"`
	Total           int            `json:"total"`
}

// TableName specifies the table name for GORM
func (Seat) TableName() string {
	return "seats"
}
