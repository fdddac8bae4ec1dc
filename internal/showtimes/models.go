package showtimes

import (
	"fmt"
	"strings"
	"time"

	"cinebook/internal/theatres"

	"github.com/google/uuid"
)

// TimeLayout is the wire format for showtime slots, e.g. "18:45"
const TimeLayout = "15:04"

// DateLayout is the wire format for showtime dates, e.g. "2026-08-28"
const DateLayout = "2006-01-02"

// Showtime is a seeded slot: a movie playing at a theatre at a fixed time of
// day. Dates are not stored; every slot repeats across the rolling window.
type Showtime struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	MovieID   uuid.UUID `json:"movie_id" gorm:"type:uuid;not null;index"`
	TheatreID uuid.UUID `json:"theatre_id" gorm:"type:uuid;not null;index"`
	Time      string    `json:"time" gorm:"not null;size:5"` // "15:04"

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// InstanceID identifies a single screening: a showtime slot on a concrete
// date. Seat maps and bookings are keyed by this composite identity.
type InstanceID struct {
	MovieID   uuid.UUID
	TheatreID uuid.UUID
	Date      string // DateLayout
	Time      string // TimeLayout
}

func (id InstanceID) String() string {
	return fmt.Sprintf("%s:%s:%s:%s", id.MovieID, id.TheatreID, id.Date, id.Time)
}

// ParseInstanceID parses the composite screening key
func ParseInstanceID(s string) (InstanceID, error) {
	parts := strings.Split(s, ":")
	// the time component itself contains a colon ("18:45")
	if len(parts) != 5 {
		return InstanceID{}, fmt.Errorf("invalid showtime instance id: %s", s)
	}

	movieID, err := uuid.Parse(parts[0])
	if err != nil {
		return InstanceID{}, fmt.Errorf("invalid movie id in instance id: %w", err)
	}
	theatreID, err := uuid.Parse(parts[1])
	if err != nil {
		return InstanceID{}, fmt.Errorf("invalid theatre id in instance id: %w", err)
	}

	id := InstanceID{
		MovieID:   movieID,
		TheatreID: theatreID,
		Date:      parts[2],
		Time:      parts[3] + ":" + parts[4],
	}
	if err := id.Validate(); err != nil {
		return InstanceID{}, err
	}
	return id, nil
}

// Validate checks the date and time components are well formed
func (id InstanceID) Validate() error {
	if _, err := time.Parse(DateLayout, id.Date); err != nil {
		return fmt.Errorf("invalid showtime date %q: %w", id.Date, err)
	}
	if _, err := time.Parse(TimeLayout, id.Time); err != nil {
		return fmt.Errorf("invalid showtime time %q: %w", id.Time, err)
	}
	return nil
}

// StartsAt combines date and time into a wall clock instant
func (id InstanceID) StartsAt() (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, id.Date+" "+id.Time, time.Local)
}

type ShowtimeResponse struct {
	ID        string `json:"id"`
	MovieID   string `json:"movie_id"`
	TheatreID string `json:"theatre_id"`
	Time      string `json:"time"`

	Theatre *theatres.TheatreResponse `json:"theatre,omitempty"`
}

// MovieShowtimes is the browse payload: the seeded slots grouped with the
// synthesized date window they repeat over.
type MovieShowtimes struct {
	MovieID   string             `json:"movie_id"`
	Dates     []string           `json:"dates"`
	Showtimes []ShowtimeResponse `json:"showtimes"`
}

type CreateShowtimeRequest struct {
	MovieID   string `json:"movie_id" binding:"required,uuid"`
	TheatreID string `json:"theatre_id" binding:"required,uuid"`
	Time      string `json:"time" binding:"required"`
}

func (st *Showtime) ToResponse() ShowtimeResponse {
	return ShowtimeResponse{
		ID:        st.ID.String(),
		MovieID:   st.MovieID.String(),
		TheatreID: st.TheatreID.String(),
		Time:      st.Time,
	}
}

// TableName specifies the table name for GORM
func (Showtime) TableName() string {
	return "showtimes"
}
