package bookings

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Booking is one confirmed ticket purchase. Movie and theatre details are
// snapshotted at purchase time so tickets survive later catalog edits.
// UserID is nullable: guests can book without an account.
type Booking struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	BookingRef string     `gorm:"unique;not null" json:"booking_ref"`

	// Screening identity and snapshots
	ShowtimeKey  string    `gorm:"not null;size:120;index" json:"showtime_key"`
	MovieID      uuid.UUID `gorm:"type:uuid;not null" json:"movie_id"`
	MovieTitle   string    `gorm:"not null;size:255" json:"movie_title"`
	TheatreID    uuid.UUID `gorm:"type:uuid;not null" json:"theatre_id"`
	TheatreName  string    `gorm:"not null;size:255" json:"theatre_name"`
	ShowtimeDate string    `gorm:"not null;size:10" json:"showtime_date"` // "2006-01-02"
	ShowtimeTime string    `gorm:"not null;size:5" json:"showtime_time"`  // "15:04"

	// Seats are stored comma separated, e.g. "A1,F3"
	Seats      string `gorm:"not null" json:"-"`
	SeatCount  int    `gorm:"not null" json:"seat_count"`
	TotalPrice int    `gorm:"not null" json:"total_price"`

	// Contact details captured on the booking form
	CustomerName  string `gorm:"not null;size:255" json:"customer_name"`
	CustomerEmail string `gorm:"not null;size:255;index" json:"customer_email"`
	CustomerPhone string `gorm:"not null;size:20" json:"customer_phone"`

	PaymentMethod string `gorm:"type:varchar(20);not null" json:"payment_method"`
	TransactionID string `gorm:"size:64" json:"transaction_id"`

	Status      Status     `gorm:"type:varchar(20);check:status IN ('CONFIRMED', 'CANCELLED');default:'CONFIRMED'" json:"status"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SeatList splits the stored seat labels
func (b *Booking) SeatList() []string {
	if b.Seats == "" {
		return []string{}
	}
	return strings.Split(b.Seats, ",")
}

// SetSeats stores the seat labels
func (b *Booking) SetSeats(seats []string) {
	b.Seats = strings.Join(seats, ",")
	b.SeatCount = len(seats)
}

// IsConfirmed reports whether the booking is active
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled reports whether the booking was cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// Cancel marks the booking cancelled
func (b *Booking) Cancel() {
	b.Status = StatusCancelled
	now := time.Now()
	b.CancelledAt = &now
	b.UpdatedAt = now
}

// ShowtimeStartsAt combines the snapshotted date and time
func (b *Booking) ShowtimeStartsAt() (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", b.ShowtimeDate+" "+b.ShowtimeTime, time.Local)
}

// IsPast reports whether the screening has already started
func (b *Booking) IsPast(now time.Time) bool {
	startsAt, err := b.ShowtimeStartsAt()
	if err != nil {
		return false
	}
	return startsAt.Before(now)
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}
