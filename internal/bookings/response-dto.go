package bookings

import "time"

// BookingResponse is a single ticket in API responses
type BookingResponse struct {
	ID         string `json:"id"`
	BookingRef string `json:"booking_ref"`
	UserID     string `json:"user_id,omitempty"`

	ShowtimeKey  string `json:"showtime_key"`
	MovieID      string `json:"movie_id"`
	MovieTitle   string `json:"movie_title"`
	TheatreID    string `json:"theatre_id"`
	TheatreName  string `json:"theatre_name"`
	ShowtimeDate string `json:"showtime_date"`
	ShowtimeTime string `json:"showtime_time"`

	Seats      []string `json:"seats"`
	SeatCount  int      `json:"seat_count"`
	TotalPrice int      `json:"total_price"`

	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	PaymentMethod string `json:"payment_method"`
	TransactionID string `json:"transaction_id,omitempty"`

	Status      Status     `json:"status"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BookingListResponse is the listing payload
type BookingListResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int               `json:"total_count"`

	// Degraded reports whether part of the list came from the Redis fallback
	// ledger instead of primary storage
	Degraded bool `json:"degraded,omitempty"`
}

// ToResponse converts a booking to its API shape
func (b *Booking) ToResponse() BookingResponse {
	userID := ""
	if b.UserID != nil {
		userID = b.UserID.String()
	}

	return BookingResponse{
		ID:            b.ID.String(),
		BookingRef:    b.BookingRef,
		UserID:        userID,
		ShowtimeKey:   b.ShowtimeKey,
		MovieID:       b.MovieID.String(),
		MovieTitle:    b.MovieTitle,
		TheatreID:     b.TheatreID.String(),
		TheatreName:   b.TheatreName,
		ShowtimeDate:  b.ShowtimeDate,
		ShowtimeTime:  b.ShowtimeTime,
		Seats:         b.SeatList(),
		SeatCount:     b.SeatCount,
		TotalPrice:    b.TotalPrice,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		PaymentMethod: b.PaymentMethod,
		TransactionID: b.TransactionID,
		Status:        b.Status,
		CancelledAt:   b.CancelledAt,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
