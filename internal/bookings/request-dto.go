package bookings

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

// CreateBookingRequest is the checkout payload. Contact details are required
// for every booking, including guest checkouts.
type CreateBookingRequest struct {
	MovieID      string `json:"movie_id" validate:"required,uuid"`
	TheatreID    string `json:"theatre_id" validate:"required,uuid"`
	ShowtimeDate string `json:"showtime_date" validate:"required,datetime=2006-01-02"`
	ShowtimeTime string `json:"showtime_time" validate:"required,datetime=15:04"`

	// Labels are only length-checked here; seats.ParseSeatID enforces the
	// real grid bounds before anything is priced or written
	Seats []string `json:"seats" validate:"required,min=1,dive,min=2,max=4"`

	CustomerName  string `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"required,phone"`

	PaymentMethod string `json:"payment_method" validate:"required,oneof=card esewa khalti cash"`
}

// validPhone backs the `phone` tag: a loose international format of 7 to 15
// digits, allowing a leading + and the usual separators
func validPhone(fl validator.FieldLevel) bool {
	digits := 0
	for i, r := range fl.Field().String() {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

// BookingListQuery filters a booking listing
type BookingListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=CONFIRMED CANCELLED"`
	Filter string `form:"filter" binding:"omitempty,oneof=upcoming past"`
}
