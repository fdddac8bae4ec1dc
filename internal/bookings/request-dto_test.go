package bookings

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckoutValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, v.RegisterValidation("phone", validPhone))
	return v
}

func checkoutRequest(phone string) CreateBookingRequest {
	return CreateBookingRequest{
		MovieID:       uuid.New().String(),
		TheatreID:     uuid.New().String(),
		ShowtimeDate:  "2026-09-01",
		ShowtimeTime:  "18:30",
		Seats:         []string{"A1", "F3"},
		CustomerName:  "Asha Rai",
		CustomerEmail: "asha@example.com",
		CustomerPhone: phone,
		PaymentMethod: "card",
	}
}

func TestCreateBookingRequestPhoneAcceptsSeparators(t *testing.T) {
	v := newCheckoutValidator(t)

	for _, phone := range []string{
		"+1 555-123-4567",
		"(977) 984-1234567",
		"9841234567",
		"+977.9841234567",
	} {
		req := checkoutRequest(phone)
		assert.NoError(t, v.Struct(&req), "phone %q should validate", phone)
	}
}

func TestCreateBookingRequestPhoneRejected(t *testing.T) {
	v := newCheckoutValidator(t)

	for _, phone := range []string{
		"",
		"call me",
		"123456",               // too few digits
		"1234567890123456",     // too many digits
		"555-123x4567",         // stray letter
		"984 1234+567",         // + only allowed at the front
	} {
		req := checkoutRequest(phone)
		assert.Error(t, v.Struct(&req), "phone %q should be rejected", phone)
	}
}
