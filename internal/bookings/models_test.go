package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatListRoundTrip(t *testing.T) {
	var booking Booking
	booking.SetSeats([]string{"A1", "F3", "H12"})

	assert.Equal(t, "A1,F3,H12", booking.Seats)
	assert.Equal(t, 3, booking.SeatCount)
	assert.Equal(t, []string{"A1", "F3", "H12"}, booking.SeatList())
}

func TestSeatListEmpty(t *testing.T) {
	var booking Booking
	assert.Equal(t, []string{}, booking.SeatList())
}

func TestCancelSetsTimestamp(t *testing.T) {
	booking := Booking{Status: StatusConfirmed}

	booking.Cancel()
	assert.True(t, booking.IsCancelled())
	assert.False(t, booking.IsConfirmed())
	require.NotNil(t, booking.CancelledAt)
	assert.WithinDuration(t, time.Now(), *booking.CancelledAt, time.Second)
}

func TestShowtimeStartsAt(t *testing.T) {
	booking := Booking{ShowtimeDate: "2026-09-01", ShowtimeTime: "18:45"}

	startsAt, err := booking.ShowtimeStartsAt()
	require.NoError(t, err)
	assert.True(t, startsAt.Equal(time.Date(2026, 9, 1, 18, 45, 0, 0, time.Local)))
}

func TestIsPast(t *testing.T) {
	now := time.Date(2026, 9, 1, 19, 0, 0, 0, time.Local)

	past := Booking{ShowtimeDate: "2026-09-01", ShowtimeTime: "18:45"}
	assert.True(t, past.IsPast(now))

	upcoming := Booking{ShowtimeDate: "2026-09-01", ShowtimeTime: "21:00"}
	assert.False(t, upcoming.IsPast(now))

	// Unparseable snapshots never count as past
	broken := Booking{ShowtimeDate: "soon", ShowtimeTime: "18:45"}
	assert.False(t, broken.IsPast(now))
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, StatusConfirmed.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, Status("PENDING").IsValid())

	assert.True(t, StatusConfirmed.CanBeCancelled())
	assert.False(t, StatusCancelled.CanBeCancelled())
}

func TestPaymentMethodIsValid(t *testing.T) {
	for _, method := range []PaymentMethod{PaymentCard, PaymentEsewa, PaymentKhalti, PaymentCash} {
		assert.True(t, method.IsValid())
	}
	assert.False(t, PaymentMethod("paypal").IsValid())
}
