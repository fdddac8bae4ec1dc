package notifications

import (
	"context"
	"fmt"
	"strings"

	"cinebook/internal/bookings"
)

// BookingPublisherAdapter bridges the bookings module to the notification
// pipeline: it turns booking records into ticket emails without the bookings
// package knowing about Kafka or SMTP.
type BookingPublisherAdapter struct {
	service NotificationService
}

func NewBookingPublisherAdapter(service NotificationService) bookings.NotificationPublisher {
	return &BookingPublisherAdapter{service: service}
}

func (a *BookingPublisherAdapter) BookingConfirmed(ctx context.Context, booking *bookings.Booking) error {
	notification := NewNotificationBuilder().
		WithType(NotificationTypeBookingConfirmed).
		WithRecipient(booking.CustomerEmail, booking.CustomerName).
		WithSubject(fmt.Sprintf("🎟️ Booking Confirmed for %s", booking.MovieTitle)).
		WithBookingContext(booking.ID, booking.BookingRef, booking.ShowtimeKey).
		WithTemplateData(templateData(booking)).
		Build()

	return a.service.SendNotification(ctx, notification)
}

func (a *BookingPublisherAdapter) BookingCancelled(ctx context.Context, booking *bookings.Booking) error {
	notification := NewNotificationBuilder().
		WithType(NotificationTypeBookingCancelled).
		WithRecipient(booking.CustomerEmail, booking.CustomerName).
		WithSubject(fmt.Sprintf("❌ Booking Cancelled for %s", booking.MovieTitle)).
		WithBookingContext(booking.ID, booking.BookingRef, booking.ShowtimeKey).
		WithTemplateData(templateData(booking)).
		Build()

	return a.service.SendNotification(ctx, notification)
}

func templateData(booking *bookings.Booking) map[string]interface{} {
	return map[string]interface{}{
		"movie_title":   booking.MovieTitle,
		"theatre_name":  booking.TheatreName,
		"showtime_date": booking.ShowtimeDate,
		"showtime_time": booking.ShowtimeTime,
		"seats":         strings.Join(booking.SeatList(), ", "),
		"total_price":   booking.TotalPrice,
	}
}
