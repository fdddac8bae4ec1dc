package database

import (
	"cinebook/internal/bookings"
	"cinebook/internal/movies"
	"cinebook/internal/seats"
	"cinebook/internal/showtimes"
	"cinebook/internal/theatres"
	"cinebook/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&movies.Movie{},
		&theatres.Theatre{},
		&showtimes.Showtime{},
		&seats.Seat{},
		&bookings.Booking{},
	)
}
