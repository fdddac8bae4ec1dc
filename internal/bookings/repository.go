package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("booking not found")

type Repository interface {
	CreateBooking(ctx context.Context, booking *Booking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetBookingByRef(ctx context.Context, bookingRef string) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error
	DeleteBooking(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBooking(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetBookingByRef(ctx context.Context, bookingRef string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("booking_ref = ?", bookingRef).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// GetUserBookings lists a user's bookings, newest first
func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, error) {
	var bookingsList []Booking

	db := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("user_id = ?", userID)
	db = r.applyFilters(db, query)

	err := db.Order("created_at DESC").Find(&bookingsList).Error
	return bookingsList, err
}

func (r *repository) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var bookingsList []Booking
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Booking{})
	db = r.applyFilters(db, query)

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").Find(&bookingsList).Error
	return bookingsList, totalCount, err
}

func (r *repository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if cancelledAt != nil {
		updates["cancelled_at"] = *cancelledAt
	}

	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *repository) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Booking{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *repository) applyFilters(db *gorm.DB, query BookingListQuery) *gorm.DB {
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	// upcoming/past compare the snapshotted screening date against today;
	// same-day screenings count as upcoming regardless of the time slot
	today := time.Now().Format("2006-01-02")
	switch query.Filter {
	case "upcoming":
		db = db.Where("showtime_date >= ?", today)
	case "past":
		db = db.Where("showtime_date < ?", today)
	}

	return db
}
