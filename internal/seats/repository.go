package seats

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSeatNotFound = errors.New("seat not found")

type Repository interface {
	GetByShowtime(ctx context.Context, showtimeKey string) ([]Seat, error)
	GetBookedSeatIDs(ctx context.Context, showtimeKey string) (map[string]bool, error)
	UpsertStatus(ctx context.Context, showtimeKey, seatID string, status SeatStatus) error
	UpsertStatusBatch(ctx context.Context, showtimeKey string, seatIDs []string, status SeatStatus) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByShowtime(ctx context.Context, showtimeKey string) ([]Seat, error) {
	var seatsList []Seat
	err := r.db.WithContext(ctx).
		Where("showtime_key = ?", showtimeKey).
		Find(&seatsList).Error
	if err != nil {
		return nil, err
	}
	return seatsList, nil
}

func (r *repository) GetBookedSeatIDs(ctx context.Context, showtimeKey string) (map[string]bool, error) {
	var seatIDs []string
	err := r.db.WithContext(ctx).Model(&Seat{}).
		Where("showtime_key = ? AND status = ?", showtimeKey, StatusBooked).
		Pluck("seat_id", &seatIDs).Error
	if err != nil {
		return nil, err
	}

	booked := make(map[string]bool, len(seatIDs))
	for _, id := range seatIDs {
		booked[id] = true
	}
	return booked, nil
}

func (r *repository) UpsertStatus(ctx context.Context, showtimeKey, seatID string, status SeatStatus) error {
	seat := Seat{
		ShowtimeKey: showtimeKey,
		SeatID:      seatID,
		Status:      status,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "showtime_key"}, {Name: "seat_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(&seat).Error
}

func (r *repository) UpsertStatusBatch(ctx context.Context, showtimeKey string, seatIDs []string, status SeatStatus) error {
	if len(seatIDs) == 0 {
		return nil
	}

	records := make([]Seat, len(seatIDs))
	for i, seatID := range seatIDs {
		records[i] = Seat{
			ShowtimeKey: showtimeKey,
			SeatID:      seatID,
			Status:      status,
		}
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "showtime_key"}, {Name: "seat_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(&records).Error
}
