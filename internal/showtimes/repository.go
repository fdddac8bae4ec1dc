package showtimes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrShowtimeNotFound = errors.New("showtime not found")

type Repository interface {
	Create(ctx context.Context, showtime *Showtime) error
	GetByID(ctx context.Context, id uuid.UUID) (*Showtime, error)
	GetByMovie(ctx context.Context, movieID uuid.UUID) ([]Showtime, error)
	GetBySlot(ctx context.Context, movieID, theatreID uuid.UUID, slot string) (*Showtime, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, showtime *Showtime) error {
	return r.db.WithContext(ctx).Create(showtime).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	var showtime Showtime
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&showtime).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &showtime, nil
}

func (r *repository) GetByMovie(ctx context.Context, movieID uuid.UUID) ([]Showtime, error) {
	var showtimesList []Showtime
	err := r.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("time ASC").
		Find(&showtimesList).Error
	if err != nil {
		return nil, err
	}
	return showtimesList, nil
}

func (r *repository) GetBySlot(ctx context.Context, movieID, theatreID uuid.UUID, slot string) (*Showtime, error) {
	var showtime Showtime
	err := r.db.WithContext(ctx).
		Where("movie_id = ? AND theatre_id = ? AND time = ?", movieID, theatreID, slot).
		First(&showtime).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &showtime, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Showtime{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShowtimeNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Showtime{}).Count(&count).Error
	return count, err
}
