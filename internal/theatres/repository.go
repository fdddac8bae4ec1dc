package theatres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTheatreNotFound = errors.New("theatre not found")

type Repository interface {
	Create(ctx context.Context, theatre *Theatre) error
	GetByID(ctx context.Context, id uuid.UUID) (*Theatre, error)
	GetAll(ctx context.Context) ([]Theatre, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Theatre, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, theatre *Theatre) error {
	return r.db.WithContext(ctx).Create(theatre).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Theatre, error) {
	var theatre Theatre
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&theatre).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTheatreNotFound
		}
		return nil, err
	}
	return &theatre, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Theatre, error) {
	var theatresList []Theatre
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&theatresList).Error; err != nil {
		return nil, err
	}
	return theatresList, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Theatre, error) {
	result := r.db.WithContext(ctx).Model(&Theatre{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTheatreNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Theatre{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTheatreNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Theatre{}).Count(&count).Error
	return count, err
}
