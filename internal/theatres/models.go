package theatres

import (
	"time"

	"github.com/google/uuid"
)

type Theatre struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name     string    `json:"name" gorm:"not null;size:255;uniqueIndex"`
	Location string    `json:"location" gorm:"not null;size:255"`

	// Scales the per-seat tier price for every showtime in this theatre
	PriceMultiplier float64 `json:"price_multiplier" gorm:"not null;default:1.0;check:price_multiplier > 0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type TheatreResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Location        string    `json:"location"`
	PriceMultiplier float64   `json:"price_multiplier"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateTheatreRequest struct {
	Name            string  `json:"name" binding:"required,min=2,max=255"`
	Location        string  `json:"location" binding:"required,min=2,max=255"`
	PriceMultiplier float64 `json:"price_multiplier" binding:"omitempty,gt=0"`
}

type UpdateTheatreRequest struct {
	Name            *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Location        *string  `json:"location" binding:"omitempty,min=2,max=255"`
	PriceMultiplier *float64 `json:"price_multiplier" binding:"omitempty,gt=0"`
}

func (t *Theatre) ToResponse() TheatreResponse {
	return TheatreResponse{
		ID:              t.ID.String(),
		Name:            t.Name,
		Location:        t.Location,
		PriceMultiplier: t.PriceMultiplier,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Theatre) TableName() string {
	return "theatres"
}
