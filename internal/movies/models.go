package movies

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type MovieStatus string

const (
	StatusNowShowing MovieStatus = "now_showing"
	StatusComingSoon MovieStatus = "coming_soon"
)

func (s MovieStatus) IsValid() bool {
	switch s {
	case StatusNowShowing, StatusComingSoon:
		return true
	default:
		return false
	}
}

type Movie struct {
	ID       uuid.UUID   `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title    string      `json:"title" gorm:"not null;size:255"`
	Genres   string      `json:"-" gorm:"size:255"` // comma separated, split in responses
	Rating   float64     `json:"rating" gorm:"check:rating >= 0 AND rating <= 10"`
	Synopsis string      `json:"synopsis" gorm:"type:text"`
	Duration int         `json:"duration" gorm:"check:duration > 0"` // minutes
	Status   MovieStatus `json:"status" gorm:"type:varchar(20);default:'now_showing';index"`
	Poster   string      `json:"poster" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type MovieResponse struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Genres   []string    `json:"genres"`
	Rating   float64     `json:"rating"`
	Synopsis string      `json:"synopsis"`
	Duration int         `json:"duration"`
	Status   MovieStatus `json:"status"`
	Poster   string      `json:"poster"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateMovieRequest struct {
	Title    string   `json:"title" binding:"required,min=1,max=255"`
	Genres   []string `json:"genres" binding:"required,min=1"`
	Rating   float64  `json:"rating" binding:"omitempty,min=0,max=10"`
	Synopsis string   `json:"synopsis" binding:"max=2000"`
	Duration int      `json:"duration" binding:"required,min=1,max=600"`
	Status   string   `json:"status" binding:"omitempty,oneof=now_showing coming_soon"`
	Poster   string   `json:"poster" binding:"omitempty,url"`
}

type UpdateMovieRequest struct {
	Title    *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Genres   []string `json:"genres"`
	Rating   *float64 `json:"rating" binding:"omitempty,min=0,max=10"`
	Synopsis *string  `json:"synopsis" binding:"omitempty,max=2000"`
	Duration *int     `json:"duration" binding:"omitempty,min=1,max=600"`
	Status   *string  `json:"status" binding:"omitempty,oneof=now_showing coming_soon"`
	Poster   *string  `json:"poster" binding:"omitempty,url"`
}

type MovieListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=now_showing coming_soon"`
	Search string `form:"search"`
}

func (m *Movie) ToResponse() MovieResponse {
	poster := m.Poster
	if poster == "" {
		poster = FallbackPosterURL(m.Title)
	}

	return MovieResponse{
		ID:        m.ID.String(),
		Title:     m.Title,
		Genres:    splitGenres(m.Genres),
		Rating:    m.Rating,
		Synopsis:  m.Synopsis,
		Duration:  m.Duration,
		Status:    m.Status,
		Poster:    poster,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func splitGenres(genres string) []string {
	if genres == "" {
		return []string{}
	}

	parts := strings.Split(genres, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func joinGenres(genres []string) string {
	cleaned := make([]string, 0, len(genres))
	for _, genre := range genres {
		if trimmed := strings.TrimSpace(genre); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, ",")
}

// TableName specifies the table name for GORM
func (Movie) TableName() string {
	return "movies"
}
