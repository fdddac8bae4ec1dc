package showtimes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/shared/constants"
	"cinebook/internal/theatres"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
)

var ErrDateOutsideWindow = errors.New("date outside the showtime window")

type Service interface {
	SetCacheService(cacheService cache.Service)

	// GetShowtimesForMovie lists the seeded slots for a movie together with
	// the synthesized rolling date window
	GetShowtimesForMovie(ctx context.Context, movieID uuid.UUID) (*MovieShowtimes, error)

	// ResolveInstance validates a concrete screening: the slot must exist and
	// the date must fall inside the rolling window
	ResolveInstance(ctx context.Context, id InstanceID) error

	// DateWindow returns the rolling window of bookable dates
	DateWindow(now time.Time) []string

	// Admin management
	CreateShowtime(ctx context.Context, req CreateShowtimeRequest) (*ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo           Repository
	theatreService theatres.Service
	windowDays     int
	cacheService   cache.Service
	log            *logger.Logger
}

func NewService(repo Repository, theatreService theatres.Service, windowDays int) Service {
	if windowDays <= 0 {
		windowDays = 5
	}
	return &service{
		repo:           repo,
		theatreService: theatreService,
		windowDays:     windowDays,
		log:            logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// DateWindow synthesizes the bookable dates: today plus the following days.
// Screenings are not stored per date; any slot repeats across this window.
func (s *service) DateWindow(now time.Time) []string {
	dates := make([]string, s.windowDays)
	for i := 0; i < s.windowDays; i++ {
		dates[i] = now.AddDate(0, 0, i).Format(DateLayout)
	}
	return dates
}

func (s *service) GetShowtimesForMovie(ctx context.Context, movieID uuid.UUID) (*MovieShowtimes, error) {
	today := time.Now().Format(DateLayout)
	cacheKey := constants.BuildShowtimesByMovieKey(movieID.String(), today)

	if s.cacheService != nil {
		var cached MovieShowtimes
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	slots, err := s.repo.GetByMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to get showtimes: %w", err)
	}

	responses := make([]ShowtimeResponse, len(slots))
	for i, slot := range slots {
		resp := slot.ToResponse()
		if theatre, err := s.theatreService.GetTheatreByID(ctx, slot.TheatreID); err == nil {
			resp.Theatre = theatre
		}
		responses[i] = resp
	}

	result := &MovieShowtimes{
		MovieID:   movieID.String(),
		Dates:     s.DateWindow(time.Now()),
		Showtimes: responses,
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, result, constants.TTL_SHOWTIMES_BY_MOVIE); err != nil {
			s.log.WarnContext(ctx, "failed to cache showtimes", "key", cacheKey, "error", err.Error())
		}
	}

	return result, nil
}

func (s *service) ResolveInstance(ctx context.Context, id InstanceID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if !s.dateInWindow(id.Date, time.Now()) {
		return ErrDateOutsideWindow
	}

	if _, err := s.repo.GetBySlot(ctx, id.MovieID, id.TheatreID, id.Time); err != nil {
		if errors.Is(err, ErrShowtimeNotFound) {
			return ErrShowtimeNotFound
		}
		return fmt.Errorf("failed to resolve showtime: %w", err)
	}

	return nil
}

func (s *service) dateInWindow(date string, now time.Time) bool {
	for _, d := range s.DateWindow(now) {
		if d == date {
			return true
		}
	}
	return false
}

func (s *service) CreateShowtime(ctx context.Context, req CreateShowtimeRequest) (*ShowtimeResponse, error) {
	if _, err := time.Parse(TimeLayout, req.Time); err != nil {
		return nil, fmt.Errorf("invalid showtime %q, expected HH:MM: %w", req.Time, err)
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}
	theatreID, err := uuid.Parse(req.TheatreID)
	if err != nil {
		return nil, fmt.Errorf("invalid theatre id: %w", err)
	}

	// Theatre must exist; the movie catalog may be served from fallback so
	// only the theatre side is enforced here
	if _, err := s.theatreService.GetTheatreByID(ctx, theatreID); err != nil {
		return nil, fmt.Errorf("theatre lookup failed: %w", err)
	}

	showtime := &Showtime{
		MovieID:   movieID,
		TheatreID: theatreID,
		Time:      req.Time,
	}

	if err := s.repo.Create(ctx, showtime); err != nil {
		return nil, fmt.Errorf("failed to create showtime: %w", err)
	}

	s.invalidateShowtimeCache(ctx)

	response := showtime.ToResponse()
	return &response, nil
}

func (s *service) DeleteShowtime(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrShowtimeNotFound) {
			return ErrShowtimeNotFound
		}
		return fmt.Errorf("failed to delete showtime: %w", err)
	}

	s.invalidateShowtimeCache(ctx)
	return nil
}

func (s *service) invalidateShowtimeCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_SHOWTIMES_ALL); err != nil {
		s.log.WarnContext(ctx, "failed to invalidate showtime cache", "error", err.Error())
	}
}
