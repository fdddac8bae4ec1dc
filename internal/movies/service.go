package movies

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	GetAllMovies(ctx context.Context, query MovieListQuery) ([]MovieResponse, error)
	GetMovieByID(ctx context.Context, id uuid.UUID) (*MovieResponse, error)

	// Admin catalog management
	CreateMovie(ctx context.Context, req CreateMovieRequest) (*MovieResponse, error)
	ImportMovies(ctx context.Context, records []Record) ([]MovieResponse, error)
	UpdateMovie(ctx context.Context, id uuid.UUID, req UpdateMovieRequest) (*MovieResponse, error)
	DeleteMovie(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Set(ctx, key, value, ttl); err != nil {
		s.log.WarnContext(ctx, "failed to cache movie data", "key", key, "error", err.Error())
	}
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return cache.ErrCacheMiss
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) invalidateMovieCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_MOVIES_ALL); err != nil {
		s.log.WarnContext(ctx, "failed to invalidate movie cache", "error", err.Error())
	}
}

// GetAllMovies lists the catalog. When the database read fails the bundled
// dataset is served instead so browsing survives a storage outage.
func (s *service) GetAllMovies(ctx context.Context, query MovieListQuery) ([]MovieResponse, error) {
	cacheKey := constants.CACHE_KEY_MOVIES_LIST + ":status:" + query.Status + ":search:" + query.Search

	var cached []MovieResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	moviesList, err := s.repo.GetAll(ctx, query)
	if err != nil {
		s.log.LogCatalogFallback(ctx, err)
		return FallbackCatalog(query.Status), nil
	}

	responses := make([]MovieResponse, len(moviesList))
	for i, movie := range moviesList {
		responses[i] = movie.ToResponse()
	}

	s.setCache(ctx, cacheKey, responses, constants.TTL_MOVIES_LIST)
	return responses, nil
}

func (s *service) GetMovieByID(ctx context.Context, id uuid.UUID) (*MovieResponse, error) {
	cacheKey := constants.BuildMovieDetailKey(id.String())

	var cached MovieResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	response := movie.ToResponse()
	s.setCache(ctx, cacheKey, response, constants.TTL_MOVIE_DETAIL)
	return &response, nil
}

func (s *service) CreateMovie(ctx context.Context, req CreateMovieRequest) (*MovieResponse, error) {
	status := MovieStatus(req.Status)
	if req.Status == "" {
		status = StatusNowShowing
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid movie status: %s", req.Status)
	}

	movie := &Movie{
		Title:    req.Title,
		Genres:   joinGenres(req.Genres),
		Rating:   req.Rating,
		Synopsis: req.Synopsis,
		Duration: req.Duration,
		Status:   status,
		Poster:   req.Poster,
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	s.invalidateMovieCache(ctx)

	response := movie.ToResponse()
	return &response, nil
}

// ImportMovies ingests a batch of loosely shaped catalog records
func (s *service) ImportMovies(ctx context.Context, records []Record) ([]MovieResponse, error) {
	responses := make([]MovieResponse, 0, len(records))
	for _, record := range records {
		movie := record.ToMovie()
		if err := s.repo.Create(ctx, &movie); err != nil {
			return nil, fmt.Errorf("failed to import movie %q: %w", record.Title, err)
		}
		responses = append(responses, movie.ToResponse())
	}

	s.invalidateMovieCache(ctx)
	return responses, nil
}

func (s *service) UpdateMovie(ctx context.Context, id uuid.UUID, req UpdateMovieRequest) (*MovieResponse, error) {
	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Genres != nil {
		updates["genres"] = joinGenres(req.Genres)
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.Synopsis != nil {
		updates["synopsis"] = *req.Synopsis
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Status != nil {
		status := MovieStatus(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid movie status: %s", *req.Status)
		}
		updates["status"] = status
	}
	if req.Poster != nil {
		updates["poster"] = *req.Poster
	}

	if len(updates) == 0 {
		return s.GetMovieByID(ctx, id)
	}
	updates["updated_at"] = time.Now()

	movie, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	s.invalidateMovieCache(ctx)

	response := movie.ToResponse()
	return &response, nil
}

func (s *service) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			return ErrMovieNotFound
		}
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	s.invalidateMovieCache(ctx)
	return nil
}
