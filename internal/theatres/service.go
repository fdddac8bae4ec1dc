package theatres

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

	GetAllTheatres(ctx context.Context) ([]TheatreResponse, error)
	GetTheatreByID(ctx context.Context, id uuid.UUID) (*TheatreResponse, error)

	// PriceMultiplierFor is used by seat pricing; returns 1.0 for unknown theatres
	PriceMultiplierFor(ctx context.Context, id uuid.UUID) (float64, error)

	// Admin management
	CreateTheatre(ctx context.Context, req CreateTheatreRequest) (*TheatreResponse, error)
	UpdateTheatre(ctx context.Context, id uuid.UUID, req UpdateTheatreRequest) (*TheatreResponse, error)
	DeleteTheatre(ctx context.Context, id uuid.UUID) error
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
		s.log.WarnContext(ctx, "failed to cache theatre data", "key", key, "error", err.Error())
	}
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return cache.ErrCacheMiss
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) invalidateTheatreCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_THEATRES_ALL); err != nil {
		s.log.WarnContext(ctx, "failed to invalidate theatre cache", "error", err.Error())
	}
}

func (s *service) GetAllTheatres(ctx context.Context) ([]TheatreResponse, error) {
	var cached []TheatreResponse
	if err := s.getCache(ctx, constants.CACHE_KEY_THEATRES_LIST, &cached); err == nil {
		return cached, nil
	}

	theatresList, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get theatres: %w", err)
	}

	responses := make([]TheatreResponse, len(theatresList))
	for i, theatre := range theatresList {
		responses[i] = theatre.ToResponse()
	}

	s.setCache(ctx, constants.CACHE_KEY_THEATRES_LIST, responses, constants.TTL_THEATRES_LIST)
	return responses, nil
}

func (s *service) GetTheatreByID(ctx context.Context, id uuid.UUID) (*TheatreResponse, error) {
	cacheKey := constants.BuildTheatreDetailKey(id.String())

	var cached TheatreResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	theatre, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTheatreNotFound) {
			return nil, ErrTheatreNotFound
		}
		return nil, fmt.Errorf("failed to get theatre: %w", err)
	}

	response := theatre.ToResponse()
	s.setCache(ctx, cacheKey, response, constants.TTL_THEATRE_DETAIL)
	return &response, nil
}

func (s *service) PriceMultiplierFor(ctx context.Context, id uuid.UUID) (float64, error) {
	theatre, err := s.GetTheatreByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTheatreNotFound) {
			return 1.0, ErrTheatreNotFound
		}
		return 1.0, err
	}
	return theatre.PriceMultiplier, nil
}

func (s *service) CreateTheatre(ctx context.Context, req CreateTheatreRequest) (*TheatreResponse, error) {
	multiplier := req.PriceMultiplier
	if multiplier == 0 {
		multiplier = 1.0
	}

	theatre := &Theatre{
		Name:            req.Name,
		Location:        req.Location,
		PriceMultiplier: multiplier,
	}

	if err := s.repo.Create(ctx, theatre); err != nil {
		return nil, fmt.Errorf("failed to create theatre: %w", err)
	}

	s.invalidateTheatreCache(ctx)

	response := theatre.ToResponse()
	return &response, nil
}

func (s *service) UpdateTheatre(ctx context.Context, id uuid.UUID, req UpdateTheatreRequest) (*TheatreResponse, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.PriceMultiplier != nil {
		updates["price_multiplier"] = *req.PriceMultiplier
	}

	if len(updates) == 0 {
		return s.GetTheatreByID(ctx, id)
	}
	updates["updated_at"] = time.Now()

	theatre, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, ErrTheatreNotFound) {
			return nil, ErrTheatreNotFound
		}
		return nil, fmt.Errorf("failed to update theatre: %w", err)
	}

	s.invalidateTheatreCache(ctx)

	response := theatre.ToResponse()
	return &response, nil
}

func (s *service) DeleteTheatre(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrTheatreNotFound) {
			return ErrTheatreNotFound
		}
		return fmt.Errorf("failed to delete theatre: %w", err)
	}

	s.invalidateTheatreCache(ctx)
	return nil
}
