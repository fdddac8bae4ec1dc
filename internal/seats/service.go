package seats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/shared/constants"
	"cinebook/internal/showtimes"
	"cinebook/internal/theatres"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"

	"github.com/redis/go-redis/v9"
)

var (
	ErrSeatAlreadyBooked = errors.New("seat already booked")
	ErrInvalidSeat       = errors.New("invalid seat")
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	// GetSeatMap returns the synthesized grid for one screening with
	// persisted booked seats merged in
	GetSeatMap(ctx context.Context, key string) (*SeatMapResponse, error)

	// Quote prices a selection without reserving anything
	Quote(ctx context.Context, key string, seatIDs []string) (*QuoteResponse, error)

	// UpdateSeatStatus writes a single seat status and publishes the change
	UpdateSeatStatus(ctx context.Context, key, seatID string, status SeatStatus) error

	// MarkBooked flips a whole selection to booked, rejecting the write if
	// any seat is already taken
	MarkBooked(ctx context.Context, key string, seatIDs []string) error

	// Subscribe streams live seat updates for one screening until the
	// context is cancelled
	Subscribe(ctx context.Context, key string) (<-chan SeatUpdateEvent, error)
}

type service struct {
	repo            Repository
	theatreService  theatres.Service
	showtimeService showtimes.Service
	redisClient     *redis.Client
	cacheService    cache.Service
	log             *logger.Logger
}

func NewService(repo Repository, theatreService theatres.Service, showtimeService showtimes.Service, redisClient *redis.Client) Service {
	return &service{
		repo:            repo,
		theatreService:  theatreService,
		showtimeService: showtimeService,
		redisClient:     redisClient,
		log:             logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) resolve(ctx context.Context, key string) (showtimes.InstanceID, float64, error) {
	instance, err := showtimes.ParseInstanceID(key)
	if err != nil {
		return showtimes.InstanceID{}, 0, err
	}

	if err := s.showtimeService.ResolveInstance(ctx, instance); err != nil {
		return showtimes.InstanceID{}, 0, err
	}

	multiplier, err := s.theatreService.PriceMultiplierFor(ctx, instance.TheatreID)
	if err != nil {
		return showtimes.InstanceID{}, 0, err
	}

	return instance, multiplier, nil
}

func (s *service) GetSeatMap(ctx context.Context, key string) (*SeatMapResponse, error) {
	cacheKey := constants.BuildSeatMapKey(key)

	if s.cacheService != nil {
		var cached SeatMapResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	_, multiplier, err := s.resolve(ctx, key)
	if err != nil {
		return nil, err
	}

	booked, err := s.repo.GetBookedSeatIDs(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load seat records: %w", err)
	}

	response := &SeatMapResponse{
		ShowtimeKey:     key,
		Rows:            RowLabels(),
		SeatsPerRow:     SeatsPerRow,
		PriceMultiplier: multiplier,
		Seats:           Generate(booked, multiplier),
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, response, constants.TTL_SEAT_MAP); err != nil {
			s.log.WarnContext(ctx, "failed to cache seat map", "key", cacheKey, "error", err.Error())
		}
	}

	return response, nil
}

func (s *service) Quote(ctx context.Context, key string, seatIDs []string) (*QuoteResponse, error) {
	_, multiplier, err := s.resolve(ctx, key)
	if err != nil {
		return nil, err
	}

	perSeat := make(map[string]int, len(seatIDs))
	total := 0
	for _, seatID := range seatIDs {
		price, err := UnitPrice(seatID, multiplier)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSeat, seatID)
		}
		perSeat[seatID] = price
		total += price
	}

	return &QuoteResponse{
		ShowtimeKey:     key,
		Seats:           seatIDs,
		PriceMultiplier: multiplier,
		PerSeat:         perSeat,
		Total:           total,
	}, nil
}

func (s *service) UpdateSeatStatus(ctx context.Context, key, seatID string, status SeatStatus) error {
	if _, _, err := ParseSeatID(seatID); err != nil {
		return ErrInvalidSeat
	}
	if !status.IsValid() {
		return fmt.Errorf("invalid seat status: %s", status)
	}

	if _, _, err := s.resolve(ctx, key); err != nil {
		return err
	}

	if err := s.repo.UpsertStatus(ctx, key, seatID, status); err != nil {
		return fmt.Errorf("failed to update seat status: %w", err)
	}

	s.invalidateSeatMap(ctx, key)
	s.publish(ctx, key, seatID, status)
	s.log.LogSeatStatusChanged(ctx, key, seatID, string(status))

	return nil
}

func (s *service) MarkBooked(ctx context.Context, key string, seatIDs []string) error {
	for _, seatID := range seatIDs {
		if _, _, err := ParseSeatID(seatID); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidSeat, seatID)
		}
	}

	booked, err := s.repo.GetBookedSeatIDs(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to load seat records: %w", err)
	}
	for _, seatID := range seatIDs {
		if booked[seatID] {
			return fmt.Errorf("%w: %s", ErrSeatAlreadyBooked, seatID)
		}
	}

	if err := s.repo.UpsertStatusBatch(ctx, key, seatIDs, StatusBooked); err != nil {
		return fmt.Errorf("failed to mark seats booked: %w", err)
	}

	s.invalidateSeatMap(ctx, key)
	for _, seatID := range seatIDs {
		s.publish(ctx, key, seatID, StatusBooked)
	}

	return nil
}

func (s *service) Subscribe(ctx context.Context, key string) (<-chan SeatUpdateEvent, error) {
	if s.redisClient == nil {
		return nil, errors.New("live updates unavailable")
	}

	pubsub := s.redisClient.Subscribe(ctx, constants.BuildSeatUpdatesChannel(key))
	events := make(chan SeatUpdateEvent)

	go func() {
		defer close(events)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event SeatUpdateEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}

func (s *service) publish(ctx context.Context, key, seatID string, status SeatStatus) {
	if s.redisClient == nil {
		return
	}

	event := SeatUpdateEvent{
		ShowtimeKey: key,
		SeatID:      seatID,
		Status:      status,
		UpdatedAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	if err := s.redisClient.Publish(ctx, constants.BuildSeatUpdatesChannel(key), payload).Err(); err != nil {
		s.log.WarnContext(ctx, "failed to publish seat update", "showtime_key", key, "error", err.Error())
	}
}

func (s *service) invalidateSeatMap(ctx context.Context, key string) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.BuildSeatMapKey(key)); err != nil {
		s.log.WarnContext(ctx, "failed to invalidate seat map cache", "showtime_key", key, "error", err.Error())
	}
}
