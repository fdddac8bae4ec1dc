package bookings

import (
	"context"
	"errors"
	"fmt"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"

	"github.com/google/uuid"
)

// Ledger is the Redis fallback store used when primary storage rejects a
// write. Each user's tickets live under one key as a single serialized list;
// every mutation rewrites the whole list, mirroring how small the degraded
// path is expected to stay.
type Ledger interface {
	Append(ctx context.Context, userID uuid.UUID, booking Booking) error
	List(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	Replace(ctx context.Context, userID uuid.UUID, bookingsList []Booking) error
}

type ledger struct {
	cacheService cache.Service
}

func NewLedger(cacheService cache.Service) Ledger {
	return &ledger{cacheService: cacheService}
}

func (l *ledger) Append(ctx context.Context, userID uuid.UUID, booking Booking) error {
	if l.cacheService == nil {
		return errors.New("fallback ledger unavailable")
	}

	existing, err := l.List(ctx, userID)
	if err != nil {
		return err
	}

	// newest first, matching primary storage ordering
	updated := append([]Booking{booking}, existing...)
	return l.Replace(ctx, userID, updated)
}

func (l *ledger) List(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	if l.cacheService == nil {
		return []Booking{}, nil
	}

	key := constants.BuildBookingLedgerKey(userID.String())

	var bookingsList []Booking
	err := l.cacheService.Get(ctx, key, &bookingsList)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return []Booking{}, nil
		}
		return nil, fmt.Errorf("failed to read fallback ledger: %w", err)
	}

	return bookingsList, nil
}

func (l *ledger) Replace(ctx context.Context, userID uuid.UUID, bookingsList []Booking) error {
	if l.cacheService == nil {
		return errors.New("fallback ledger unavailable")
	}

	key := constants.BuildBookingLedgerKey(userID.String())
	if err := l.cacheService.Set(ctx, key, bookingsList, 0); err != nil {
		return fmt.Errorf("failed to write fallback ledger: %w", err)
	}
	return nil
}
