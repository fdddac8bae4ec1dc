package bookings

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cinebook/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCacheService keeps serialized values in a map, mirroring how the
// real service marshals through Redis.
type fakeCacheService struct {
	store map[string][]byte
}

func newFakeCacheService() *fakeCacheService {
	return &fakeCacheService{store: make(map[string][]byte)}
}

func (f *fakeCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := f.store[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = data
	return nil
}

func (f *fakeCacheService) Delete(ctx context.Context, key string) error {
	delete(f.store, key)
	return nil
}

func (f *fakeCacheService) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}

func (f *fakeCacheService) Exists(ctx context.Context, key string) bool {
	_, ok := f.store[key]
	return ok
}

func (f *fakeCacheService) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	if err := f.Get(ctx, key, dest); err == nil {
		return nil
	}
	value, err := fetcher()
	if err != nil {
		return err
	}
	if err := f.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return f.Get(ctx, key, dest)
}

func (f *fakeCacheService) Ping(ctx context.Context) error {
	return nil
}

func TestLedgerListEmpty(t *testing.T) {
	l := NewLedger(newFakeCacheService())

	parked, err := l.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, parked)
}

func TestLedgerAppendPrependsNewest(t *testing.T) {
	l := NewLedger(newFakeCacheService())
	userID := uuid.New()

	first := Booking{ID: uuid.New(), BookingRef: "BK1", Status: StatusConfirmed}
	second := Booking{ID: uuid.New(), BookingRef: "BK2", Status: StatusConfirmed}

	require.NoError(t, l.Append(context.Background(), userID, first))
	require.NoError(t, l.Append(context.Background(), userID, second))

	parked, err := l.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, parked, 2)
	assert.Equal(t, "BK2", parked[0].BookingRef)
	assert.Equal(t, "BK1", parked[1].BookingRef)
}

func TestLedgerIsolatesUsers(t *testing.T) {
	l := NewLedger(newFakeCacheService())
	alice := uuid.New()
	bob := uuid.New()

	require.NoError(t, l.Append(context.Background(), alice, Booking{ID: uuid.New(), BookingRef: "BK1"}))

	parked, err := l.List(context.Background(), bob)
	require.NoError(t, err)
	assert.Empty(t, parked)
}

func TestLedgerReplace(t *testing.T) {
	l := NewLedger(newFakeCacheService())
	userID := uuid.New()

	require.NoError(t, l.Append(context.Background(), userID, Booking{ID: uuid.New(), BookingRef: "BK1"}))
	require.NoError(t, l.Replace(context.Background(), userID, []Booking{}))

	parked, err := l.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, parked)
}

func TestLedgerWithoutCache(t *testing.T) {
	l := NewLedger(nil)

	parked, err := l.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, parked)

	err = l.Append(context.Background(), uuid.New(), Booking{ID: uuid.New()})
	assert.Error(t, err)
}
