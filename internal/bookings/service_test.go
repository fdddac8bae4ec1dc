package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinebook/internal/movies"
	"cinebook/internal/seats"
	"cinebook/internal/showtimes"
	"cinebook/internal/theatres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateBooking(ctx context.Context, booking *Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) GetBookingByRef(ctx context.Context, bookingRef string) (*Booking, error) {
	args := m.Called(ctx, bookingRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockRepository) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error {
	args := m.Called(ctx, id, status, cancelledAt)
	return args.Error(0)
}

func (m *MockRepository) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLedger is a mock implementation of Ledger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Append(ctx context.Context, userID uuid.UUID, booking Booking) error {
	args := m.Called(ctx, userID, booking)
	return args.Error(0)
}

func (m *MockLedger) List(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockLedger) Replace(ctx context.Context, userID uuid.UUID, bookingsList []Booking) error {
	args := m.Called(ctx, userID, bookingsList)
	return args.Error(0)
}

// MockPaymentProcessor is a mock implementation of PaymentProcessor
type MockPaymentProcessor struct {
	mock.Mock
}

func (m *MockPaymentProcessor) Process(ctx context.Context, amount int, method PaymentMethod) (string, error) {
	args := m.Called(ctx, amount, method)
	return args.String(0), args.Error(1)
}

// MockSeatService mocks the seats.Service methods the checkout uses
type MockSeatService struct {
	mock.Mock
	seats.Service
}

func (m *MockSeatService) Quote(ctx context.Context, key string, seatIDs []string) (*seats.QuoteResponse, error) {
	args := m.Called(ctx, key, seatIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*seats.QuoteResponse), args.Error(1)
}

func (m *MockSeatService) MarkBooked(ctx context.Context, key string, seatIDs []string) error {
	args := m.Called(ctx, key, seatIDs)
	return args.Error(0)
}

// MockShowtimeService mocks the showtimes.Service methods the checkout uses
type MockShowtimeService struct {
	mock.Mock
	showtimes.Service
}

func (m *MockShowtimeService) ResolveInstance(ctx context.Context, id showtimes.InstanceID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMovieService mocks movies.Service lookups
type MockMovieService struct {
	mock.Mock
	movies.Service
}

func (m *MockMovieService) GetMovieByID(ctx context.Context, id uuid.UUID) (*movies.MovieResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*movies.MovieResponse), args.Error(1)
}

// MockTheatreService mocks theatres.Service lookups
type MockTheatreService struct {
	mock.Mock
	theatres.Service
}

func (m *MockTheatreService) GetTheatreByID(ctx context.Context, id uuid.UUID) (*theatres.TheatreResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*theatres.TheatreResponse), args.Error(1)
}

type serviceMocks struct {
	repo     *MockRepository
	ledger   *MockLedger
	payments *MockPaymentProcessor
	seat     *MockSeatService
	showtime *MockShowtimeService
	movie    *MockMovieService
	theatre  *MockTheatreService
}

func newTestService() (Service, *serviceMocks) {
	m := &serviceMocks{
		repo:     &MockRepository{},
		ledger:   &MockLedger{},
		payments: &MockPaymentProcessor{},
		seat:     &MockSeatService{},
		showtime: &MockShowtimeService{},
		movie:    &MockMovieService{},
		theatre:  &MockTheatreService{},
	}
	svc := NewService(m.repo, m.ledger, m.payments, m.seat, m.showtime, m.movie, m.theatre)
	return svc, m
}

func validRequest() *CreateBookingRequest {
	return &CreateBookingRequest{
		MovieID:       uuid.New().String(),
		TheatreID:     uuid.New().String(),
		ShowtimeDate:  time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		ShowtimeTime:  "18:45",
		Seats:         []string{"A1", "F3"},
		CustomerName:  "Asha Rai",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "9800000000",
		PaymentMethod: "esewa",
	}
}

func TestCreateBooking(t *testing.T) {
	svc, m := newTestService()
	req := validRequest()

	m.showtime.On("ResolveInstance", mock.Anything, mock.Anything).Return(nil)
	m.movie.On("GetMovieByID", mock.Anything, mock.Anything).
		Return(&movies.MovieResponse{Title: "Inception"}, nil)
	m.theatre.On("GetTheatreByID", mock.Anything, mock.Anything).
		Return(&theatres.TheatreResponse{Name: "City Plex", PriceMultiplier: 1.2}, nil)
	m.seat.On("Quote", mock.Anything, mock.Anything, req.Seats).
		Return(&seats.QuoteResponse{Total: 720, PerSeat: map[string]int{"A1": 420, "F3": 300}}, nil)
	m.payments.On("Process", mock.Anything, 720, PaymentEsewa).Return("TXN123", nil)
	m.seat.On("MarkBooked", mock.Anything, mock.Anything, req.Seats).Return(nil)
	m.repo.On("CreateBooking", mock.Anything, mock.AnythingOfType("*bookings.Booking")).Return(nil)

	userID := uuid.New()
	resp, err := svc.CreateBooking(context.Background(), &userID, req)
	require.NoError(t, err)

	assert.Equal(t, "Inception", resp.MovieTitle)
	assert.Equal(t, "City Plex", resp.TheatreName)
	assert.Equal(t, 720, resp.TotalPrice)
	assert.Equal(t, []string{"A1", "F3"}, resp.Seats)
	assert.Equal(t, 2, resp.SeatCount)
	assert.Equal(t, "TXN123", resp.TransactionID)
	assert.Equal(t, StatusConfirmed, resp.Status)
	assert.Contains(t, resp.BookingRef, "BK")

	m.repo.AssertExpectations(t)
	m.payments.AssertExpectations(t)
	m.seat.AssertExpectations(t)
}

func TestCreateBookingRejectsEmptySelectionBeforeAnyWrite(t *testing.T) {
	svc, m := newTestService()
	req := validRequest()
	req.Seats = nil

	_, err := svc.CreateBooking(context.Background(), nil, req)
	assert.ErrorIs(t, err, ErrNoSeatsSelected)

	// Nothing downstream may run for an invalid request
	m.payments.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
	m.seat.AssertNotCalled(t, "MarkBooked", mock.Anything, mock.Anything, mock.Anything)
	m.repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCreateBookingRejectsDuplicateSeats(t *testing.T) {
	svc, _ := newTestService()
	req := validRequest()
	req.Seats = []string{"A1", "A1"}

	_, err := svc.CreateBooking(context.Background(), nil, req)
	assert.ErrorIs(t, err, ErrDuplicateSeats)
}

func TestCreateBookingRejectsUnknownPaymentMethod(t *testing.T) {
	svc, _ := newTestService()
	req := validRequest()
	req.PaymentMethod = "paypal"

	_, err := svc.CreateBooking(context.Background(), nil, req)
	assert.Error(t, err)
}

func TestCreateBookingPropagatesSeatConflict(t *testing.T) {
	svc, m := newTestService()
	req := validRequest()

	m.showtime.On("ResolveInstance", mock.Anything, mock.Anything).Return(nil)
	m.movie.On("GetMovieByID", mock.Anything, mock.Anything).
		Return(&movies.MovieResponse{Title: "Inception"}, nil)
	m.theatre.On("GetTheatreByID", mock.Anything, mock.Anything).
		Return(&theatres.TheatreResponse{Name: "Grand Cinema"}, nil)
	m.seat.On("Quote", mock.Anything, mock.Anything, req.Seats).
		Return(&seats.QuoteResponse{Total: 600}, nil)
	m.payments.On("Process", mock.Anything, 600, PaymentEsewa).Return("TXN1", nil)
	m.seat.On("MarkBooked", mock.Anything, mock.Anything, req.Seats).
		Return(seats.ErrSeatAlreadyBooked)

	_, err := svc.CreateBooking(context.Background(), nil, req)
	assert.ErrorIs(t, err, seats.ErrSeatAlreadyBooked)
	m.repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCreateBookingFallsBackToLedger(t *testing.T) {
	svc, m := newTestService()
	req := validRequest()

	m.showtime.On("ResolveInstance", mock.Anything, mock.Anything).Return(nil)
	m.movie.On("GetMovieByID", mock.Anything, mock.Anything).
		Return(&movies.MovieResponse{Title: "Inception"}, nil)
	m.theatre.On("GetTheatreByID", mock.Anything, mock.Anything).
		Return(&theatres.TheatreResponse{Name: "Grand Cinema"}, nil)
	m.seat.On("Quote", mock.Anything, mock.Anything, req.Seats).
		Return(&seats.QuoteResponse{Total: 600}, nil)
	m.payments.On("Process", mock.Anything, 600, PaymentEsewa).Return("TXN1", nil)
	m.seat.On("MarkBooked", mock.Anything, mock.Anything, req.Seats).Return(nil)
	m.repo.On("CreateBooking", mock.Anything, mock.Anything).Return(errors.New("db down"))

	userID := uuid.New()
	m.ledger.On("Append", mock.Anything, userID, mock.AnythingOfType("bookings.Booking")).Return(nil)

	resp, err := svc.CreateBooking(context.Background(), &userID, req)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, resp.Status)
	m.ledger.AssertExpectations(t)
}

func TestCreateBookingRejectsPastShowtime(t *testing.T) {
	svc, m := newTestService()
	req := validRequest()
	req.ShowtimeDate = time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	m.showtime.On("ResolveInstance", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CreateBooking(context.Background(), nil, req)
	assert.ErrorIs(t, err, ErrShowtimeInPast)
}

func TestListUserBookingsMergesLedgerNewestFirst(t *testing.T) {
	svc, m := newTestService()
	userID := uuid.New()

	stored := []Booking{
		{BookingRef: "BK2", CreatedAt: time.Now().Add(-2 * time.Hour)},
		{BookingRef: "BK1", CreatedAt: time.Now().Add(-4 * time.Hour)},
	}
	parked := []Booking{
		{BookingRef: "BK3", CreatedAt: time.Now().Add(-1 * time.Hour)},
	}

	m.repo.On("GetUserBookings", mock.Anything, userID, BookingListQuery{}).Return(stored, nil)
	m.ledger.On("List", mock.Anything, userID).Return(parked, nil)

	resp, err := svc.ListUserBookings(context.Background(), userID, BookingListQuery{})
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 3)
	assert.Equal(t, "BK3", resp.Bookings[0].BookingRef)
	assert.Equal(t, "BK2", resp.Bookings[1].BookingRef)
	assert.Equal(t, "BK1", resp.Bookings[2].BookingRef)
	assert.True(t, resp.Degraded)
}

func TestListUserBookingsWithoutLedgerEntries(t *testing.T) {
	svc, m := newTestService()
	userID := uuid.New()

	m.repo.On("GetUserBookings", mock.Anything, userID, BookingListQuery{}).Return([]Booking{}, nil)
	m.ledger.On("List", mock.Anything, userID).Return([]Booking{}, nil)

	resp, err := svc.ListUserBookings(context.Background(), userID, BookingListQuery{})
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
	assert.False(t, resp.Degraded)
}

func TestCancelBooking(t *testing.T) {
	svc, m := newTestService()
	userID := uuid.New()
	bookingID := uuid.New()

	booking := &Booking{
		ID:           bookingID,
		UserID:       &userID,
		BookingRef:   "BK1",
		Status:       StatusConfirmed,
		ShowtimeDate: time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
		ShowtimeTime: "18:45",
	}

	m.repo.On("GetBookingByID", mock.Anything, bookingID).Return(booking, nil)
	m.repo.On("UpdateBookingStatus", mock.Anything, bookingID, StatusCancelled, mock.AnythingOfType("*time.Time")).Return(nil)

	resp, err := svc.CancelBooking(context.Background(), bookingID, userID, false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, resp.Status)
	assert.NotNil(t, resp.CancelledAt)
	m.repo.AssertExpectations(t)
}

func TestCancelBookingRejectsPastShowtime(t *testing.T) {
	svc, m := newTestService()
	userID := uuid.New()
	bookingID := uuid.New()

	booking := &Booking{
		ID:           bookingID,
		UserID:       &userID,
		Status:       StatusConfirmed,
		ShowtimeDate: "2024-01-01",
		ShowtimeTime: "18:45",
	}

	m.repo.On("GetBookingByID", mock.Anything, bookingID).Return(booking, nil)

	_, err := svc.CancelBooking(context.Background(), bookingID, userID, false)
	assert.ErrorIs(t, err, ErrShowtimeInPast)
	m.repo.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBookingRejectsDoubleCancel(t *testing.T) {
	svc, m := newTestService()
	userID := uuid.New()
	bookingID := uuid.New()

	booking := &Booking{
		ID:           bookingID,
		UserID:       &userID,
		Status:       StatusCancelled,
		ShowtimeDate: time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
		ShowtimeTime: "18:45",
	}

	m.repo.On("GetBookingByID", mock.Anything, bookingID).Return(booking, nil)

	_, err := svc.CancelBooking(context.Background(), bookingID, userID, false)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancelBookingRejectsOtherUsers(t *testing.T) {
	svc, m := newTestService()
	owner := uuid.New()
	bookingID := uuid.New()

	booking := &Booking{
		ID:           bookingID,
		UserID:       &owner,
		Status:       StatusConfirmed,
		ShowtimeDate: time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
		ShowtimeTime: "18:45",
	}

	m.repo.On("GetBookingByID", mock.Anything, bookingID).Return(booking, nil)

	_, err := svc.CancelBooking(context.Background(), bookingID, uuid.New(), false)
	assert.ErrorIs(t, err, ErrNotBookingOwner)
}

func TestCancelBookingAdminOverridesOwnership(t *testing.T) {
	svc, m := newTestService()
	owner := uuid.New()
	bookingID := uuid.New()

	booking := &Booking{
		ID:           bookingID,
		UserID:       &owner,
		Status:       StatusConfirmed,
		ShowtimeDate: time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
		ShowtimeTime: "18:45",
	}

	m.repo.On("GetBookingByID", mock.Anything, bookingID).Return(booking, nil)
	m.repo.On("UpdateBookingStatus", mock.Anything, bookingID, StatusCancelled, mock.AnythingOfType("*time.Time")).Return(nil)

	_, err := svc.CancelBooking(context.Background(), bookingID, uuid.New(), true)
	assert.NoError(t, err)
}

func TestDeleteBookingRequiresPastShowtime(t *testing.T) {
	svc, m := newTestService()
	userID := uuid.New()
	bookingID := uuid.New()

	booking := &Booking{
		ID:           bookingID,
		UserID:       &userID,
		Status:       StatusConfirmed,
		ShowtimeDate: time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
		ShowtimeTime: "18:45",
	}

	m.repo.On("GetBookingByID", mock.Anything, bookingID).Return(booking, nil)

	err := svc.DeleteBooking(context.Background(), bookingID, userID, false)
	assert.ErrorIs(t, err, ErrShowtimeNotPast)
	m.repo.AssertNotCalled(t, "DeleteBooking", mock.Anything, mock.Anything)
}

func TestDeleteBookingOfPastShowtime(t *testing.T) {
	svc, m := newTestService()
	userID := uuid.New()
	bookingID := uuid.New()

	booking := &Booking{
		ID:           bookingID,
		UserID:       &userID,
		Status:       StatusCancelled,
		ShowtimeDate: "2024-01-01",
		ShowtimeTime: "18:45",
	}

	m.repo.On("GetBookingByID", mock.Anything, bookingID).Return(booking, nil)
	m.repo.On("DeleteBooking", mock.Anything, bookingID).Return(nil)

	err := svc.DeleteBooking(context.Background(), bookingID, userID, false)
	assert.NoError(t, err)
	m.repo.AssertExpectations(t)
}

func TestCancelBookingFromLedger(t *testing.T) {
	svc, m := newTestService()
	userID := uuid.New()
	bookingID := uuid.New()

	parked := Booking{
		ID:           bookingID,
		UserID:       &userID,
		BookingRef:   "BK9",
		Status:       StatusConfirmed,
		ShowtimeDate: time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
		ShowtimeTime: "18:45",
	}

	m.repo.On("GetBookingByID", mock.Anything, bookingID).Return(nil, ErrBookingNotFound)
	m.ledger.On("List", mock.Anything, userID).Return([]Booking{parked}, nil)
	m.ledger.On("Replace", mock.Anything, userID, mock.MatchedBy(func(list []Booking) bool {
		return len(list) == 1 && list[0].Status == StatusCancelled
	})).Return(nil)

	resp, err := svc.CancelBooking(context.Background(), bookingID, userID, false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, resp.Status)
	m.ledger.AssertExpectations(t)
}

func TestDeleteBookingFromLedger(t *testing.T) {
	svc, m := newTestService()
	userID := uuid.New()
	bookingID := uuid.New()

	parked := Booking{
		ID:           bookingID,
		UserID:       &userID,
		BookingRef:   "BK9",
		Status:       StatusConfirmed,
		ShowtimeDate: "2024-01-01",
		ShowtimeTime: "18:45",
	}

	m.repo.On("GetBookingByID", mock.Anything, bookingID).Return(nil, ErrBookingNotFound)
	m.ledger.On("List", mock.Anything, userID).Return([]Booking{parked}, nil)
	m.ledger.On("Replace", mock.Anything, userID, mock.MatchedBy(func(list []Booking) bool {
		return len(list) == 0
	})).Return(nil)

	err := svc.DeleteBooking(context.Background(), bookingID, userID, false)
	assert.NoError(t, err)
	m.ledger.AssertExpectations(t)
}

func TestGetBookingByRef(t *testing.T) {
	svc, m := newTestService()

	booking := &Booking{BookingRef: "BK42", MovieTitle: "Dune"}
	m.repo.On("GetBookingByRef", mock.Anything, "BK42").Return(booking, nil)

	resp, err := svc.GetBookingByRef(context.Background(), "BK42")
	require.NoError(t, err)
	assert.Equal(t, "Dune", resp.MovieTitle)
}

func TestGetBookingByRefNotFound(t *testing.T) {
	svc, m := newTestService()

	m.repo.On("GetBookingByRef", mock.Anything, "BK404").Return(nil, ErrBookingNotFound)
	m.ledger.On("List", mock.Anything, uuid.Nil).Return([]Booking{}, nil)

	_, err := svc.GetBookingByRef(context.Background(), "BK404")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetBookingByRefFallsBackToGuestLedger(t *testing.T) {
	svc, m := newTestService()

	m.repo.On("GetBookingByRef", mock.Anything, "BK77").Return(nil, ErrBookingNotFound)
	m.ledger.On("List", mock.Anything, uuid.Nil).Return([]Booking{
		{ID: uuid.New(), BookingRef: "BK77", MovieTitle: "Parasite"},
	}, nil)

	resp, err := svc.GetBookingByRef(context.Background(), "BK77")
	require.NoError(t, err)
	assert.Equal(t, "Parasite", resp.MovieTitle)
}
