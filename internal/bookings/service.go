package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"cinebook/internal/movies"
	"cinebook/internal/seats"
	"cinebook/internal/showtimes"
	"cinebook/internal/theatres"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrNoSeatsSelected  = errors.New("no seats selected")
	ErrDuplicateSeats   = errors.New("duplicate seats in selection")
	ErrShowtimeInPast   = errors.New("showtime already started")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrShowtimeNotPast  = errors.New("showtime has not passed yet")
	ErrNotBookingOwner  = errors.New("booking belongs to another user")
)

// NotificationPublisher emits booking lifecycle events. Implementations are
// best-effort; checkout never fails because of a notification.
type NotificationPublisher interface {
	BookingConfirmed(ctx context.Context, booking *Booking) error
	BookingCancelled(ctx context.Context, booking *Booking) error
}

type Service interface {
	// CreateBooking runs the checkout: validate, price, charge, mark seats,
	// persist. userID is nil for guest checkouts.
	CreateBooking(ctx context.Context, userID *uuid.UUID, req *CreateBookingRequest) (*BookingResponse, error)

	ListUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*BookingListResponse, error)
	GetBookingByRef(ctx context.Context, bookingRef string) (*BookingResponse, error)

	// CancelBooking refuses past screenings and repeated cancellations
	CancelBooking(ctx context.Context, id uuid.UUID, userID uuid.UUID, isAdmin bool) (*BookingResponse, error)

	// DeleteBooking removes a ticket record, allowed only once the
	// screening has passed
	DeleteBooking(ctx context.Context, id uuid.UUID, userID uuid.UUID, isAdmin bool) error

	// Admin listing
	ListAllBookings(ctx context.Context, query BookingListQuery) (*BookingListResponse, error)

	SetNotificationPublisher(publisher NotificationPublisher)
}

type service struct {
	repo            Repository
	ledger          Ledger
	payments        PaymentProcessor
	seatService     seats.Service
	showtimeService showtimes.Service
	movieService    movies.Service
	theatreService  theatres.Service
	notifier        NotificationPublisher
	log             *logger.Logger
}

func NewService(
	repo Repository,
	ledger Ledger,
	payments PaymentProcessor,
	seatService seats.Service,
	showtimeService showtimes.Service,
	movieService movies.Service,
	theatreService theatres.Service,
) Service {
	return &service{
		repo:            repo,
		ledger:          ledger,
		payments:        payments,
		seatService:     seatService,
		showtimeService: showtimeService,
		movieService:    movieService,
		theatreService:  theatreService,
		log:             logger.GetDefault(),
	}
}

func (s *service) SetNotificationPublisher(publisher NotificationPublisher) {
	s.notifier = publisher
}

func (s *service) CreateBooking(ctx context.Context, userID *uuid.UUID, req *CreateBookingRequest) (*BookingResponse, error) {
	// All request validation happens before any write: an invalid checkout
	// must leave no trace in storage
	if len(req.Seats) == 0 {
		return nil, ErrNoSeatsSelected
	}
	seen := make(map[string]bool, len(req.Seats))
	for _, seatID := range req.Seats {
		if seen[seatID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSeats, seatID)
		}
		seen[seatID] = true
	}

	method := PaymentMethod(req.PaymentMethod)
	if !method.IsValid() {
		return nil, fmt.Errorf("unsupported payment method: %s", req.PaymentMethod)
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}
	theatreID, err := uuid.Parse(req.TheatreID)
	if err != nil {
		return nil, fmt.Errorf("invalid theatre id: %w", err)
	}

	instance := showtimes.InstanceID{
		MovieID:   movieID,
		TheatreID: theatreID,
		Date:      req.ShowtimeDate,
		Time:      req.ShowtimeTime,
	}
	if err := s.showtimeService.ResolveInstance(ctx, instance); err != nil {
		return nil, err
	}

	startsAt, err := instance.StartsAt()
	if err != nil {
		return nil, err
	}
	if startsAt.Before(time.Now()) {
		return nil, ErrShowtimeInPast
	}

	movie, err := s.movieService.GetMovieByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("movie lookup failed: %w", err)
	}
	theatre, err := s.theatreService.GetTheatreByID(ctx, theatreID)
	if err != nil {
		return nil, fmt.Errorf("theatre lookup failed: %w", err)
	}

	key := instance.String()

	quote, err := s.seatService.Quote(ctx, key, req.Seats)
	if err != nil {
		return nil, err
	}

	// Simulated gateway: fixed delay, cannot decline
	transactionID, err := s.payments.Process(ctx, quote.Total, method)
	if err != nil {
		return nil, fmt.Errorf("payment failed: %w", err)
	}

	if err := s.seatService.MarkBooked(ctx, key, req.Seats); err != nil {
		return nil, err
	}

	booking := &Booking{
		UserID:        userID,
		BookingRef:    newBookingRef(),
		ShowtimeKey:   key,
		MovieID:       movieID,
		MovieTitle:    movie.Title,
		TheatreID:     theatreID,
		TheatreName:   theatre.Name,
		ShowtimeDate:  req.ShowtimeDate,
		ShowtimeTime:  req.ShowtimeTime,
		TotalPrice:    quote.Total,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: string(method),
		TransactionID: transactionID,
		Status:        StatusConfirmed,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	booking.SetSeats(req.Seats)

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		// Seats are already marked; park the ticket in the fallback ledger
		// so the customer does not lose a paid booking
		booking.ID = uuid.New()
		if ledgerErr := s.ledger.Append(ctx, ledgerOwner(userID), *booking); ledgerErr != nil {
			return nil, fmt.Errorf("failed to record booking: %w", err)
		}
		s.log.WarnContext(ctx, "booking stored in fallback ledger",
			"booking_ref", booking.BookingRef, "error", err.Error())
	}

	s.log.LogBookingCreated(ctx, booking.BookingRef, key, ledgerOwner(userID).String())

	if s.notifier != nil {
		if err := s.notifier.BookingConfirmed(ctx, booking); err != nil {
			s.log.WarnContext(ctx, "failed to publish booking confirmation",
				"booking_ref", booking.BookingRef, "error", err.Error())
		}
	}

	response := booking.ToResponse()
	return &response, nil
}

func (s *service) ListUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*BookingListResponse, error) {
	stored, err := s.repo.GetUserBookings(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	parked, err := s.ledger.List(ctx, userID)
	if err != nil {
		s.log.WarnContext(ctx, "failed to read fallback ledger", "error", err.Error())
		parked = nil
	}

	merged := append(stored, filterLedger(parked, query)...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	responses := make([]BookingResponse, len(merged))
	for i, booking := range merged {
		responses[i] = booking.ToResponse()
	}

	return &BookingListResponse{
		Bookings:   responses,
		TotalCount: len(responses),
		Degraded:   len(parked) > 0,
	}, nil
}

func (s *service) GetBookingByRef(ctx context.Context, bookingRef string) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByRef(ctx, bookingRef)
	if err == nil {
		response := booking.ToResponse()
		return &response, nil
	}
	if !errors.Is(err, ErrBookingNotFound) {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	// Guest bookings that parked in the ledger are only reachable by ref,
	// so check that bucket before giving up.
	if s.ledger != nil {
		parked, ledgerErr := s.ledger.List(ctx, uuid.Nil)
		if ledgerErr == nil {
			for i := range parked {
				if parked[i].BookingRef == bookingRef {
					response := parked[i].ToResponse()
					return &response, nil
				}
			}
		}
	}

	return nil, ErrBookingNotFound
}

func (s *service) CancelBooking(ctx context.Context, id uuid.UUID, userID uuid.UUID, isAdmin bool) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return s.cancelLedgerBooking(ctx, id, userID)
		}
		return nil, err
	}

	if err := checkOwnership(booking, userID, isAdmin); err != nil {
		return nil, err
	}

	if booking.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}
	if booking.IsPast(time.Now()) {
		return nil, ErrShowtimeInPast
	}

	now := time.Now()
	if err := s.repo.UpdateBookingStatus(ctx, id, StatusCancelled, &now); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	booking.Cancel()
	s.log.LogBookingCancelled(ctx, booking.BookingRef, userID.String())

	if s.notifier != nil {
		if err := s.notifier.BookingCancelled(ctx, booking); err != nil {
			s.log.WarnContext(ctx, "failed to publish booking cancellation",
				"booking_ref", booking.BookingRef, "error", err.Error())
		}
	}

	response := booking.ToResponse()
	return &response, nil
}

// cancelLedgerBooking handles tickets that parked in the fallback ledger.
// Ledger buckets are keyed by owner, so only the caller's own bucket is
// searched; admins have no cross-bucket view of degraded tickets.
func (s *service) cancelLedgerBooking(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*BookingResponse, error) {
	parked, err := s.ledger.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read fallback ledger: %w", err)
	}

	for i := range parked {
		if parked[i].ID != id {
			continue
		}
		if parked[i].IsCancelled() {
			return nil, ErrAlreadyCancelled
		}
		if parked[i].IsPast(time.Now()) {
			return nil, ErrShowtimeInPast
		}

		parked[i].Cancel()
		if err := s.ledger.Replace(ctx, userID, parked); err != nil {
			return nil, fmt.Errorf("failed to cancel booking: %w", err)
		}

		s.log.LogBookingCancelled(ctx, parked[i].BookingRef, userID.String())
		response := parked[i].ToResponse()
		return &response, nil
	}

	return nil, ErrBookingNotFound
}

func (s *service) DeleteBooking(ctx context.Context, id uuid.UUID, userID uuid.UUID, isAdmin bool) error {
	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return s.deleteLedgerBooking(ctx, id, userID)
		}
		return err
	}

	if err := checkOwnership(booking, userID, isAdmin); err != nil {
		return err
	}

	// Tickets stay visible until the screening has passed
	if !booking.IsPast(time.Now()) {
		return ErrShowtimeNotPast
	}

	return s.repo.DeleteBooking(ctx, id)
}

func (s *service) deleteLedgerBooking(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	parked, err := s.ledger.List(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to read fallback ledger: %w", err)
	}

	for i := range parked {
		if parked[i].ID != id {
			continue
		}
		if !parked[i].IsPast(time.Now()) {
			return ErrShowtimeNotPast
		}
		remaining := append(parked[:i:i], parked[i+1:]...)
		return s.ledger.Replace(ctx, userID, remaining)
	}

	return ErrBookingNotFound
}

func (s *service) ListAllBookings(ctx context.Context, query BookingListQuery) (*BookingListResponse, error) {
	bookingsList, totalCount, err := s.repo.GetAllBookings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	responses := make([]BookingResponse, len(bookingsList))
	for i, booking := range bookingsList {
		responses[i] = booking.ToResponse()
	}

	return &BookingListResponse{
		Bookings:   responses,
		TotalCount: int(totalCount),
	}, nil
}

func checkOwnership(booking *Booking, userID uuid.UUID, isAdmin bool) error {
	if isAdmin {
		return nil
	}
	if booking.UserID == nil || *booking.UserID != userID {
		return ErrNotBookingOwner
	}
	return nil
}

// ledgerOwner buckets guest tickets under the zero UUID
func ledgerOwner(userID *uuid.UUID) uuid.UUID {
	if userID != nil {
		return *userID
	}
	return uuid.Nil
}

func filterLedger(parked []Booking, query BookingListQuery) []Booking {
	if len(parked) == 0 {
		return nil
	}

	now := time.Now()
	filtered := make([]Booking, 0, len(parked))
	for _, booking := range parked {
		if query.Status != "" && string(booking.Status) != query.Status {
			continue
		}
		switch query.Filter {
		case "upcoming":
			if booking.IsPast(now) {
				continue
			}
		case "past":
			if !booking.IsPast(now) {
				continue
			}
		}
		filtered = append(filtered, booking)
	}
	return filtered
}

func newBookingRef() string {
	return fmt.Sprintf("BK%d", time.Now().UnixMilli())
}
