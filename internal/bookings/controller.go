package bookings

import (
	"errors"
	"net/http"

	"cinebook/internal/seats"
	"cinebook/internal/showtimes"
	"cinebook/internal/shared/utils/response"
	"cinebook/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	v := validator.New()
	if err := v.RegisterValidation("phone", validPhone); err != nil {
		panic(err)
	}

	return &Controller{
		service:   service,
		validator: v,
	}
}

// CreateBooking handles checkout. Runs behind OptionalAuth: an authenticated
// caller gets the ticket attached to their account, an anonymous one books
// as a guest and keeps only the booking reference.
func (c *Controller) CreateBooking(ctx *gin.Context) {
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	userID := optionalUserID(ctx)

	resp, err := c.service.CreateBooking(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking confirmed", resp, nil)
}

func (c *Controller) GetUserBookings(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	resp, err := c.service.ListUserBookings(ctx.Request.Context(), userID, query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch bookings", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings fetched successfully", resp, nil)
}

// GetBookingByRef is the guest retrieval path: no auth, the reference is
// the credential
func (c *Controller) GetBookingByRef(ctx *gin.Context) {
	bookingRef := ctx.Param("ref")
	if bookingRef == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Booking reference is required", nil, nil)
		return
	}

	resp, err := c.service.GetBookingByRef(ctx.Request.Context(), bookingRef)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch booking", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking fetched successfully", resp, nil)
}

func (c *Controller) CancelBooking(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	resp, err := c.service.CancelBooking(ctx.Request.Context(), bookingID, userID, isAdmin(ctx))
	if err != nil {
		c.respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled successfully", resp, nil)
}

func (c *Controller) DeleteBooking(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	if err := c.service.DeleteBooking(ctx.Request.Context(), bookingID, userID, isAdmin(ctx)); err != nil {
		c.respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking deleted successfully", nil, nil)
}

func (c *Controller) GetAllBookings(ctx *gin.Context) {
	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	resp, err := c.service.ListAllBookings(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch bookings", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings fetched successfully", resp, nil)
}

func (c *Controller) respondBookingError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
	case errors.Is(err, showtimes.ErrShowtimeNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
	case errors.Is(err, showtimes.ErrDateOutsideWindow):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Date is outside the booking window", nil, nil)
	case errors.Is(err, seats.ErrInvalidSeat):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat selection", nil, err.Error())
	case errors.Is(err, seats.ErrSeatAlreadyBooked):
		response.RespondJSON(ctx, "error", http.StatusConflict, "One or more seats are already booked", nil, err.Error())
	case errors.Is(err, ErrNoSeatsSelected), errors.Is(err, ErrDuplicateSeats):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat selection", nil, err.Error())
	case errors.Is(err, ErrShowtimeInPast):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Showtime has already started", nil, nil)
	case errors.Is(err, ErrShowtimeNotPast):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Bookings can only be deleted after the showtime has passed", nil, nil)
	case errors.Is(err, ErrAlreadyCancelled):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Booking is already cancelled", nil, nil)
	case errors.Is(err, ErrNotBookingOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not have access to this booking", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to process booking", nil, nil)
	}
}

func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID := optionalUserID(ctx)
	if userID == nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return uuid.Nil, false
	}
	return *userID, true
}

func optionalUserID(ctx *gin.Context) *uuid.UUID {
	raw, exists := ctx.Get("user_id")
	if !exists {
		return nil
	}
	idStr, ok := raw.(string)
	if !ok {
		return nil
	}
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return nil
	}
	return &userID
}

func isAdmin(ctx *gin.Context) bool {
	role, exists := ctx.Get("user_role")
	if !exists {
		return false
	}
	roleStr, ok := role.(string)
	return ok && roleStr == string(users.RoleAdmin)
}
