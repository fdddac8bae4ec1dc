package seats

import (
	"errors"
	"io"
	"net/http"

	"cinebook/internal/shared/utils/response"
	"cinebook/internal/showtimes"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) GetSeatMap(ctx *gin.Context) {
	key := ctx.Param("key")

	seatMap, err := c.service.GetSeatMap(ctx.Request.Context(), key)
	if err != nil {
		respondSeatError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map retrieved successfully", seatMap, nil)
}

func (c *Controller) Quote(ctx *gin.Context) {
	key := ctx.Param("key")

	var req QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	quote, err := c.service.Quote(ctx.Request.Context(), key, req.Seats)
	if err != nil {
		respondSeatError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Selection priced successfully", quote, nil)
}

func (c *Controller) UpdateSeatStatus(ctx *gin.Context) {
	key := ctx.Param("key")

	var req UpdateSeatStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	err := c.service.UpdateSeatStatus(ctx.Request.Context(), key, req.SeatID, SeatStatus(req.Status))
	if err != nil {
		respondSeatError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat status updated successfully", nil, nil)
}

// StreamSeatUpdates relays live seat changes for one screening over SSE
func (c *Controller) StreamSeatUpdates(ctx *gin.Context) {
	key := ctx.Param("key")

	events, err := c.service.Subscribe(ctx.Request.Context(), key)
	if err != nil {
		respondSeatError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	ctx.Stream(func(w io.Writer) bool {
		event, ok := <-events
		if !ok {
			return false
		}
		ctx.SSEvent("seat_update", event)
		return true
	})
}

func respondSeatError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, showtimes.ErrShowtimeNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
	case errors.Is(err, showtimes.ErrDateOutsideWindow):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Date outside the showtime window", nil, nil)
	case errors.Is(err, ErrInvalidSeat):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat", nil, err.Error())
	case errors.Is(err, ErrSeatAlreadyBooked):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Seat already booked", nil, err.Error())
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Seat operation failed", nil, nil)
	}
}
