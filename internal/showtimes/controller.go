package showtimes

import (
	"errors"
	"net/http"

	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) GetShowtimesForMovie(ctx *gin.Context) {
	movieID, err := uuid.Parse(ctx.Param("movieId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid movie ID", nil, nil)
		return
	}

	result, err := c.service.GetShowtimesForMovie(ctx.Request.Context(), movieID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch showtimes", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Showtimes retrieved successfully", result, nil)
}

func (c *Controller) CreateShowtime(ctx *gin.Context) {
	var req CreateShowtimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	showtime, err := c.service.CreateShowtime(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create showtime", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Showtime created successfully", showtime, nil)
}

func (c *Controller) DeleteShowtime(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid showtime ID", nil, nil)
		return
	}

	if err := c.service.DeleteShowtime(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, ErrShowtimeNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete showtime", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Showtime deleted successfully", nil, nil)
}
