package movies

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

func (c *Controller) GetMovies(ctx *gin.Context) {
	var query MovieListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	moviesList, err := c.service.GetAllMovies(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch movies", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Movies retrieved successfully", moviesList, nil)
}

func (c *Controller) GetMovie(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid movie ID", nil, nil)
		return
	}

	movie, err := c.service.GetMovieByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Movie not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch movie", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Movie retrieved successfully", movie, nil)
}

func (c *Controller) CreateMovie(ctx *gin.Context) {
	var req CreateMovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	movie, err := c.service.CreateMovie(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create movie", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Movie created successfully", movie, nil)
}

// ImportMovies accepts a batch of loosely shaped records and normalizes them
func (c *Controller) ImportMovies(ctx *gin.Context) {
	var records []Record
	if err := ctx.ShouldBindJSON(&records); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid catalog records", nil, err.Error())
		return
	}

	if len(records) == 0 {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "No catalog records provided", nil, nil)
		return
	}

	imported, err := c.service.ImportMovies(ctx.Request.Context(), records)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to import movies", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Movies imported successfully", imported, nil)
}

func (c *Controller) UpdateMovie(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid movie ID", nil, nil)
		return
	}

	var req UpdateMovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	movie, err := c.service.UpdateMovie(ctx.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Movie not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update movie", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Movie updated successfully", movie, nil)
}

func (c *Controller) DeleteMovie(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid movie ID", nil, nil)
		return
	}

	if err := c.service.DeleteMovie(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Movie not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete movie", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Movie deleted successfully", nil, nil)
}
