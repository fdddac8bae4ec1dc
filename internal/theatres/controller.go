package theatres

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

func (c *Controller) GetTheatres(ctx *gin.Context) {
	theatresList, err := c.service.GetAllTheatres(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch theatres", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Theatres retrieved successfully", theatresList, nil)
}

func (c *Controller) GetTheatre(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid theatre ID", nil, nil)
		return
	}

	theatre, err := c.service.GetTheatreByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTheatreNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Theatre not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch theatre", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Theatre retrieved successfully", theatre, nil)
}

func (c *Controller) CreateTheatre(ctx *gin.Context) {
	var req CreateTheatreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	theatre, err := c.service.CreateTheatre(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create theatre", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Theatre created successfully", theatre, nil)
}

func (c *Controller) UpdateTheatre(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid theatre ID", nil, nil)
		return
	}

	var req UpdateTheatreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	theatre, err := c.service.UpdateTheatre(ctx.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrTheatreNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Theatre not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update theatre", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Theatre updated successfully", theatre, nil)
}

func (c *Controller) DeleteTheatre(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid theatre ID", nil, nil)
		return
	}

	if err := c.service.DeleteTheatre(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, ErrTheatreNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Theatre not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete theatre", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Theatre deleted successfully", nil, nil)
}
