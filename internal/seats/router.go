package seats

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupSeatRoutes(router *gin.RouterGroup, controller *Controller) {
	// Public routes - the seat map and pricing are part of the booking flow
	// and work for guests too
	publicSeats := router.Group("/seats")
	{
		publicSeats.GET("/:key", controller.GetSeatMap)              // GET /api/v1/seats/:key - Seat map for a screening
		publicSeats.GET("/:key/stream", controller.StreamSeatUpdates) // GET /api/v1/seats/:key/stream - Live updates (SSE)
		publicSeats.POST("/:key/quote", controller.Quote)            // POST /api/v1/seats/:key/quote - Price a selection
	}

	// Admin routes - direct seat status writes
	adminSeats := router.Group("/admin/seats")
	adminSeats.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminSeats.PATCH("/:key", controller.UpdateSeatStatus)
	}
}
