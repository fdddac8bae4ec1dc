package showtimes

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupShowtimeRoutes(router *gin.RouterGroup, controller *Controller) {
	// Public routes - browse screenings for a movie
	publicShowtimes := router.Group("/showtimes")
	{
		publicShowtimes.GET("/movie/:movieId", controller.GetShowtimesForMovie)
	}

	// Admin routes - slot management
	adminShowtimes := router.Group("/admin/showtimes")
	adminShowtimes.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminShowtimes.POST("", controller.CreateShowtime)
		adminShowtimes.DELETE("/:id", controller.DeleteShowtime)
	}
}
