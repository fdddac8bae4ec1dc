package movies

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupMovieRoutes(router *gin.RouterGroup, controller *Controller) {
	// Public routes - anyone can browse the catalog
	publicMovies := router.Group("/movies")
	{
		publicMovies.GET("", controller.GetMovies)    // GET /api/v1/movies - Browse the catalog
		publicMovies.GET("/:id", controller.GetMovie) // GET /api/v1/movies/:id - Movie details
	}

	// Admin routes - catalog management
	adminMovies := router.Group("/admin/movies")
	adminMovies.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminMovies.POST("", controller.CreateMovie)        // POST /api/v1/admin/movies - Add a movie
		adminMovies.POST("/import", controller.ImportMovies) // POST /api/v1/admin/movies/import - Bulk import loose records
		adminMovies.PUT("/:id", controller.UpdateMovie)     // PUT /api/v1/admin/movies/:id - Update a movie
		adminMovies.DELETE("/:id", controller.DeleteMovie)  // DELETE /api/v1/admin/movies/:id - Remove a movie
	}
}
