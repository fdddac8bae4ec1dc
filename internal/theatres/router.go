package theatres

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTheatreRoutes(router *gin.RouterGroup, controller *Controller) {
	// Public routes - anyone can browse theatres
	publicTheatres := router.Group("/theatres")
	{
		publicTheatres.GET("", controller.GetTheatres)
		publicTheatres.GET("/:id", controller.GetTheatre)
	}

	// Admin routes - theatre management
	adminTheatres := router.Group("/admin/theatres")
	adminTheatres.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminTheatres.POST("", controller.CreateTheatre)
		adminTheatres.PUT("/:id", controller.UpdateTheatre)
		adminTheatres.DELETE("/:id", controller.DeleteTheatre)
	}
}
