package auth

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(rg *gin.RouterGroup, controller *Controller) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", controller.Register) // POST /api/v1/auth/register
		auth.POST("/login", controller.Login)       // POST /api/v1/auth/login
		auth.POST("/refresh", controller.RefreshToken)
		auth.POST("/logout", controller.Logout)

		// Session management requires a valid access token
		session := auth.Group("")
		session.Use(middleware.JWTAuth())
		{
			session.PUT("/change-password", controller.ChangePassword)
			session.GET("/me", controller.GetMe)
		}
	}
}
