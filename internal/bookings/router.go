package bookings

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller *Controller) {
	bookingRoutes := router.Group("/bookings")
	{
		// Checkout works for guests; OptionalAuth attaches the user when a
		// valid token is present
		bookingRoutes.POST("", middleware.OptionalAuth(), controller.CreateBooking) // POST /api/v1/bookings - Checkout
		bookingRoutes.GET("/ref/:ref", controller.GetBookingByRef)                  // GET /api/v1/bookings/ref/:ref - Guest ticket lookup

		authed := bookingRoutes.Group("")
		authed.Use(middleware.JWTAuth())
		{
			authed.GET("", controller.GetUserBookings)           // GET /api/v1/bookings - My tickets
			authed.PATCH("/:id/cancel", controller.CancelBooking) // PATCH /api/v1/bookings/:id/cancel - Cancel a ticket
			authed.DELETE("/:id", controller.DeleteBooking)       // DELETE /api/v1/bookings/:id - Remove a past ticket
		}
	}

	adminBookings := router.Group("/admin/bookings")
	adminBookings.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminBookings.GET("", controller.GetAllBookings)
	}
}
