// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"cinebook/internal/auth"
	"cinebook/internal/bookings"
	"cinebook/internal/movies"
	"cinebook/internal/seats"
	"cinebook/internal/showtimes"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/theatres"
	"cinebook/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB

	cacheService cache.Service

	// Cross-module services, kept for dependency injection
	movieService    movies.Service
	theatreService  theatres.Service
	showtimeService showtimes.Service
	seatService     seats.Service
	bookingService  bookings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		cacheService: cache.NewService(db.GetRedisClient()),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Catalog routes come first: showtimes need theatres, seats need both
		r.setupMovieRoutes(api)
		r.setupTheatreRoutes(api)
		r.setupShowtimeRoutes(api)
		r.setupSeatRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// BookingService exposes the wired booking service so the server can attach
// the notification pipeline after startup
func (r *Router) BookingService() bookings.Service {
	return r.bookingService
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cinebook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinebook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController)
}

// setupMovieRoutes configures the movie catalog routes
func (r *Router) setupMovieRoutes(rg *gin.RouterGroup) {
	movieRepo := movies.NewRepository(r.db.GetPostgreSQL())
	movieService := movies.NewService(movieRepo)
	movieService.SetCacheService(r.cacheService)

	r.movieService = movieService

	movieController := movies.NewController(movieService)
	movies.SetupMovieRoutes(rg, movieController)
}

// setupTheatreRoutes configures theatre routes
func (r *Router) setupTheatreRoutes(rg *gin.RouterGroup) {
	theatreRepo := theatres.NewRepository(r.db.GetPostgreSQL())
	theatreService := theatres.NewService(theatreRepo)
	theatreService.SetCacheService(r.cacheService)

	r.theatreService = theatreService

	theatreController := theatres.NewController(theatreService)
	theatres.SetupTheatreRoutes(rg, theatreController)
}

// setupShowtimeRoutes configures showtime routes
func (r *Router) setupShowtimeRoutes(rg *gin.RouterGroup) {
	showtimeRepo := showtimes.NewRepository(r.db.GetPostgreSQL())
	showtimeService := showtimes.NewService(showtimeRepo, r.theatreService, r.config.Booking.ShowtimeWindowDays)
	showtimeService.SetCacheService(r.cacheService)

	r.showtimeService = showtimeService

	showtimeController := showtimes.NewController(showtimeService)
	showtimes.SetupShowtimeRoutes(rg, showtimeController)
}

// setupSeatRoutes configures seat map routes
func (r *Router) setupSeatRoutes(rg *gin.RouterGroup) {
	seatRepo := seats.NewRepository(r.db.GetPostgreSQL())
	seatService := seats.NewService(seatRepo, r.theatreService, r.showtimeService, r.db.GetRedisClient())
	seatService.SetCacheService(r.cacheService)

	r.seatService = seatService

	seatController := seats.NewController(seatService)
	seats.SetupSeatRoutes(rg, seatController)
}

// setupBookingRoutes configures booking routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	ledger := bookings.NewLedger(r.cacheService)
	payments := bookings.NewSimulatedProcessor(r.config.Booking.PaymentDelay)

	bookingService := bookings.NewService(
		bookingRepo,
		ledger,
		payments,
		r.seatService,
		r.showtimeService,
		r.movieService,
		r.theatreService,
	)

	r.bookingService = bookingService

	bookingController := bookings.NewController(bookingService)
	bookings.SetupBookingRoutes(rg, bookingController)
}
