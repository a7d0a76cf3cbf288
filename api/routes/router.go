// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"seatly/internal/allocations"
	"seatly/internal/availability"
	"seatly/internal/layouts"
	"seatly/internal/reservations"
	"seatly/internal/shared/config"
	"seatly/internal/shared/database"
	"seatly/internal/waitlist"
	"seatly/internal/wizard"
	"seatly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher allocations.EventPublisher
}

// NewRouter creates a new router instance. publisher may be nil when
// the table-status stream is disabled.
func NewRouter(cfg *config.Config, db *database.DB, publisher allocations.EventPublisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	cacheService := cache.NewService(r.db.GetRedisClient())

	// Layouts
	layoutService := layouts.NewService(layouts.NewRepository(r.db.GetPostgreSQL()))
	layoutService.SetCacheService(cacheService)
	layoutController := layouts.NewController(layoutService)

	// Allocations
	allocService := allocations.NewService(
		allocations.NewRepository(r.db.GetPostgreSQL()),
		layoutService,
		r.config.Location(),
	)
	allocService.SetCacheService(cacheService)
	if r.publisher != nil {
		allocService.SetPublisher(r.publisher)
	}
	allocController := allocations.NewController(allocService, r.config)

	// Booking side
	availabilityClient := availability.NewHTTPClient(r.config.Availability)
	reservationService := reservations.NewService(
		reservations.NewRepository(r.db.GetPostgreSQL()),
		allocService,
		availabilityClient,
		r.config,
	)
	reservationController := reservations.NewController(reservationService)

	waitlistService := waitlist.NewService(waitlist.NewRepository(r.db.GetPostgreSQL()))
	waitlistController := waitlist.NewController(waitlistService)

	// Allocations flip occupant status through the directory; wired
	// last to break the dependency loop between the two sides.
	directory := newOccupantDirectory(reservationService, waitlistService)
	allocService.SetDirectory(directory)

	// Wizard
	wizardStore := wizard.NewRedisStore(r.db.GetRedisClient(), r.config.Redis.WizardSessionTTL)
	wizardService := wizard.NewService(wizardStore, allocService, directory, r.config)
	wizardController := wizard.NewController(wizardService)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		layouts.SetupLayoutRoutes(api, layoutController, r.config)
		allocations.SetupAllocationRoutes(api, allocController, r.config)
		reservations.SetupReservationRoutes(api, reservationController, r.config)
		waitlist.SetupWaitlistRoutes(api, waitlistController, r.config)
		wizard.SetupWizardRoutes(api, wizardController, r.config)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "seatly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "seatly-backend",
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
