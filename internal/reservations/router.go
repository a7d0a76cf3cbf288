package reservations

import (
	"seatly/internal/shared/config"
	"seatly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupReservationRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	reservations := rg.Group("/reservations")
	reservations.Use(middleware.JWTAuth(cfg), middleware.RequireRole(middleware.RoleStaff))
	{
		reservations.POST("", controller.CreateReservation)
		reservations.GET("/day/:date", controller.ListByDate)
		reservations.GET("/slots/:date", controller.GetSlots)
		reservations.GET("/:id", controller.GetReservation)
		reservations.PUT("/:id", controller.UpdateReservation)
		reservations.DELETE("/:id", controller.DeleteReservation)
		reservations.GET("/:id/preferences", controller.EvaluatePreferences)
		reservations.POST("/:id/assign", controller.AssignPreference)
	}
}
