package allocations

import (
	"seatly/internal/shared/config"
	"seatly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAllocationRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	allocations := rg.Group("/allocations")
	allocations.Use(middleware.JWTAuth(cfg), middleware.RequireRole(middleware.RoleStaff))
	{
		allocations.GET("/day/:date", controller.GetDay)
		allocations.GET("/occupancy/:date", controller.GetOccupancy)
		allocations.POST("/occupancy/:date/refresh", controller.RefreshDay)
		allocations.POST("/seat-now", controller.SeatNow)
		allocations.POST("/reserve", controller.Reserve)
		allocations.POST("/transition", controller.Transition)
	}
}
