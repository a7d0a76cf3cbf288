package waitlist

import (
	"seatly/internal/shared/config"
	"seatly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupWaitlistRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	waitlist := rg.Group("/waitlist")
	waitlist.Use(middleware.JWTAuth(cfg), middleware.RequireRole(middleware.RoleStaff))
	{
		waitlist.POST("", controller.Join)
		waitlist.GET("", controller.ListWaiting)
		waitlist.GET("/:id", controller.GetEntry)
		waitlist.DELETE("/:id", controller.Remove)
	}
}
