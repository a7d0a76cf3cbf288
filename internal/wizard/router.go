package wizard

import (
	"seatly/internal/shared/config"
	"seatly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupWizardRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	wizard := rg.Group("/wizard")
	wizard.Use(middleware.JWTAuth(cfg), middleware.RequireRole(middleware.RoleStaff))
	{
		wizard.POST("/sessions", controller.Start)
		wizard.GET("/sessions/:id", controller.GetSession)
		wizard.POST("/sessions/:id/seats", controller.ToggleSeat)
		wizard.POST("/sessions/:id/commit", controller.Commit)
		wizard.POST("/sessions/:id/cancel", controller.Cancel)
	}
}
