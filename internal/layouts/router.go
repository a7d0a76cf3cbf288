package layouts

import (
	"seatly/internal/shared/config"
	"seatly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupLayoutRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	// Read paths for any authenticated staff
	layouts := rg.Group("/layouts")
	layouts.Use(middleware.JWTAuth(cfg), middleware.RequireRole(middleware.RoleStaff))
	{
		layouts.GET("", controller.ListLayouts)
		layouts.GET("/active", controller.GetActiveLayout)
		layouts.GET("/:id", controller.GetLayout)
		layouts.GET("/:id/floors", controller.GetFloors)
		layouts.GET("/:id/canvas", controller.GetCanvas)
	}

	// Authoring requires the manager role
	admin := rg.Group("/admin/layouts")
	admin.Use(middleware.JWTAuth(cfg), middleware.RequireManager())
	{
		admin.POST("", controller.CreateLayout)
		admin.PUT("/:id", controller.UpdateLayout)
		admin.DELETE("/:id", controller.DeleteLayout)
		admin.POST("/:id/activate", controller.ActivateLayout)
	}

	sections := rg.Group("/admin/sections")
	sections.Use(middleware.JWTAuth(cfg), middleware.RequireManager())
	{
		sections.PUT("/:id/seats/labels", controller.RenameSeats)
	}
}
