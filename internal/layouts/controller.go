package layouts

import (
	"net/http"
	"strconv"

	"seatly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreateLayout(ctx *gin.Context) {
	var req CreateLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	layout, err := c.service.CreateLayout(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Layout created", layout, nil)
}

func (c *Controller) GetLayout(ctx *gin.Context) {
	layout, err := c.service.GetLayout(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout retrieved", layout, nil)
}

func (c *Controller) GetActiveLayout(ctx *gin.Context) {
	layout, err := c.service.GetActiveLayout(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Active layout retrieved", layout, nil)
}

func (c *Controller) ListLayouts(ctx *gin.Context) {
	layouts, err := c.service.ListLayouts(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layouts retrieved", layouts, nil)
}

func (c *Controller) UpdateLayout(ctx *gin.Context) {
	var req UpdateLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	layout, err := c.service.UpdateLayout(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout saved", layout, nil)
}

func (c *Controller) DeleteLayout(ctx *gin.Context) {
	if err := c.service.DeleteLayout(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout deleted", nil, nil)
}

func (c *Controller) ActivateLayout(ctx *gin.Context) {
	if err := c.service.ActivateLayout(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout activated", nil, nil)
}

func (c *Controller) RenameSeats(ctx *gin.Context) {
	var req RenameSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.service.RenameSeats(ctx.Request.Context(), ctx.Param("id"), req); err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats renamed", nil, nil)
}

func (c *Controller) GetFloors(ctx *gin.Context) {
	floors, err := c.service.Floors(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Floors retrieved", floors, nil)
}

func (c *Controller) GetCanvas(ctx *gin.Context) {
	floor, err := strconv.Atoi(ctx.DefaultQuery("floor", "1"))
	if err != nil || floor < 1 {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid floor", nil, nil)
		return
	}
	mode := ctx.DefaultQuery("size", "auto")

	size, err := c.service.CanvasFor(ctx.Request.Context(), ctx.Param("id"), floor, mode)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Canvas size computed", size, nil)
}
