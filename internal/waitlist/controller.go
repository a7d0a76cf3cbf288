package waitlist

import (
	"net/http"

	"seatly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) Join(ctx *gin.Context) {
	var req JoinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	entry, err := c.service.Join(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Party added to waitlist", entry, nil)
}

func (c *Controller) GetEntry(ctx *gin.Context) {
	entry, err := c.service.GetEntry(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Waitlist entry retrieved", entry, nil)
}

func (c *Controller) ListWaiting(ctx *gin.Context) {
	queue, err := c.service.ListWaiting(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Waitlist retrieved", queue, nil)
}

func (c *Controller) Remove(ctx *gin.Context) {
	if err := c.service.Remove(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Party removed from waitlist", nil, nil)
}
