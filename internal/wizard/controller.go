package wizard

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

func (c *Controller) Start(ctx *gin.Context) {
	var req StartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	session, err := c.service.Start(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Wizard session started", session, nil)
}

func (c *Controller) GetSession(ctx *gin.Context) {
	session, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Wizard session retrieved", session, nil)
}

func (c *Controller) ToggleSeat(ctx *gin.Context) {
	var req ToggleSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	session, err := c.service.ToggleSeat(ctx.Request.Context(), ctx.Param("id"), req.SeatID)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat selection updated", session, nil)
}

func (c *Controller) Commit(ctx *gin.Context) {
	var req CommitSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := c.service.Commit(ctx.Request.Context(), ctx.Param("id"), req.Mode)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats committed", result, nil)
}

func (c *Controller) Cancel(ctx *gin.Context) {
	if err := c.service.Cancel(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Wizard session canceled", nil, nil)
}
