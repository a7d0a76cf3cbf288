package allocations

import (
	"net/http"
	"time"

	"seatly/internal/shared/config"
	"seatly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
	cfg     *config.Config
}

func NewController(service Service, cfg *config.Config) *Controller {
	return &Controller{service: service, cfg: cfg}
}

func (c *Controller) GetDay(ctx *gin.Context) {
	date := ctx.Param("date")
	allocs, err := c.service.GetDay(ctx.Request.Context(), date)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Allocations retrieved", DayResponse{Date: date, Allocations: allocs}, nil)
}

func (c *Controller) GetOccupancy(ctx *gin.Context) {
	snapshot, err := c.service.Occupancy(ctx.Request.Context(), ctx.Param("date"))
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Occupancy snapshot built", snapshot, nil)
}

func (c *Controller) RefreshDay(ctx *gin.Context) {
	snapshot, err := c.service.RefreshDay(ctx.Request.Context(), ctx.Param("date"))
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Occupancy refreshed", snapshot, nil)
}

func (c *Controller) SeatNow(ctx *gin.Context) {
	var req SeatNowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	start := time.Now()
	if req.StartTime != nil {
		start = *req.StartTime
	}
	end := start.Add(c.cfg.Seating.DefaultDuration)
	if req.EndTime != nil {
		end = *req.EndTime
	}

	commit := CommitRequest{
		OccupantType: req.OccupantType,
		OccupantID:   uuid.MustParse(req.OccupantID),
		SeatIDs:      parseSeatIDs(req.SeatIDs),
		StartTime:    start,
		EndTime:      end,
	}

	allocs, err := c.service.SeatNow(ctx.Request.Context(), commit)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Party seated", commitResponse(allocs), nil)
}

func (c *Controller) Reserve(ctx *gin.Context) {
	var req ReserveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	end := req.StartTime.Add(c.cfg.Seating.ReservationDuration)
	if req.EndTime != nil {
		end = *req.EndTime
	}

	commit := CommitRequest{
		OccupantType: req.OccupantType,
		OccupantID:   uuid.MustParse(req.OccupantID),
		SeatIDs:      parseSeatIDs(req.SeatIDs),
		SeatLabels:   req.SeatLabels,
		StartTime:    req.StartTime,
		EndTime:      end,
	}

	allocs, err := c.service.Reserve(ctx.Request.Context(), commit)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Seats reserved", commitResponse(allocs), nil)
}

func (c *Controller) Transition(ctx *gin.Context) {
	var req TransitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	err := c.service.Transition(ctx.Request.Context(), req.OccupantType, uuid.MustParse(req.OccupantID), req.Action)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Transition applied", nil, nil)
}

// parseSeatIDs assumes binding already validated the uuid format
func parseSeatIDs(ids []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		out = append(out, uuid.MustParse(id))
	}
	return out
}

func commitResponse(allocs []SeatAllocation) CommitResponse {
	labels := make([]string, 0, len(allocs))
	for _, a := range allocs {
		labels = append(labels, a.SeatLabel)
	}
	return CommitResponse{Allocations: allocs, SeatLabels: labels}
}
