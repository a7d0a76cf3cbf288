package reservations

import (
	"net/http"
	"strconv"
	"unicode"

	"seatly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	v := validator.New()
	_ = v.RegisterValidation("phone", validPhone)

	return &Controller{service: service, validator: v}
}

// validPhone accepts international numbers with separators, e.g.
// "+81-90-1111-2222". Digits are what matter; 7 to 15 of them.
func validPhone(fl validator.FieldLevel) bool {
	digits := 0
	for i, r := range fl.Field().String() {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == '-' || r == ' ':
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

func (c *Controller) CreateReservation(ctx *gin.Context) {
	var req CreateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	reservation, err := c.service.CreateReservation(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Reservation created", reservation, nil)
}

func (c *Controller) GetReservation(ctx *gin.Context) {
	reservation, err := c.service.GetReservation(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation retrieved", reservation, nil)
}

func (c *Controller) ListByDate(ctx *gin.Context) {
	reservations, err := c.service.ListByDate(ctx.Request.Context(), ctx.Param("date"))
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservations retrieved", reservations, nil)
}

func (c *Controller) UpdateReservation(ctx *gin.Context) {
	var req UpdateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	reservation, err := c.service.UpdateReservation(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation updated", reservation, nil)
}

func (c *Controller) DeleteReservation(ctx *gin.Context) {
	if err := c.service.DeleteReservation(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation deleted", nil, nil)
}

func (c *Controller) GetSlots(ctx *gin.Context) {
	date := ctx.Param("date")
	partySize, err := strconv.Atoi(ctx.DefaultQuery("party_size", "1"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid party size", nil, nil)
		return
	}

	slots, err := c.service.Slots(ctx.Request.Context(), date, partySize)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	result := SlotsResponse{Date: date, PartySize: partySize, Slots: slots}
	response.RespondJSON(ctx, "success", http.StatusOK, "Slots retrieved", result, nil)
}

func (c *Controller) EvaluatePreferences(ctx *gin.Context) {
	evaluation, err := c.service.EvaluatePreferences(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Preferences evaluated", evaluation, nil)
}

func (c *Controller) AssignPreference(ctx *gin.Context) {
	var req AssignPreferenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	reservation, err := c.service.AssignPreference(ctx.Request.Context(), ctx.Param("id"), req.Rank)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Preference assigned", reservation, nil)
}
