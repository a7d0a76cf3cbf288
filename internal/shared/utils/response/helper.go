package response

import (
	"seatly/internal/shared/utils/apperr"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, Envelope{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// Error renders a service error through the apperr taxonomy: the kind
// decides the status code, Details lands in the Errors field so a
// conflict response lists the seats that were lost.
func Error(c *gin.Context, err error) {
	ae := apperr.From(err, "request failed")
	RespondJSON(c, "error", ae.HTTPStatus(), ae.Message, nil, ae.Details)
}
