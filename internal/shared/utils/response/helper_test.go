package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"seatly/internal/shared/utils/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderError(t *testing.T, err error) (int, Envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	Error(ctx, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestError_ConflictCarriesSeatLabels(t *testing.T) {
	code, env := renderError(t, apperr.Conflict("seats no longer available", []string{"T1-A", "T1-B"}))

	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "seats no longer available", env.Message)
	assert.Equal(t, []interface{}{"T1-A", "T1-B"}, env.Errors)
}

func TestError_UnclassifiedFallsBackToTransient(t *testing.T) {
	code, env := renderError(t, errors.New("connection reset"))

	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "request failed", env.Message)
	assert.Nil(t, env.Errors)
}
