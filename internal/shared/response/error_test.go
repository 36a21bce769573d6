package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/leaguehub/server/internal/utils/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func render(t *testing.T, fn func(c *gin.Context)) (int, apperrors.ErrorResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	fn(c)

	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestError(t *testing.T) {
	notPending := apperrors.Define(apperrors.ErrInvalidState, "REQUEST_NOT_PENDING", "request is not pending")

	t.Run("application error", func(t *testing.T) {
		status, body := render(t, func(c *gin.Context) {
			Error(c, fmt.Errorf("approve: %w", notPending))
		})
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, "REQUEST_NOT_PENDING", body.Error.Code)
	})

	t.Run("details are rendered", func(t *testing.T) {
		status, body := render(t, func(c *gin.Context) {
			Error(c, apperrors.RateLimited("").WithDetails(map[string]any{"limit": 5}))
		})
		assert.Equal(t, http.StatusTooManyRequests, status)
		assert.EqualValues(t, 5, body.Error.Details["limit"])
	})

	t.Run("plain error is masked", func(t *testing.T) {
		status, body := render(t, func(c *gin.Context) {
			Error(c, errors.New("pq: connection refused"))
		})
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.NotContains(t, body.Error.Message, "pq")
	})
}

func TestBindError(t *testing.T) {
	type input struct {
		Code string `validate:"required"`
	}
	verr := validator.New().Struct(input{})

	status, body := render(t, func(c *gin.Context) { BindError(c, verr) })
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "BAD_REQUEST", body.Error.Code)

	fields, ok := body.Error.Details["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "required", fields["Code"])
}
