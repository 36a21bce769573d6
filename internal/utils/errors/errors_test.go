package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("Error returns message", func(t *testing.T) {
		err := &AppError{Code: "TEST_ERROR", Message: "test error message"}
		assert.Equal(t, "test error message", err.Error())
	})

	t.Run("Error includes wrapped error", func(t *testing.T) {
		err := &AppError{Code: "TEST_ERROR", Message: "outer", Err: errors.New("inner")}
		assert.Contains(t, err.Error(), "outer")
		assert.Contains(t, err.Error(), "inner")
	})
}

func TestDefine(t *testing.T) {
	tests := []struct {
		kind   error
		status int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrInvalidState, http.StatusUnprocessableEntity},
		{ErrConflict, http.StatusConflict},
		{ErrRateLimited, http.StatusTooManyRequests},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.Error(), func(t *testing.T) {
			err := Define(tt.kind, "SOME_CODE", "some message")
			assert.Equal(t, tt.status, err.StatusCode)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestAppError_Is(t *testing.T) {
	expired := Define(ErrInvalidState, "EXPIRED", "invitation code has expired")
	exhausted := Define(ErrInvalidState, "LIMIT_REACHED", "invitation code usage limit reached")

	wrapped := fmt.Errorf("redeem: %w", expired)

	assert.ErrorIs(t, wrapped, expired)
	assert.ErrorIs(t, wrapped, ErrInvalidState)
	assert.NotErrorIs(t, wrapped, exhausted)
	assert.NotErrorIs(t, wrapped, ErrConflict)
}

func TestWithDetails(t *testing.T) {
	sentinel := RateLimited("slow down")
	withDetails := sentinel.WithDetails(map[string]any{"count": 5})

	assert.Nil(t, sentinel.Details)
	assert.Equal(t, 5, withDetails.Details["count"])
	assert.ErrorIs(t, withDetails, sentinel)

	resp := withDetails.ToResponse()
	assert.Equal(t, "RATE_LIMITED", resp.Error.Code)
	assert.Equal(t, 5, resp.Error.Details["count"])
}

func TestIsBusiness(t *testing.T) {
	assert.True(t, IsBusiness(BadRequest("bad")))
	assert.True(t, IsBusiness(fmt.Errorf("wrap: %w", RateLimited(""))))
	assert.True(t, IsBusiness(Define(ErrForbidden, "NOT_A_MANAGER", "caller cannot manage this team")))
	assert.False(t, IsBusiness(Internal("db down", errors.New("dial tcp"))))
	assert.False(t, IsBusiness(errors.New("plain")))
}

func TestGetStatusCode(t *testing.T) {
	notPending := Define(ErrInvalidState, "REQUEST_NOT_PENDING", "request is no longer pending")

	assert.Equal(t, http.StatusUnprocessableEntity, GetStatusCode(fmt.Errorf("approve: %w", notPending)))
	assert.Equal(t, http.StatusTooManyRequests, GetStatusCode(RateLimited("")))
	assert.Equal(t, http.StatusForbidden, GetStatusCode(ErrForbidden))
	assert.Equal(t, http.StatusInternalServerError, GetStatusCode(errors.New("connection refused")))
}

func TestKindCheckers(t *testing.T) {
	assert.True(t, IsNotFound(Define(ErrNotFound, "TEAM_NOT_FOUND", "team not found")))
	assert.True(t, IsInvalidState(fmt.Errorf("wrap: %w", Define(ErrInvalidState, "EXPIRED", "expired"))))
	assert.True(t, IsConflict(Define(ErrConflict, "DUPLICATE_PENDING", "dup")))
	assert.True(t, IsRateLimited(RateLimited("")))
	assert.True(t, IsForbidden(Define(ErrForbidden, "NOT_ALLOWED", "no")))

	assert.False(t, IsConflict(RateLimited("")))
	assert.False(t, IsNotFound(errors.New("plain")))
}
