// Package response renders API errors.
package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/leaguehub/server/internal/utils/errors"
)

// Error writes err as a JSON error response and attaches it to the gin
// context so logging and recovery middleware can see it.
// Non-application errors are reported as INTERNAL_ERROR without leaking details.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *apperrors.AppError
	if !apperrors.IsBusiness(err) || !errors.As(err, &appErr) {
		appErr = apperrors.Internal("internal server error", err)
	}
	c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToResponse())
}

// BindError writes a 400 response for a request that failed binding or validation.
func BindError(c *gin.Context, err error) {
	appErr := apperrors.BadRequest("invalid request body")

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]any, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		appErr = appErr.WithDetails(map[string]any{"fields": fields})
	} else {
		appErr = appErr.WithDetails(map[string]any{"reason": err.Error()})
	}
	c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToResponse())
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, message string) {
	appErr := apperrors.Unauthorized(message)
	c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToResponse())
}
