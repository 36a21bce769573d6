package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/leaguehub/server/internal/utils/errors"
)

// Recovery returns a middleware that recovers from panics.
// Panics and 5xx errors attached to the context are reported to Sentry;
// without a configured Sentry client the reports are dropped.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetRequest(c.Request)
		c.Request = c.Request.WithContext(sentry.SetHubOnContext(c.Request.Context(), hub))

		defer func() {
			if err := recover(); err != nil {
				log.Error("Panic recovered",
					zap.Any("error", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("client_ip", c.ClientIP()),
					zap.String("stack", string(debug.Stack())),
				)

				hub.WithScope(func(scope *sentry.Scope) {
					scope.SetTag("request_id", GetRequestID(c))
					hub.RecoverWithContext(c.Request.Context(), err)
				})

				resp := apperrors.Internal("internal server error", fmt.Errorf("panic: %v", err)).ToResponse()
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()

		c.Next()

		if c.Writer.Status() >= http.StatusInternalServerError {
			for _, ginErr := range c.Errors {
				hub.WithScope(func(scope *sentry.Scope) {
					scope.SetTag("request_id", GetRequestID(c))
					scope.SetTag("route", c.FullPath())
					hub.CaptureException(ginErr.Err)
				})
			}
		}
	}
}
