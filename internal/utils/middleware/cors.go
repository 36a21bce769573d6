package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/leaguehub/server/internal/shared/config"
)

var (
	corsAllowMethods  = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	corsAllowHeaders  = []string{"Origin", "Content-Type", "Authorization", RequestIDHeader}
	corsExposeHeaders = []string{RequestIDHeader, RateLimitRemaining, RetryAfter}
)

// CORS builds the cross-origin policy from the server section.
// An empty origin list or "*" admits any origin, and credentials are then never allowed.
func CORS(cfg *config.ServerConfig) gin.HandlerFunc {
	policy := cors.Config{
		AllowMethods:  corsAllowMethods,
		AllowHeaders:  corsAllowHeaders,
		ExposeHeaders: corsExposeHeaders,
		MaxAge:        cfg.CORSMaxAge,
	}
	if len(cfg.CORSOrigins) == 0 || slices.Contains(cfg.CORSOrigins, "*") {
		policy.AllowAllOrigins = true
	} else {
		policy.AllowOrigins = cfg.CORSOrigins
		policy.AllowCredentials = cfg.CORSAllowCredentials
	}
	return cors.New(policy)
}
