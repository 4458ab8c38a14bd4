package middleware

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/linskybing/moderation-platform/internal/domain/user"
	"github.com/linskybing/moderation-platform/pkg/response"
	"github.com/linskybing/moderation-platform/pkg/utils"
)

// RequireRoles lets the request through only for the listed roles. Finer
// checks (institution, stage ownership) stay in the services.
func RequireRoles(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.GetClaims(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token claims", Code: "UNAUTHENTICATED"})
			return
		}
		if !user.Role(claims.Role).In(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "role " + claims.Role + " is not allowed here", Code: "AUTHORIZATION"})
			return
		}
		c.Next()
	}
}

// LoggingMiddleware writes one access-log line per request to w.
func LoggingMiddleware(w io.Writer) gin.HandlerFunc {
	return gin.LoggerWithWriter(w, "/healthz")
}

// OriginChecker matches an Origin header against allowed. Any localhost
// port also matches when allowLocalhost is set.
func OriginChecker(allowed []string, allowLocalhost bool) func(origin string) bool {
	exact := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		exact[strings.TrimRight(strings.TrimSpace(o), "/")] = true
	}
	return func(origin string) bool {
		if exact[origin] {
			return true
		}
		if !allowLocalhost {
			return false
		}
		return strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")
	}
}

// CORSMiddleware allows the configured origins, plus any localhost port
// when allowLocalhost is set. Websocket handshakes bypass it.
func CORSMiddleware(allowed []string, allowLocalhost bool) gin.HandlerFunc {
	config := cors.Config{
		AllowOriginFunc:  OriginChecker(allowed, allowLocalhost),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	corsHandler := cors.New(config)
	return func(c *gin.Context) {
		if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			c.Next()
			return
		}
		corsHandler(c)
	}
}
