package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/moderation-platform/internal/domain/user"
	"github.com/linskybing/moderation-platform/pkg/types"
	"github.com/linskybing/moderation-platform/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	Init("test-secret", "test-issuer")
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		claims, _ := utils.GetClaims(c)
		c.String(http.StatusOK, claims.UserID)
	})
	r.GET("/protected", chain...)
	return r
}

func mustToken(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	tok, err := GenerateToken(types.Claims{UserID: "u1", Email: "u1@example.org", Role: role, Institution: "North"}, ttl)
	require.NoError(t, err)
	return tok
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := setupRouter(JWTAuthMiddleware())
	valid := mustToken(t, "pc", time.Hour)

	tests := []struct {
		name   string
		setup  func(req *http.Request)
		status int
	}{
		{"bearer header", func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+valid) }, http.StatusOK},
		{"cookie", func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "token", Value: valid}) }, http.StatusOK},
		{"missing", func(req *http.Request) {}, http.StatusUnauthorized},
		{"bad scheme", func(req *http.Request) { req.Header.Set("Authorization", "Basic abc") }, http.StatusUnauthorized},
		{"garbage", func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"expired", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+mustToken(t, "pc", -time.Minute))
		}, http.StatusUnauthorized},
		{"unknown role", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+mustToken(t, "janitor", time.Hour))
		}, http.StatusUnauthorized},
		{"query token ignored without upgrade", func(req *http.Request) {
			q := req.URL.Query()
			q.Set("token", valid)
			req.URL.RawQuery = q.Encode()
		}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestJWTAuthMiddleware_WrongIssuer(t *testing.T) {
	r := setupRouter(JWTAuthMiddleware())
	Init("test-secret", "someone-else")
	tok := mustToken(t, "pc", time.Hour)
	Init("test-secret", "test-issuer")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	r := setupRouter(JWTAuthMiddleware(), RequireRoles(user.RoleHeadOfPrograms, user.RoleInstitutionManager))

	for role, want := range map[string]int{
		"head_of_programs":    http.StatusOK,
		"institution_manager": http.StatusOK,
		"instructor":          http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+mustToken(t, role, time.Hour))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, role)
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		allowLocalhost bool
		origins        map[string]bool
	}{
		{"development", true, map[string]bool{
			"https://review.example.org": true,
			"http://localhost:5173":      true,
			"http://127.0.0.1:8080":      true,
			"https://evil.example":       false,
		}},
		{"production", false, map[string]bool{
			"https://review.example.org": true,
			"http://localhost:5173":      false,
			"http://127.0.0.1:8080":      false,
			"https://evil.example":       false,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORSMiddleware([]string{"https://review.example.org/"}, tt.allowLocalhost))
			r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

			for origin, allowed := range tt.origins {
				req := httptest.NewRequest(http.MethodGet, "/x", nil)
				req.Header.Set("Origin", origin)
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)
				if allowed {
					assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"), origin)
				} else {
					assert.Equal(t, http.StatusForbidden, w.Code, origin)
				}
			}
		})
	}
}
