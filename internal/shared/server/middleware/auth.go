package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"legalease-client/internal/shared/server/respond"
)

// BearerToken requires "Authorization: Bearer <token>" on every request except
// those whose path is listed in open. An empty token disables the check.
func BearerToken(token string, open ...string) gin.HandlerFunc {
	public := make(map[string]struct{}, len(open))
	for _, p := range open {
		public[p] = struct{}{}
	}
	want := []byte(token)

	return func(c *gin.Context) {
		if token == "" || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if _, ok := public[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(header, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}
		got := []byte(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}
		c.Next()
	}
}
