package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Browsers only reach the web tier through page loads and form actions.
const (
	allowedMethods = "GET, POST"
	allowedHeaders = "Content-Type, X-Request-ID"
)

// New returns a CORS middleware for the browser-facing routes. An empty allow-list
// echoes any origin, which is meant for local development. Credentials are always
// allowed because the session lives in a cookie.
func New(allowedOrigins []string) gin.HandlerFunc {
	originSet := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		originSet[strings.TrimRight(origin, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		preflight := c.Request.Method == http.MethodOptions
		if !hasOrigin(originSet, origin) {
			if preflight {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Add("Vary", "Origin")
		h.Set("Access-Control-Allow-Credentials", "true")

		if !preflight {
			c.Next()
			return
		}

		switch c.GetHeader("Access-Control-Request-Method") {
		case http.MethodGet, http.MethodPost:
		default:
			c.AbortWithStatus(http.StatusMethodNotAllowed)
			return
		}
		h.Set("Access-Control-Allow-Methods", allowedMethods)
		h.Set("Access-Control-Allow-Headers", allowedHeaders)
		h.Set("Access-Control-Max-Age", "600")
		c.AbortWithStatus(http.StatusNoContent)
	}
}

func hasOrigin(originSet map[string]struct{}, origin string) bool {
	if len(originSet) == 0 {
		return true
	}
	_, ok := originSet[strings.TrimRight(origin, "/")]
	return ok
}
