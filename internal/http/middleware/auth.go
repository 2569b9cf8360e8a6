package middleware

import (
	"net/http"
	"strings"

	"gateway/internal/domain"
	"gateway/internal/services"

	"github.com/gin-gonic/gin"
)

const requestContextKey = "request_context"

// Auth requires a valid bearer token and stores the caller on the context.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		rc, err := services.ParseToken(secret, strings.TrimSpace(token))
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		c.Set(requestContextKey, rc)
		c.Next()
	}
}

// GetRequestContext returns the authenticated caller, if any.
func GetRequestContext(c *gin.Context) (domain.RequestContext, bool) {
	v, ok := c.Get(requestContextKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	rc, ok := v.(domain.RequestContext)
	return rc, ok
}

// RequireRoles allows only callers whose role is listed.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(r)] = true
	}
	return func(c *gin.Context) {
		rc, ok := GetRequestContext(c)
		if !ok {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}
		if !allowed[strings.ToLower(rc.Role)] {
			abortJSON(c, http.StatusForbidden, "forbidden", "role not allowed")
			return
		}
		c.Next()
	}
}

func abortJSON(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"code":       code,
		"message":    message,
		"request_id": GetRequestID(c),
	})
}
