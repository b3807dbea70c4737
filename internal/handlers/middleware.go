package handlers

import (
	"net/http"
	"strings"

	"happy_thoughts/internal/models"

	"github.com/gin-gonic/gin"
)

const userCtxKey = "currentUser"

// extractToken returns the opaque credential from an Authorization
// header value. Both a bare token and "Bearer <token>" are accepted;
// the prefix is stripped before lookup.
func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "Bearer") {
		return ""
	}
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

// authRequired resolves the presented credential to a user before the
// handler runs. Requests without a resolvable identity never reach a
// mutation.
func (h *Handler) authRequired(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	token := extractToken(header)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing access token",
		})
		return
	}

	user, err := h.services.Authorization.ResolveToken(token)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid access token",
		})
		return
	}

	c.Set(userCtxKey, user)
	c.Next()
}

// authOptional lets anonymous requests through but still rejects a
// presented credential that does not resolve.
func (h *Handler) authOptional(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		c.Next()
		return
	}
	h.authRequired(c)
}

// currentUser reads the identity the auth middleware attached, or nil
// for anonymous requests.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
