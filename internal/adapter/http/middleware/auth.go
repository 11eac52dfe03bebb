package middleware

import (
	"net/http"
	"strings"

	"eisenq/internal/core/ports"
	"eisenq/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userIDKey = "user_id"

// AuthMiddleware requires a bearer token and stores the resolved owner id.
func AuthMiddleware(authenticator ports.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const bearerPrefix = "Bearer"

		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], bearerPrefix) || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c)
			return
		}

		userID, err := authenticator.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			zap.L().Debug("bearer token rejected", zap.Error(err))
			abortUnauthorized(c)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated owner id, or "" outside AuthMiddleware.
func GetUserID(c *gin.Context) string {
	if userID, exists := c.Get(userIDKey); exists {
		if s, ok := userID.(string); ok {
			return s
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(
		http.StatusUnauthorized,
		apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthenticated, GetLang(c)),
	)
}
