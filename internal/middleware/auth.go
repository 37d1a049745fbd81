package middleware

import (
	"net/http"
	"strings"

	"ambulance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "userID"
	ContextClaims = "claims"
)

// AuthMiddleware requires "Authorization: Bearer <token>" and stores the
// token's user id in the context.
func AuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.APIError(c, http.StatusUnauthorized, "Missing authorization token", nil)
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.APIError(c, http.StatusUnauthorized, "Malformed authorization header", nil)
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			utils.APIError(c, http.StatusUnauthorized, "Invalid or expired token", err.Error())
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// UserID returns the authenticated user id, or 0 outside an authenticated route.
func UserID(c *gin.Context) uint64 {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0
	}
	id, _ := v.(uint64)
	return id
}

// Claims returns the verified token claims set by AuthMiddleware.
func Claims(c *gin.Context) *utils.Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.Claims)
	return claims
}
