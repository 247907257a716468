package middleware

import (
	"net/http"
	"strings"

	"dineslot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthStaffMiddleware admits only requests carrying a valid staff token.
func JWTAuthStaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "Missing or invalid Authorization header",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, err := utils.ExtractStaffSubject(tokenString)
		if err != nil {
			utils.RequestLogger(c).Warn("Rejected staff token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "Unauthorized staff access",
			})
			return
		}

		c.Set("staffID", subject)
		c.Next()
	}
}
