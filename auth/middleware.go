package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const OperatorKey = "operator"

// RequireOperator rejects requests without a valid bearer token.
func RequireOperator(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, found := strings.Cut(c.GetHeader("Authorization"), " ")
		if !found || scheme != "Bearer" || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required"})
			return
		}

		claims, err := issuer.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		c.Set(OperatorKey, claims.Operator)
		c.Next()
	}
}

// GetOperator returns the operator authenticated by RequireOperator.
func GetOperator(c *gin.Context) (string, bool) {
	return c.GetString(OperatorKey), c.GetString(OperatorKey) != ""
}
