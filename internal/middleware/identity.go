package middleware

import (
	"net/http"                // HTTP status codes
	"privypay/internal/core"  // Identity type
	"privypay/internal/utils" // Token parsing
	"strings"                 // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// IdentityKey is the gin context key the authenticated identity is stored under
const IdentityKey = "identity"

// IdentityMiddleware validates the wallet provider's bearer token and stores
// the authenticated identity in the context. Handlers read it once and pass it
// into core operations explicitly.
func IdentityMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")     // Extract the token string
		claims, err := utils.ParseIdentityToken(tokenStr, secret) // Parse the identity token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired token"})
			return
		}
		// Store the identity in context for handlers
		c.Set(IdentityKey, core.Identity{Email: claims.Email, WalletAddress: claims.WalletAddress})
		c.Next() // Proceed to the next handler
	}
}
