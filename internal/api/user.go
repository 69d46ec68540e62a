package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"privypay/internal/core"  // Core operations
	"privypay/internal/utils" // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// RegisterRequest carries the profile fields for registration. Email comes
// from the identity token, never from the body.
type RegisterRequest struct {
	FullName      string `json:"fullName" binding:"required"` // Display name
	WalletAddress string `json:"walletAddress"`               // Optional; defaults to the identity's wallet
}

// RegisterUserHandler creates or updates the caller's user record and resolves
// any pending invitations addressed to them
func RegisterUserHandler(svc *core.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c) // Authenticated caller
		if !ok {
			return
		}
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
			return
		}
		wallet := req.WalletAddress // Wallet from the body, if any
		if wallet == "" {
			wallet = identity.WalletAddress // Fall back to the provider-supplied wallet
		}
		user, err := svc.RegisterOrUpdate(c.Request.Context(), identity.Email, req.FullName, wallet)
		if err != nil {
			fail(c, err)
			return
		}
		// Registration may have auto-accepted invites and changed friendships;
		// drop the caller's cached friends list. Inviters' cached lists age
		// out with the TTL.
		if rdb != nil {
			_ = utils.DeleteCache(context.Background(), rdb, utils.FriendsCacheKey(user.Email))
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

// CheckUserHandler probes the registration state for an email; the login flow
// uses it to tell shadow records from completed registrations
func CheckUserHandler(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email") // Email to probe
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email is required"})
			return
		}
		check, err := svc.CheckUser(c.Request.Context(), email)
		if err != nil {
			fail(c, err)
			return
		}
		// A missing record is a valid answer, not an error
		c.JSON(http.StatusOK, gin.H{"success": true, "user": check})
	}
}
