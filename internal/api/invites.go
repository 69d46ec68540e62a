package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"privypay/internal/core"  // Core operations
	"privypay/internal/utils" // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// InviteRequest carries the invitee's identity
type InviteRequest struct {
	Email    string `json:"email" binding:"required"`    // Invitee email
	FullName string `json:"fullName" binding:"required"` // Invitee display name
}

// RespondRequest carries the invitation being accepted or declined
type RespondRequest struct {
	InviteID string `json:"inviteId" binding:"required"` // Invitation ID from the received list
}

// CreateInviteHandler sends an invitation from the caller to the given email.
// Idempotent outcomes (already friends, already invited) return 200 with a
// distinguishing message.
func CreateInviteHandler(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c) // Authenticated caller
		if !ok {
			return
		}
		var req InviteRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
			return
		}
		result, err := svc.CreateInvitation(c.Request.Context(), identity.Email, req.Email, req.FullName)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
	}
}

// ListInvitesHandler returns both sides of the caller's invitation ledger
func ListInvitesHandler(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c) // Authenticated caller
		if !ok {
			return
		}
		invites, err := svc.ListInvitations(c.Request.Context(), identity.Email)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "received": invites.Received, "sent": invites.Sent})
	}
}

// AcceptInviteHandler accepts a pending invitation and befriends the parties
func AcceptInviteHandler(svc *core.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c) // Authenticated caller
		if !ok {
			return
		}
		var req RespondRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
			return
		}
		if err := svc.AcceptInvitation(c.Request.Context(), req.InviteID, identity.Email); err != nil {
			fail(c, err)
			return
		}
		// The caller's friends list changed; the inviter's cached copy ages
		// out with the TTL
		if rdb != nil {
			_ = utils.DeleteCache(context.Background(), rdb, utils.FriendsCacheKey(identity.Email))
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Invite accepted"})
	}
}

// DeclineInviteHandler declines a pending invitation; no friendship results
func DeclineInviteHandler(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c) // Authenticated caller
		if !ok {
			return
		}
		var req RespondRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
			return
		}
		if err := svc.DeclineInvitation(c.Request.Context(), req.InviteID, identity.Email); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Invite declined"})
	}
}
