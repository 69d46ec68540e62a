package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"privypay/internal/core"  // Core operations
	"privypay/internal/utils" // Cache helpers
	"time"     // Cache TTL

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// ListFriendsHandler returns the caller's friends, read-through cached
func ListFriendsHandler(svc *core.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c) // Authenticated caller
		if !ok {
			return
		}
		ctx := context.Background()                       // Context for Redis operations
		cacheKey := utils.FriendsCacheKey(identity.Email) // Cache key for the friends list
		if rdb != nil {
			var cached []core.FriendInfo
			found, err := utils.GetCache(ctx, rdb, cacheKey, &cached) // Try the cache first
			if err == nil && found {
				c.JSON(http.StatusOK, gin.H{"success": true, "friends": cached, "cached": true})
				return
			}
		}
		friends, err := svc.ListFriends(c.Request.Context(), identity.Email)
		if err != nil {
			fail(c, err)
			return
		}
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, friends, 60*time.Second) // Cache for 60 seconds
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "friends": friends, "cached": false})
	}
}

// SearchHandler matches users by name or email, excluding the caller
func SearchHandler(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c) // Authenticated caller
		if !ok {
			return
		}
		query := c.Query("q") // Search query
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Query is required"})
			return
		}
		results, err := svc.Search(c.Request.Context(), query, identity.Email)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
	}
}
