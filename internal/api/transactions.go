package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"privypay/internal/core"   // Core operations
	"privypay/internal/domain" // Enriched transaction type
	"privypay/internal/utils"  // Cache helpers
	"time"     // Cache TTL

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// TransactionRequest carries the result of a completed on-chain transfer
type TransactionRequest struct {
	From   string `json:"from" binding:"required"`   // Sender wallet address
	To     string `json:"to" binding:"required"`     // Recipient wallet address
	Amount string `json:"amount" binding:"required"` // Decimal string amount
	Token  string `json:"token" binding:"required"`  // Token symbol
	Hash   string `json:"hash" binding:"required"`   // On-chain transaction hash
}

// RecordTransactionHandler appends a completed transfer to the history
func RecordTransactionHandler(svc *core.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c) // Authenticated caller
		if !ok {
			return
		}
		var req TransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
			return
		}
		tx, err := svc.RecordTransaction(c.Request.Context(), req.From, req.To, req.Amount, req.Token, req.Hash)
		if err != nil {
			fail(c, err)
			return
		}
		// Invalidate the caller's cached history; the recipient's cached copy
		// ages out with the TTL
		if rdb != nil {
			_ = utils.DeleteCache(context.Background(), rdb, utils.TransactionsCacheKey(identity.Email))
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "transaction": tx})
	}
}

// ListTransactionsHandler returns the caller's history newest first, enriched
// with counterparty identity and read-through cached
func ListTransactionsHandler(svc *core.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c) // Authenticated caller
		if !ok {
			return
		}
		ctx := context.Background()                            // Context for Redis operations
		cacheKey := utils.TransactionsCacheKey(identity.Email) // Cache key for the history
		if rdb != nil {
			var cached []domain.EnrichedTransaction
			found, err := utils.GetCache(ctx, rdb, cacheKey, &cached) // Try the cache first
			if err == nil && found {
				c.JSON(http.StatusOK, gin.H{"success": true, "transactions": cached, "cached": true})
				return
			}
		}
		txs, err := svc.ListTransactions(c.Request.Context(), identity.Email)
		if err != nil {
			fail(c, err)
			return
		}
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, txs, 60*time.Second) // Cache for 60 seconds
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "transactions": txs, "cached": false})
	}
}
