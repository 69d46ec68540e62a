package api

import (
	"privypay/internal/chain"      // JSON-RPC balance client
	"privypay/internal/core"       // Core operations
	"privypay/internal/middleware" // Identity middleware
	"privypay/internal/store"      // Store ping for health

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// RegisterRoutes wires every endpoint onto the router. Everything except the
// health check requires the wallet provider's bearer token. A nil chainClient
// disables the balances endpoint; a nil rdb disables caching.
func RegisterRoutes(r *gin.Engine, svc *core.Service, st store.Store, rdb *redis.Client, chainClient chain.Client, jwtSecret string) {
	r.GET("/healthz", HealthHandler(st, rdb)) // Liveness endpoint

	authed := r.Group("/")                                  // Authenticated routes
	authed.Use(middleware.IdentityMiddleware(jwtSecret))    // Provider token required
	authed.POST("/user", RegisterUserHandler(svc, rdb))     // Register or update
	authed.GET("/user/check", CheckUserHandler(svc))        // Registration-state probe
	authed.GET("/search", SearchHandler(svc))               // User search
	authed.GET("/friends", ListFriendsHandler(svc, rdb))    // Friends listing
	authed.POST("/invite", CreateInviteHandler(svc))        // Send invitation
	authed.GET("/invites", ListInvitesHandler(svc))         // Invitation ledger
	authed.POST("/invites/accept", AcceptInviteHandler(svc, rdb))   // Accept invitation
	authed.POST("/invites/decline", DeclineInviteHandler(svc))      // Decline invitation
	authed.POST("/transactions", RecordTransactionHandler(svc, rdb)) // Record transfer
	authed.GET("/transactions", ListTransactionsHandler(svc, rdb))   // Transaction history
	if chainClient != nil {
		authed.GET("/balances", BalancesHandler(chainClient)) // Native balance
	}
}
