package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"privypay/internal/chain" // JSON-RPC balance client

	"github.com/gin-gonic/gin" // Gin web framework
)

// BalancesHandler returns the native-coin balance of the caller's wallet, in
// wei as a decimal string
func BalancesHandler(client chain.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c) // Authenticated caller
		if !ok {
			return
		}
		if identity.WalletAddress == "" {
			// No wallet provisioned yet, nothing to look up
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No wallet address for this account"})
			return
		}
		balance, err := client.NativeBalance(c.Request.Context(), identity.WalletAddress)
		if err != nil {
			if errors.Is(err, chain.ErrInvalidAddress) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid wallet address"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Balance lookup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "wallet": identity.WalletAddress, "balance": balance})
	}
}
