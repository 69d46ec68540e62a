package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"privypay/internal/core"
	"privypay/internal/middleware"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// identityFrom reads the authenticated identity the middleware stored
func identityFrom(c *gin.Context) (core.Identity, bool) {
	v, exists := c.Get(middleware.IdentityKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return core.Identity{}, false
	}
	return v.(core.Identity), true
}

// fail translates a core error into the HTTP taxonomy: validation 400,
// not-found 404, invalid-state and conflict 409, store-unavailable 500.
// Anything unexpected is logged and reported as a generic 500.
func fail(c *gin.Context, err error) {
	var (
		validation  *core.ValidationError
		notFound    *core.NotFoundError
		invalid     *core.InvalidStateError
		conflict    *core.ConflictError
		unavailable *core.StoreUnavailableError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validation.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": notFound.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": invalid.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": conflict.Error()})
	case errors.As(err, &unavailable):
		logrus.WithField("error", err.Error()).Error("Store unavailable")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Store unavailable, please retry"})
	default:
		logrus.WithField("error", err.Error()).Error("Unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
	}
}
