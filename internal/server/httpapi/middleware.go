package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/docsync/internal/server/auth"
	"github.com/dmitrijs2005/docsync/internal/transport"
)

const deviceIDKey = "deviceID"

// authRequired verifies the Authorization bearer token and stores the
// device ID in the request context.
func (api *API) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, transport.ErrorResponse{
				Status:  transport.StatusError,
				Code:    transport.CodeValidation,
				Message: "missing bearer token",
			})
			return
		}

		deviceID, err := auth.GetDeviceIDFromToken(token, api.jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, transport.ErrorResponse{
				Status:  transport.StatusError,
				Code:    transport.CodeValidation,
				Message: err.Error(),
			})
			return
		}

		c.Set(deviceIDKey, deviceID)
		c.Next()
	}
}
