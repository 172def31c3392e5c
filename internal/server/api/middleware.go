package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nvoronin/daybook/internal/server/auth"
)

const deviceIDKey = "deviceID"

// authRequired validates the Bearer token and stores the device id in the
// request context.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		deviceID, err := auth.GetDeviceIDFromToken(token, s.secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(deviceIDKey, deviceID)
		c.Next()
	}
}
