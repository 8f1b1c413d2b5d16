package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aurelialuxe.com/boutique/pkg/global"
	"aurelialuxe.com/boutique/pkg/store"
)

// RequestLogger logs one line per request
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// RequireAdmin rejects the request unless the signed-in member is a curator
func RequireAdmin(m *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := m.CurrentUser()
		if !ok || !user.IsAdmin {
			c.JSON(http.StatusForbidden, global.ErrorResponse("Curator access required", []global.ValidationError{
				{Field: "user", Message: store.ErrForbidden.Error(), Code: "forbidden"},
			}))
			c.Abort()
			return
		}
		c.Next()
	}
}

// ParseIndex validates a non-negative integer path parameter and stores it under the same key
func ParseIndex(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param(param))
		if err != nil || index < 0 {
			c.JSON(http.StatusBadRequest, global.ErrorResponse(param+" must be a non-negative integer", []global.ValidationError{
				{Field: param, Message: param + " must be a non-negative integer", Code: "invalid_format"},
			}))
			c.Abort()
			return
		}
		c.Set(param, index)
		c.Next()
	}
}
