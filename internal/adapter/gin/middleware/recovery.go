package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-post-service/pkg/logger"
)

// Recovery turns a handler panic into a sanitized 500.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithContext(c.Request.Context(), log).Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				abortInternal(c, "Something went wrong")
			}
		}()
		c.Next()
	}
}
