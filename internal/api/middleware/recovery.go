package middleware

import (
	"net/http"

	"vidtube-go/internal/api/response"
	"vidtube-go/internal/apperr"
	"vidtube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery 恢复中间件，捕获panic
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				// 记录panic日志
				logger.Error("Panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("request_id", GetRequestID(c)),
					zap.Stack("stack"),
				)

				response.AbortWithFail(c, http.StatusInternalServerError, apperr.KindInternal.String(), internalErrorMessage)
			}
		}()

		c.Next()
	}
}
