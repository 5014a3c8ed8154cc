package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID     = "X-Request-ID"
	ContextKeyRequestID = "requestID"
	maxRequestIDLength  = 128
)

// RequestID 沿用客户端传入的 X-Request-ID，没有则生成一个，并回写到响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		c.Set(ContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// GetRequestID 获取当前请求 ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}
