package middleware

import (
	"errors"

	"vidtube-go/internal/api/response"
	"vidtube-go/internal/apperr"
	"vidtube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const internalErrorMessage = "服务器内部错误，请稍后重试"

// HandlerFunc 返回 error 的 handler，错误统一交给 ErrorHandler 输出
type HandlerFunc func(c *gin.Context) error

// Handle 把 HandlerFunc 适配成 gin.HandlerFunc
func Handle(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {
			_ = c.Error(err)
			c.Abort()
		}
	}
}

// ErrorHandler 把链路上记录的最后一个错误翻译成统一的错误响应
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		WriteError(c, c.Errors.Last().Err)
	}
}

// WriteError 按错误类别输出响应，非业务错误记录日志并返回 500
func WriteError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		logger.Error("Unhandled error",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", GetRequestID(c)),
		)
		response.Fail(c, apperr.KindInternal.HTTPStatus(), apperr.KindInternal.String(), internalErrorMessage)
		return
	}

	if appErr.Kind == apperr.KindInternal {
		logger.Error("Internal error",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", GetRequestID(c)),
		)
	}
	response.Fail(c, appErr.Kind.HTTPStatus(), appErr.Kind.String(), appErr.Message)
}
