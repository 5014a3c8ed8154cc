package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response 统一响应结构，成功时不带 error，失败时不带 data
type Response struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Status:  StatusSuccess,
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Status:  StatusSuccess,
		Code:    http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

// Fail 输出错误响应，errType 为错误类别（例如 NotFound）
func Fail(c *gin.Context, statusCode int, errType string, message string) {
	c.JSON(statusCode, Response{
		Status:  StatusError,
		Code:    statusCode,
		Message: message,
		Error:   errType,
	})
}

// AbortWithFail 输出错误响应并中止后续处理
func AbortWithFail(c *gin.Context, statusCode int, errType string, message string) {
	Fail(c, statusCode, errType, message)
	c.Abort()
}
