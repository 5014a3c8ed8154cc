package handler

import (
	"net/http"

	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthService *service.HealthService
}

func NewHealthHandler(healthService *service.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// Check 健康检查
// @Summary 健康检查
// @Description 检查数据库等依赖的连通性；关键依赖不可用时返回 503
// @Tags 系统
// @Produce json
// @Success 200 {object} response.Response{data=dto.HealthData} "服务正常"
// @Failure 503 {object} response.Response{data=dto.HealthData} "服务不可用"
// @Router /healthcheck [get]
func (h *HealthHandler) Check(c *gin.Context) error {
	data, healthy := h.healthService.Check(c.Request.Context())
	if !healthy {
		// 503 时仍然带上各组件状态，方便排查
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Status:  response.StatusError,
			Code:    http.StatusServiceUnavailable,
			Message: "服务不可用",
			Data:    data,
			Error:   "ServiceUnavailable",
		})
		return nil
	}

	response.OK(c, "服务正常", data)
	return nil
}
