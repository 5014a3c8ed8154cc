package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats 频道统计
// @Summary 频道统计
// @Description 当前用户频道的视频数、总播放量、订阅者数和获赞数
// @Tags 工作台
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.ChannelStats} "获取成功"
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.dashboardService.Stats(userID)
	if err != nil {
		return err
	}

	response.OK(c, "获取频道统计成功", stats)
	return nil
}

// Videos 频道视频
// @Summary 频道视频
// @Description 当前用户的全部视频（含未发布），最新在前
// @Tags 工作台
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Router /dashboard/videos [get]
func (h *DashboardHandler) Videos(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return bindError(err)
	}

	data, err := h.dashboardService.ChannelVideos(userID, q)
	if err != nil {
		return err
	}

	response.OK(c, "获取频道视频成功", data)
	return nil
}
