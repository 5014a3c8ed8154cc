package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchVideos 搜索视频
// @Summary 搜索视频
// @Description 全文搜索已发布的视频，Elasticsearch 不可用时退化为数据库模糊匹配
// @Tags 搜索
// @Produce json
// @Param q query string false "搜索关键词"
// @Param owner_id query int false "作者ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.SearchVideoData} "搜索成功"
// @Failure 400 {object} response.Response "请求参数无效"
// @Router /search/videos [get]
func (h *SearchHandler) SearchVideos(c *gin.Context) error {
	var req dto.SearchVideoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return bindError(err)
	}

	data, err := h.searchService.SearchVideos(c.Request.Context(), &req)
	if err != nil {
		return err
	}

	response.OK(c, "搜索成功", data)
	return nil
}
