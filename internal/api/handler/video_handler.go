package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadLimits 上传文件大小上限（字节）
type UploadLimits struct {
	MaxVideoBytes     int64
	MaxThumbnailBytes int64
}

type VideoHandler struct {
	videoService *service.VideoService
	videoRule    fileRule
	thumbRule    fileRule
}

func NewVideoHandler(videoService *service.VideoService, limits UploadLimits) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		videoRule:    fileRule{field: "videoFile", label: "视频文件", exts: videoExts, maxBytes: limits.MaxVideoBytes},
		thumbRule:    fileRule{field: "thumbnail", label: "封面", exts: imageExts, maxBytes: limits.MaxThumbnailBytes},
	}
}

// List 视频列表
// @Summary 视频列表
// @Description 分页查询视频，支持关键词、作者筛选和排序；只有作者本人能看到自己未发布的视频
// @Tags 视频
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Param query query string false "标题或简介关键词"
// @Param userId query int false "作者ID"
// @Param sortBy query string false "排序字段: createdAt, updatedAt, title, views, duration" default(createdAt)
// @Param sortType query string false "asc 或 desc" default(desc)
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Failure 400 {object} response.Response "请求参数无效"
// @Router /videos [get]
func (h *VideoHandler) List(c *gin.Context) error {
	var q dto.VideoListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return bindError(err)
	}

	data, err := h.videoService.List(viewerID(c), &q)
	if err != nil {
		return err
	}

	response.OK(c, "获取视频列表成功", data)
	return nil
}

// Publish 发布视频
// @Summary 发布视频
// @Description 上传视频文件和封面并发布
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param description formData string false "简介"
// @Param duration formData number false "时长（秒）"
// @Param videoFile formData file true "视频文件"
// @Param thumbnail formData file true "封面"
// @Success 201 {object} response.Response{data=dto.VideoInfo} "发布成功"
// @Failure 400 {object} response.Response "请求参数无效"
// @Failure 401 {object} response.Response "未授权"
// @Router /videos [post]
func (h *VideoHandler) Publish(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.VideoPublishRequest
	if err := c.ShouldBind(&req); err != nil {
		return bindError(err)
	}

	videoFile, vf, err := formFile(c, h.videoRule)
	defer closeFile(vf)
	if err != nil {
		return err
	}
	thumbnail, tf, err := formFile(c, h.thumbRule)
	defer closeFile(tf)
	if err != nil {
		return err
	}

	info, err := h.videoService.Publish(c.Request.Context(), userID, &req, videoFile, thumbnail)
	if err != nil {
		return err
	}

	response.Created(c, "视频发布成功", info)
	return nil
}

// GetDetail 视频详情
// @Summary 视频详情
// @Description 获取视频详情并增加一次播放量
// @Tags 视频
// @Produce json
// @Param videoId path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.VideoInfo} "获取成功"
// @Failure 400 {object} response.Response "无效的视频ID"
// @Failure 404 {object} response.Response "视频不存在"
// @Router /videos/{videoId} [get]
func (h *VideoHandler) GetDetail(c *gin.Context) error {
	videoID, err := parseIDParam(c, "videoId", "视频")
	if err != nil {
		return err
	}

	info, err := h.videoService.GetDetail(videoID, viewerID(c))
	if err != nil {
		return err
	}

	response.OK(c, "获取视频详情成功", info)
	return nil
}

// Update 更新视频
// @Summary 更新视频
// @Description 更新标题、简介或封面（仅作者本人），支持 JSON 或 multipart
// @Tags 视频
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Param request body dto.VideoUpdateRequest false "更新内容"
// @Success 200 {object} response.Response{data=dto.VideoInfo} "更新成功"
// @Failure 400 {object} response.Response "请求参数无效"
// @Failure 403 {object} response.Response "无权限"
// @Failure 404 {object} response.Response "视频不存在"
// @Router /videos/{videoId} [patch]
func (h *VideoHandler) Update(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	videoID, err := parseIDParam(c, "videoId", "视频")
	if err != nil {
		return err
	}

	var req dto.VideoUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		return bindError(err)
	}

	thumbnail, tf, err := formFile(c, h.thumbRule)
	defer closeFile(tf)
	if err != nil {
		return err
	}

	info, err := h.videoService.Update(c.Request.Context(), videoID, userID, &req, thumbnail)
	if err != nil {
		return err
	}

	response.OK(c, "更新视频成功", info)
	return nil
}

// Delete 删除视频
// @Summary 删除视频
// @Description 删除视频及其评论、点赞和播放列表条目（仅作者本人）
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.Response "无权限"
// @Failure 404 {object} response.Response "视频不存在"
// @Router /videos/{videoId} [delete]
func (h *VideoHandler) Delete(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	videoID, err := parseIDParam(c, "videoId", "视频")
	if err != nil {
		return err
	}

	if err := h.videoService.Delete(videoID, userID); err != nil {
		return err
	}

	response.OK(c, "删除视频成功", nil)
	return nil
}

// TogglePublish 切换发布状态
// @Summary 切换发布状态
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.PublishStatusData} "切换成功"
// @Failure 403 {object} response.Response "无权限"
// @Failure 404 {object} response.Response "视频不存在"
// @Router /videos/toggle/publish/{videoId} [patch]
func (h *VideoHandler) TogglePublish(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	videoID, err := parseIDParam(c, "videoId", "视频")
	if err != nil {
		return err
	}

	data, err := h.videoService.TogglePublish(videoID, userID)
	if err != nil {
		return err
	}

	response.OK(c, publishMessage(data.IsPublished), data)
	return nil
}

func publishMessage(published bool) string {
	if published {
		return "视频已发布"
	}
	return "视频已取消发布"
}
