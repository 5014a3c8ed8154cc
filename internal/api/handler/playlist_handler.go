package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create 创建播放列表
// @Summary 创建播放列表
// @Tags 播放列表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PlaylistCreateRequest true "播放列表信息"
// @Success 201 {object} response.Response{data=dto.PlaylistInfo} "创建成功"
// @Failure 400 {object} response.Response "请求参数无效"
// @Router /playlists [post]
func (h *PlaylistHandler) Create(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.PlaylistCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}

	info, err := h.playlistService.Create(userID, &req)
	if err != nil {
		return err
	}

	response.Created(c, "创建播放列表成功", info)
	return nil
}

// ListByUser 获取用户的播放列表
// @Summary 获取用户的播放列表
// @Description 用户没有播放列表时返回空数组
// @Tags 播放列表
// @Produce json
// @Param userId path int true "用户ID"
// @Success 200 {object} response.Response{data=[]dto.PlaylistInfo} "获取成功"
// @Failure 404 {object} response.Response "用户不存在"
// @Router /playlists/user/{userId} [get]
func (h *PlaylistHandler) ListByUser(c *gin.Context) error {
	userID, err := parseIDParam(c, "userId", "用户")
	if err != nil {
		return err
	}

	items, err := h.playlistService.ListByUser(userID, viewerID(c))
	if err != nil {
		return err
	}

	response.OK(c, "获取播放列表成功", items)
	return nil
}

// GetByID 播放列表详情
// @Summary 播放列表详情
// @Description 返回播放列表及其视频（按加入顺序）
// @Tags 播放列表
// @Produce json
// @Param playlistId path int true "播放列表ID"
// @Success 200 {object} response.Response{data=dto.PlaylistInfo} "获取成功"
// @Failure 404 {object} response.Response "播放列表不存在"
// @Router /playlists/{playlistId} [get]
func (h *PlaylistHandler) GetByID(c *gin.Context) error {
	playlistID, err := parseIDParam(c, "playlistId", "播放列表")
	if err != nil {
		return err
	}

	info, err := h.playlistService.GetByID(playlistID, viewerID(c))
	if err != nil {
		return err
	}

	response.OK(c, "获取播放列表成功", info)
	return nil
}

// Update 更新播放列表
// @Summary 更新播放列表
// @Tags 播放列表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param playlistId path int true "播放列表ID"
// @Param request body dto.PlaylistUpdateRequest true "更新内容"
// @Success 200 {object} response.Response{data=dto.PlaylistInfo} "更新成功"
// @Failure 403 {object} response.Response "无权限"
// @Failure 404 {object} response.Response "播放列表不存在"
// @Router /playlists/{playlistId} [patch]
func (h *PlaylistHandler) Update(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	playlistID, err := parseIDParam(c, "playlistId", "播放列表")
	if err != nil {
		return err
	}

	var req dto.PlaylistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}

	info, err := h.playlistService.Update(playlistID, userID, &req)
	if err != nil {
		return err
	}

	response.OK(c, "更新播放列表成功", info)
	return nil
}

// Delete 删除播放列表
// @Summary 删除播放列表
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param playlistId path int true "播放列表ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.Response "无权限"
// @Failure 404 {object} response.Response "播放列表不存在"
// @Router /playlists/{playlistId} [delete]
func (h *PlaylistHandler) Delete(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	playlistID, err := parseIDParam(c, "playlistId", "播放列表")
	if err != nil {
		return err
	}

	if err := h.playlistService.Delete(playlistID, userID); err != nil {
		return err
	}

	response.OK(c, "删除播放列表成功", nil)
	return nil
}

func (h *PlaylistHandler) videoAndPlaylist(c *gin.Context) (userID, videoID, playlistID int64, err error) {
	if userID, err = currentUserID(c); err != nil {
		return
	}
	if videoID, err = parseIDParam(c, "videoId", "视频"); err != nil {
		return
	}
	playlistID, err = parseIDParam(c, "playlistId", "播放列表")
	return
}

// AddVideo 添加视频到播放列表
// @Summary 添加视频到播放列表
// @Description 重复添加不会产生重复条目
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Param playlistId path int true "播放列表ID"
// @Success 200 {object} response.Response{data=dto.PlaylistVideoData} "添加成功"
// @Failure 403 {object} response.Response "无权限"
// @Failure 404 {object} response.Response "播放列表或视频不存在"
// @Router /playlists/add/{videoId}/{playlistId} [patch]
func (h *PlaylistHandler) AddVideo(c *gin.Context) error {
	userID, videoID, playlistID, err := h.videoAndPlaylist(c)
	if err != nil {
		return err
	}

	data, err := h.playlistService.AddVideo(playlistID, videoID, userID)
	if err != nil {
		return err
	}

	response.OK(c, "添加视频成功", data)
	return nil
}

// RemoveVideo 从播放列表移除视频
// @Summary 从播放列表移除视频
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Param playlistId path int true "播放列表ID"
// @Success 200 {object} response.Response{data=dto.PlaylistVideoData} "移除成功"
// @Failure 403 {object} response.Response "无权限"
// @Failure 404 {object} response.Response "播放列表不存在"
// @Router /playlists/remove/{videoId}/{playlistId} [patch]
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) error {
	userID, videoID, playlistID, err := h.videoAndPlaylist(c)
	if err != nil {
		return err
	}

	data, err := h.playlistService.RemoveVideo(playlistID, videoID, userID)
	if err != nil {
		return err
	}

	response.OK(c, "移除视频成功", data)
	return nil
}
