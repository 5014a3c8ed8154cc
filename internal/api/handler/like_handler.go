package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/model"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

func (h *LikeHandler) toggle(c *gin.Context, target model.LikeTarget, param, label string) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, param, label)
	if err != nil {
		return err
	}

	data, err := h.likeService.Toggle(target, targetID, userID)
	if err != nil {
		return err
	}

	message := "已取消点赞"
	if data.Liked {
		message = "点赞成功"
	}
	response.OK(c, message, data)
	return nil
}

// ToggleVideoLike 切换视频点赞
// @Summary 切换视频点赞
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.ToggleLikeData} "操作成功"
// @Failure 404 {object} response.Response "视频不存在"
// @Router /likes/toggle/v/{videoId} [post]
func (h *LikeHandler) ToggleVideoLike(c *gin.Context) error {
	return h.toggle(c, model.LikeTargetVideo, "videoId", "视频")
}

// ToggleCommentLike 切换评论点赞
// @Summary 切换评论点赞
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "评论ID"
// @Success 200 {object} response.Response{data=dto.ToggleLikeData} "操作成功"
// @Failure 404 {object} response.Response "评论不存在"
// @Router /likes/toggle/c/{commentId} [post]
func (h *LikeHandler) ToggleCommentLike(c *gin.Context) error {
	return h.toggle(c, model.LikeTargetComment, "commentId", "评论")
}

// ToggleTweetLike 切换动态点赞
// @Summary 切换动态点赞
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param tweetId path int true "动态ID"
// @Success 200 {object} response.Response{data=dto.ToggleLikeData} "操作成功"
// @Failure 404 {object} response.Response "动态不存在"
// @Router /likes/toggle/t/{tweetId} [post]
func (h *LikeHandler) ToggleTweetLike(c *gin.Context) error {
	return h.toggle(c, model.LikeTargetTweet, "tweetId", "动态")
}

// LikedVideos 我点赞过的视频
// @Summary 我点赞过的视频
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Router /likes/videos [get]
func (h *LikeHandler) LikedVideos(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return bindError(err)
	}

	data, err := h.likeService.LikedVideos(userID, q)
	if err != nil {
		return err
	}

	response.OK(c, "获取点赞视频成功", data)
	return nil
}
