package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListByVideo 获取视频评论
// @Summary 获取视频评论
// @Description 分页获取视频的评论，最新在前
// @Tags 评论
// @Produce json
// @Param videoId path int true "视频ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.CommentListData} "获取成功"
// @Failure 404 {object} response.Response "视频不存在"
// @Router /comments/{videoId} [get]
func (h *CommentHandler) ListByVideo(c *gin.Context) error {
	videoID, err := parseIDParam(c, "videoId", "视频")
	if err != nil {
		return err
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return bindError(err)
	}

	data, err := h.commentService.ListByVideo(videoID, viewerID(c), q)
	if err != nil {
		return err
	}

	response.OK(c, "获取评论成功", data)
	return nil
}

// Create 发表评论
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Param request body dto.CommentCreateRequest true "评论内容"
// @Success 201 {object} response.Response{data=dto.CommentInfo} "评论成功"
// @Failure 400 {object} response.Response "请求参数无效"
// @Failure 404 {object} response.Response "视频不存在"
// @Router /comments/{videoId} [post]
func (h *CommentHandler) Create(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	videoID, err := parseIDParam(c, "videoId", "视频")
	if err != nil {
		return err
	}

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}

	info, err := h.commentService.Create(userID, videoID, &req)
	if err != nil {
		return err
	}

	response.Created(c, "评论成功", info)
	return nil
}

// Update 更新评论
// @Summary 更新评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "评论ID"
// @Param request body dto.CommentUpdateRequest true "评论内容"
// @Success 200 {object} response.Response{data=dto.CommentInfo} "更新成功"
// @Failure 403 {object} response.Response "无权限"
// @Failure 404 {object} response.Response "评论不存在"
// @Router /comments/c/{commentId} [patch]
func (h *CommentHandler) Update(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	commentID, err := parseIDParam(c, "commentId", "评论")
	if err != nil {
		return err
	}

	var req dto.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}

	info, err := h.commentService.Update(commentID, userID, &req)
	if err != nil {
		return err
	}

	response.OK(c, "更新评论成功", info)
	return nil
}

// Delete 删除评论
// @Summary 删除评论
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "评论ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.Response "无权限"
// @Failure 404 {object} response.Response "评论不存在"
// @Router /comments/c/{commentId} [delete]
func (h *CommentHandler) Delete(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	commentID, err := parseIDParam(c, "commentId", "评论")
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(commentID, userID); err != nil {
		return err
	}

	response.OK(c, "删除评论成功", nil)
	return nil
}
