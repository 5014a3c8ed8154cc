package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// Create 发布动态
// @Summary 发布动态
// @Tags 动态
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TweetRequest true "动态内容"
// @Success 201 {object} response.Response{data=dto.TweetInfo} "发布成功"
// @Failure 400 {object} response.Response "请求参数无效"
// @Router /tweets [post]
func (h *TweetHandler) Create(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}

	info, err := h.tweetService.Create(userID, &req)
	if err != nil {
		return err
	}

	response.Created(c, "发布成功", info)
	return nil
}

// ListByUser 获取用户动态
// @Summary 获取用户动态
// @Tags 动态
// @Produce json
// @Param userId path int true "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.TweetListData} "获取成功"
// @Failure 404 {object} response.Response "用户不存在"
// @Router /tweets/user/{userId} [get]
func (h *TweetHandler) ListByUser(c *gin.Context) error {
	userID, err := parseIDParam(c, "userId", "用户")
	if err != nil {
		return err
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return bindError(err)
	}

	data, err := h.tweetService.ListByUser(userID, q)
	if err != nil {
		return err
	}

	response.OK(c, "获取动态成功", data)
	return nil
}

// Update 更新动态
// @Summary 更新动态
// @Tags 动态
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tweetId path int true "动态ID"
// @Param request body dto.TweetRequest true "动态内容"
// @Success 200 {object} response.Response{data=dto.TweetInfo} "更新成功"
// @Failure 403 {object} response.Response "无权限"
// @Failure 404 {object} response.Response "动态不存在"
// @Router /tweets/{tweetId} [patch]
func (h *TweetHandler) Update(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	tweetID, err := parseIDParam(c, "tweetId", "动态")
	if err != nil {
		return err
	}

	var req dto.TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}

	info, err := h.tweetService.Update(tweetID, userID, &req)
	if err != nil {
		return err
	}

	response.OK(c, "更新动态成功", info)
	return nil
}

// Delete 删除动态
// @Summary 删除动态
// @Tags 动态
// @Produce json
// @Security BearerAuth
// @Param tweetId path int true "动态ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.Response "无权限"
// @Failure 404 {object} response.Response "动态不存在"
// @Router /tweets/{tweetId} [delete]
func (h *TweetHandler) Delete(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	tweetID, err := parseIDParam(c, "tweetId", "动态")
	if err != nil {
		return err
	}

	if err := h.tweetService.Delete(tweetID, userID); err != nil {
		return err
	}

	response.OK(c, "删除动态成功", nil)
	return nil
}
