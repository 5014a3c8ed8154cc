package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Toggle 切换订阅
// @Summary 切换订阅
// @Description 已订阅则取消，未订阅则订阅；不能订阅自己
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param channelId path int true "频道（用户）ID"
// @Success 200 {object} response.Response{data=dto.ToggleSubscriptionData} "操作成功"
// @Failure 400 {object} response.Response "不能订阅自己"
// @Failure 404 {object} response.Response "频道不存在"
// @Router /subscriptions/c/{channelId} [post]
func (h *SubscriptionHandler) Toggle(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	channelID, err := parseIDParam(c, "channelId", "频道")
	if err != nil {
		return err
	}

	data, err := h.subscriptionService.Toggle(userID, channelID)
	if err != nil {
		return err
	}

	message := "已取消订阅"
	if data.Subscribed {
		message = "订阅成功"
	}
	response.OK(c, message, data)
	return nil
}

// Subscribers 频道的订阅者
// @Summary 频道的订阅者
// @Tags 订阅
// @Produce json
// @Param channelId path int true "频道（用户）ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.UserListData} "获取成功"
// @Failure 404 {object} response.Response "频道不存在"
// @Router /subscriptions/c/{channelId} [get]
func (h *SubscriptionHandler) Subscribers(c *gin.Context) error {
	channelID, err := parseIDParam(c, "channelId", "频道")
	if err != nil {
		return err
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return bindError(err)
	}

	data, err := h.subscriptionService.Subscribers(channelID, q)
	if err != nil {
		return err
	}

	response.OK(c, "获取订阅者成功", data)
	return nil
}

// SubscribedChannels 用户订阅的频道
// @Summary 用户订阅的频道
// @Tags 订阅
// @Produce json
// @Param subscriberId path int true "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.UserListData} "获取成功"
// @Failure 404 {object} response.Response "用户不存在"
// @Router /subscriptions/u/{subscriberId} [get]
func (h *SubscriptionHandler) SubscribedChannels(c *gin.Context) error {
	subscriberID, err := parseIDParam(c, "subscriberId", "用户")
	if err != nil {
		return err
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return bindError(err)
	}

	data, err := h.subscriptionService.SubscribedChannels(subscriberID, q)
	if err != nil {
		return err
	}

	response.OK(c, "获取订阅频道成功", data)
	return nil
}
