package handler

import (
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUser 获取用户主页信息
// @Summary 获取用户主页信息
// @Description 返回用户公开资料、订阅者数量和已订阅频道数量；登录时附带是否已订阅
// @Tags 用户
// @Produce json
// @Param userId path int true "用户ID"
// @Success 200 {object} response.Response{data=dto.ChannelProfile} "获取成功"
// @Failure 400 {object} response.Response "无效的用户ID"
// @Failure 404 {object} response.Response "用户不存在"
// @Router /users/{userId} [get]
func (h *UserHandler) GetUser(c *gin.Context) error {
	userID, err := parseIDParam(c, "userId", "用户")
	if err != nil {
		return err
	}

	profile, err := h.userService.GetChannelProfile(userID, viewerID(c))
	if err != nil {
		return err
	}

	response.OK(c, "获取成功", profile)
	return nil
}
