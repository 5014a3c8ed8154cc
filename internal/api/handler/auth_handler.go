package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register 用户注册
// @Summary 用户注册
// @Description 注册新用户账号，用户名和邮箱不能重复
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 201 {object} response.Response{data=dto.UserInfo} "注册成功"
// @Failure 400 {object} response.Response "请求参数无效"
// @Failure 409 {object} response.Response "用户名或邮箱已被注册"
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) error {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}

	userInfo, err := h.authService.Register(&req)
	if err != nil {
		return err
	}

	response.Created(c, "注册成功", userInfo)
	return nil
}

// Login 用户登录
// @Summary 用户登录
// @Description 使用用户名或邮箱登录，获取 JWT Token
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} response.Response{data=dto.TokenData} "登录成功"
// @Failure 400 {object} response.Response "请求参数无效"
// @Failure 401 {object} response.Response "用户名或密码错误"
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) error {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}

	tokenData, err := h.authService.Login(&req)
	if err != nil {
		return err
	}

	response.OK(c, "登录成功", tokenData)
	return nil
}

// Logout 用户登出
// @Summary 用户登出
// @Description 注销当前 token，之后使用该 token 的请求返回 401
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "登出成功"
// @Failure 401 {object} response.Response "未授权"
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return errNotLoggedIn
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		return err
	}

	response.OK(c, "登出成功", nil)
	return nil
}

// Me 获取当前用户信息
// @Summary 获取当前用户信息
// @Description 获取当前登录用户的详细信息
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.UserInfo} "获取成功"
// @Failure 401 {object} response.Response "未授权"
// @Router /users/me [get]
func (h *AuthHandler) Me(c *gin.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	userInfo, err := h.authService.GetCurrentUser(userID)
	if err != nil {
		return err
	}

	response.OK(c, "获取成功", userInfo)
	return nil
}
