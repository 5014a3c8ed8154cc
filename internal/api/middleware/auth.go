package middleware

import (
	"context"
	"fmt"
	"strings"

	"vidtube-go/internal/apperr"
	"vidtube-go/pkg/logger"
	"vidtube-go/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextKeyUserID = "currentUserID"
	ContextKeyClaims = "currentClaims"
)

var (
	ErrMissingToken = apperr.Unauthorized("缺少认证令牌")
	ErrInvalidToken = apperr.Unauthorized("无效或过期的认证令牌")
	ErrRevokedToken = apperr.Unauthorized("认证令牌已注销")
)

// RevocationChecker 查询 token 是否已注销
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Authenticator 解析 Bearer Token 并校验注销状态
type Authenticator struct {
	tokens      *utils.TokenManager
	revocations RevocationChecker
}

func NewAuthenticator(tokens *utils.TokenManager, revocations RevocationChecker) *Authenticator {
	return &Authenticator{tokens: tokens, revocations: revocations}
}

func (a *Authenticator) authenticate(c *gin.Context) (*utils.Claims, error) {
	token := extractToken(c)
	if token == "" {
		return nil, ErrMissingToken
	}

	claims, err := a.tokens.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if a.revocations != nil {
		revoked, err := a.revocations.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check token revocation: %w", err)
		}
		if revoked {
			return nil, ErrRevokedToken
		}
	}
	return claims, nil
}

// AuthRequired JWT 认证中间件，要求请求必须携带有效 Token
func (a *Authenticator) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.authenticate(c)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// AuthOptional 有合法 Token 时记录当前用户，否则按匿名访问处理
func (a *Authenticator) AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.authenticate(c)
		if err == nil {
			setClaims(c, claims)
		} else if apperr.KindOf(err) == apperr.KindInternal {
			logger.Warn("Optional auth failed, continue as anonymous", zap.Error(err))
		}
		c.Next()
	}
}

func setClaims(c *gin.Context, claims *utils.Claims) {
	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyClaims, claims)
}

// GetCurrentUserID 从 Gin Context 中获取当前登录用户 ID
func GetCurrentUserID(c *gin.Context) (int64, bool) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := val.(int64)
	return userID, ok
}

// GetClaims 获取当前请求的 token claims
func GetClaims(c *gin.Context) (*utils.Claims, bool) {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*utils.Claims)
	return claims, ok
}

// extractToken 从 Authorization 头中提取 Bearer Token
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
