package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/apperr"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = apperr.NotFound("用户不存在")
	ErrUserExists        = apperr.Conflict("用户名或邮箱已被注册")
	ErrInvalidCredential = apperr.Unauthorized("用户名或密码错误")
)

// TokenRevoker 已注销 token 的存储
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *utils.TokenManager
	revoker  TokenRevoker
}

func NewAuthService(userRepo *repository.UserRepository, tokens *utils.TokenManager, revoker TokenRevoker) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens, revoker: revoker}
}

// Register 用户注册，用户名和邮箱统一转小写
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.UserInfo, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return nil, fmt.Errorf("check user exists: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		FullName: strings.TrimSpace(req.FullName),
		Password: hashedPassword,
		Avatar:   req.Avatar,
	}

	if err := s.userRepo.Create(user); err != nil {
		// 并发注册时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	info := toUserInfo(user)
	return &info, nil
}

// Login 用户登录（用户名或邮箱），返回 token 数据
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenData, error) {
	user, err := s.userRepo.GetByLogin(strings.ToLower(strings.TrimSpace(req.Login)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredential
	}

	token, claims, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenData{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: int(claims.TTL(claims.IssuedAt.Time).Seconds()),
		User:      toUserInfo(user),
	}, nil
}

// Logout 注销 token，直到其自然过期
func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims) error {
	ttl := claims.TTL(time.Now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// GetCurrentUser 根据用户 ID 获取用户信息
func (s *AuthService) GetCurrentUser(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	info := toUserInfo(user)
	return &info, nil
}
