package service

import (
	"errors"
	"fmt"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/repository"

	"gorm.io/gorm"
)

type UserService struct {
	userRepo *repository.UserRepository
	subRepo  *repository.SubscriptionRepository
}

func NewUserService(userRepo *repository.UserRepository, subRepo *repository.SubscriptionRepository) *UserService {
	return &UserService{userRepo: userRepo, subRepo: subRepo}
}

// GetChannelProfile 获取用户频道信息；viewerID 为 0 表示未登录
func (s *UserService) GetChannelProfile(userID, viewerID int64) (*dto.ChannelProfile, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	subscribers, err := s.subRepo.CountSubscribers(userID)
	if err != nil {
		return nil, fmt.Errorf("count subscribers: %w", err)
	}
	channels, err := s.subRepo.CountChannels(userID)
	if err != nil {
		return nil, fmt.Errorf("count channels: %w", err)
	}

	profile := &dto.ChannelProfile{
		UserInfo:          toUserInfo(user),
		SubscribersCount:  subscribers,
		SubscribedToCount: channels,
	}

	if viewerID != 0 && viewerID != userID {
		profile.IsSubscribed, err = s.subRepo.IsSubscribed(viewerID, userID)
		if err != nil {
			return nil, fmt.Errorf("check subscription: %w", err)
		}
	}

	return profile, nil
}
