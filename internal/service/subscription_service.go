package service

import (
	"fmt"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/apperr"
	"vidtube-go/internal/repository"
)

var (
	ErrChannelNotFound = apperr.NotFound("频道不存在")
	ErrSelfSubscribe   = apperr.InvalidArgument("不能订阅自己的频道")
)

type SubscriptionService struct {
	subRepo  *repository.SubscriptionRepository
	userRepo *repository.UserRepository
}

func NewSubscriptionService(subRepo *repository.SubscriptionRepository, userRepo *repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo}
}

// Toggle 切换订阅状态
func (s *SubscriptionService) Toggle(subscriberID, channelID int64) (*dto.ToggleSubscriptionData, error) {
	if subscriberID == channelID {
		return nil, ErrSelfSubscribe
	}
	if err := mustExist(s.userRepo.Exists, channelID, ErrChannelNotFound); err != nil {
		return nil, err
	}

	subscribed, err := s.subRepo.Toggle(subscriberID, channelID)
	if err != nil {
		return nil, fmt.Errorf("toggle subscription: %w", err)
	}

	count, err := s.subRepo.CountSubscribers(channelID)
	if err != nil {
		return nil, fmt.Errorf("count subscribers: %w", err)
	}

	return &dto.ToggleSubscriptionData{Subscribed: subscribed, SubscribersCount: count}, nil
}

// Subscribers 获取频道的订阅者列表
func (s *SubscriptionService) Subscribers(channelID int64, q dto.PageQuery) (*dto.UserListData, error) {
	if err := mustExist(s.userRepo.Exists, channelID, ErrChannelNotFound); err != nil {
		return nil, err
	}

	page, limit := q.Normalize()
	users, total, err := s.subRepo.ListSubscribers(channelID, dto.Offset(page, limit), limit)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}

	return &dto.UserListData{
		Users:      toOwnerBriefs(users),
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// SubscribedChannels 获取用户订阅的频道列表
func (s *SubscriptionService) SubscribedChannels(subscriberID int64, q dto.PageQuery) (*dto.UserListData, error) {
	if err := mustExist(s.userRepo.Exists, subscriberID, ErrUserNotFound); err != nil {
		return nil, err
	}

	page, limit := q.Normalize()
	users, total, err := s.subRepo.ListChannels(subscriberID, dto.Offset(page, limit), limit)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}

	return &dto.UserListData{
		Users:      toOwnerBriefs(users),
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}
