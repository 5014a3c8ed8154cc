package service

import (
	"errors"
	"fmt"
	"strings"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/apperr"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"

	"gorm.io/gorm"
)

var ErrTweetNoPermission = apperr.Forbidden("没有权限操作该动态")

type TweetService struct {
	tweetRepo *repository.TweetRepository
	userRepo  *repository.UserRepository
	guard     ownerGuard[model.Tweet]
}

func NewTweetService(tweetRepo *repository.TweetRepository, userRepo *repository.UserRepository) *TweetService {
	return &TweetService{
		tweetRepo: tweetRepo,
		userRepo:  userRepo,
		guard: ownerGuard[model.Tweet]{
			load:      tweetRepo.GetByID,
			ownerOf:   func(t *model.Tweet) int64 { return t.OwnerID },
			notFound:  ErrTweetNotFound,
			forbidden: ErrTweetNoPermission,
		},
	}
}

// Create 发布动态
func (s *TweetService) Create(ownerID int64, req *dto.TweetRequest) (*dto.TweetInfo, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrContentRequired
	}

	tweet := &model.Tweet{OwnerID: ownerID, Content: content}
	if err := s.tweetRepo.Create(tweet); err != nil {
		return nil, fmt.Errorf("create tweet: %w", err)
	}
	return toTweetInfo(tweet), nil
}

// ListByUser 获取用户动态
func (s *TweetService) ListByUser(userID int64, q dto.PageQuery) (*dto.TweetListData, error) {
	if err := mustExist(s.userRepo.Exists, userID, ErrUserNotFound); err != nil {
		return nil, err
	}

	page, limit := q.Normalize()
	tweets, total, err := s.tweetRepo.ListByOwner(userID, dto.Offset(page, limit), limit)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}

	items := make([]dto.TweetInfo, 0, len(tweets))
	for i := range tweets {
		items = append(items, *toTweetInfo(&tweets[i]))
	}

	return &dto.TweetListData{
		Tweets:     items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// Update 更新动态（仅作者本人）
func (s *TweetService) Update(tweetID, userID int64, req *dto.TweetRequest) (*dto.TweetInfo, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrContentRequired
	}

	if _, err := s.guard.require(tweetID, userID); err != nil {
		return nil, err
	}

	tweet, err := s.tweetRepo.UpdateContent(tweetID, content)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, fmt.Errorf("update tweet: %w", err)
	}
	return toTweetInfo(tweet), nil
}

// Delete 删除动态（仅作者本人）
func (s *TweetService) Delete(tweetID, userID int64) error {
	if _, err := s.guard.require(tweetID, userID); err != nil {
		return err
	}

	if err := s.tweetRepo.Delete(tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTweetNotFound
		}
		return fmt.Errorf("delete tweet: %w", err)
	}
	return nil
}
