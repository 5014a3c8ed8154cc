package service

import (
	"fmt"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/apperr"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

var (
	ErrTweetNotFound     = apperr.NotFound("动态不存在")
	ErrInvalidLikeTarget = apperr.InvalidArgument("不支持的点赞对象")
)

type LikeService struct {
	likeRepo    *repository.LikeRepository
	videoRepo   *repository.VideoRepository
	commentRepo *repository.CommentRepository
	tweetRepo   *repository.TweetRepository
}

func NewLikeService(
	likeRepo *repository.LikeRepository,
	videoRepo *repository.VideoRepository,
	commentRepo *repository.CommentRepository,
	tweetRepo *repository.TweetRepository,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

// Toggle 切换点赞状态，返回切换后的状态和点赞数
func (s *LikeService) Toggle(target model.LikeTarget, targetID, userID int64) (*dto.ToggleLikeData, error) {
	if err := s.ensureTarget(target, targetID, userID); err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.Toggle(target, targetID, userID)
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	count, err := s.likeRepo.CountByTarget(target, targetID)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}

	logger.Debug("Like toggled",
		zap.String("target", string(target)),
		zap.Int64("target_id", targetID),
		zap.Int64("user_id", userID),
		zap.Bool("liked", liked),
	)

	return &dto.ToggleLikeData{Liked: liked, LikeCount: count}, nil
}

// ensureTarget 点赞对象必须存在，视频和评论还要求对当前用户可见
func (s *LikeService) ensureTarget(target model.LikeTarget, targetID, userID int64) error {
	switch target {
	case model.LikeTargetVideo:
		return videoVisible(s.videoRepo, targetID, userID)
	case model.LikeTargetComment:
		return mustExist(func(id int64) (bool, error) {
			return s.commentRepo.VisibleTo(id, userID)
		}, targetID, ErrCommentNotFound)
	case model.LikeTargetTweet:
		return mustExist(s.tweetRepo.Exists, targetID, ErrTweetNotFound)
	default:
		return ErrInvalidLikeTarget
	}
}

// LikedVideos 获取用户点赞过的视频，点赞后被作者下架的视频不再返回
func (s *LikeService) LikedVideos(userID int64, q dto.PageQuery) (*dto.VideoListData, error) {
	page, limit := q.Normalize()
	videos, total, err := s.likeRepo.ListLikedVideos(userID, dto.Offset(page, limit), limit)
	if err != nil {
		return nil, fmt.Errorf("list liked videos: %w", err)
	}

	return &dto.VideoListData{
		Videos:     toVideoInfos(videos),
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}
