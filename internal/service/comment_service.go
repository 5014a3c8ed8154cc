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

var (
	ErrCommentNotFound     = apperr.NotFound("评论不存在")
	ErrCommentNoPermission = apperr.Forbidden("没有权限操作该评论")
	ErrContentRequired     = apperr.InvalidArgument("内容不能为空")
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	videoRepo   *repository.VideoRepository
	guard       ownerGuard[model.Comment]
}

func NewCommentService(commentRepo *repository.CommentRepository, videoRepo *repository.VideoRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		guard: ownerGuard[model.Comment]{
			load:      commentRepo.GetByID,
			ownerOf:   func(c *model.Comment) int64 { return c.OwnerID },
			notFound:  ErrCommentNotFound,
			forbidden: ErrCommentNoPermission,
		},
	}
}

// Create 发表评论
func (s *CommentService) Create(userID, videoID int64, req *dto.CommentCreateRequest) (*dto.CommentInfo, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrContentRequired
	}

	if err := videoVisible(s.videoRepo, videoID, userID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		OwnerID: userID,
		VideoID: videoID,
		Content: content,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	return toCommentInfo(comment), nil
}

// Update 更新评论（仅作者本人）
func (s *CommentService) Update(commentID, userID int64, req *dto.CommentUpdateRequest) (*dto.CommentInfo, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrContentRequired
	}

	if _, err := s.guard.require(commentID, userID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.UpdateContent(commentID, content)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}

	return toCommentInfo(comment), nil
}

// Delete 删除评论（仅作者本人）
func (s *CommentService) Delete(commentID, userID int64) error {
	if _, err := s.guard.require(commentID, userID); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// ListByVideo 获取视频评论列表，草稿的评论只有作者能看
func (s *CommentService) ListByVideo(videoID, viewerID int64, q dto.PageQuery) (*dto.CommentListData, error) {
	if err := videoVisible(s.videoRepo, videoID, viewerID); err != nil {
		return nil, err
	}

	page, limit := q.Normalize()
	comments, total, err := s.commentRepo.ListByVideo(videoID, dto.Offset(page, limit), limit)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	items := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		items = append(items, *toCommentInfo(&comments[i]))
	}

	return &dto.CommentListData{
		Comments:   items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}
