package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/apperr"
	infraKafka "vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrVideoNotFound      = apperr.NotFound("视频不存在")
	ErrVideoNoPermission  = apperr.Forbidden("没有权限操作该视频")
	ErrNoFieldsToUpdate   = apperr.InvalidArgument("没有需要更新的字段")
	ErrTitleRequired      = apperr.InvalidArgument("标题不能为空")
	ErrVideoFileRequired  = apperr.InvalidArgument("缺少视频文件")
	ErrThumbnailRequired  = apperr.InvalidArgument("缺少封面文件")
	ErrInvalidUserID      = apperr.InvalidArgument("userId 格式不正确")
	ErrInvalidSortBy      = apperr.InvalidArgument("不支持的排序字段")
	ErrInvalidSortType    = apperr.InvalidArgument("sortType 只能是 asc 或 desc")
	ErrMediaUploadFailure = apperr.New(apperr.KindInternal, "上传文件失败")
)

const uploadTimeout = 5 * time.Minute

// videoSortColumns 可排序字段到列名的映射
var videoSortColumns = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
	"title":      "title",
	"views":      "views",
	"duration":   "duration",
}

// MediaStore 媒体文件存储，Upload 返回可公开访问的 URL
type MediaStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
}

// VideoEventPublisher 视频变更事件发布
type VideoEventPublisher interface {
	PublishVideoEvent(ctx context.Context, event *infraKafka.VideoEvent) error
}

// UploadFile 待上传的文件
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type VideoService struct {
	videoRepo *repository.VideoRepository
	media     MediaStore
	events    VideoEventPublisher
	guard     ownerGuard[model.Video]
}

func NewVideoService(videoRepo *repository.VideoRepository, media MediaStore, events VideoEventPublisher) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		media:     media,
		events:    events,
		guard: ownerGuard[model.Video]{
			load:      videoRepo.GetByID,
			ownerOf:   func(v *model.Video) int64 { return v.OwnerID },
			notFound:  ErrVideoNotFound,
			forbidden: ErrVideoNoPermission,
		},
	}
}

// Publish 发布视频：先上传视频文件和封面，全部成功后才写入数据库
func (s *VideoService) Publish(ctx context.Context, ownerID int64, req *dto.VideoPublishRequest, videoFile, thumbnail *UploadFile) (*dto.VideoInfo, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if videoFile == nil {
		return nil, ErrVideoFileRequired
	}
	if thumbnail == nil {
		return nil, ErrThumbnailRequired
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	videoObject := objectName("videos", ownerID, videoFile.Filename)
	videoURL, err := s.media.Upload(ctx, videoObject, videoFile.Reader, videoFile.Size, videoFile.ContentType)
	if err != nil {
		logger.Error("Upload video file failed", zap.Int64("owner_id", ownerID), zap.Error(err))
		return nil, apperr.Wrap(apperr.KindInternal, ErrMediaUploadFailure.Message, err)
	}

	thumbObject := objectName("thumbnails", ownerID, thumbnail.Filename)
	thumbURL, err := s.media.Upload(ctx, thumbObject, thumbnail.Reader, thumbnail.Size, thumbnail.ContentType)
	if err != nil {
		logger.Error("Upload thumbnail failed", zap.Int64("owner_id", ownerID), zap.Error(err))
		s.removeObjects(videoObject)
		return nil, apperr.Wrap(apperr.KindInternal, ErrMediaUploadFailure.Message, err)
	}

	video := &model.Video{
		OwnerID:     ownerID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		VideoFile:   videoURL,
		Thumbnail:   thumbURL,
		Duration:    req.Duration,
		IsPublished: true,
	}

	if err := s.videoRepo.Create(video); err != nil {
		s.removeObjects(videoObject, thumbObject)
		return nil, fmt.Errorf("create video: %w", err)
	}

	s.publishEvent(infraKafka.VideoEventUpsert, video.ID)

	logger.Info("Video published", zap.Int64("video_id", video.ID), zap.Int64("owner_id", ownerID))
	return toVideoInfo(video), nil
}

// GetDetail 获取视频详情（自动增加观看次数）；未发布的视频只有作者本人可见
func (s *VideoService) GetDetail(videoID, viewerID int64) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.GetByIDWithOwner(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("get video: %w", err)
	}

	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, ErrVideoNotFound
	}

	if err := s.videoRepo.IncrementViews(videoID); err != nil {
		logger.Warn("Increment views failed", zap.Int64("video_id", videoID), zap.Error(err))
	} else {
		video.Views++
	}

	return toVideoInfo(video), nil
}

// List 视频列表：支持关键词、作者筛选和排序；作者查看自己的列表时包含未发布视频
func (s *VideoService) List(viewerID int64, q *dto.VideoListQuery) (*dto.VideoListData, error) {
	page, limit := q.Normalize()

	opts := repository.VideoListOptions{
		Skip:          dto.Offset(page, limit),
		Limit:         limit,
		Search:        strings.TrimSpace(q.Query),
		OnlyPublished: true,
		WithOwner:     true,
		SortDesc:      true,
	}

	if q.UserID != "" {
		ownerID, err := strconv.ParseInt(q.UserID, 10, 64)
		if err != nil || ownerID <= 0 {
			return nil, ErrInvalidUserID
		}
		opts.OwnerID = &ownerID
		opts.OnlyPublished = ownerID != viewerID
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	column, ok := videoSortColumns[sortBy]
	if !ok {
		return nil, ErrInvalidSortBy
	}
	opts.SortColumn = column

	switch strings.ToLower(q.SortType) {
	case "", "desc":
		opts.SortDesc = true
	case "asc":
		opts.SortDesc = false
	default:
		return nil, ErrInvalidSortType
	}

	videos, total, err := s.videoRepo.ListVideos(opts)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	return &dto.VideoListData{
		Videos:     toVideoInfos(videos),
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// Update 更新视频信息（仅作者本人），空字段保持原值，thumbnail 不为空时替换封面
func (s *VideoService) Update(ctx context.Context, videoID, currentUserID int64, req *dto.VideoUpdateRequest, thumbnail *UploadFile) (*dto.VideoInfo, error) {
	if _, err := s.guard.require(videoID, currentUserID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if title := strings.TrimSpace(req.Title); title != "" {
		updates["title"] = title
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		updates["description"] = desc
	}

	if thumbnail != nil {
		ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
		defer cancel()

		url, err := s.media.Upload(ctx, objectName("thumbnails", currentUserID, thumbnail.Filename),
			thumbnail.Reader, thumbnail.Size, thumbnail.ContentType)
		if err != nil {
			logger.Error("Upload thumbnail failed", zap.Int64("video_id", videoID), zap.Error(err))
			return nil, apperr.Wrap(apperr.KindInternal, ErrMediaUploadFailure.Message, err)
		}
		updates["thumbnail"] = url
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	video, err := s.videoRepo.Update(videoID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("update video: %w", err)
	}

	s.publishEvent(infraKafka.VideoEventUpsert, videoID)
	return toVideoInfo(video), nil
}

// Delete 删除视频（仅作者本人），同时删除相关点赞、评论和播放列表条目
func (s *VideoService) Delete(videoID, currentUserID int64) error {
	if _, err := s.guard.require(videoID, currentUserID); err != nil {
		return err
	}

	if err := s.videoRepo.Delete(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return fmt.Errorf("delete video: %w", err)
	}

	s.publishEvent(infraKafka.VideoEventDelete, videoID)
	logger.Info("Video deleted", zap.Int64("video_id", videoID), zap.Int64("owner_id", currentUserID))
	return nil
}

// TogglePublish 切换发布状态（仅作者本人）
func (s *VideoService) TogglePublish(videoID, currentUserID int64) (*dto.PublishStatusData, error) {
	video, err := s.guard.require(videoID, currentUserID)
	if err != nil {
		return nil, err
	}

	updated, err := s.videoRepo.Update(videoID, map[string]interface{}{"is_published": !video.IsPublished})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("toggle publish: %w", err)
	}

	s.publishEvent(infraKafka.VideoEventUpsert, videoID)
	return &dto.PublishStatusData{VideoID: updated.ID, IsPublished: updated.IsPublished}, nil
}

// publishEvent 发送视频变更事件，失败只记录日志
func (s *VideoService) publishEvent(eventType infraKafka.VideoEventType, videoID int64) {
	if s.events == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	event := &infraKafka.VideoEvent{Type: eventType, VideoID: videoID, OccurredAt: time.Now()}
	if err := s.events.PublishVideoEvent(ctx, event); err != nil {
		logger.Warn("Publish video event failed",
			zap.Int64("video_id", videoID),
			zap.String("type", string(eventType)),
			zap.Error(err),
		)
	}
}

func (s *VideoService) removeObjects(names ...string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, name := range names {
		if err := s.media.Remove(ctx, name); err != nil {
			logger.Warn("Remove orphan object failed", zap.String("object", name), zap.Error(err))
		}
	}
}

// objectName 生成对象名：<kind>/<owner>/<uuid><ext>
func objectName(kind string, ownerID int64, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%d/%s%s", kind, ownerID, uuid.NewString(), ext)
}
