package service

import (
	"context"
	"errors"
	"fmt"

	infraES "vidtube-go/internal/infra/elasticsearch"
	infraKafka "vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const reindexBatchSize = 500

// VideoIndexer 搜索索引写入
type VideoIndexer interface {
	IndexVideo(ctx context.Context, v *model.Video) error
	DeleteVideo(ctx context.Context, videoID int64) error
	BulkIndexVideos(ctx context.Context, videos []model.Video) (success, failed int, err error)
}

var _ VideoIndexer = (*infraES.VideoIndex)(nil)

// SearchSyncService 把视频变更同步到搜索索引
type SearchSyncService struct {
	videoRepo *repository.VideoRepository
	indexer   VideoIndexer
}

func NewSearchSyncService(videoRepo *repository.VideoRepository, indexer VideoIndexer) *SearchSyncService {
	return &SearchSyncService{videoRepo: videoRepo, indexer: indexer}
}

// HandleVideoEvent 以数据库当前状态为准：已发布则写入索引，未发布或已删除则从索引移除
func (s *SearchSyncService) HandleVideoEvent(ctx context.Context, event *infraKafka.VideoEvent) error {
	if event.Type == infraKafka.VideoEventDelete {
		return s.indexer.DeleteVideo(ctx, event.VideoID)
	}

	video, err := s.videoRepo.GetByIDWithOwner(event.VideoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.indexer.DeleteVideo(ctx, event.VideoID)
		}
		return fmt.Errorf("load video %d: %w", event.VideoID, err)
	}

	if !video.IsPublished {
		return s.indexer.DeleteVideo(ctx, video.ID)
	}
	return s.indexer.IndexVideo(ctx, video)
}

// Reindex 全量同步已发布视频
func (s *SearchSyncService) Reindex(ctx context.Context) (success, failed int, err error) {
	for skip := 0; ; skip += reindexBatchSize {
		if err := ctx.Err(); err != nil {
			return success, failed, err
		}

		videos, _, err := s.videoRepo.ListVideos(repository.VideoListOptions{
			Skip:          skip,
			Limit:         reindexBatchSize,
			OnlyPublished: true,
			SortColumn:    "id",
			WithOwner:     true,
		})
		if err != nil {
			return success, failed, fmt.Errorf("list videos: %w", err)
		}
		if len(videos) == 0 {
			break
		}

		ok, bad, err := s.indexer.BulkIndexVideos(ctx, videos)
		success += ok
		failed += bad
		if err != nil {
			return success, failed, err
		}
		if len(videos) < reindexBatchSize {
			break
		}
	}

	logger.Info("Reindex completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}
