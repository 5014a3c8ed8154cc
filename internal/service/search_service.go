package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vidtube-go/internal/api/dto"
	infraES "vidtube-go/internal/infra/elasticsearch"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

const (
	sourceElasticsearch = "elasticsearch"
	sourceDatabase      = "database"
)

// VideoSearcher 视频全文检索
type VideoSearcher interface {
	SearchVideos(ctx context.Context, q infraES.VideoQuery) (*infraES.VideoHits, error)
}

type SearchService struct {
	videoRepo *repository.VideoRepository
	searcher  VideoSearcher
}

// NewSearchService searcher 为 nil 时直接使用数据库查询
func NewSearchService(videoRepo *repository.VideoRepository, searcher VideoSearcher) *SearchService {
	return &SearchService{videoRepo: videoRepo, searcher: searcher}
}

// SearchVideos 搜索视频（ES 优先，失败则降级到 DB）
func (s *SearchService) SearchVideos(ctx context.Context, req *dto.SearchVideoRequest) (*dto.SearchVideoData, error) {
	page, limit := req.Normalize()

	if s.searcher != nil {
		data, err := s.searchFromES(ctx, req, page, limit)
		if err == nil {
			return data, nil
		}
		logger.Warn("ES search failed, fallback to DB", zap.Error(err))
	}
	return s.searchFromDB(req, page, limit)
}

func (s *SearchService) searchFromES(ctx context.Context, req *dto.SearchVideoRequest, page, limit int) (*dto.SearchVideoData, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	hits, err := s.searcher.SearchVideos(ctx, infraES.VideoQuery{
		Text:    req.Q,
		OwnerID: req.OwnerID,
		From:    dto.Offset(page, limit),
		Size:    limit,
	})
	if err != nil {
		return nil, err
	}

	videos, err := s.videoRepo.GetPublishedByIDs(hits.IDs)
	if err != nil {
		return nil, fmt.Errorf("load videos: %w", err)
	}

	videoMap := make(map[int64]*model.Video, len(videos))
	for i := range videos {
		videoMap[videos[i].ID] = &videos[i]
	}

	// 按 ES 返回的相关度顺序输出，索引里有但库里已删除/下架的跳过
	items := make([]dto.SearchVideoInfo, 0, len(hits.IDs))
	for _, id := range hits.IDs {
		if v, ok := videoMap[id]; ok {
			items = append(items, toSearchVideoInfo(v, hits.Highlights[id]))
		}
	}

	return &dto.SearchVideoData{
		Videos:     items,
		Source:     sourceElasticsearch,
		Pagination: dto.NewPagination(page, limit, hits.Total),
	}, nil
}

func (s *SearchService) searchFromDB(req *dto.SearchVideoRequest, page, limit int) (*dto.SearchVideoData, error) {
	videos, total, err := s.videoRepo.ListVideos(repository.VideoListOptions{
		Skip:          dto.Offset(page, limit),
		Limit:         limit,
		OwnerID:       req.OwnerID,
		Search:        strings.TrimSpace(req.Q),
		OnlyPublished: true,
		SortColumn:    "created_at",
		SortDesc:      true,
		WithOwner:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}

	items := make([]dto.SearchVideoInfo, 0, len(videos))
	for i := range videos {
		items = append(items, toSearchVideoInfo(&videos[i], nil))
	}

	return &dto.SearchVideoData{
		Videos:     items,
		Source:     sourceDatabase,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

func toSearchVideoInfo(v *model.Video, highlight map[string][]string) dto.SearchVideoInfo {
	return dto.SearchVideoInfo{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		OwnerName:   v.Owner.Username,
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Duration:    v.Duration,
		Views:       v.Views,
		CreatedAt:   v.CreatedAt,
		Highlight:   highlight,
	}
}
