package service

import (
	"fmt"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/repository"
)

type DashboardService struct {
	videoRepo *repository.VideoRepository
	likeRepo  *repository.LikeRepository
	subRepo   *repository.SubscriptionRepository
}

func NewDashboardService(
	videoRepo *repository.VideoRepository,
	likeRepo *repository.LikeRepository,
	subRepo *repository.SubscriptionRepository,
) *DashboardService {
	return &DashboardService{videoRepo: videoRepo, likeRepo: likeRepo, subRepo: subRepo}
}

// Stats 频道统计，每次实时计算
func (s *DashboardService) Stats(ownerID int64) (*dto.ChannelStats, error) {
	var (
		stats dto.ChannelStats
		err   error
	)

	if stats.TotalVideos, err = s.videoRepo.CountByOwner(ownerID); err != nil {
		return nil, fmt.Errorf("count videos: %w", err)
	}
	if stats.TotalViews, err = s.videoRepo.SumViewsByOwner(ownerID); err != nil {
		return nil, fmt.Errorf("sum views: %w", err)
	}
	if stats.TotalSubscribers, err = s.subRepo.CountSubscribers(ownerID); err != nil {
		return nil, fmt.Errorf("count subscribers: %w", err)
	}
	if stats.TotalLikes, err = s.likeRepo.CountOnOwnerVideos(ownerID); err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}

	return &stats, nil
}

// ChannelVideos 作者自己的视频（含未发布），最新在前
func (s *DashboardService) ChannelVideos(ownerID int64, q dto.PageQuery) (*dto.VideoListData, error) {
	page, limit := q.Normalize()
	videos, total, err := s.videoRepo.ListVideos(repository.VideoListOptions{
		Skip:       dto.Offset(page, limit),
		Limit:      limit,
		OwnerID:    &ownerID,
		SortColumn: "created_at",
		SortDesc:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("list channel videos: %w", err)
	}

	return &dto.VideoListData{
		Videos:     toVideoInfos(videos),
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}
