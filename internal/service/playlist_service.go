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
	ErrPlaylistNotFound     = apperr.NotFound("播放列表不存在")
	ErrPlaylistNoPermission = apperr.Forbidden("没有权限操作该播放列表")
	ErrPlaylistFields       = apperr.InvalidArgument("名称和描述不能为空")
)

type PlaylistService struct {
	playlistRepo *repository.PlaylistRepository
	videoRepo    *repository.VideoRepository
	userRepo     *repository.UserRepository
	guard        ownerGuard[model.Playlist]
}

func NewPlaylistService(
	playlistRepo *repository.PlaylistRepository,
	videoRepo *repository.VideoRepository,
	userRepo *repository.UserRepository,
) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		userRepo:     userRepo,
		guard: ownerGuard[model.Playlist]{
			load:      playlistRepo.GetByID,
			ownerOf:   func(p *model.Playlist) int64 { return p.OwnerID },
			notFound:  ErrPlaylistNotFound,
			forbidden: ErrPlaylistNoPermission,
		},
	}
}

// Create 创建播放列表
func (s *PlaylistService) Create(ownerID int64, req *dto.PlaylistCreateRequest) (*dto.PlaylistInfo, error) {
	name := strings.TrimSpace(req.Name)
	desc := strings.TrimSpace(req.Description)
	if name == "" || desc == "" {
		return nil, ErrPlaylistFields
	}

	playlist := &model.Playlist{OwnerID: ownerID, Name: name, Description: desc}
	if err := s.playlistRepo.Create(playlist); err != nil {
		return nil, fmt.Errorf("create playlist: %w", err)
	}
	return toPlaylistInfo(playlist, 0), nil
}

// ListByUser 获取用户的播放列表，没有时返回空列表
func (s *PlaylistService) ListByUser(userID, viewerID int64) ([]dto.PlaylistInfo, error) {
	if err := mustExist(s.userRepo.Exists, userID, ErrUserNotFound); err != nil {
		return nil, err
	}

	playlists, err := s.playlistRepo.ListByOwner(userID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}

	items := make([]dto.PlaylistInfo, 0, len(playlists))
	for i := range playlists {
		items = append(items, *toPlaylistInfo(&playlists[i].Playlist, playlists[i].VideoCount))
	}
	return items, nil
}

// GetByID 获取播放列表详情（含视频，按加入顺序），别人的草稿不展示
func (s *PlaylistService) GetByID(playlistID, viewerID int64) (*dto.PlaylistInfo, error) {
	playlist, err := s.playlistRepo.GetByID(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("get playlist: %w", err)
	}

	videos, err := s.playlistRepo.ListVideos(playlistID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list playlist videos: %w", err)
	}

	info := toPlaylistInfo(playlist, int64(len(videos)))
	info.Videos = toVideoInfos(videos)
	return info, nil
}

// Update 更新播放列表（仅作者本人），空字段保持原值
func (s *PlaylistService) Update(playlistID, userID int64, req *dto.PlaylistUpdateRequest) (*dto.PlaylistInfo, error) {
	if _, err := s.guard.require(playlistID, userID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name := strings.TrimSpace(req.Name); name != "" {
		updates["name"] = name
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		updates["description"] = desc
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	playlist, err := s.playlistRepo.Update(playlistID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("update playlist: %w", err)
	}

	count, err := s.playlistRepo.CountVideos(playlistID, userID)
	if err != nil {
		return nil, fmt.Errorf("count playlist videos: %w", err)
	}
	return toPlaylistInfo(playlist, count), nil
}

// Delete 删除播放列表（仅作者本人）
func (s *PlaylistService) Delete(playlistID, userID int64) error {
	if _, err := s.guard.require(playlistID, userID); err != nil {
		return err
	}

	if err := s.playlistRepo.Delete(playlistID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlaylistNotFound
		}
		return fmt.Errorf("delete playlist: %w", err)
	}
	return nil
}

// AddVideo 把视频加入播放列表（仅作者本人），重复加入不报错
func (s *PlaylistService) AddVideo(playlistID, videoID, userID int64) (*dto.PlaylistVideoData, error) {
	if _, err := s.guard.require(playlistID, userID); err != nil {
		return nil, err
	}
	if err := videoVisible(s.videoRepo, videoID, userID); err != nil {
		return nil, err
	}

	added, err := s.playlistRepo.AddVideo(playlistID, videoID)
	if err != nil {
		return nil, fmt.Errorf("add video to playlist: %w", err)
	}
	return &dto.PlaylistVideoData{PlaylistID: playlistID, VideoID: videoID, Changed: added}, nil
}

// RemoveVideo 从播放列表移除视频（仅作者本人），视频不在列表中不报错
func (s *PlaylistService) RemoveVideo(playlistID, videoID, userID int64) (*dto.PlaylistVideoData, error) {
	if _, err := s.guard.require(playlistID, userID); err != nil {
		return nil, err
	}

	removed, err := s.playlistRepo.RemoveVideo(playlistID, videoID)
	if err != nil {
		return nil, fmt.Errorf("remove video from playlist: %w", err)
	}
	return &dto.PlaylistVideoData{PlaylistID: playlistID, VideoID: videoID, Changed: removed}, nil
}
