package repository

import (
	"vidtube-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaylistWithCount 播放列表及其视频数
type PlaylistWithCount struct {
	model.Playlist
	VideoCount int64 `gorm:"column:video_count"`
}

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) Create(playlist *model.Playlist) error {
	return r.db.Create(playlist).Error
}

func (r *PlaylistRepository) GetByID(id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.Where("id = ?", id).First(&playlist).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Update 更新名称、描述
func (r *PlaylistRepository) Update(id int64, updates map[string]interface{}) (*model.Playlist, error) {
	delete(updates, "owner_id")
	result := r.db.Model(&model.Playlist{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除播放列表及其条目
func (r *PlaylistRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Playlist{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// visibleEntries 列表中 viewerID 可见的条目
func (r *PlaylistRepository) visibleEntries(viewerID int64) *gorm.DB {
	return r.db.Model(&model.PlaylistVideo{}).
		Joins("JOIN videos ON videos.id = playlist_videos.video_id").
		Scopes(videoVisibleTo(viewerID))
}

// ListByOwner 获取用户的全部播放列表（最新在前），视频数只统计 viewerID 可见的视频
func (r *PlaylistRepository) ListByOwner(ownerID, viewerID int64) ([]PlaylistWithCount, error) {
	counts := r.visibleEntries(viewerID).
		Select("COUNT(*)").
		Where("playlist_videos.playlist_id = playlists.id")

	var playlists []PlaylistWithCount
	err := r.db.Model(&model.Playlist{}).
		Select("playlists.*, (?) AS video_count", counts).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Scan(&playlists).Error
	if err != nil {
		return nil, err
	}
	return playlists, nil
}

// AddVideo 把视频追加到列表末尾，已存在时不重复添加，返回是否新加入
func (r *PlaylistRepository) AddVideo(playlistID, videoID int64) (bool, error) {
	added := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var maxPos int
		if err := tx.Model(&model.PlaylistVideo{}).
			Select("COALESCE(MAX(position), 0)").
			Where("playlist_id = ?", playlistID).
			Scan(&maxPos).Error; err != nil {
			return err
		}

		entry := &model.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID, Position: maxPos + 1}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
		if result.Error != nil {
			return result.Error
		}
		added = result.RowsAffected > 0
		return nil
	})
	return added, err
}

// RemoveVideo 从列表移除视频，返回是否确实移除了
func (r *PlaylistRepository) RemoveVideo(playlistID, videoID int64) (bool, error) {
	result := r.db.Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountVideos 统计列表中 viewerID 可见的视频数
func (r *PlaylistRepository) CountVideos(playlistID, viewerID int64) (int64, error) {
	var count int64
	err := r.visibleEntries(viewerID).
		Where("playlist_videos.playlist_id = ?", playlistID).
		Count(&count).Error
	return count, err
}

// ListVideos 按列表顺序返回 viewerID 可见的视频（含作者信息），别人的草稿不返回
func (r *PlaylistRepository) ListVideos(playlistID, viewerID int64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Model(&model.Video{}).
		Select("videos.*").
		Joins("JOIN playlist_videos ON playlist_videos.video_id = videos.id").
		Where("playlist_videos.playlist_id = ?", playlistID).
		Scopes(videoVisibleTo(viewerID)).
		Preload("Owner").
		Order("playlist_videos.position ASC").
		Order("playlist_videos.added_at ASC").
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}
