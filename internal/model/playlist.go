package model

import "time"

// Playlist 播放列表模型
type Playlist struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:播放列表ID" json:"id"`
	OwnerID     int64     `gorm:"not null;index:idx_playlists_owner_id;comment:创建者ID" json:"owner_id"`
	Name        string    `gorm:"size:200;not null;comment:名称" json:"name"`
	Description string    `gorm:"type:text;not null;comment:描述" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistVideo 播放列表中的视频，同一列表内视频不重复，按 Position 排序
type PlaylistVideo struct {
	PlaylistID int64     `gorm:"primaryKey;autoIncrement:false;comment:播放列表ID" json:"playlist_id"`
	VideoID    int64     `gorm:"primaryKey;autoIncrement:false;index:idx_playlist_videos_video_id;comment:视频ID" json:"video_id"`
	Position   int       `gorm:"not null;comment:列表内顺序" json:"position"`
	AddedAt    time.Time `gorm:"autoCreateTime;comment:加入时间" json:"added_at"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
