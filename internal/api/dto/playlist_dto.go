package dto

import "time"

// PlaylistCreateRequest 创建播放列表请求
type PlaylistCreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"required,min=1,max=5000"`
}

// PlaylistUpdateRequest 更新播放列表请求，空字段保持原值
type PlaylistUpdateRequest struct {
	Name        string `json:"name" binding:"omitempty,max=200"`
	Description string `json:"description" binding:"omitempty,max=5000"`
}

// PlaylistInfo 播放列表信息
type PlaylistInfo struct {
	ID          int64       `json:"id"`
	OwnerID     int64       `json:"owner_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	VideoCount  int64       `json:"video_count"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Videos      []VideoInfo `json:"videos,omitempty"`
}

// PlaylistVideoData 播放列表增删视频结果
type PlaylistVideoData struct {
	PlaylistID int64 `json:"playlist_id"`
	VideoID    int64 `json:"video_id"`
	Changed    bool  `json:"changed"`
}
