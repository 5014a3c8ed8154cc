package dto

import "time"

// SearchVideoRequest 搜索请求参数
type SearchVideoRequest struct {
	PageQuery
	Q       string `form:"q"`
	OwnerID *int64 `form:"owner_id" binding:"omitempty,gt=0"`
}

// SearchVideoInfo 搜索结果中的视频信息
type SearchVideoInfo struct {
	ID          int64               `json:"id"`
	OwnerID     int64               `json:"owner_id"`
	OwnerName   string              `json:"owner_name"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	VideoFile   string              `json:"video_file"`
	Thumbnail   string              `json:"thumbnail"`
	Duration    float64             `json:"duration"`
	Views       int64               `json:"views"`
	CreatedAt   time.Time           `json:"created_at"`
	Highlight   map[string][]string `json:"highlight,omitempty"`
}

// SearchVideoData 搜索结果，Source 为 elasticsearch 或 database
type SearchVideoData struct {
	Videos []SearchVideoInfo `json:"videos"`
	Source string            `json:"source"`
	Pagination
}
