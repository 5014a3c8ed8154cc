package dto

import "time"

// VideoPublishRequest 视频发布请求（multipart/form-data，文件字段为 videoFile 和 thumbnail）
type VideoPublishRequest struct {
	Title       string  `form:"title" binding:"required,min=1,max=200"`
	Description string  `form:"description" binding:"omitempty,max=5000"`
	Duration    float64 `form:"duration" binding:"omitempty,gte=0"`
}

// VideoUpdateRequest 视频更新请求，空字段保持原值
type VideoUpdateRequest struct {
	Title       string `json:"title" form:"title" binding:"omitempty,max=200"`
	Description string `json:"description" form:"description" binding:"omitempty,max=5000"`
}

// VideoListQuery 视频列表查询参数
type VideoListQuery struct {
	PageQuery
	Query    string `form:"query"`
	UserID   string `form:"userId"`
	SortBy   string `form:"sortBy"`
	SortType string `form:"sortType"`
}

// VideoInfo 视频详情
type VideoInfo struct {
	ID          int64       `json:"id"`
	OwnerID     int64       `json:"owner_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	VideoFile   string      `json:"video_file"`
	Thumbnail   string      `json:"thumbnail"`
	Duration    float64     `json:"duration"`
	IsPublished bool        `json:"is_published"`
	Views       int64       `json:"views"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Owner       *OwnerBrief `json:"owner,omitempty"`
}

// VideoListData 视频列表响应数据
type VideoListData struct {
	Videos []VideoInfo `json:"videos"`
	Pagination
}

// PublishStatusData 发布状态切换结果
type PublishStatusData struct {
	VideoID     int64 `json:"video_id"`
	IsPublished bool  `json:"is_published"`
}
