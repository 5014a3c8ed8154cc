package dto

// ChannelStats 频道统计
type ChannelStats struct {
	TotalVideos      int64 `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
	TotalSubscribers int64 `json:"total_subscribers"`
	TotalLikes       int64 `json:"total_likes"`
}
