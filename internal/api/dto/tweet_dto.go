package dto

import "time"

// TweetRequest 发布/更新动态请求
type TweetRequest struct {
	Content string `json:"content" binding:"required,min=1,max=280"`
}

// TweetInfo 动态信息
type TweetInfo struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TweetListData 动态列表数据
type TweetListData struct {
	Tweets []TweetInfo `json:"tweets"`
	Pagination
}
