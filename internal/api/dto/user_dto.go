package dto

import "time"

// UserInfo 用户公开信息（不含密码）
type UserInfo struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// ChannelProfile 用户频道主页信息（含订阅统计）
type ChannelProfile struct {
	UserInfo
	SubscribersCount  int64 `json:"subscribers_count"`
	SubscribedToCount int64 `json:"subscribed_to_count"`
	IsSubscribed      bool  `json:"is_subscribed"`
}
