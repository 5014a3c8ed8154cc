package dto

// ToggleSubscriptionData 订阅切换结果
type ToggleSubscriptionData struct {
	Subscribed       bool  `json:"subscribed"`
	SubscribersCount int64 `json:"subscribers_count"`
}

// UserListData 用户列表（订阅者/已订阅频道）
type UserListData struct {
	Users []OwnerBrief `json:"users"`
	Pagination
}
