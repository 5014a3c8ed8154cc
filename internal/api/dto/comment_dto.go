package dto

import "time"

// CommentCreateRequest 发表评论请求
type CommentCreateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// CommentUpdateRequest 更新评论请求
type CommentUpdateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// CommentInfo 评论信息
type CommentInfo struct {
	ID        int64       `json:"id"`
	VideoID   int64       `json:"video_id"`
	OwnerID   int64       `json:"owner_id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Owner     *OwnerBrief `json:"owner,omitempty"`
}

// CommentListData 评论列表数据
type CommentListData struct {
	Comments []CommentInfo `json:"comments"`
	Pagination
}
