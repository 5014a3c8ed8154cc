package model

import "time"

// LikeTarget 点赞对象类型
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Valid 是否为支持的点赞对象
func (t LikeTarget) Valid() bool {
	switch t {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

// Like 点赞模型，每条记录只指向一个对象；(对象, 用户) 唯一
type Like struct {
	ID         int64      `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	TargetType LikeTarget `gorm:"size:16;not null;uniqueIndex:uq_likes_target_user,priority:1;index:idx_likes_target,priority:1;comment:点赞对象类型" json:"target_type"`
	TargetID   int64      `gorm:"not null;uniqueIndex:uq_likes_target_user,priority:2;index:idx_likes_target,priority:2;comment:点赞对象ID" json:"target_id"`
	LikedBy    int64      `gorm:"not null;uniqueIndex:uq_likes_target_user,priority:3;index:idx_likes_liked_by;comment:点赞用户ID" json:"liked_by"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index:idx_likes_created_at;comment:点赞时间" json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
