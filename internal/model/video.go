package model

import "time"

// Video 视频模型
type Video struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:视频标识" json:"id"`
	OwnerID     int64     `gorm:"not null;index:idx_videos_owner_id;comment:视频作者ID" json:"owner_id"`
	Title       string    `gorm:"size:200;not null;comment:视频标题" json:"title"`
	Description string    `gorm:"type:text;comment:视频描述" json:"description"`
	VideoFile   string    `gorm:"size:500;not null;comment:视频文件地址" json:"video_file"`
	Thumbnail   string    `gorm:"size:500;not null;comment:封面地址" json:"thumbnail"`
	Duration    float64   `gorm:"default:0;comment:视频时长（秒）" json:"duration"`
	IsPublished bool      `gorm:"not null;default:true;index:idx_videos_is_published;comment:是否发布" json:"is_published"`
	Views       int64     `gorm:"not null;default:0;comment:播放量" json:"views"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_videos_created_at;comment:创建时间" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}
