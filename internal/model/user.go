package model

import "time"

// User 用户模型
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Username  string    `gorm:"size:64;not null;uniqueIndex:uq_users_username;comment:用户名（小写）" json:"username"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:uq_users_email;comment:邮箱（小写）" json:"email"`
	FullName  string    `gorm:"size:255;comment:显示名称" json:"full_name"`
	Password  string    `gorm:"size:255;not null;comment:密码哈希" json:"-"`
	Avatar    *string   `gorm:"size:500;comment:用户头像" json:"avatar"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Videos    []Video    `gorm:"foreignKey:OwnerID" json:"videos,omitempty"`
	Tweets    []Tweet    `gorm:"foreignKey:OwnerID" json:"tweets,omitempty"`
	Comments  []Comment  `gorm:"foreignKey:OwnerID" json:"comments,omitempty"`
	Playlists []Playlist `gorm:"foreignKey:OwnerID" json:"playlists,omitempty"`
}

func (User) TableName() string {
	return "users"
}
