// Package testutil 提供测试用的内存数据库和数据构造函数
package testutil

import (
	"testing"

	"vidtube-go/internal/infra/database"
	"vidtube-go/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB 创建一个迁移好的 SQLite 内存库，测试结束自动关闭
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := database.GormConfig(false)
	cfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)

	db, err := gorm.Open(sqlite.Open("file::memory:"), cfg)
	require.NoError(t, err)

	// 内存库只存在于单个连接上
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateUser 插入一个用户
func CreateUser(t testing.TB, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
		Password: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateVideo 插入一个视频
func CreateVideo(t testing.TB, db *gorm.DB, ownerID int64, title string, published bool) *model.Video {
	t.Helper()
	video := &model.Video{
		OwnerID:     ownerID,
		Title:       title,
		Description: title + " description",
		VideoFile:   "http://media.local/" + title + ".mp4",
		Thumbnail:   "http://media.local/" + title + ".jpg",
		Duration:    60,
		IsPublished: true,
	}
	require.NoError(t, db.Create(video).Error)
	if !published {
		// IsPublished 带 default:true，false 是零值不会写入，需要单独更新
		require.NoError(t, db.Model(video).Update("is_published", false).Error)
		video.IsPublished = false
	}
	return video
}
