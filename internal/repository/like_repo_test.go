package repository

import (
	"testing"

	"vidtube-go/internal/model"
	"vidtube-go/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLikeRepository_Toggle(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewLikeRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	video := testutil.CreateVideo(t, db, alice.ID, "v", true)

	liked, err := repo.Toggle(model.LikeTargetVideo, video.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := repo.CountByTarget(model.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	liked, err = repo.Toggle(model.LikeTargetVideo, video.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err = repo.CountByTarget(model.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestLikeRepository_ToggleSameIDDifferentTarget(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewLikeRepository(db)

	alice := testutil.CreateUser(t, db, "alice")

	liked, err := repo.Toggle(model.LikeTargetVideo, 1, alice.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = repo.Toggle(model.LikeTargetTweet, 1, alice.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	isLiked, err := repo.IsLiked(model.LikeTargetComment, 1, alice.ID)
	require.NoError(t, err)
	assert.False(t, isLiked)
}

func TestLikeRepository_UniqueTargetUser(t *testing.T) {
	db := testutil.NewDB(t)

	alice := testutil.CreateUser(t, db, "alice")
	video := testutil.CreateVideo(t, db, alice.ID, "v", true)

	require.NoError(t, db.Create(&model.Like{TargetType: model.LikeTargetVideo, TargetID: video.ID, LikedBy: alice.ID}).Error)

	err := db.Create(&model.Like{TargetType: model.LikeTargetVideo, TargetID: video.ID, LikedBy: alice.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// 同一个 ID 换一种对象不冲突
	require.NoError(t, db.Create(&model.Like{TargetType: model.LikeTargetTweet, TargetID: video.ID, LikedBy: alice.ID}).Error)

	var count int64
	require.NoError(t, db.Model(&model.Like{}).Where("target_type = ?", model.LikeTargetVideo).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLikeRepository_LikedVideosAndOwnerTotals(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewLikeRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	v1 := testutil.CreateVideo(t, db, alice.ID, "one", true)
	v2 := testutil.CreateVideo(t, db, alice.ID, "two", true)

	for _, step := range []struct {
		target model.LikeTarget
		id     int64
		user   int64
	}{
		{model.LikeTargetVideo, v1.ID, bob.ID},
		{model.LikeTargetVideo, v2.ID, bob.ID},
		{model.LikeTargetVideo, v1.ID, alice.ID},
		{model.LikeTargetTweet, v1.ID, bob.ID},
	} {
		_, err := repo.Toggle(step.target, step.id, step.user)
		require.NoError(t, err)
	}

	videos, total, err := repo.ListLikedVideos(bob.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, videos, 2)
	assert.Equal(t, "alice", videos[0].Owner.Username)

	// 作者下架后，别人的点赞列表里不再出现
	require.NoError(t, db.Model(v2).Update("is_published", false).Error)
	videos, total, err = repo.ListLikedVideos(bob.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, videos, 1)
	assert.Equal(t, v1.ID, videos[0].ID)

	_, total, err = repo.ListLikedVideos(alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	count, err := repo.CountOnOwnerVideos(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.CountOnOwnerVideos(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
