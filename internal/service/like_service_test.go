package service

import (
	"testing"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
	"vidtube-go/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLikeService(db *gorm.DB) *LikeService {
	return NewLikeService(
		repository.NewLikeRepository(db),
		repository.NewVideoRepository(db),
		repository.NewCommentRepository(db),
		repository.NewTweetRepository(db),
	)
}

func TestLikeService_ToggleRoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newLikeService(db)

	alice := testutil.CreateUser(t, db, "alice")
	video := testutil.CreateVideo(t, db, alice.ID, "v", true)

	data, err := svc.Toggle(model.LikeTargetVideo, video.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, data.Liked)
	assert.Equal(t, int64(1), data.LikeCount)

	data, err = svc.Toggle(model.LikeTargetVideo, video.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, data.Liked)
	assert.Equal(t, int64(0), data.LikeCount)

	data, err = svc.Toggle(model.LikeTargetVideo, video.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, data.Liked)
}

func TestLikeService_MissingTargets(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newLikeService(db)
	alice := testutil.CreateUser(t, db, "alice")

	_, err := svc.Toggle(model.LikeTargetVideo, 1, alice.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)
	_, err = svc.Toggle(model.LikeTargetComment, 1, alice.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)
	_, err = svc.Toggle(model.LikeTargetTweet, 1, alice.ID)
	assert.ErrorIs(t, err, ErrTweetNotFound)
	_, err = svc.Toggle(model.LikeTarget("playlist"), 1, alice.ID)
	assert.ErrorIs(t, err, ErrInvalidLikeTarget)
}

func TestLikeService_Draft(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newLikeService(db)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	draft := testutil.CreateVideo(t, db, alice.ID, "secret", false)
	comment := &model.Comment{OwnerID: alice.ID, VideoID: draft.ID, Content: "note"}
	require.NoError(t, db.Create(comment).Error)

	_, err := svc.Toggle(model.LikeTargetVideo, draft.ID, bob.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)
	_, err = svc.Toggle(model.LikeTargetComment, comment.ID, bob.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)

	data, err := svc.LikedVideos(bob.ID, dto.PageQuery{})
	require.NoError(t, err)
	assert.Empty(t, data.Videos)

	own, err := svc.Toggle(model.LikeTargetVideo, draft.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, own.Liked)
	_, err = svc.Toggle(model.LikeTargetComment, comment.ID, alice.ID)
	require.NoError(t, err)
}

func TestLikeService_LikedVideos(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newLikeService(db)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	video := testutil.CreateVideo(t, db, alice.ID, "v", true)
	tweet := &model.Tweet{OwnerID: alice.ID, Content: "hi"}
	require.NoError(t, db.Create(tweet).Error)

	_, err := svc.Toggle(model.LikeTargetVideo, video.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(model.LikeTargetTweet, tweet.ID, bob.ID)
	require.NoError(t, err)

	data, err := svc.LikedVideos(bob.ID, dto.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), data.Total)
	require.Len(t, data.Videos, 1)
	assert.Equal(t, video.ID, data.Videos[0].ID)
}
