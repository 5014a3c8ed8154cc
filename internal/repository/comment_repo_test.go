package repository

import (
	"testing"

	"vidtube-go/internal/model"
	"vidtube-go/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCommentRepository_ListByVideo(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCommentRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	video := testutil.CreateVideo(t, db, alice.ID, "v", true)

	for _, content := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(&model.Comment{OwnerID: alice.ID, VideoID: video.ID, Content: content}))
	}

	comments, total, err := repo.ListByVideo(video.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, comments, 2)
	assert.Equal(t, "third", comments[0].Content)
	assert.Equal(t, "alice", comments[0].Owner.Username)
}

func TestCommentRepository_UpdateAndDelete(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCommentRepository(db)
	likes := NewLikeRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	video := testutil.CreateVideo(t, db, alice.ID, "v", true)
	comment := &model.Comment{OwnerID: alice.ID, VideoID: video.ID, Content: "old"}
	require.NoError(t, repo.Create(comment))

	updated, err := repo.UpdateContent(comment.ID, "new")
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Content)

	_, err = likes.Toggle(model.LikeTargetComment, comment.ID, alice.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(comment.ID))
	count, err := likes.CountByTarget(model.LikeTargetComment, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = repo.GetByID(comment.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTweetRepository_ListAndDelete(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTweetRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	require.NoError(t, repo.Create(&model.Tweet{OwnerID: alice.ID, Content: "a1"}))
	require.NoError(t, repo.Create(&model.Tweet{OwnerID: alice.ID, Content: "a2"}))
	require.NoError(t, repo.Create(&model.Tweet{OwnerID: bob.ID, Content: "b1"}))

	tweets, total, err := repo.ListByOwner(alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, tweets, 2)
	assert.Equal(t, "a2", tweets[0].Content)

	require.NoError(t, repo.Delete(tweets[0].ID))
	assert.ErrorIs(t, repo.Delete(tweets[0].ID), gorm.ErrRecordNotFound)
}
