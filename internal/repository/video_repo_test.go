package repository

import (
	"testing"

	"vidtube-go/internal/model"
	"vidtube-go/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestVideoRepository_ListVideos(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewVideoRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	testutil.CreateVideo(t, db, alice.ID, "Go Basics", true)
	testutil.CreateVideo(t, db, alice.ID, "Rust Intro", true)
	testutil.CreateVideo(t, db, bob.ID, "golang tips", true)
	testutil.CreateVideo(t, db, bob.ID, "Draft go", false)

	t.Run("search is case-insensitive", func(t *testing.T) {
		videos, total, err := repo.ListVideos(VideoListOptions{Limit: 10, Search: "GO", OnlyPublished: true})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, v := range videos {
			assert.True(t, v.IsPublished)
		}
	})

	t.Run("owner filter", func(t *testing.T) {
		videos, total, err := repo.ListVideos(VideoListOptions{Limit: 10, OwnerID: &bob.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, videos, 2)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		_, total, err := repo.ListVideos(VideoListOptions{Limit: 10, Search: "%"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("sort and page", func(t *testing.T) {
		videos, total, err := repo.ListVideos(VideoListOptions{
			Skip: 1, Limit: 2, SortColumn: "title", WithOwner: true,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, videos, 2)
		assert.Equal(t, "Go Basics", videos[0].Title)
		assert.Equal(t, "Rust Intro", videos[1].Title)
		assert.Equal(t, "alice", videos[0].Owner.Username)
	})
}

func TestVideoRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewVideoRepository(db)
	likes := NewLikeRepository(db)
	comments := NewCommentRepository(db)
	playlists := NewPlaylistRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	video := testutil.CreateVideo(t, db, alice.ID, "v", true)
	other := testutil.CreateVideo(t, db, alice.ID, "other", true)

	comment := &model.Comment{OwnerID: alice.ID, VideoID: video.ID, Content: "nice"}
	require.NoError(t, comments.Create(comment))
	_, err := likes.Toggle(model.LikeTargetComment, comment.ID, alice.ID)
	require.NoError(t, err)
	_, err = likes.Toggle(model.LikeTargetVideo, video.ID, alice.ID)
	require.NoError(t, err)
	_, err = likes.Toggle(model.LikeTargetVideo, other.ID, alice.ID)
	require.NoError(t, err)

	playlist := &model.Playlist{OwnerID: alice.ID, Name: "p", Description: "d"}
	require.NoError(t, playlists.Create(playlist))
	_, err = playlists.AddVideo(playlist.ID, video.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(video.ID))

	var count int64
	db.Model(&model.Like{}).Count(&count)
	assert.Equal(t, int64(1), count, "only the like on the other video survives")
	db.Model(&model.Comment{}).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&model.PlaylistVideo{}).Count(&count)
	assert.Equal(t, int64(0), count)

	assert.ErrorIs(t, repo.Delete(video.ID), gorm.ErrRecordNotFound)
}

func TestVideoRepository_Aggregates(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewVideoRepository(db)

	alice := testutil.CreateUser(t, db, "alice")

	views, err := repo.SumViewsByOwner(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), views)

	v1 := testutil.CreateVideo(t, db, alice.ID, "a", true)
	testutil.CreateVideo(t, db, alice.ID, "b", false)
	require.NoError(t, repo.IncrementViews(v1.ID))
	require.NoError(t, repo.IncrementViews(v1.ID))

	views, err = repo.SumViewsByOwner(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), views)

	count, err := repo.CountByOwner(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestVideoRepository_UpdateKeepsOwner(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewVideoRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	video := testutil.CreateVideo(t, db, alice.ID, "old", true)

	updated, err := repo.Update(video.ID, map[string]interface{}{"title": "New", "owner_id": int64(999)})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, alice.ID, updated.OwnerID)

	_, err = repo.Update(12345, map[string]interface{}{"title": "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestVideoRepository_VisibleTo(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewVideoRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	public := testutil.CreateVideo(t, db, alice.ID, "public", true)
	draft := testutil.CreateVideo(t, db, alice.ID, "draft", false)

	for _, tc := range []struct {
		name     string
		videoID  int64
		viewerID int64
		want     bool
	}{
		{"published to anonymous", public.ID, 0, true},
		{"draft to owner", draft.ID, alice.ID, true},
		{"draft to other user", draft.ID, bob.ID, false},
		{"draft to anonymous", draft.ID, 0, false},
		{"missing video", 999, alice.ID, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := repo.VisibleTo(tc.videoID, tc.viewerID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}
