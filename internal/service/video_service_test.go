package service

import (
	"context"
	"strings"
	"testing"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/apperr"
	infraKafka "vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
	"vidtube-go/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type videoFixture struct {
	db     *gorm.DB
	svc    *VideoService
	media  *fakeMediaStore
	events *fakePublisher
	alice  *model.User
	bob    *model.User
}

func newVideoFixture(t *testing.T) *videoFixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &videoFixture{
		db:     db,
		media:  &fakeMediaStore{},
		events: &fakePublisher{},
		alice:  testutil.CreateUser(t, db, "alice"),
		bob:    testutil.CreateUser(t, db, "bob"),
	}
	f.svc = NewVideoService(repository.NewVideoRepository(db), f.media, f.events)
	return f
}

func upload(name string) *UploadFile {
	return &UploadFile{Filename: name, ContentType: "application/octet-stream", Size: 4, Reader: strings.NewReader("data")}
}

func TestVideoService_Publish(t *testing.T) {
	f := newVideoFixture(t)

	info, err := f.svc.Publish(context.Background(), f.alice.ID,
		&dto.VideoPublishRequest{Title: " First ", Description: "d", Duration: 12.5},
		upload("clip.MP4"), upload("cover.jpg"))
	require.NoError(t, err)

	assert.Equal(t, "First", info.Title)
	assert.True(t, info.IsPublished)
	assert.True(t, strings.HasPrefix(info.VideoFile, "http://media.local/videos/"))
	assert.True(t, strings.HasSuffix(info.VideoFile, ".mp4"))
	assert.True(t, strings.HasPrefix(info.Thumbnail, "http://media.local/thumbnails/"))

	require.Len(t, f.events.events, 1)
	assert.Equal(t, infraKafka.VideoEventUpsert, f.events.events[0].Type)
	assert.Equal(t, info.ID, f.events.events[0].VideoID)
}

func TestVideoService_PublishValidation(t *testing.T) {
	f := newVideoFixture(t)
	ctx := context.Background()

	_, err := f.svc.Publish(ctx, f.alice.ID, &dto.VideoPublishRequest{Title: "   "}, upload("a.mp4"), upload("a.jpg"))
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = f.svc.Publish(ctx, f.alice.ID, &dto.VideoPublishRequest{Title: "t"}, nil, upload("a.jpg"))
	assert.ErrorIs(t, err, ErrVideoFileRequired)

	_, err = f.svc.Publish(ctx, f.alice.ID, &dto.VideoPublishRequest{Title: "t"}, upload("a.mp4"), nil)
	assert.ErrorIs(t, err, ErrThumbnailRequired)
}

func TestVideoService_PublishUploadFailureInsertsNothing(t *testing.T) {
	f := newVideoFixture(t)
	f.media.failOn = "thumbnails/"

	_, err := f.svc.Publish(context.Background(), f.alice.ID,
		&dto.VideoPublishRequest{Title: "t"}, upload("a.mp4"), upload("a.jpg"))
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))

	var count int64
	f.db.Model(&model.Video{}).Count(&count)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, f.media.uploaded, f.media.removed, "orphaned video object is removed")
	assert.Empty(t, f.events.events)
}

func TestVideoService_OwnershipGuard(t *testing.T) {
	f := newVideoFixture(t)
	video := testutil.CreateVideo(t, f.db, f.alice.ID, "Old", true)
	ctx := context.Background()

	_, err := f.svc.Update(ctx, video.ID, f.bob.ID, &dto.VideoUpdateRequest{Title: "New"}, nil)
	assert.ErrorIs(t, err, ErrVideoNoPermission)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	assert.ErrorIs(t, f.svc.Delete(video.ID, f.bob.ID), ErrVideoNoPermission)

	_, err = f.svc.TogglePublish(video.ID, f.bob.ID)
	assert.ErrorIs(t, err, ErrVideoNoPermission)

	_, err = f.svc.Update(ctx, 9999, f.alice.ID, &dto.VideoUpdateRequest{Title: "New"}, nil)
	assert.ErrorIs(t, err, ErrVideoNotFound)

	updated, err := f.svc.Update(ctx, video.ID, f.alice.ID, &dto.VideoUpdateRequest{Title: "New"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, video.Description, updated.Description, "empty description keeps the old value")
}

func TestVideoService_UpdateNothing(t *testing.T) {
	f := newVideoFixture(t)
	video := testutil.CreateVideo(t, f.db, f.alice.ID, "v", true)

	_, err := f.svc.Update(context.Background(), video.ID, f.alice.ID, &dto.VideoUpdateRequest{Title: "  "}, nil)
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
}

func TestVideoService_UpdateThumbnail(t *testing.T) {
	f := newVideoFixture(t)
	video := testutil.CreateVideo(t, f.db, f.alice.ID, "v", true)

	updated, err := f.svc.Update(context.Background(), video.ID, f.alice.ID, &dto.VideoUpdateRequest{}, upload("new.png"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(updated.Thumbnail, ".png"))
	assert.NotEqual(t, video.Thumbnail, updated.Thumbnail)
}

func TestVideoService_TogglePublishAndVisibility(t *testing.T) {
	f := newVideoFixture(t)
	video := testutil.CreateVideo(t, f.db, f.alice.ID, "v", true)

	status, err := f.svc.TogglePublish(video.ID, f.alice.ID)
	require.NoError(t, err)
	assert.False(t, status.IsPublished)

	_, err = f.svc.GetDetail(video.ID, f.bob.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound, "unpublished video is hidden from others")

	detail, err := f.svc.GetDetail(video.ID, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.Views)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, "alice", detail.Owner.Username)

	status, err = f.svc.TogglePublish(video.ID, f.alice.ID)
	require.NoError(t, err)
	assert.True(t, status.IsPublished)

	detail, err = f.svc.GetDetail(video.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.Views)
}

func TestVideoService_DeletePublishesEvent(t *testing.T) {
	f := newVideoFixture(t)
	video := testutil.CreateVideo(t, f.db, f.alice.ID, "v", true)

	require.NoError(t, f.svc.Delete(video.ID, f.alice.ID))
	require.Len(t, f.events.events, 1)
	assert.Equal(t, infraKafka.VideoEventDelete, f.events.events[0].Type)

	_, err := f.svc.GetDetail(video.ID, f.alice.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestVideoService_EventFailureDoesNotFailRequest(t *testing.T) {
	f := newVideoFixture(t)
	f.events.err = assert.AnError
	video := testutil.CreateVideo(t, f.db, f.alice.ID, "v", true)

	_, err := f.svc.TogglePublish(video.ID, f.alice.ID)
	assert.NoError(t, err)
}

func TestVideoService_List(t *testing.T) {
	f := newVideoFixture(t)
	testutil.CreateVideo(t, f.db, f.alice.ID, "Cooking pasta", true)
	testutil.CreateVideo(t, f.db, f.alice.ID, "cooking rice", true)
	testutil.CreateVideo(t, f.db, f.alice.ID, "cooking draft", false)
	testutil.CreateVideo(t, f.db, f.bob.ID, "Gardening", true)

	t.Run("query matches title case-insensitively", func(t *testing.T) {
		data, err := f.svc.List(0, &dto.VideoListQuery{Query: "COOKING"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), data.Total)
		assert.Equal(t, 1, data.Page)
		assert.Equal(t, 10, data.Limit)
		assert.False(t, data.HasNextPage)
	})

	t.Run("owner sees own drafts", func(t *testing.T) {
		userID := f.alice.ID
		data, err := f.svc.List(userID, &dto.VideoListQuery{UserID: itoa(userID)})
		require.NoError(t, err)
		assert.Equal(t, int64(3), data.Total)

		data, err = f.svc.List(f.bob.ID, &dto.VideoListQuery{UserID: itoa(userID)})
		require.NoError(t, err)
		assert.Equal(t, int64(2), data.Total)
	})

	t.Run("pagination metadata", func(t *testing.T) {
		data, err := f.svc.List(0, &dto.VideoListQuery{PageQuery: dto.PageQuery{Page: 1, Limit: 2}, SortBy: "title", SortType: "asc"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), data.Total)
		assert.Equal(t, int64(2), data.TotalPages)
		assert.True(t, data.HasNextPage)
		require.Len(t, data.Videos, 2)
		assert.Equal(t, "Cooking pasta", data.Videos[0].Title)
	})

	t.Run("invalid parameters", func(t *testing.T) {
		_, err := f.svc.List(0, &dto.VideoListQuery{SortBy: "password"})
		assert.ErrorIs(t, err, ErrInvalidSortBy)

		_, err = f.svc.List(0, &dto.VideoListQuery{SortType: "sideways"})
		assert.ErrorIs(t, err, ErrInvalidSortType)

		_, err = f.svc.List(0, &dto.VideoListQuery{UserID: "abc"})
		assert.ErrorIs(t, err, ErrInvalidUserID)
		assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	})
}
