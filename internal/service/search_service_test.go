package service

import (
	"context"
	"errors"
	"testing"

	"vidtube-go/internal/api/dto"
	infraES "vidtube-go/internal/infra/elasticsearch"
	infraKafka "vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/repository"
	"vidtube-go/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchService_UsesIndexOrder(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	v1 := testutil.CreateVideo(t, db, alice.ID, "first", true)
	v2 := testutil.CreateVideo(t, db, alice.ID, "second", true)
	hidden := testutil.CreateVideo(t, db, alice.ID, "hidden", false)

	searcher := &fakeSearcher{hits: &infraES.VideoHits{
		Total:      3,
		IDs:        []int64{v2.ID, hidden.ID, v1.ID},
		Highlights: map[int64]map[string][]string{v2.ID: {"title": {"<em>second</em>"}}},
	}}
	svc := NewSearchService(repository.NewVideoRepository(db), searcher)

	data, err := svc.SearchVideos(context.Background(), &dto.SearchVideoRequest{
		PageQuery: dto.PageQuery{Page: 2, Limit: 5}, Q: "sec",
	})
	require.NoError(t, err)
	assert.Equal(t, "elasticsearch", data.Source)
	require.Len(t, data.Videos, 2)
	assert.Equal(t, v2.ID, data.Videos[0].ID)
	assert.Equal(t, v1.ID, data.Videos[1].ID)
	assert.Equal(t, "alice", data.Videos[0].OwnerName)
	assert.NotEmpty(t, data.Videos[0].Highlight)
	assert.Equal(t, 5, searcher.query.From)
	assert.Equal(t, 5, searcher.query.Size)
}

func TestSearchService_FallsBackToDatabase(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	testutil.CreateVideo(t, db, alice.ID, "Golang tour", true)
	testutil.CreateVideo(t, db, alice.ID, "golang draft", false)
	testutil.CreateVideo(t, db, alice.ID, "Python", true)

	for name, searcher := range map[string]VideoSearcher{
		"search error": &fakeSearcher{err: errors.New("connection refused")},
		"no index":     nil,
	} {
		t.Run(name, func(t *testing.T) {
			svc := NewSearchService(repository.NewVideoRepository(db), searcher)
			data, err := svc.SearchVideos(context.Background(), &dto.SearchVideoRequest{Q: "GOLANG"})
			require.NoError(t, err)
			assert.Equal(t, "database", data.Source)
			assert.Equal(t, int64(1), data.Total)
		})
	}
}

func TestSearchSyncService(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	published := testutil.CreateVideo(t, db, alice.ID, "pub", true)
	draft := testutil.CreateVideo(t, db, alice.ID, "draft", false)

	indexer := &fakeIndexer{}
	svc := NewSearchSyncService(repository.NewVideoRepository(db), indexer)
	ctx := context.Background()

	require.NoError(t, svc.HandleVideoEvent(ctx, &infraKafka.VideoEvent{Type: infraKafka.VideoEventUpsert, VideoID: published.ID}))
	require.NoError(t, svc.HandleVideoEvent(ctx, &infraKafka.VideoEvent{Type: infraKafka.VideoEventUpsert, VideoID: draft.ID}))
	require.NoError(t, svc.HandleVideoEvent(ctx, &infraKafka.VideoEvent{Type: infraKafka.VideoEventUpsert, VideoID: 999}))
	require.NoError(t, svc.HandleVideoEvent(ctx, &infraKafka.VideoEvent{Type: infraKafka.VideoEventDelete, VideoID: 7}))

	assert.Equal(t, []int64{published.ID}, indexer.indexed)
	assert.Equal(t, []int64{draft.ID, 999, 7}, indexer.deleted)

	success, failed, err := svc.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, success)
	assert.Equal(t, 0, failed)
}
