package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	infraES "vidtube-go/internal/infra/elasticsearch"
	infraKafka "vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/model"
)

type fakeMediaStore struct {
	mu       sync.Mutex
	uploaded []string
	removed  []string
	// failOn 对象名前缀匹配时上传失败
	failOn string
}

func (m *fakeMediaStore) Upload(_ context.Context, objectName string, r io.Reader, _ int64, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn != "" && len(objectName) >= len(m.failOn) && objectName[:len(m.failOn)] == m.failOn {
		return "", errors.New("storage unavailable")
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	m.uploaded = append(m.uploaded, objectName)
	return "http://media.local/" + objectName, nil
}

func (m *fakeMediaStore) Remove(_ context.Context, objectName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, objectName)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []infraKafka.VideoEvent
	err    error
}

func (p *fakePublisher) PublishVideoEvent(_ context.Context, e *infraKafka.VideoEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, *e)
	return nil
}

type fakeRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newFakeRevoker() *fakeRevoker {
	return &fakeRevoker{revoked: make(map[string]time.Duration)}
}

func (r *fakeRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[jti] = ttl
	return nil
}

func (r *fakeRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[jti]
	return ok, nil
}

type fakeSearcher struct {
	hits  *infraES.VideoHits
	err   error
	query infraES.VideoQuery
}

func (s *fakeSearcher) SearchVideos(_ context.Context, q infraES.VideoQuery) (*infraES.VideoHits, error) {
	s.query = q
	return s.hits, s.err
}

type fakeIndexer struct {
	indexed []int64
	deleted []int64
	bulk    int
}

func (x *fakeIndexer) IndexVideo(_ context.Context, v *model.Video) error {
	x.indexed = append(x.indexed, v.ID)
	return nil
}

func (x *fakeIndexer) DeleteVideo(_ context.Context, id int64) error {
	x.deleted = append(x.deleted, id)
	return nil
}

func (x *fakeIndexer) BulkIndexVideos(_ context.Context, videos []model.Video) (int, int, error) {
	x.bulk += len(videos)
	return len(videos), 0, nil
}
