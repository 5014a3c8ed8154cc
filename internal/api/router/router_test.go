package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"vidtube-go/internal/api/handler"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/repository"
	"vidtube-go/internal/service"
	"vidtube-go/internal/testutil"
	"vidtube-go/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryMedia struct{}

func (memoryMedia) Upload(_ context.Context, objectName string, r io.Reader, _ int64, _ string) (string, error) {
	_, err := io.Copy(io.Discard, r)
	return "http://media.local/" + objectName, err
}

func (memoryMedia) Remove(context.Context, string) error { return nil }

type memoryRevocations struct {
	mu  sync.Mutex
	ids map[string]bool
}

func (m *memoryRevocations) Revoke(_ context.Context, jti string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[jti] = true
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ids[jti], nil
}

type result struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	tokens := utils.NewTokenManager("test-secret", time.Hour, "vidtube-go")
	revocations := &memoryRevocations{ids: make(map[string]bool)}

	health := service.NewHealthService()
	health.Register("database", true, func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})

	h := &Handlers{
		Auth:         handler.NewAuthHandler(service.NewAuthService(userRepo, tokens, revocations)),
		User:         handler.NewUserHandler(service.NewUserService(userRepo, subRepo)),
		Video:        handler.NewVideoHandler(service.NewVideoService(videoRepo, memoryMedia{}, nil), handler.UploadLimits{MaxVideoBytes: 1 << 20, MaxThumbnailBytes: 1 << 20}),
		Comment:      handler.NewCommentHandler(service.NewCommentService(commentRepo, videoRepo)),
		Like:         handler.NewLikeHandler(service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)),
		Tweet:        handler.NewTweetHandler(service.NewTweetService(tweetRepo, userRepo)),
		Playlist:     handler.NewPlaylistHandler(service.NewPlaylistService(playlistRepo, videoRepo, userRepo)),
		Subscription: handler.NewSubscriptionHandler(service.NewSubscriptionService(subRepo, userRepo)),
		Dashboard:    handler.NewDashboardHandler(service.NewDashboardService(videoRepo, likeRepo, subRepo)),
		Search:       handler.NewSearchHandler(service.NewSearchService(videoRepo, nil)),
		Health:       handler.NewHealthHandler(health),
	}

	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestID(), middleware.ErrorHandler())
	Setup(r, h, middleware.NewAuthenticator(tokens, revocations))

	return &testServer{t: t, engine: r}
}

func (s *testServer) do(req *http.Request, token string) (int, result) {
	s.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var res result
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	return w.Code, res
}

func (s *testServer) json(method, path, token string, body interface{}) (int, result) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.do(req, token)
}

// signup 注册并登录，返回用户 ID 和 token
func (s *testServer) signup(username string) (int64, string) {
	s.t.Helper()
	code, _ := s.json(http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"username":  username,
		"email":     username + "@example.com",
		"full_name": username,
		"password":  "password1",
	})
	require.Equal(s.t, http.StatusCreated, code)

	code, res := s.json(http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"login":    username,
		"password": "password1",
	})
	require.Equal(s.t, http.StatusOK, code)

	var data struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	require.NoError(s.t, json.Unmarshal(res.Data, &data))
	return data.User.ID, data.Token
}

func (s *testServer) publish(token, title string) int64 {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(s.t, mw.WriteField("title", title))
	require.NoError(s.t, mw.WriteField("description", "about "+title))
	require.NoError(s.t, mw.WriteField("duration", "12.5"))
	fw, err := mw.CreateFormFile("videoFile", "clip.mp4")
	require.NoError(s.t, err)
	_, _ = fw.Write([]byte("fake video bytes"))
	fw, err = mw.CreateFormFile("thumbnail", "cover.png")
	require.NoError(s.t, err)
	_, _ = fw.Write([]byte("fake image bytes"))
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	code, res := s.do(req, token)
	require.Equal(s.t, http.StatusCreated, code, res.Message)

	var video struct {
		ID          int64 `json:"id"`
		IsPublished bool  `json:"is_published"`
	}
	require.NoError(s.t, json.Unmarshal(res.Data, &video))
	require.True(s.t, video.IsPublished)
	return video.ID
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}

func videoPath(id int64) string {
	return "/api/v1/videos/" + strconv.FormatInt(id, 10)
}

func TestVideoOwnershipAndUpdate(t *testing.T) {
	s := newTestServer(t)
	_, token1 := s.signup("alice")
	_, token2 := s.signup("bob")
	videoID := s.publish(token1, "Old")

	code, res := s.json(http.MethodPatch, videoPath(videoID), token2, map[string]string{"title": "Hijack"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "error", res.Status)
	assert.Equal(t, "Forbidden", res.Error)
	assert.Equal(t, http.StatusForbidden, res.Code)

	code, res = s.json(http.MethodPatch, videoPath(videoID), token1, map[string]string{"title": "New"})
	require.Equal(t, http.StatusOK, code, res.Message)
	var video struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	decode(t, res.Data, &video)
	assert.Equal(t, "New", video.Title)
	assert.Equal(t, "about Old", video.Description)

	code, _ = s.json(http.MethodPatch, videoPath(videoID), token1, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.json(http.MethodPatch, videoPath(videoID), "", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestVideoListingAndDetail(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signup("alice")
	first := s.publish(token, "Learning Go")
	s.publish(token, "Cooking")

	code, res := s.json(http.MethodGet, "/api/v1/videos?query=learning", "", nil)
	require.Equal(t, http.StatusOK, code)
	var list struct {
		Videos []struct {
			ID int64 `json:"id"`
		} `json:"videos"`
		Total       int64 `json:"total"`
		HasNextPage bool  `json:"has_next_page"`
	}
	decode(t, res.Data, &list)
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Videos, 1)
	assert.Equal(t, first, list.Videos[0].ID)

	code, res = s.json(http.MethodGet, "/api/v1/videos?sortBy=password", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "BadRequest", res.Error)

	code, _ = s.json(http.MethodGet, "/api/v1/videos/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, res = s.json(http.MethodGet, "/api/v1/videos/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NotFound", res.Error)
	assert.Empty(t, res.Data)

	// 取消发布后匿名用户看不到，作者本人仍可见
	code, _ = s.json(http.MethodPatch, "/api/v1/videos/toggle/publish/"+strconv.FormatInt(first, 10), token, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.json(http.MethodGet, videoPath(first), "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = s.json(http.MethodGet, videoPath(first), token, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestLikeToggleAndSubscriptions(t *testing.T) {
	s := newTestServer(t)
	aliceID, aliceToken := s.signup("alice")
	_, bobToken := s.signup("bob")
	videoID := s.publish(aliceToken, "clip")

	likePath := "/api/v1/likes/toggle/v/" + strconv.FormatInt(videoID, 10)
	var like struct {
		Liked     bool  `json:"liked"`
		LikeCount int64 `json:"like_count"`
	}

	code, res := s.json(http.MethodPost, likePath, bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	decode(t, res.Data, &like)
	assert.True(t, like.Liked)
	assert.Equal(t, int64(1), like.LikeCount)

	code, res = s.json(http.MethodPost, likePath, bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	decode(t, res.Data, &like)
	assert.False(t, like.Liked)
	assert.Equal(t, int64(0), like.LikeCount)

	code, _ = s.json(http.MethodPost, "/api/v1/likes/toggle/c/777", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, code)

	channelPath := "/api/v1/subscriptions/c/" + strconv.FormatInt(aliceID, 10)
	code, res = s.json(http.MethodPost, channelPath, aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "BadRequest", res.Error)

	code, _ = s.json(http.MethodPost, channelPath, bobToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, res = s.json(http.MethodGet, "/api/v1/dashboard/stats", aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	var stats struct {
		TotalVideos      int64 `json:"total_videos"`
		TotalSubscribers int64 `json:"total_subscribers"`
	}
	decode(t, res.Data, &stats)
	assert.Equal(t, int64(1), stats.TotalVideos)
	assert.Equal(t, int64(1), stats.TotalSubscribers)

	code, res = s.json(http.MethodGet, "/api/v1/users/"+strconv.FormatInt(aliceID, 10), bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	var profile struct {
		SubscribersCount int64 `json:"subscribers_count"`
		IsSubscribed     bool  `json:"is_subscribed"`
	}
	decode(t, res.Data, &profile)
	assert.Equal(t, int64(1), profile.SubscribersCount)
	assert.True(t, profile.IsSubscribed)
}

func TestPlaylistsAndComments(t *testing.T) {
	s := newTestServer(t)
	aliceID, aliceToken := s.signup("alice")
	_, bobToken := s.signup("bob")
	videoID := s.publish(aliceToken, "clip")

	code, res := s.json(http.MethodGet, "/api/v1/playlists/user/"+strconv.FormatInt(aliceID, 10), "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(res.Data))

	code, res = s.json(http.MethodPost, "/api/v1/playlists", aliceToken, map[string]string{"name": "mix", "description": "d"})
	require.Equal(t, http.StatusCreated, code)
	var playlist struct {
		ID int64 `json:"id"`
	}
	decode(t, res.Data, &playlist)

	addPath := "/api/v1/playlists/add/" + strconv.FormatInt(videoID, 10) + "/" + strconv.FormatInt(playlist.ID, 10)
	code, _ = s.json(http.MethodPatch, addPath, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.json(http.MethodPatch, addPath, aliceToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, res = s.json(http.MethodGet, "/api/v1/playlists/"+strconv.FormatInt(playlist.ID, 10), "", nil)
	require.Equal(t, http.StatusOK, code)
	var detail struct {
		VideoCount int64 `json:"video_count"`
	}
	decode(t, res.Data, &detail)
	assert.Equal(t, int64(1), detail.VideoCount)

	commentsPath := "/api/v1/comments/" + strconv.FormatInt(videoID, 10)
	code, _ = s.json(http.MethodPost, commentsPath, bobToken, map[string]string{"content": ""})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = s.json(http.MethodPost, commentsPath, bobToken, map[string]string{"content": "nice"})
	require.Equal(t, http.StatusCreated, code)

	code, res = s.json(http.MethodGet, commentsPath, "", nil)
	require.Equal(t, http.StatusOK, code)
	var comments struct {
		Total int64 `json:"total"`
	}
	decode(t, res.Data, &comments)
	assert.Equal(t, int64(1), comments.Total)

	code, _ = s.json(http.MethodDelete, videoPath(videoID), aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.json(http.MethodGet, commentsPath, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signup("alice")

	code, _ := s.json(http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.json(http.MethodPost, "/api/v1/users/logout", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, res := s.json(http.MethodGet, "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized", res.Error)
}

func TestHealthcheckAndSearch(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signup("alice")
	s.publish(token, "Golang tips")

	code, res := s.json(http.MethodGet, "/api/v1/healthcheck", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", res.Status)

	code, res = s.json(http.MethodGet, "/api/v1/search/videos?q=golang", "", nil)
	require.Equal(t, http.StatusOK, code)
	var data struct {
		Source string `json:"source"`
		Total  int64  `json:"total"`
	}
	decode(t, res.Data, &data)
	assert.Equal(t, "database", data.Source)
	assert.Equal(t, int64(1), data.Total)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	s := newTestServer(t)

	code, res := s.json(http.MethodGet, "/api/v1/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "error", res.Status)
	assert.Equal(t, "NotFound", res.Error)
	assert.Equal(t, http.StatusNotFound, res.Code)

	code, res = s.json(http.MethodPut, "/api/v1/healthcheck", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.Equal(t, "MethodNotAllowed", res.Error)
	assert.Equal(t, http.StatusMethodNotAllowed, res.Code)
}

func TestDraftHiddenFromOtherUsers(t *testing.T) {
	s := newTestServer(t)
	_, aliceToken := s.signup("alice")
	_, bobToken := s.signup("bob")
	videoID := s.publish(aliceToken, "secret")

	code, _ := s.json(http.MethodPatch, "/api/v1/videos/toggle/publish/"+strconv.FormatInt(videoID, 10), aliceToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, res := s.json(http.MethodPost, "/api/v1/playlists", bobToken, map[string]string{"name": "mine", "description": "d"})
	require.Equal(t, http.StatusCreated, code)
	var playlist struct {
		ID int64 `json:"id"`
	}
	decode(t, res.Data, &playlist)

	addPath := "/api/v1/playlists/add/" + strconv.FormatInt(videoID, 10) + "/" + strconv.FormatInt(playlist.ID, 10)
	code, _ = s.json(http.MethodPatch, addPath, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.json(http.MethodPost, "/api/v1/likes/toggle/v/"+strconv.FormatInt(videoID, 10), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, code)

	commentsPath := "/api/v1/comments/" + strconv.FormatInt(videoID, 10)
	code, _ = s.json(http.MethodPost, commentsPath, bobToken, map[string]string{"content": "hi"})
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = s.json(http.MethodGet, commentsPath, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = s.json(http.MethodGet, commentsPath, aliceToken, nil)
	assert.Equal(t, http.StatusOK, code)
}
