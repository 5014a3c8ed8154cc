package router

import (
	"net/http"

	"vidtube-go/internal/api/handler"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/response"

	"github.com/gin-gonic/gin"
)

// Handlers 所有业务 handler
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Video        *handler.VideoHandler
	Comment      *handler.CommentHandler
	Like         *handler.LikeHandler
	Tweet        *handler.TweetHandler
	Playlist     *handler.PlaylistHandler
	Subscription *handler.SubscriptionHandler
	Dashboard    *handler.DashboardHandler
	Search       *handler.SearchHandler
	Health       *handler.HealthHandler
}

// Setup 注册所有业务路由
func Setup(r *gin.Engine, h *Handlers, auth *middleware.Authenticator) {
	handle := middleware.Handle
	authRequired := auth.AuthRequired()
	authOptional := auth.AuthOptional()

	// 未匹配的路径和方法同样返回统一响应结构
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, "NotFound", "接口不存在")
	})
	r.NoMethod(func(c *gin.Context) {
		response.Fail(c, http.StatusMethodNotAllowed, "MethodNotAllowed", "请求方法不被允许")
	})

	v1 := r.Group("/api/v1")

	v1.GET("/healthcheck", handle(h.Health.Check))

	// --- 用户模块 ---
	users := v1.Group("/users")
	{
		users.POST("/register", handle(h.Auth.Register))
		users.POST("/login", handle(h.Auth.Login))
		users.POST("/logout", authRequired, handle(h.Auth.Logout))
		users.GET("/me", authRequired, handle(h.Auth.Me))
		users.GET("/:userId", authOptional, handle(h.User.GetUser))
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		// 公开接口，登录用户可以看到自己未发布的视频
		videos.GET("", authOptional, handle(h.Video.List))
		videos.GET("/:videoId", authOptional, handle(h.Video.GetDetail))

		videosAuth := videos.Group("", authRequired)
		{
			videosAuth.POST("", handle(h.Video.Publish))
			videosAuth.PATCH("/:videoId", handle(h.Video.Update))
			videosAuth.DELETE("/:videoId", handle(h.Video.Delete))
			videosAuth.PATCH("/toggle/publish/:videoId", handle(h.Video.TogglePublish))
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments")
	{
		comments.GET("/:videoId", authOptional, handle(h.Comment.ListByVideo))
		comments.POST("/:videoId", authRequired, handle(h.Comment.Create))
		comments.PATCH("/c/:commentId", authRequired, handle(h.Comment.Update))
		comments.DELETE("/c/:commentId", authRequired, handle(h.Comment.Delete))
	}

	// --- 点赞模块 ---
	likes := v1.Group("/likes", authRequired)
	{
		likes.POST("/toggle/v/:videoId", handle(h.Like.ToggleVideoLike))
		likes.POST("/toggle/c/:commentId", handle(h.Like.ToggleCommentLike))
		likes.POST("/toggle/t/:tweetId", handle(h.Like.ToggleTweetLike))
		likes.GET("/videos", handle(h.Like.LikedVideos))
	}

	// --- 动态模块 ---
	tweets := v1.Group("/tweets")
	{
		tweets.GET("/user/:userId", handle(h.Tweet.ListByUser))
		tweets.POST("", authRequired, handle(h.Tweet.Create))
		tweets.PATCH("/:tweetId", authRequired, handle(h.Tweet.Update))
		tweets.DELETE("/:tweetId", authRequired, handle(h.Tweet.Delete))
	}

	// --- 播放列表模块 ---
	playlists := v1.Group("/playlists")
	{
		playlists.GET("/user/:userId", authOptional, handle(h.Playlist.ListByUser))
		playlists.GET("/:playlistId", authOptional, handle(h.Playlist.GetByID))

		playlistsAuth := playlists.Group("", authRequired)
		{
			playlistsAuth.POST("", handle(h.Playlist.Create))
			playlistsAuth.PATCH("/:playlistId", handle(h.Playlist.Update))
			playlistsAuth.DELETE("/:playlistId", handle(h.Playlist.Delete))
			playlistsAuth.PATCH("/add/:videoId/:playlistId", handle(h.Playlist.AddVideo))
			playlistsAuth.PATCH("/remove/:videoId/:playlistId", handle(h.Playlist.RemoveVideo))
		}
	}

	// --- 订阅模块 ---
	subscriptions := v1.Group("/subscriptions")
	{
		subscriptions.POST("/c/:channelId", authRequired, handle(h.Subscription.Toggle))
		subscriptions.GET("/c/:channelId", handle(h.Subscription.Subscribers))
		subscriptions.GET("/u/:subscriberId", handle(h.Subscription.SubscribedChannels))
	}

	// --- 工作台 ---
	dashboard := v1.Group("/dashboard", authRequired)
	{
		dashboard.GET("/stats", handle(h.Dashboard.Stats))
		dashboard.GET("/videos", handle(h.Dashboard.Videos))
	}

	// --- 搜索 ---
	v1.GET("/search/videos", handle(h.Search.SearchVideos))
}
