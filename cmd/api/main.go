package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidtube-go/internal/api/handler"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/router"
	"vidtube-go/internal/config"
	"vidtube-go/internal/infra/database"
	infraES "vidtube-go/internal/infra/elasticsearch"
	infraKafka "vidtube-go/internal/infra/kafka"
	infraMinio "vidtube-go/internal/infra/minio"
	infraRedis "vidtube-go/internal/infra/redis"
	"vidtube-go/internal/repository"
	"vidtube-go/internal/service"
	"vidtube-go/pkg/logger"
	"vidtube-go/pkg/utils"

	_ "vidtube-go/api/openapi"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title VidTube-Go API
// @version 1.0
// @description 视频分享平台 API 服务

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "configs/config.yaml"), "配置文件路径")
	flag.Parse()

	// 加载配置文件
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库并迁移表结构
	if err := database.Init(&cfg.Database, cfg.App.Mode == gin.DebugMode); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	db := database.Get()
	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// 初始化Redis（token 注销记录）
	rdb, err := infraRedis.Open(context.Background(), &cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("Failed to close redis", zap.Error(err))
		}
	}()
	tokenStore := infraRedis.NewTokenStore(rdb)

	// 初始化MinIO
	mediaStore, err := infraMinio.NewStore(&cfg.MinIO)
	if err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	// 初始化Kafka生产者
	producer := infraKafka.NewProducer(&cfg.Kafka)
	defer producer.Close()

	health := service.NewHealthService()
	health.Register("database", true, func(ctx context.Context) error { return database.Ping(ctx, db) })
	health.Register("redis", true, tokenStore.Ping)
	health.Register("minio", false, mediaStore.Ping)

	// 初始化 Elasticsearch（可选，失败则搜索降级到 DB）
	var searcher service.VideoSearcher
	if esClient, err := infraES.NewClient(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
	} else {
		videoIndex := infraES.NewVideoIndex(esClient, cfg.Elasticsearch.VideosIndex())
		searcher = videoIndex
		health.Register("elasticsearch", false, videoIndex.Ping)
	}

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	// 初始化依赖（Repository -> Service -> Handler）
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	tokens := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpireDuration(), cfg.App.Name)

	authService := service.NewAuthService(userRepo, tokens, tokenStore)
	userService := service.NewUserService(userRepo, subRepo)
	videoService := service.NewVideoService(videoRepo, mediaStore, producer)
	commentService := service.NewCommentService(commentRepo, videoRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	tweetService := service.NewTweetService(tweetRepo, userRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo, userRepo)
	subscriptionService := service.NewSubscriptionService(subRepo, userRepo)
	dashboardService := service.NewDashboardService(videoRepo, likeRepo, subRepo)
	searchService := service.NewSearchService(videoRepo, searcher)

	handlers := &router.Handlers{
		Auth: handler.NewAuthHandler(authService),
		User: handler.NewUserHandler(userService),
		Video: handler.NewVideoHandler(videoService, handler.UploadLimits{
			MaxVideoBytes:     cfg.Upload.MaxVideoBytes(),
			MaxThumbnailBytes: cfg.Upload.MaxThumbnailBytes(),
		}),
		Comment:      handler.NewCommentHandler(commentService),
		Like:         handler.NewLikeHandler(likeService),
		Tweet:        handler.NewTweetHandler(tweetService),
		Playlist:     handler.NewPlaylistHandler(playlistService),
		Subscription: handler.NewSubscriptionHandler(subscriptionService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Search:       handler.NewSearchHandler(searchService),
		Health:       handler.NewHealthHandler(health),
	}

	// 创建Gin路由器（不使用默认中间件）
	r := gin.New()
	r.MaxMultipartMemory = 32 << 20
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.ErrorHandler())
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)))
	}

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册业务路由
	router.Setup(r, handlers, middleware.NewAuthenticator(tokens, tokenStore))

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	logger.Info("Configuration loaded",
		zap.String("database", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()),
		zap.String("minio", cfg.MinIO.Endpoint),
		zap.Strings("kafka", cfg.Kafka.Brokers),
		zap.Bool("elasticsearch", searcher != nil),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 监听系统信号，优雅退出
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
