package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidtube-go/internal/config"
	"vidtube-go/internal/infra/database"
	infraES "vidtube-go/internal/infra/elasticsearch"
	infraKafka "vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/repository"
	"vidtube-go/internal/service"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

// 搜索索引同步 worker：消费视频变更事件并写入 Elasticsearch
func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "configs/config.yaml"), "配置文件路径")
	reindex := flag.Bool("reindex", false, "启动前全量重建视频索引")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

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

	if err := database.Init(&cfg.Database, false); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	esClient, err := infraES.NewClient(&cfg.Elasticsearch)
	if err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	videoIndex := infraES.NewVideoIndex(esClient, cfg.Elasticsearch.VideosIndex())

	// 监听系统信号，优雅退出
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = videoIndex.EnsureIndex(initCtx)
	cancel()
	if err != nil {
		logger.Fatal("Failed to ensure videos index", zap.Error(err))
	}

	syncService := service.NewSearchSyncService(repository.NewVideoRepository(database.Get()), videoIndex)

	if *reindex {
		success, failed, err := syncService.Reindex(ctx)
		if err != nil {
			logger.Fatal("Reindex failed", zap.Int("success", success), zap.Int("failed", failed), zap.Error(err))
		}
	}

	// reader 由 ConsumeVideoEvents 负责关闭
	reader := infraKafka.NewVideoEventReader(&cfg.Kafka)

	logger.Info("Search sync worker started",
		zap.String("topic", cfg.Kafka.Topic(infraKafka.TopicVideoEvents)),
		zap.String("group", cfg.Kafka.GroupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("index", cfg.Elasticsearch.VideosIndex()),
	)

	infraKafka.ConsumeVideoEvents(ctx, reader, syncService.HandleVideoEvent)
	logger.Info("Search sync worker stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
