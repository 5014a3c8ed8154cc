package kafka

import (
	"context"
	"encoding/json"
	"time"

	"vidtube-go/internal/config"
	"vidtube-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// VideoEventHandler 处理视频变更事件的回调函数
type VideoEventHandler func(ctx context.Context, event *VideoEvent) error

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// NewVideoEventReader 创建消费者组 reader
func NewVideoEventReader(cfg *config.KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Topic(TopicVideoEvents),
		GroupID:        cfg.GroupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})
}

// ConsumeVideoEvents 消费视频变更事件（阻塞，需在 goroutine 中运行）
// ctx 取消后会自动停止
func ConsumeVideoEvents(ctx context.Context, reader messageReader, handler VideoEventHandler) {
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka video event consumer stopped")
	}()

	logger.Info("Kafka video event consumer started")

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		var event VideoEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("Failed to unmarshal video event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if err := handler(ctx, &event); err != nil {
			logger.Error("Failed to handle video event",
				zap.Int64("video_id", event.VideoID),
				zap.String("type", string(event.Type)),
				zap.Error(err),
			)
		}
	}
}
