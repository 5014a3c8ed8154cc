package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidtube-go/internal/config"
	"vidtube-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// TopicVideoEvents 视频变更事件 topic 的配置 key
const TopicVideoEvents = "video_events"

// VideoEventType 视频变更类型
type VideoEventType string

const (
	VideoEventUpsert VideoEventType = "upsert"
	VideoEventDelete VideoEventType = "delete"
)

// VideoEvent 视频变更事件消息体，消费方按 VideoID 回查数据库
type VideoEvent struct {
	Type       VideoEventType `json:"type"`
	VideoID    int64          `json:"video_id"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Key 消息 key，同一视频的事件落在同一分区，保证顺序
func (e *VideoEvent) Key() string {
	return fmt.Sprintf("video-%d", e.VideoID)
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer 视频事件生产者
type Producer struct {
	writer messageWriter
	topic  string
}

// NewProducer 初始化 Kafka 生产者
func NewProducer(cfg *config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	topic := cfg.Topic(TopicVideoEvents)
	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", topic),
	)

	return &Producer{writer: writer, topic: topic}
}

// PublishVideoEvent 发送视频变更事件
func (p *Producer) PublishVideoEvent(ctx context.Context, event *VideoEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal video event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.Key()),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send video event: %w", err)
	}

	logger.Debug("Video event sent",
		zap.Int64("video_id", event.VideoID),
		zap.String("type", string(event.Type)),
		zap.String("topic", p.topic),
	)

	return nil
}

// Close 关闭生产者
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return p.writer.Close()
}
