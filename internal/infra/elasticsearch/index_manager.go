package elasticsearch

import (
	"context"
	"fmt"
	"strings"

	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

// videosIndexMapping videos 索引的 mapping
const videosIndexMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	},
	"mappings": {
		"properties": {
			"id": {"type": "long"},
			"owner_id": {"type": "long"},
			"owner_name": {"type": "keyword"},
			"title": {
				"type": "text",
				"fields": {"keyword": {"type": "keyword", "ignore_above": 200}}
			},
			"description": {"type": "text"},
			"video_file": {"type": "keyword", "index": false},
			"thumbnail": {"type": "keyword", "index": false},
			"duration": {"type": "double"},
			"views": {"type": "long"},
			"is_published": {"type": "boolean"},
			"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"},
			"updated_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
		}
	}
}`

// EnsureIndex 确保 videos 索引存在，不存在则创建
func (x *VideoIndex) EnsureIndex(ctx context.Context) error {
	resp, err := x.client.Indices.Exists(
		[]string{x.index},
		x.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode == 200 {
		logger.Info("Elasticsearch videos index already exists", zap.String("index", x.index))
		return nil
	}

	resp, err = x.client.Indices.Create(
		x.index,
		x.client.Indices.Create.WithContext(ctx),
		x.client.Indices.Create.WithBody(strings.NewReader(videosIndexMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch videos index created", zap.String("index", x.index))
	return nil
}
