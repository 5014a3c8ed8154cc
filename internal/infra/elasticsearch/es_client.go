package elasticsearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vidtube-go/internal/config"
	"vidtube-go/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// NewClient 创建 Elasticsearch 客户端并检查连通性
func NewClient(cfg *config.ElasticsearchConfig) (*elasticsearch.Client, error) {
	hosts := normalizeHosts(cfg.Hosts)
	if len(hosts) == 0 {
		return nil, fmt.Errorf("elasticsearch hosts is empty")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     hosts,
		RetryOnStatus: []int{502, 503, 504},
		MaxRetries:    3,
		RetryBackoff:  func(i int) time.Duration { return time.Duration(i) * time.Second },
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to ping elasticsearch: %w", err)
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return nil, fmt.Errorf("elasticsearch ping failed: %s", resp.String())
	}

	logger.Info("Elasticsearch connected", zap.Strings("hosts", hosts))
	return es, nil
}

func normalizeHosts(raw []string) []string {
	hosts := make([]string, 0, len(raw))
	for _, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if !strings.HasPrefix(h, "http") {
			h = "http://" + h
		}
		hosts = append(hosts, h)
	}
	return hosts
}
