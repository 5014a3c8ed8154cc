package minio

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"vidtube-go/internal/config"
	"vidtube-go/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const publicReadPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`

// Store 媒体文件存储，视频和封面都放在同一个公开读 bucket 中
type Store struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewStore 初始化 MinIO 客户端并确保 Bucket 存在且公开读
func NewStore(cfg *config.MinIOConfig) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("MinIO bucket created", zap.String("bucket", cfg.Bucket))
	}

	if err := client.SetBucketPolicy(ctx, cfg.Bucket, fmt.Sprintf(publicReadPolicy, cfg.Bucket)); err != nil {
		return nil, fmt.Errorf("failed to set public policy for %s: %w", cfg.Bucket, err)
	}

	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket),
	)

	return &Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: BaseURL(cfg),
	}, nil
}

// BaseURL 返回对象公开访问地址前缀
func BaseURL(cfg *config.MinIOConfig) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
}

// Upload 上传文件，返回公开访问 URL
func (s *Store) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}
	return s.PublicURL(objectName), nil
}

// Remove 删除对象
func (s *Store) Remove(ctx context.Context, objectName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", objectName, err)
	}
	return nil
}

// PublicURL 生成公开访问 URL
func (s *Store) PublicURL(objectName string) string {
	return s.baseURL + "/" + strings.TrimLeft(objectName, "/")
}

// Ping 检查 bucket 是否可访问
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}
