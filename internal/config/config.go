package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Log           LogConfig           `mapstructure:"log"`
	RateLimit     RateLimitConfig     `mapstructure:"ratelimit"`
	Upload        UploadConfig        `mapstructure:"upload"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Mode    string `mapstructure:"mode"`
	Port    int    `mapstructure:"port"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
}

// DSN 返回PostgreSQL连接字符串
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// Addr 返回Redis地址
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	// Bucket 存放视频文件和封面的公开读 bucket
	Bucket string `mapstructure:"bucket"`
	// PublicBaseURL 不为空时用它拼接对外访问地址（例如 CDN 域名）
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Brokers []string          `mapstructure:"brokers"`
	Topics  map[string]string `mapstructure:"topics"`
	GroupID string            `mapstructure:"group_id"`
}

// Topic 返回指定用途的 topic，未配置时使用 key 本身
func (k *KafkaConfig) Topic(key string) string {
	if t, ok := k.Topics[key]; ok && t != "" {
		return t
	}
	return key
}

// ElasticsearchConfig Elasticsearch配置
type ElasticsearchConfig struct {
	Hosts []string          `mapstructure:"hosts"`
	Index map[string]string `mapstructure:"index"`
}

// VideosIndex 返回视频索引名
func (e *ElasticsearchConfig) VideosIndex() string {
	if name := e.Index["videos"]; name != "" {
		return name
	}
	return "videos"
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// ExpireDuration 返回过期时间
func (j *JWTConfig) ExpireDuration() time.Duration {
	return time.Duration(j.ExpireHours) * time.Hour
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// RateLimitConfig 按客户端 IP 的限流配置
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// UploadConfig 上传限制
type UploadConfig struct {
	MaxVideoSizeMB     int64 `mapstructure:"max_video_size_mb"`
	MaxThumbnailSizeMB int64 `mapstructure:"max_thumbnail_size_mb"`
}

// MaxVideoBytes 视频文件大小上限（字节）
func (u *UploadConfig) MaxVideoBytes() int64 {
	return u.MaxVideoSizeMB * 1024 * 1024
}

// MaxThumbnailBytes 封面文件大小上限（字节）
func (u *UploadConfig) MaxThumbnailBytes() int64 {
	return u.MaxThumbnailSizeMB * 1024 * 1024
}

// 全局配置实例
var globalConfig *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "vidtube-go")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.mode", "debug")
	v.SetDefault("app.port", 8000)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 3600)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("minio.bucket", "vidtube-media")
	v.SetDefault("kafka.group_id", "vidtube-search-sync")
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_second", 20)
	v.SetDefault("ratelimit.burst", 40)
	v.SetDefault("upload.max_video_size_mb", 500)
	v.SetDefault("upload.max_thumbnail_size_mb", 10)
}

// Load 加载配置文件
// 同目录下的 .env（如果存在）会先载入环境变量，环境变量优先级高于配置文件，
// 例如 DATABASE_HOST 会覆盖 database.host
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfig = &cfg

	return &cfg, nil
}

// Validate 校验必填项
func (c *Config) Validate() error {
	if c.App.Port <= 0 {
		return fmt.Errorf("invalid app.port: %d", c.App.Port)
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("jwt.secret must not be empty")
	}
	if c.JWT.ExpireHours <= 0 {
		return fmt.Errorf("invalid jwt.expire_hours: %d", c.JWT.ExpireHours)
	}
	return nil
}

// Get 获取全局配置
func Get() *Config {
	if globalConfig == nil {
		panic("config not loaded, please call Load() first")
	}
	return globalConfig
}

// GetApp 获取应用配置
func GetApp() *AppConfig {
	return &Get().App
}

// GetJWT 获取JWT配置
func GetJWT() *JWTConfig {
	return &Get().JWT
}

// GetMinIO 获取MinIO配置
func GetMinIO() *MinIOConfig {
	return &Get().MinIO
}

// GetKafka 获取Kafka配置
func GetKafka() *KafkaConfig {
	return &Get().Kafka
}

// GetElasticsearch 获取Elasticsearch配置
func GetElasticsearch() *ElasticsearchConfig {
	return &Get().Elasticsearch
}
