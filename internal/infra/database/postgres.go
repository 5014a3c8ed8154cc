package database

import (
	"context"
	"fmt"
	"time"

	"vidtube-go/internal/config"
	"vidtube-go/internal/model"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// GormConfig 返回统一的 gorm 配置；TranslateError 让唯一索引冲突以 gorm.ErrDuplicatedKey 返回
func GormConfig(debug bool) *gorm.Config {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	}
}

// Init 初始化PostgreSQL数据库连接
func Init(cfg *config.DatabaseConfig, debug bool) error {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DSN()), GormConfig(debug))
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	// 获取底层sql.DB来配置连接池
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("dbname", cfg.DBName),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
	)

	return nil
}

// Migrate 自动迁移全部业务表
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	logger.Info("Database auto migration completed")
	return nil
}

// Ping 检查数据库连通性
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close 关闭数据库连接
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	logger.Info("Database connection closed")
	return sqlDB.Close()
}

// Get 获取数据库实例
func Get() *gorm.DB {
	return DB
}
