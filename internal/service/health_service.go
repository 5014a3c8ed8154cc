package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"vidtube-go/internal/api/dto"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

// HealthChecker 依赖组件的连通性检查
type HealthChecker func(ctx context.Context) error

type HealthService struct {
	checkers map[string]HealthChecker
	// critical 中的组件失败时整体状态为 down，其余只标记 degraded
	critical map[string]bool
}

func NewHealthService() *HealthService {
	return &HealthService{
		checkers: make(map[string]HealthChecker),
		critical: make(map[string]bool),
	}
}

// Register 注册检查项
func (s *HealthService) Register(name string, critical bool, checker HealthChecker) {
	s.checkers[name] = checker
	s.critical[name] = critical
}

// Check 并发执行全部检查，返回结果和是否健康
func (s *HealthService) Check(ctx context.Context) (*dto.HealthData, bool) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(s.checkers))
	for name := range s.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]error, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, check HealthChecker) {
			defer wg.Done()
			results[i] = check(ctx)
		}(i, s.checkers[name])
	}
	wg.Wait()

	data := &dto.HealthData{Status: "ok", Components: make(map[string]string, len(names))}
	healthy := true
	for i, name := range names {
		if results[i] == nil {
			data.Components[name] = "up"
			continue
		}
		logger.Warn("Health check failed", zap.String("component", name), zap.Error(results[i]))
		data.Components[name] = "down"
		if s.critical[name] {
			healthy = false
			data.Status = "down"
		} else if data.Status == "ok" {
			data.Status = "degraded"
		}
	}
	return data, healthy
}
