package service

import (
	"errors"
	"fmt"

	"vidtube-go/internal/repository"

	"gorm.io/gorm"
)

// ownerGuard 修改类操作前的归属校验：先按 ID 加载，不存在返回 notFound，作者不是调用者返回 forbidden
type ownerGuard[T any] struct {
	load      func(id int64) (*T, error)
	ownerOf   func(*T) int64
	notFound  error
	forbidden error
}

func (g ownerGuard[T]) require(id, callerID int64) (*T, error) {
	res, err := g.load(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, g.notFound
		}
		return nil, fmt.Errorf("load resource %d: %w", id, err)
	}
	if g.ownerOf(res) != callerID {
		return nil, g.forbidden
	}
	return res, nil
}

// mustExist 把 exists 查询结果转换成 notFound 错误
func mustExist(exists func(int64) (bool, error), id int64, notFound error) error {
	ok, err := exists(id)
	if err != nil {
		return fmt.Errorf("check existence of %d: %w", id, err)
	}
	if !ok {
		return notFound
	}
	return nil
}

// videoVisible 视频不存在或者是别人的草稿都返回 ErrVideoNotFound
func videoVisible(videoRepo *repository.VideoRepository, videoID, viewerID int64) error {
	return mustExist(func(id int64) (bool, error) {
		return videoRepo.VisibleTo(id, viewerID)
	}, videoID, ErrVideoNotFound)
}
