package repository

import (
	"vidtube-go/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Toggle 切换用户对某个对象的点赞状态，返回切换后的状态
func (r *LikeRepository) Toggle(target model.LikeTarget, targetID, userID int64) (bool, error) {
	like := &model.Like{TargetType: target, TargetID: targetID, LikedBy: userID}
	return toggleRow(r.db, like,
		"target_type = ? AND target_id = ? AND liked_by = ?", target, targetID, userID)
}

// IsLiked 用户是否已点赞
func (r *LikeRepository) IsLiked(target model.LikeTarget, targetID, userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("target_type = ? AND target_id = ? AND liked_by = ?", target, targetID, userID).
		Count(&count).Error
	return count > 0, err
}

// CountByTarget 统计对象的点赞数
func (r *LikeRepository) CountByTarget(target model.LikeTarget, targetID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("target_type = ? AND target_id = ?", target, targetID).
		Count(&count).Error
	return count, err
}

// CountOnOwnerVideos 统计作者所有视频收到的点赞总数
func (r *LikeRepository) CountOnOwnerVideos(ownerID int64) (int64, error) {
	videoIDs := r.db.Model(&model.Video{}).Select("id").Where("owner_id = ?", ownerID)

	var count int64
	err := r.db.Model(&model.Like{}).
		Where("target_type = ? AND target_id IN (?)", model.LikeTargetVideo, videoIDs).
		Count(&count).Error
	return count, err
}

func (r *LikeRepository) likedVideosQuery(userID int64) *gorm.DB {
	return r.db.Model(&model.Video{}).
		Joins("JOIN likes ON likes.target_id = videos.id AND likes.target_type = ?", model.LikeTargetVideo).
		Where("likes.liked_by = ?", userID).
		Scopes(videoVisibleTo(userID))
}

// ListLikedVideos 获取用户点赞过的视频（按点赞时间倒序，含作者信息）
func (r *LikeRepository) ListLikedVideos(userID int64, skip, limit int) ([]model.Video, int64, error) {
	var total int64
	if err := r.likedVideosQuery(userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := r.likedVideosQuery(userID).
		Select("videos.*").
		Preload("Owner").
		Order("likes.created_at DESC").
		Order("likes.id DESC").
		Offset(skip).Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}
