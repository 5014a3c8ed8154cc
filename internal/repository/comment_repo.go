package repository

import (
	"vidtube-go/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepository) GetByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// VisibleTo 评论所在的视频对 viewerID 是否可见
func (r *CommentRepository) VisibleTo(id, viewerID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).
		Joins("JOIN videos ON videos.id = comments.video_id").
		Where("comments.id = ?", id).
		Scopes(videoVisibleTo(viewerID)).
		Count(&count).Error
	return count > 0, err
}

// UpdateContent 更新评论内容，返回更新后的评论
func (r *CommentRepository) UpdateContent(id int64, content string) (*model.Comment, error) {
	result := r.db.Model(&model.Comment{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除评论及其点赞
func (r *CommentRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", model.LikeTargetComment, id).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Comment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListByVideo 获取视频的评论列表（最新在前，含评论者信息）
func (r *CommentRepository) ListByVideo(videoID int64, skip, limit int) ([]model.Comment, int64, error) {
	var total int64
	if err := r.db.Model(&model.Comment{}).Where("video_id = ?", videoID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := r.db.Joins("Owner").
		Where("comments.video_id = ?", videoID).
		Order("comments.created_at DESC").
		Order("comments.id DESC").
		Offset(skip).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}
