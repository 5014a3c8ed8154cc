package repository

import (
	"vidtube-go/internal/model"

	"gorm.io/gorm"
)

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Create(tweet *model.Tweet) error {
	return r.db.Create(tweet).Error
}

func (r *TweetRepository) GetByID(id int64) (*model.Tweet, error) {
	var tweet model.Tweet
	err := r.db.Where("id = ?", id).First(&tweet).Error
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (r *TweetRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Tweet{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// UpdateContent 更新动态内容
func (r *TweetRepository) UpdateContent(id int64, content string) (*model.Tweet, error) {
	result := r.db.Model(&model.Tweet{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除动态及其点赞
func (r *TweetRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", model.LikeTargetTweet, id).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Tweet{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListByOwner 获取用户的动态（最新在前）
func (r *TweetRepository) ListByOwner(ownerID int64, skip, limit int) ([]model.Tweet, int64, error) {
	query := r.db.Model(&model.Tweet{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tweets []model.Tweet
	err := query.Order("created_at DESC").Order("id DESC").
		Offset(skip).Limit(limit).
		Find(&tweets).Error
	if err != nil {
		return nil, 0, err
	}

	return tweets, total, nil
}
