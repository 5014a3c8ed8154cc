package repository

import (
	"vidtube-go/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Toggle 切换订阅状态，返回切换后是否处于订阅中
func (r *SubscriptionRepository) Toggle(subscriberID, channelID int64) (bool, error) {
	sub := &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	return toggleRow(r.db, sub, "subscriber_id = ? AND channel_id = ?", subscriberID, channelID)
}

// IsSubscribed 是否已订阅
func (r *SubscriptionRepository) IsSubscribed(subscriberID, channelID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

// CountSubscribers 频道订阅者数量
func (r *SubscriptionRepository) CountSubscribers(channelID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

// CountChannels 用户订阅的频道数量
func (r *SubscriptionRepository) CountChannels(subscriberID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID).Count(&count).Error
	return count, err
}

// ListSubscribers 获取频道的订阅者（最近订阅在前）
func (r *SubscriptionRepository) ListSubscribers(channelID int64, skip, limit int) ([]model.User, int64, error) {
	return r.listUsers("subscriptions.subscriber_id = users.id", "subscriptions.channel_id = ?", channelID, skip, limit)
}

// ListChannels 获取用户订阅的频道（最近订阅在前）
func (r *SubscriptionRepository) ListChannels(subscriberID int64, skip, limit int) ([]model.User, int64, error) {
	return r.listUsers("subscriptions.channel_id = users.id", "subscriptions.subscriber_id = ?", subscriberID, skip, limit)
}

func (r *SubscriptionRepository) listUsers(on, where string, id int64, skip, limit int) ([]model.User, int64, error) {
	base := func() *gorm.DB {
		return r.db.Model(&model.User{}).
			Joins("JOIN subscriptions ON "+on).
			Where(where, id)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := base().Select("users.*").
		Order("subscriptions.created_at DESC").
		Order("subscriptions.id DESC").
		Offset(skip).Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
