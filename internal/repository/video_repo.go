package repository

import (
	"vidtube-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoListOptions 视频列表查询条件
type VideoListOptions struct {
	Skip          int
	Limit         int
	OwnerID       *int64
	Search        string
	OnlyPublished bool
	// SortColumn 必须是 videos 表的列名，由 service 层做白名单映射
	SortColumn string
	SortDesc   bool
	WithOwner  bool
}

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDWithOwner 根据 ID 获取视频（含作者信息）
func (r *VideoRepository) GetByIDWithOwner(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Owner").Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetPublishedByIDs 批量获取已发布视频（含作者信息），顺序不保证
func (r *VideoRepository) GetPublishedByIDs(ids []int64) ([]model.Video, error) {
	var videos []model.Video
	if len(ids) == 0 {
		return videos, nil
	}
	err := r.db.Preload("Owner").
		Where("id IN ? AND is_published = ?", ids, true).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// VisibleTo 视频对 viewerID 是否可见：已发布，或者 viewerID 是作者
func (r *VideoRepository) VisibleTo(id, viewerID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Video{}).
		Where("id = ?", id).
		Scopes(videoVisibleTo(viewerID)).
		Count(&count).Error
	return count > 0, err
}

// videoVisibleTo 草稿只对作者可见，viewerID 为 0 表示匿名
func videoVisibleTo(viewerID int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(videos.is_published = ? OR videos.owner_id = ?)", true, viewerID)
	}
}

// Create 创建视频记录
func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// Update 更新视频字段（owner_id 不允许修改）
func (r *VideoRepository) Update(id int64, updates map[string]interface{}) (*model.Video, error) {
	delete(updates, "owner_id")
	result := r.db.Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除视频，同时删除视频和其评论上的点赞、评论本身以及播放列表中的引用
func (r *VideoRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&model.Comment{}).Select("id").Where("video_id = ?", id)
		if err := tx.Where("target_type = ? AND target_id IN (?)", model.LikeTargetComment, commentIDs).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?", model.LikeTargetVideo, id).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&model.Video{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListVideos 视频列表查询（分页、筛选、排序）
func (r *VideoRepository) ListVideos(opts VideoListOptions) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{})

	if opts.OwnerID != nil {
		query = query.Where("owner_id = ?", *opts.OwnerID)
	}
	if opts.OnlyPublished {
		query = query.Where("is_published = ?", true)
	}
	if opts.Search != "" {
		pattern := containsPattern(opts.Search)
		query = query.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortColumn := opts.SortColumn
	if sortColumn == "" {
		sortColumn = "created_at"
	}

	findQuery := query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: sortColumn}, Desc: opts.SortDesc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: opts.SortDesc}).
		Offset(opts.Skip).Limit(opts.Limit)
	if opts.WithOwner {
		findQuery = findQuery.Preload("Owner")
	}

	var videos []model.Video
	if err := findQuery.Find(&videos).Error; err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

// IncrementViews 播放量 +1
func (r *VideoRepository) IncrementViews(id int64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// CountByOwner 统计作者的视频数
func (r *VideoRepository) CountByOwner(ownerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

// SumViewsByOwner 统计作者所有视频的播放量之和
func (r *VideoRepository) SumViewsByOwner(ownerID int64) (int64, error) {
	var total int64
	err := r.db.Model(&model.Video{}).
		Select("COALESCE(SUM(views), 0)").
		Where("owner_id = ?", ownerID).
		Scan(&total).Error
	return total, err
}
