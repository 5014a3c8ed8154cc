package dto

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage 页码上限，保证 (page-1)*limit 不溢出
	MaxPage = 1_000_000
)

// PageQuery 分页查询参数
type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Normalize 返回修正后的 page 和 limit：page 限制在 [1, MaxPage]，limit 默认 10，限制在 [1, 100]
func (q PageQuery) Normalize() (page, limit int) {
	page, limit = q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// Pagination 分页元数据
type Pagination struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int64 `json:"total_pages"`
	HasNextPage bool  `json:"has_next_page"`
}

func NewPagination(page, limit int, total int64) Pagination {
	totalPages := (total + int64(limit) - 1) / int64(limit)
	return Pagination{
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNextPage: int64(page) < totalPages,
	}
}

// Offset 计算分页偏移量
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// OwnerBrief 嵌套的作者/用户简要信息
type OwnerBrief struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Avatar   *string `json:"avatar"`
}

// ToggleLikeData 点赞切换结果
type ToggleLikeData struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// HealthData 健康检查结果
type HealthData struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}
