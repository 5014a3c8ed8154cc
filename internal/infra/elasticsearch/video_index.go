package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vidtube-go/internal/model"
	"vidtube-go/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// VideoDoc ES 视频文档结构
type VideoDoc struct {
	ID          int64   `json:"id"`
	OwnerID     int64   `json:"owner_id"`
	OwnerName   string  `json:"owner_name"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	VideoFile   string  `json:"video_file"`
	Thumbnail   string  `json:"thumbnail"`
	Duration    float64 `json:"duration"`
	Views       int64   `json:"views"`
	IsPublished bool    `json:"is_published"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// NewVideoDoc 由视频记录（需预加载 Owner）生成文档
func NewVideoDoc(v *model.Video) *VideoDoc {
	return &VideoDoc{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		OwnerName:   v.Owner.Username,
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   v.UpdatedAt.Format(time.RFC3339),
	}
}

// VideoQuery 视频搜索条件
type VideoQuery struct {
	Text    string
	OwnerID *int64
	From    int
	Size    int
}

// VideoHits 搜索命中结果，IDs 按相关度排序
type VideoHits struct {
	Total      int64
	IDs        []int64
	Highlights map[int64]map[string][]string
}

// VideoIndex videos 索引的读写封装
type VideoIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewVideoIndex(client *elasticsearch.Client, index string) *VideoIndex {
	return &VideoIndex{client: client, index: index}
}

// IndexVideo 写入或覆盖单个视频文档
func (x *VideoIndex) IndexVideo(ctx context.Context, v *model.Video) error {
	body, err := json.Marshal(NewVideoDoc(v))
	if err != nil {
		return err
	}

	resp, err := x.client.Index(
		x.index,
		bytes.NewReader(body),
		x.client.Index.WithContext(ctx),
		x.client.Index.WithDocumentID(strconv.FormatInt(v.ID, 10)),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Video synced to ES", zap.Int64("video_id", v.ID))
	return nil
}

// DeleteVideo 从 ES 删除视频，文档不存在不算错误
func (x *VideoIndex) DeleteVideo(ctx context.Context, videoID int64) error {
	resp, err := x.client.Delete(
		x.index,
		strconv.FormatInt(videoID, 10),
		x.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BulkIndexVideos 批量写入视频文档
func (x *VideoIndex) BulkIndexVideos(ctx context.Context, videos []model.Video) (success, failed int, err error) {
	var buf bytes.Buffer
	for i := range videos {
		docBody, err := json.Marshal(NewVideoDoc(&videos[i]))
		if err != nil {
			return 0, len(videos), err
		}
		fmt.Fprintf(&buf, `{"index":{"_index":%q,"_id":"%d"}}`, x.index, videos[i].ID)
		buf.WriteByte('\n')
		buf.Write(docBody)
		buf.WriteByte('\n')
	}

	if buf.Len() == 0 {
		return 0, 0, nil
	}

	resp, err := x.client.Bulk(&buf, x.client.Bulk.WithContext(ctx))
	if err != nil {
		return 0, len(videos), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(videos), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Items []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return 0, len(videos), fmt.Errorf("decode bulk response: %w", err)
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}

// SearchVideos 搜索已发布视频
func (x *VideoIndex) SearchVideos(ctx context.Context, q VideoQuery) (*VideoHits, error) {
	queryJSON, err := json.Marshal(BuildSearchQuery(q))
	if err != nil {
		return nil, err
	}

	resp, err := x.client.Search(
		x.client.Search.WithContext(ctx),
		x.client.Search.WithIndex(x.index),
		x.client.Search.WithBody(bytes.NewReader(queryJSON)),
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
				Highlight map[string][]string `json:"highlight"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	hits := &VideoHits{
		Total:      esResp.Hits.Total.Value,
		IDs:        make([]int64, 0, len(esResp.Hits.Hits)),
		Highlights: make(map[int64]map[string][]string),
	}
	for _, h := range esResp.Hits.Hits {
		hits.IDs = append(hits.IDs, h.Source.ID)
		if len(h.Highlight) > 0 {
			hits.Highlights[h.Source.ID] = h.Highlight
		}
	}
	return hits, nil
}

// BuildSearchQuery 构造搜索 DSL：只查已发布视频，有关键词按相关度排序，否则按发布时间倒序
func BuildSearchQuery(q VideoQuery) map[string]interface{} {
	filter := []interface{}{
		map[string]interface{}{"term": map[string]interface{}{"is_published": true}},
	}
	if q.OwnerID != nil {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"owner_id": *q.OwnerID}})
	}

	boolQ := map[string]interface{}{"filter": filter}
	sort := []interface{}{}

	text := strings.TrimSpace(q.Text)
	if text != "" {
		boolQ["must"] = []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":    text,
					"fields":   []string{"title^3", "description"},
					"type":     "best_fields",
					"operator": "or",
				},
			},
		}
		sort = append(sort, map[string]interface{}{"_score": map[string]string{"order": "desc"}})
	}
	sort = append(sort, map[string]interface{}{"created_at": map[string]string{"order": "desc"}})

	query := map[string]interface{}{
		"query":            map[string]interface{}{"bool": boolQ},
		"_source":          []string{"id"},
		"from":             q.From,
		"size":             q.Size,
		"sort":             sort,
		"track_total_hits": true,
	}

	if text != "" {
		query["highlight"] = map[string]interface{}{
			"fields": map[string]interface{}{
				"title":       map[string]interface{}{},
				"description": map[string]interface{}{},
			},
			"pre_tags":  []string{"<em>"},
			"post_tags": []string{"</em>"},
		}
	}

	return query
}

// Ping 检查连通性
func (x *VideoIndex) Ping(ctx context.Context) error {
	resp, err := x.client.Ping(x.client.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return fmt.Errorf("elasticsearch ping failed: %s", resp.String())
	}
	return nil
}
