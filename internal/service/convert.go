package service

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/model"
)

func toUserInfo(u *model.User) dto.UserInfo {
	return dto.UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

func toOwnerBrief(u *model.User) *dto.OwnerBrief {
	if u == nil || u.ID == 0 {
		return nil
	}
	return &dto.OwnerBrief{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

func toOwnerBriefs(users []model.User) []dto.OwnerBrief {
	list := make([]dto.OwnerBrief, 0, len(users))
	for i := range users {
		list = append(list, *toOwnerBrief(&users[i]))
	}
	return list
}

func toVideoInfo(v *model.Video) *dto.VideoInfo {
	return &dto.VideoInfo{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Duration:    v.Duration,
		IsPublished: v.IsPublished,
		Views:       v.Views,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
		Owner:       toOwnerBrief(&v.Owner),
	}
}

func toVideoInfos(videos []model.Video) []dto.VideoInfo {
	list := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		list = append(list, *toVideoInfo(&videos[i]))
	}
	return list
}

func toCommentInfo(c *model.Comment) *dto.CommentInfo {
	return &dto.CommentInfo{
		ID:        c.ID,
		VideoID:   c.VideoID,
		OwnerID:   c.OwnerID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Owner:     toOwnerBrief(&c.Owner),
	}
}

func toTweetInfo(t *model.Tweet) *dto.TweetInfo {
	return &dto.TweetInfo{
		ID:        t.ID,
		OwnerID:   t.OwnerID,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toPlaylistInfo(p *model.Playlist, videoCount int64) *dto.PlaylistInfo {
	return &dto.PlaylistInfo{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		VideoCount:  videoCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
