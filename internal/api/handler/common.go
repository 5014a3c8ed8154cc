package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/apperr"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

var errNotLoggedIn = apperr.Unauthorized("无法获取用户信息")

// parseIDParam 解析路径中的正整数 ID
func parseIDParam(c *gin.Context, name, label string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.InvalidArgument("无效的" + label + "ID")
	}
	return id, nil
}

// bindError 把 gin 的绑定/校验错误转换成 400
func bindError(err error) error {
	return apperr.InvalidArgument("请求参数无效: " + err.Error())
}

// currentUserID 获取当前登录用户，仅用于 AuthRequired 之后的 handler
func currentUserID(c *gin.Context) (int64, error) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return 0, errNotLoggedIn
	}
	return userID, nil
}

// viewerID 获取可选的当前用户，匿名访问返回 0
func viewerID(c *gin.Context) int64 {
	userID, _ := middleware.GetCurrentUserID(c)
	return userID
}

// fileRule 上传文件校验规则
type fileRule struct {
	field    string
	label    string
	exts     map[string]bool
	maxBytes int64
}

var (
	videoExts = map[string]bool{
		".mp4": true, ".avi": true, ".mov": true,
		".mkv": true, ".flv": true, ".webm": true,
	}
	imageExts = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
	}
)

// formFile 读取 multipart 文件字段，字段不存在时返回 (nil, nil, nil)
// 调用方负责关闭返回的 multipart.File
func formFile(c *gin.Context, rule fileRule) (*service.UploadFile, multipart.File, error) {
	header, err := c.FormFile(rule.field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, nil
		}
		return nil, nil, apperr.InvalidArgument("读取" + rule.label + "失败: " + err.Error())
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !rule.exts[ext] {
		return nil, nil, apperr.InvalidArgument(rule.label + "格式不支持: " + ext)
	}
	if header.Size <= 0 || (rule.maxBytes > 0 && header.Size > rule.maxBytes) {
		return nil, nil, apperr.InvalidArgument(rule.label + "大小无效（不能为空，最大 " + strconv.FormatInt(rule.maxBytes>>20, 10) + "MB）")
	}

	f, err := header.Open()
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindInternal, "打开上传文件失败", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &service.UploadFile{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Reader:      f,
	}, f, nil
}

func closeFile(f multipart.File) {
	if f != nil {
		_ = f.Close()
	}
}
