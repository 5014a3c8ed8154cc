// Package apperr 定义业务错误：每个错误带一个 Kind，由 HTTP 层统一翻译成状态码。
package apperr

import (
	"errors"
	"net/http"
)

// Kind 错误类别
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindTooManyRequests
)

var kindNames = map[Kind]string{
	KindInternal:        "InternalServerError",
	KindInvalidArgument: "BadRequest",
	KindUnauthorized:    "Unauthorized",
	KindForbidden:       "Forbidden",
	KindNotFound:        "NotFound",
	KindConflict:        "Conflict",
	KindTooManyRequests: "TooManyRequests",
}

var kindStatus = map[Kind]int{
	KindInternal:        http.StatusInternalServerError,
	KindInvalidArgument: http.StatusBadRequest,
	KindUnauthorized:    http.StatusUnauthorized,
	KindForbidden:       http.StatusForbidden,
	KindNotFound:        http.StatusNotFound,
	KindConflict:        http.StatusConflict,
	KindTooManyRequests: http.StatusTooManyRequests,
}

// String 返回响应中 error 字段使用的名字
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindInternal]
}

// HTTPStatus 返回对应的 HTTP 状态码
func (k Kind) HTTPStatus() int {
	if status, ok := kindStatus[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error 业务错误
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 同一 Kind 且 Message 相同即视为同一错误，
// 这样 Wrap 出来的错误仍然能和包级哨兵错误用 errors.Is 比较
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// New 创建业务错误
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap 包装底层错误
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func InvalidArgument(message string) *Error { return New(KindInvalidArgument, message) }
func Unauthorized(message string) *Error    { return New(KindUnauthorized, message) }
func Forbidden(message string) *Error       { return New(KindForbidden, message) }
func NotFound(message string) *Error        { return New(KindNotFound, message) }
func Conflict(message string) *Error        { return New(KindConflict, message) }

// KindOf 返回错误链上第一个 *Error 的 Kind，没有则视为内部错误
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
