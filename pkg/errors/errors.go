package errors

import (
	"errors"
	"fmt"
)

// Kind 错误分类
//
// 与前端展示约定一一对应：
//   - KindUnauthorized: 调用前置条件不满足（无身份），不访问存储
//   - KindTransport:    存储/网络故障，提示可重试，不自动重试
//   - KindRejected:     业务规则拒绝，优先使用服务端给出的消息
//   - KindNotFound:     空结果 / 记录不存在，属于提示信息而非错误
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindTransport
	KindRejected
	KindNotFound
)

// String 返回与响应体 status 字段一致的文本
func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	default:
		return "failed"
	}
}

// AppError 带分类的业务错误
type AppError struct {
	Kind    Kind
	Message string
	Err     error

	kindOnly bool
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is 支持按分类匹配：errors.Is(err, ErrNotFound) 对任意 NotFound 类错误成立
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.kindOnly && t.Kind == e.Kind
}

// ── 分类哨兵（仅用于 errors.Is 匹配） ──

var (
	ErrUnauthorized = &AppError{Kind: KindUnauthorized, Message: "未认证", kindOnly: true}
	ErrTransport    = &AppError{Kind: KindTransport, Message: "服务暂时不可用，请稍后重试", kindOnly: true}
	ErrRejected     = &AppError{Kind: KindRejected, Message: "操作被拒绝", kindOnly: true}
	ErrNotFound     = &AppError{Kind: KindNotFound, Message: "未找到记录", kindOnly: true}
)

// New 创建指定分类的业务错误
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Wrap 以指定分类包装底层错误
func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// KindOf 返回错误链上第一个 AppError 的分类；非 AppError 视为存储/网络故障
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindTransport
}

// MessageOf 返回可直接展示给用户的消息；无业务消息时回退到 fallback
func MessageOf(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" && appErr.Kind != KindTransport {
		return appErr.Message
	}
	return fallback
}

// IsNotFound 是否为“空结果/不存在”类提示
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
