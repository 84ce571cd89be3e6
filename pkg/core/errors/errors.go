// Package errors 定义框架的通用错误类型
package errors

import (
	"errors"
	"fmt"
)

// 通用错误
var (
	// ErrNotImplemented 功能未实现
	ErrNotImplemented = errors.New("not implemented")
	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrContextCanceled 上下文被取消
	ErrContextCanceled = errors.New("context canceled")
	// ErrTimeout 请求超时
	ErrTimeout = errors.New("request timeout")
)

// Tool 相关错误
var (
	// ErrToolNotFound 工具未找到
	ErrToolNotFound = errors.New("tool not found")
	// ErrToolExecutionFailed 工具执行失败
	ErrToolExecutionFailed = errors.New("tool execution failed")
	// ErrInvalidToolArgs 工具参数无效
	ErrInvalidToolArgs = errors.New("invalid tool arguments")
	// ErrToolAlreadyRegistered 工具已注册
	ErrToolAlreadyRegistered = errors.New("tool already registered")
	// ErrInvalidTool 无效的工具
	ErrInvalidTool = errors.New("invalid tool")
	// ErrAsyncNotSupported 工具不支持异步执行
	ErrAsyncNotSupported = errors.New("async execution not supported")
)

// 上游服务相关错误
var (
	// ErrMalformedResponse 上游响应缺少预期字段或无法解析
	ErrMalformedResponse = errors.New("malformed upstream response")
	// ErrNoResults 上游未返回任何可用结果
	ErrNoResults = errors.New("no results")
	// ErrFeedMismatch Arxiv feed 的 title/summary 数量不一致
	ErrFeedMismatch = errors.New("mismatched title/summary counts in feed")
	// ErrAuthFailed 第三方服务认证失败
	ErrAuthFailed = errors.New("authentication failed")
	// ErrMissingAPIKey 未配置 API 密钥
	ErrMissingAPIKey = errors.New("missing API key")
	// ErrServiceUnavailable 上游服务不可用
	ErrServiceUnavailable = errors.New("service unavailable")
)

// 检索相关错误
var (
	// ErrDocumentNotFound 文档未找到
	ErrDocumentNotFound = errors.New("document not found")
	// ErrStoreFailed 文档存储操作失败
	ErrStoreFailed = errors.New("document store operation failed")
)

// WrapError 包装错误并添加上下文信息
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// IsFatal 判断错误是否为致命错误（不可恢复）
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrAuthFailed) ||
		errors.Is(err, ErrMissingAPIKey) ||
		errors.Is(err, ErrInvalidConfig)
}
