package otel

import "go.opentelemetry.io/otel/attribute"

// 预定义的语义属性键
// 遵循 OpenTelemetry 语义约定
const (
	// Tool 相关属性
	AttrToolName     = "tool.name"
	AttrToolError    = "tool.error"
	AttrToolDuration = "tool.duration_ms"

	// 上游服务相关属性
	AttrUpstreamHost   = "upstream.host"
	AttrUpstreamStatus = "upstream.status_code"
	AttrSearchSite     = "search.site"
	AttrSearchResults  = "search.result_count"
	AttrRelayStream    = "relay.stream"
	AttrRelayWebSearch = "relay.web_search"

	// Error 相关属性
	AttrErrorType    = "error.type"
	AttrErrorMessage = "error.message"
)

// ToolName 创建工具名称属性
func ToolName(name string) attribute.KeyValue {
	return attribute.String(AttrToolName, name)
}

// ToolDuration 创建工具执行时间属性（毫秒）
func ToolDuration(ms int64) attribute.KeyValue {
	return attribute.Int64(AttrToolDuration, ms)
}

// UpstreamHost 创建上游主机属性
func UpstreamHost(host string) attribute.KeyValue {
	return attribute.String(AttrUpstreamHost, host)
}

// UpstreamStatus 创建上游状态码属性
func UpstreamStatus(code int) attribute.KeyValue {
	return attribute.Int(AttrUpstreamStatus, code)
}

// SearchResults 创建搜索结果数属性
func SearchResults(count int) attribute.KeyValue {
	return attribute.Int(AttrSearchResults, count)
}

// ErrorAttrs 创建错误属性
func ErrorAttrs(errType, message string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrErrorType, errType),
		attribute.String(AttrErrorMessage, message),
	}
}
