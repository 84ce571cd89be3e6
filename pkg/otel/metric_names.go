package otel

// 预定义的指标名称
// 遵循 OpenTelemetry 语义约定
const (
	// Tool 指标
	MetricToolCalls        = "tool.calls"         // 计数器: 工具调用次数
	MetricToolCallDuration = "tool.call.duration" // 直方图: 工具调用时间(ms)
	MetricToolErrors       = "tool.errors"        // 计数器: 工具错误次数

	// 上游服务指标
	MetricSearchRequests  = "search.requests"  // 计数器: 搜索 API 请求次数
	MetricSearchNoResults = "search.noresults" // 计数器: 无结果的搜索次数
	MetricArxivRequests   = "arxiv.requests"   // 计数器: Arxiv 请求次数
	MetricRelayLogins     = "relay.logins"     // 计数器: 聊天服务登录次数
	MetricRelayQueries    = "relay.queries"    // 计数器: 聊天服务查询次数

	// 检索指标
	MetricRetrieverQueries       = "retriever.queries"        // 计数器: 内部检索次数
	MetricRetrieverQueryDuration = "retriever.query.duration" // 直方图: 检索时间(ms)
)

// MetricUnit 指标单位
type MetricUnit string

const (
	UnitNone         MetricUnit = ""
	UnitMilliseconds MetricUnit = "ms"
	UnitCount        MetricUnit = "1"
)

// MetricDescription 指标描述
type MetricDescription struct {
	Name        string
	Description string
	Unit        MetricUnit
	Type        string // counter, histogram
}

// PredefinedMetrics 预定义指标列表
var PredefinedMetrics = []MetricDescription{
	{MetricToolCalls, "Number of tool calls", UnitCount, "counter"},
	{MetricToolCallDuration, "Duration of tool calls", UnitMilliseconds, "histogram"},
	{MetricToolErrors, "Number of tool errors", UnitCount, "counter"},

	{MetricSearchRequests, "Number of search API requests", UnitCount, "counter"},
	{MetricSearchNoResults, "Number of searches with no usable results", UnitCount, "counter"},
	{MetricArxivRequests, "Number of Arxiv API requests", UnitCount, "counter"},
	{MetricRelayLogins, "Number of chat relay logins", UnitCount, "counter"},
	{MetricRelayQueries, "Number of chat relay queries", UnitCount, "counter"},

	{MetricRetrieverQueries, "Number of internal retriever queries", UnitCount, "counter"},
	{MetricRetrieverQueryDuration, "Duration of retriever queries", UnitMilliseconds, "histogram"},
}

// describe 返回指标的描述文本
func describe(name string) string {
	for _, m := range PredefinedMetrics {
		if m.Name == name {
			return m.Description
		}
	}
	return ""
}
