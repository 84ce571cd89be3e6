package builtin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/easyops/agenttools-go/pkg/core/errors"
	"github.com/easyops/agenttools-go/pkg/otel"
	"github.com/easyops/agenttools-go/pkg/tools"
)

// Arxiv Atom feed 的 title/summary 提取模式
//
// 按纯文本匹配整个响应体，非贪婪且点号匹配换行。
var (
	arxivTitlePattern   = regexp.MustCompile(`(?s)<title>(.*?)</title>`)
	arxivSummaryPattern = regexp.MustCompile(`(?s)<summary>(.*?)</summary>`)
)

// ArxivSearch Arxiv 论文搜索工具
//
// 调用 Arxiv 查询端点，按位置配对 title/summary 并格式化。
// 数量不一致时返回 ErrFeedMismatch，不做截断猜测。
type ArxivSearch struct {
	baseURL    string
	maxResults int
	httpClient *http.Client
	metrics    otel.Metrics
}

// ArxivOption Arxiv 搜索工具选项
type ArxivOption func(*ArxivSearch)

// WithArxivBaseURL 设置查询端点
func WithArxivBaseURL(u string) ArxivOption {
	return func(t *ArxivSearch) {
		t.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithArxivMaxResults 设置最大结果数
func WithArxivMaxResults(n int) ArxivOption {
	return func(t *ArxivSearch) {
		t.maxResults = n
	}
}

// WithArxivHTTPClient 设置 HTTP 客户端
func WithArxivHTTPClient(client *http.Client) ArxivOption {
	return func(t *ArxivSearch) {
		t.httpClient = client
	}
}

// WithArxivMetrics 设置指标收集器
func WithArxivMetrics(metrics otel.Metrics) ArxivOption {
	return func(t *ArxivSearch) {
		t.metrics = metrics
	}
}

// NewArxivSearch 创建 Arxiv 论文搜索工具
func NewArxivSearch(opts ...ArxivOption) *ArxivSearch {
	t := &ArxivSearch{
		baseURL:    "http://export.arxiv.org/api/query",
		maxResults: 10,
		metrics:    otel.NewNoopMetrics(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Name 返回工具名称
func (t *ArxivSearch) Name() string {
	return "arxiv_search"
}

// Description 返回工具描述
func (t *ArxivSearch) Description() string {
	return "Search arxiv.org for relevant papers. Input should be a search query."
}

// Parameters 返回参数 Schema
func (t *ArxivSearch) Parameters() tools.ParameterSchema {
	return tools.QuerySchema("The paper search query")
}

// Execute 执行论文搜索
func (t *ArxivSearch) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	query, err := tools.QueryArg(args)
	if err != nil {
		return "", err
	}

	t.metrics.Counter(otel.MetricArxivRequests).Add(ctx, 1)

	reqURL := fmt.Sprintf("%s?search_query=all:%s&start=0&max_results=%d",
		t.baseURL, url.QueryEscape(query), t.maxResults)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create arxiv request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", errors.WrapError(errors.ErrServiceUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.WrapError(errors.ErrServiceUnavailable,
			fmt.Sprintf("arxiv returned %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read arxiv response: %w", err)
	}

	return formatArxivFeed(string(body))
}

// ExecuteAsync 异步执行（不支持）
func (t *ArxivSearch) ExecuteAsync(ctx context.Context, args map[string]interface{}) (<-chan string, <-chan error) {
	return tools.UnsupportedAsync()
}

// formatArxivFeed 从 Atom feed 文本中提取并配对 title/summary
func formatArxivFeed(feed string) (string, error) {
	titles := arxivTitlePattern.FindAllStringSubmatch(feed, -1)
	summaries := arxivSummaryPattern.FindAllStringSubmatch(feed, -1)

	if len(titles) != len(summaries) {
		return "", errors.WrapError(errors.ErrFeedMismatch,
			fmt.Sprintf("%d titles vs %d summaries", len(titles), len(summaries)))
	}

	pairs := make([]string, 0, len(titles))
	for i := range titles {
		pairs = append(pairs, "Title: "+titles[i][1]+"\nSummary: "+summaries[i][1])
	}

	return strings.Join(pairs, " "), nil
}

// compile-time interface check
var _ tools.Tool = (*ArxivSearch)(nil)
var _ tools.AsyncTool = (*ArxivSearch)(nil)
