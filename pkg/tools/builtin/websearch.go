// Package builtin 提供内置工具集
//
// 包含网络搜索、Arxiv 论文搜索、人工输入、第三方聊天转发
// 和本地上下文检索等工具，以及按配置装配工具集的目录。
package builtin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/easyops/agenttools-go/pkg/core/config"
	"github.com/easyops/agenttools-go/pkg/core/errors"
	"github.com/easyops/agenttools-go/pkg/otel"
	"github.com/easyops/agenttools-go/pkg/tools"
)

// noResultsText 搜索无可用结果时返回的文本
const noResultsText = "No good Google Search Result was found"

// WebSearch 网络搜索工具
//
// 调用 Serper 搜索 API，按 答案框 > 知识图谱+自然结果 > 无结果
// 的优先级格式化返回文本。
type WebSearch struct {
	apiKey     string
	baseURL    string
	site       string
	maxResults int
	httpClient *http.Client
	metrics    otel.Metrics
}

// WebSearchOption 网络搜索工具选项
type WebSearchOption func(*WebSearch)

// WithSearchSite 设置站点限制，非空时在搜索词后追加 "site:<domain>"
func WithSearchSite(site string) WebSearchOption {
	return func(t *WebSearch) {
		t.site = site
	}
}

// WithSearchHTTPClient 设置 HTTP 客户端
func WithSearchHTTPClient(client *http.Client) WebSearchOption {
	return func(t *WebSearch) {
		t.httpClient = client
	}
}

// WithSearchMetrics 设置指标收集器
func WithSearchMetrics(metrics otel.Metrics) WebSearchOption {
	return func(t *WebSearch) {
		t.metrics = metrics
	}
}

// NewWebSearch 创建网络搜索工具
func NewWebSearch(cfg config.SearchConfig, opts ...WebSearchOption) (*WebSearch, error) {
	cfg = cfg.WithDefaults()
	if cfg.APIKey == "" {
		return nil, errors.ErrMissingAPIKey
	}

	t := &WebSearch{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		maxResults: cfg.MaxResults,
		metrics:    otel.NewNoopMetrics(),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// Name 返回工具名称
func (t *WebSearch) Name() string {
	return "web_search"
}

// Description 返回工具描述
func (t *WebSearch) Description() string {
	return "Access the internet to search for information. Input should be a search query."
}

// Parameters 返回参数 Schema
func (t *WebSearch) Parameters() tools.ParameterSchema {
	return tools.QuerySchema("The search query")
}

// serperRequest 搜索请求体
type serperRequest struct {
	Query string `json:"q"`
}

// serperResponse 搜索响应
//
// 所有可选区块显式建模为指针，缺失即为 nil，不做动态字段访问。
// Organic 用指针区分「键缺失」（畸形响应）和「空结果列表」。
type serperResponse struct {
	AnswerBox      *serperAnswerBox      `json:"answerBox"`
	KnowledgeGraph *serperKnowledgeGraph `json:"knowledgeGraph"`
	Organic        *[]serperOrganic      `json:"organic"`
}

// serperAnswerBox 直接答案区块
type serperAnswerBox struct {
	Answer             string   `json:"answer"`
	Snippet            string   `json:"snippet"`
	SnippetHighlighted []string `json:"snippetHighlighted"`
}

// serperKnowledgeGraph 知识图谱区块
type serperKnowledgeGraph struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	DescriptionLink string `json:"descriptionLink"`
}

// serperOrganic 自然搜索结果
type serperOrganic struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// Execute 执行网络搜索
func (t *WebSearch) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	query, err := tools.QueryArg(args)
	if err != nil {
		return "", err
	}

	if t.site != "" {
		query = query + " site:" + t.site
	}

	t.metrics.Counter(otel.MetricSearchRequests).Add(ctx, 1,
		otel.NewAttr(otel.AttrSearchSite, t.site))

	resp, err := t.search(ctx, query)
	if err != nil {
		return "", err
	}

	return t.formatResponse(ctx, resp)
}

// ExecuteAsync 异步执行（不支持）
func (t *WebSearch) ExecuteAsync(ctx context.Context, args map[string]interface{}) (<-chan string, <-chan error) {
	return tools.UnsupportedAsync()
}

// search 调用搜索 API 并解析响应
func (t *WebSearch) search(ctx context.Context, query string) (*serperResponse, error) {
	body, err := json.Marshal(serperRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", t.apiKey)

	httpResp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, errors.WrapError(errors.ErrServiceUnavailable, err.Error())
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(httpResp.Body)
		return nil, errors.WrapError(errors.ErrServiceUnavailable,
			fmt.Sprintf("search API returned %s - %s", httpResp.Status, string(bodyBytes)))
	}

	var resp serperResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, errors.WrapError(errors.ErrMalformedResponse, err.Error())
	}

	return &resp, nil
}

// formatResponse 按优先级格式化搜索响应
//
// 优先级: 答案框 > 知识图谱 + 自然结果 > 无结果提示。
func (t *WebSearch) formatResponse(ctx context.Context, resp *serperResponse) (string, error) {
	if resp.Organic == nil {
		return "", errors.WrapError(errors.ErrMalformedResponse, "search response missing organic results")
	}
	organic := *resp.Organic

	// 答案框优先
	if resp.AnswerBox != nil {
		answer := answerBoxText(resp.AnswerBox)
		if answer == "" {
			return "", errors.WrapError(errors.ErrMalformedResponse, "answer box missing answer fields")
		}
		if len(organic) == 0 {
			return "", errors.WrapError(errors.ErrMalformedResponse, "answer box present without organic results")
		}
		return "Answer: " + answer + "\nLink:" + organic[0].Link, nil
	}

	// 自然结果
	limit := t.maxResults
	if limit <= 0 || limit > len(organic) {
		limit = len(organic)
	}

	lines := make([]string, 0, limit+1)
	for _, result := range organic[:limit] {
		lines = append(lines, "Description: "+result.Title+result.Snippet+"\nLink:"+result.Link)
	}

	// 知识图谱摘要置于自然结果之前
	if kg := resp.KnowledgeGraph; kg != nil && kg.Description != "" && kg.DescriptionLink != "" {
		lines = append([]string{"Description: " + kg.Title + kg.Description + "\nLink:" + kg.DescriptionLink}, lines...)
	}

	if len(lines) == 0 {
		t.metrics.Counter(otel.MetricSearchNoResults).Add(ctx, 1)
		return noResultsText, nil
	}

	return strings.Join(lines, "\n"), nil
}

// answerBoxText 提取答案框文本
//
// 取第一个非空字段: 直接答案、摘要（换行替换为空格）、高亮摘要。
func answerBoxText(box *serperAnswerBox) string {
	if box.Answer != "" {
		return box.Answer
	}
	if box.Snippet != "" {
		return strings.ReplaceAll(box.Snippet, "\n", " ")
	}
	if len(box.SnippetHighlighted) > 0 {
		return box.SnippetHighlighted[0]
	}
	return ""
}

// compile-time interface check
var _ tools.Tool = (*WebSearch)(nil)
var _ tools.AsyncTool = (*WebSearch)(nil)
