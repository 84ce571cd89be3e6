package builtin

import (
	"context"
	"strings"

	"github.com/easyops/agenttools-go/pkg/rag"
	"github.com/easyops/agenttools-go/pkg/tools"
)

// ContextSearch 本地上下文检索工具
//
// 从内部文档检索器中查找与查询相关的文档，
// 格式化为 "Document<content>\nLink:<source>\n" 块拼接返回。
type ContextSearch struct {
	retriever rag.Retriever
	topK      int
}

// ContextSearchOption 上下文检索工具选项
type ContextSearchOption func(*ContextSearch)

// WithContextTopK 设置返回文档数量
func WithContextTopK(topK int) ContextSearchOption {
	return func(t *ContextSearch) {
		t.topK = topK
	}
}

// NewContextSearch 创建上下文检索工具
func NewContextSearch(retriever rag.Retriever, opts ...ContextSearchOption) *ContextSearch {
	t := &ContextSearch{
		retriever: retriever,
		topK:      5,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Name 返回工具名称
func (t *ContextSearch) Name() string {
	return "context_search"
}

// Description 返回工具描述
func (t *ContextSearch) Description() string {
	return "Search the internal document context for information relevant to the query."
}

// Parameters 返回参数 Schema
func (t *ContextSearch) Parameters() tools.ParameterSchema {
	return tools.QuerySchema("The context search query")
}

// Execute 执行上下文检索
func (t *ContextSearch) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	query, err := tools.QueryArg(args)
	if err != nil {
		return "", err
	}

	results, err := t.retriever.Retrieve(ctx, query, t.topK)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, result := range results {
		sb.WriteString("Document")
		sb.WriteString(result.Document.Content)
		sb.WriteString("\nLink:")
		sb.WriteString(result.Document.Source)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// ExecuteAsync 异步执行（不支持）
func (t *ContextSearch) ExecuteAsync(ctx context.Context, args map[string]interface{}) (<-chan string, <-chan error) {
	return tools.UnsupportedAsync()
}

// compile-time interface check
var _ tools.Tool = (*ContextSearch)(nil)
var _ tools.AsyncTool = (*ContextSearch)(nil)
