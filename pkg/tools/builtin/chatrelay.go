package builtin

import (
	"context"
	"strings"

	"github.com/easyops/agenttools-go/pkg/core/config"
	"github.com/easyops/agenttools-go/pkg/core/errors"
	"github.com/easyops/agenttools-go/pkg/hugchat"
	"github.com/easyops/agenttools-go/pkg/otel"
	"github.com/easyops/agenttools-go/pkg/tools"
)

// ChatRelay 第三方聊天转发工具
//
// 每次调用执行完整流程：登录（并持久化 Cookie）、打开会话、
// 提交查询、返回完整回复文本。认证或网络失败直接上抛，不重试。
type ChatRelay struct {
	client    *hugchat.Client
	stream    bool
	webSearch bool
	metrics   otel.Metrics
}

// ChatRelayOption 聊天转发工具选项
type ChatRelayOption func(*ChatRelay)

// WithRelayClient 替换底层客户端（测试用）
func WithRelayClient(client *hugchat.Client) ChatRelayOption {
	return func(t *ChatRelay) {
		t.client = client
	}
}

// WithRelayMetrics 设置指标收集器
func WithRelayMetrics(metrics otel.Metrics) ChatRelayOption {
	return func(t *ChatRelay) {
		t.metrics = metrics
	}
}

// NewChatRelay 创建聊天转发工具
func NewChatRelay(cfg config.ChatConfig, opts ...ChatRelayOption) (*ChatRelay, error) {
	cfg = cfg.WithDefaults()
	if !cfg.Configured() {
		return nil, errors.WrapError(errors.ErrInvalidConfig, "chat relay requires email and password")
	}

	client, err := hugchat.NewClient(cfg.Email, cfg.Password,
		hugchat.WithBaseURL(cfg.BaseURL),
		hugchat.WithCookieDir(cfg.CookieDir),
		hugchat.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, err
	}

	t := &ChatRelay{
		client:    client,
		stream:    cfg.Stream,
		webSearch: cfg.WebSearch,
		metrics:   otel.NewNoopMetrics(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// Name 返回工具名称
func (t *ChatRelay) Name() string {
	return "chat_relay"
}

// Description 返回工具描述
func (t *ChatRelay) Description() string {
	return "Relay a query to a third-party chat service and return its answer."
}

// Parameters 返回参数 Schema
func (t *ChatRelay) Parameters() tools.ParameterSchema {
	return tools.QuerySchema("The question to relay to the chat service")
}

// Execute 执行聊天转发
//
// 即使配置了流式返回，工具契约仍然返回完整字符串：
// 流式分片在这里被逐段拼接。
func (t *ChatRelay) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	query, err := tools.QueryArg(args)
	if err != nil {
		return "", err
	}

	if err := t.client.Login(ctx); err != nil {
		return "", err
	}
	t.metrics.Counter(otel.MetricRelayLogins).Add(ctx, 1)

	conversationID, err := t.client.NewConversation(ctx)
	if err != nil {
		return "", err
	}

	t.metrics.Counter(otel.MetricRelayQueries).Add(ctx, 1,
		otel.NewAttr(otel.AttrRelayStream, t.stream),
		otel.NewAttr(otel.AttrRelayWebSearch, t.webSearch))

	chatOpts := hugchat.ChatOptions{WebSearch: t.webSearch}

	if t.stream {
		tokenCh, errCh := t.client.ChatStream(ctx, conversationID, query, chatOpts)

		var sb strings.Builder
		for token := range tokenCh {
			sb.WriteString(token)
		}
		if err := <-errCh; err != nil {
			return "", err
		}
		return sb.String(), nil
	}

	return t.client.Chat(ctx, conversationID, query, chatOpts)
}

// ExecuteAsync 异步执行（不支持）
func (t *ChatRelay) ExecuteAsync(ctx context.Context, args map[string]interface{}) (<-chan string, <-chan error) {
	return tools.UnsupportedAsync()
}

// compile-time interface check
var _ tools.Tool = (*ChatRelay)(nil)
var _ tools.AsyncTool = (*ChatRelay)(nil)
