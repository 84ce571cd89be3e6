package builtin

import (
	"log/slog"

	"github.com/easyops/agenttools-go/pkg/core/config"
	"github.com/easyops/agenttools-go/pkg/rag"
	"github.com/easyops/agenttools-go/pkg/tools"
)

// CatalogEntry 工具目录条目
//
// Requires 返回该工具是否可用及不可用的原因；
// Build 在前置条件满足时构造工具实例。
type CatalogEntry struct {
	// Name 工具名称
	Name string
	// Requires 配置前置条件
	Requires func(cfg *config.Config, retriever rag.Retriever) (ok bool, reason string)
	// Build 工具构造函数
	Build func(cfg *config.Config, retriever rag.Retriever) (tools.Tool, error)
}

// Catalog 内置工具目录
//
// 工具集在注册表构建时按此表一次性装配：前置条件不满足的条目
// 记录警告后跳过，不视为错误。
var Catalog = []CatalogEntry{
	{
		Name: "user_prompt",
		Requires: func(cfg *config.Config, retriever rag.Retriever) (bool, string) {
			return true, ""
		},
		Build: func(cfg *config.Config, retriever rag.Retriever) (tools.Tool, error) {
			return NewUserPrompt(), nil
		},
	},
	{
		Name: "web_search",
		Requires: func(cfg *config.Config, retriever rag.Retriever) (bool, string) {
			if !cfg.Search.Configured() {
				return false, "search API key is not configured"
			}
			return true, ""
		},
		Build: func(cfg *config.Config, retriever rag.Retriever) (tools.Tool, error) {
			return NewWebSearch(cfg.Search, WithSearchSite(cfg.Agent.Site))
		},
	},
	{
		Name: "arxiv_search",
		Requires: func(cfg *config.Config, retriever rag.Retriever) (bool, string) {
			return true, ""
		},
		Build: func(cfg *config.Config, retriever rag.Retriever) (tools.Tool, error) {
			return NewArxivSearch(), nil
		},
	},
	{
		Name: "chat_relay",
		Requires: func(cfg *config.Config, retriever rag.Retriever) (bool, string) {
			if !cfg.Chat.Configured() {
				return false, "chat service email and password are not configured"
			}
			return true, ""
		},
		Build: func(cfg *config.Config, retriever rag.Retriever) (tools.Tool, error) {
			return NewChatRelay(cfg.Chat)
		},
	},
	{
		Name: "context_search",
		Requires: func(cfg *config.Config, retriever rag.Retriever) (bool, string) {
			if retriever == nil {
				return false, "no document retriever is available"
			}
			return true, ""
		},
		Build: func(cfg *config.Config, retriever rag.Retriever) (tools.Tool, error) {
			return NewContextSearch(retriever), nil
		},
	},
}

// buildOptions 装配选项
type buildOptions struct {
	logger *slog.Logger
}

// BuildOption 装配选项
type BuildOption func(*buildOptions)

// WithBuildLogger 设置装配日志器
func WithBuildLogger(logger *slog.Logger) BuildOption {
	return func(o *buildOptions) {
		o.logger = logger
	}
}

// BuildTools 按目录装配可用工具集
//
// 凭证缺失只产生警告并跳过对应工具，部分工具集是合法结果。
// 构造函数自身的失败（前置条件已满足仍失败）才作为错误返回。
func BuildTools(cfg *config.Config, retriever rag.Retriever, opts ...BuildOption) ([]tools.Tool, error) {
	options := &buildOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	available := make([]tools.Tool, 0, len(Catalog))
	for _, entry := range Catalog {
		ok, reason := entry.Requires(cfg, retriever)
		if !ok {
			options.logger.Warn("tool omitted", "tool", entry.Name, "reason", reason)
			continue
		}

		tool, err := entry.Build(cfg, retriever)
		if err != nil {
			return nil, err
		}
		available = append(available, tool)
	}

	return available, nil
}

// BuildRegistry 装配工具集并注册到新的注册表
func BuildRegistry(cfg *config.Config, retriever rag.Retriever, opts ...BuildOption) (*tools.Registry, error) {
	available, err := BuildTools(cfg, retriever, opts...)
	if err != nil {
		return nil, err
	}

	registry := tools.NewRegistry()
	if err := registry.RegisterAll(available...); err != nil {
		return nil, err
	}
	return registry, nil
}
