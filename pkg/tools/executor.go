package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/easyops/agenttools-go/pkg/core/errors"
	"github.com/easyops/agenttools-go/pkg/otel"
)

// Executor 工具执行器
//
// 负责执行工具调用，支持超时控制、输出 Token 预算裁剪，
// 并为每次调用记录追踪 Span 和指标。
type Executor struct {
	registry        *Registry
	timeout         time.Duration
	maxRetries      int
	retryDelay      time.Duration
	tracer          otel.Tracer
	metrics         otel.Metrics
	maxResultTokens int
	counter         TokenCounter
}

// ExecutorOption 执行器配置选项
type ExecutorOption func(*Executor)

// NewExecutor 创建工具执行器
func NewExecutor(registry *Registry, opts ...ExecutorOption) *Executor {
	e := &Executor{
		registry:   registry,
		timeout:    30 * time.Second,
		maxRetries: 0,
		retryDelay: time.Second,
		tracer:     otel.NewNoopTracer(),
		metrics:    otel.NewNoopMetrics(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// WithExecutorTimeout 设置执行超时时间
func WithExecutorTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.timeout = d
	}
}

// WithExecutorRetries 设置重试次数和间隔
//
// 内置的外部服务适配器设计上不重试（默认 0 次）。
func WithExecutorRetries(maxRetries int, delay time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.maxRetries = maxRetries
		e.retryDelay = delay
	}
}

// WithExecutorTracer 设置追踪器
func WithExecutorTracer(tracer otel.Tracer) ExecutorOption {
	return func(e *Executor) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// WithExecutorMetrics 设置指标收集器
func WithExecutorMetrics(metrics otel.Metrics) ExecutorOption {
	return func(e *Executor) {
		if metrics != nil {
			e.metrics = metrics
		}
	}
}

// WithMaxResultTokens 设置工具输出的 Token 预算
//
// 超出预算的输出会被裁剪。counter 为 nil 时使用 DefaultTokenCounter。
func WithMaxResultTokens(maxTokens int, counter TokenCounter) ExecutorOption {
	return func(e *Executor) {
		e.maxResultTokens = maxTokens
		if counter != nil {
			e.counter = counter
		} else {
			e.counter = DefaultTokenCounter()
		}
	}
}

// Execute 执行工具
//
// 参数:
//   - ctx: 上下文
//   - name: 工具名称
//   - args: 工具参数
//
// 返回:
//   - ToolResult: 执行结果
func (e *Executor) Execute(ctx context.Context, name string, args map[string]interface{}) ToolResult {
	tool, err := e.registry.Get(name)
	if err != nil {
		return NewToolError(name, err)
	}

	ctx, span := e.tracer.Start(ctx, "tool.execute",
		otel.WithSpanKind(otel.SpanKindClient),
		otel.WithAttributes(otel.ToolName(name)),
	)
	defer span.End()

	start := time.Now()
	e.metrics.Counter(otel.MetricToolCalls).Add(ctx, 1, otel.NewAttr("tool", name))

	// 应用超时
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	result, execErr := e.execute(ctx, tool, args)

	e.metrics.Histogram(otel.MetricToolCallDuration).Record(ctx,
		float64(time.Since(start).Milliseconds()), otel.NewAttr("tool", name))

	if execErr != nil {
		span.RecordError(execErr)
		span.SetStatus(otel.StatusError, execErr.Error())
		e.metrics.Counter(otel.MetricToolErrors).Add(ctx, 1, otel.NewAttr("tool", name))
		return NewToolError(name, execErr)
	}

	// 输出预算裁剪
	if e.maxResultTokens > 0 && e.counter != nil {
		truncated := e.counter.Truncate(result, e.maxResultTokens)
		if len(truncated) < len(result) {
			span.AddEvent("tool.result.truncated")
			result = truncated
		}
	}

	span.SetStatus(otel.StatusOK, "")
	return NewToolResult(name, result)
}

// execute 执行单个工具调用（带重试）
func (e *Executor) execute(ctx context.Context, tool Tool, args map[string]interface{}) (string, error) {
	var result string
	var lastErr error

	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return "", errors.ErrContextCanceled
		default:
		}

		// 参数验证
		if validator, ok := tool.(ToolWithValidation); ok {
			if err := validator.Validate(args); err != nil {
				return "", fmt.Errorf("%w: %v", errors.ErrInvalidToolArgs, err)
			}
		}

		result, lastErr = tool.Execute(ctx, args)
		if lastErr == nil {
			return result, nil
		}

		// 致命错误（认证失败等）不重试
		if errors.IsFatal(lastErr) {
			break
		}

		if attempt < e.maxRetries {
			select {
			case <-ctx.Done():
				return "", errors.ErrContextCanceled
			case <-time.After(e.retryDelay):
			}
		}
	}

	return "", fmt.Errorf("%w: %v", errors.ErrToolExecutionFailed, lastErr)
}

// ExecuteBatch 批量执行工具
//
// 按顺序执行多个工具调用。
func (e *Executor) ExecuteBatch(ctx context.Context, calls []ToolCall) []ToolResult {
	results := make([]ToolResult, len(calls))

	for i, call := range calls {
		select {
		case <-ctx.Done():
			// 填充剩余结果为取消错误
			for j := i; j < len(calls); j++ {
				results[j] = NewToolError(calls[j].Name, errors.ErrContextCanceled)
			}
			return results
		default:
			results[i] = e.Execute(ctx, call.Name, call.Args)
		}
	}

	return results
}

// ToolCall 工具调用请求
type ToolCall struct {
	// ID 调用唯一标识
	ID string
	// Name 工具名称
	Name string
	// Args 参数
	Args map[string]interface{}
}
