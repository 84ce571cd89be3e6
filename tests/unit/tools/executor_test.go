package tools_test

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/easyops/agenttools-go/pkg/core/errors"
	"github.com/easyops/agenttools-go/pkg/otel"
	"github.com/easyops/agenttools-go/pkg/tools"
)

func TestExecutor_Execute(t *testing.T) {
	registry := tools.NewRegistry()
	_ = registry.Register(newMockTool("test-tool"))

	executor := tools.NewExecutor(registry)
	result := executor.Execute(context.Background(), "test-tool", map[string]interface{}{"query": "q"})

	if !result.Success {
		t.Fatalf("expected success, got error %s", result.Error)
	}
	if result.Result != "mock result" {
		t.Fatalf("expected 'mock result', got %q", result.Result)
	}
}

func TestExecutor_ToolNotFound(t *testing.T) {
	executor := tools.NewExecutor(tools.NewRegistry())
	result := executor.Execute(context.Background(), "missing", nil)

	if result.Success {
		t.Fatal("expected failure for missing tool")
	}
	if !strings.Contains(result.Error, errors.ErrToolNotFound.Error()) {
		t.Fatalf("expected tool-not-found error, got %q", result.Error)
	}
}

func TestExecutor_ToolError(t *testing.T) {
	registry := tools.NewRegistry()
	failing := newMockTool("failing")
	failing.err = stderrors.New("upstream exploded")
	_ = registry.Register(failing)

	executor := tools.NewExecutor(registry)
	result := executor.Execute(context.Background(), "failing", map[string]interface{}{"query": "q"})

	if result.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Error, "upstream exploded") {
		t.Fatalf("expected wrapped tool error, got %q", result.Error)
	}
}

func TestExecutor_FatalErrorNotRetried(t *testing.T) {
	registry := tools.NewRegistry()
	attempts := 0
	_ = registry.Register(tools.NewFuncTool("auth-fail", "always fails auth",
		tools.QuerySchema("q"),
		func(ctx context.Context, args map[string]interface{}) (string, error) {
			attempts++
			return "", errors.ErrAuthFailed
		},
	))

	executor := tools.NewExecutor(registry,
		tools.WithExecutorRetries(3, time.Millisecond))
	result := executor.Execute(context.Background(), "auth-fail", map[string]interface{}{"query": "q"})

	if result.Success {
		t.Fatal("expected failure")
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt for a fatal error, got %d", attempts)
	}
}

func TestExecutor_TruncatesLongResults(t *testing.T) {
	registry := tools.NewRegistry()
	long := strings.Repeat("word ", 200)
	_ = registry.Register(tools.NewFuncTool("long", "returns a long result",
		tools.QuerySchema("q"),
		func(ctx context.Context, args map[string]interface{}) (string, error) {
			return long, nil
		},
	))

	executor := tools.NewExecutor(registry,
		tools.WithMaxResultTokens(10, tools.NewEstimatedCounter()))
	result := executor.Execute(context.Background(), "long", map[string]interface{}{"query": "q"})

	if !result.Success {
		t.Fatalf("expected success, got %s", result.Error)
	}
	if len(result.Result) >= len(long) {
		t.Fatalf("expected truncated result, got %d bytes", len(result.Result))
	}
}

func TestExecutor_RecordsMetrics(t *testing.T) {
	registry := tools.NewRegistry()
	_ = registry.Register(newMockTool("test-tool"))

	metrics := otel.NewInMemoryMetrics()
	executor := tools.NewExecutor(registry, tools.WithExecutorMetrics(metrics))
	_ = executor.Execute(context.Background(), "test-tool", map[string]interface{}{"query": "q"})

	if metrics.GetCounterValue(otel.MetricToolCalls) != 1 {
		t.Fatalf("expected 1 tool call recorded, got %d", metrics.GetCounterValue(otel.MetricToolCalls))
	}
}

func TestExecutor_ExecuteBatch(t *testing.T) {
	registry := tools.NewRegistry()
	_ = registry.Register(newMockTool("tool-a"))
	_ = registry.Register(newMockTool("tool-b"))

	executor := tools.NewExecutor(registry)
	results := executor.ExecuteBatch(context.Background(), []tools.ToolCall{
		{ID: "1", Name: "tool-a", Args: map[string]interface{}{"query": "q"}},
		{ID: "2", Name: "missing", Args: nil},
		{ID: "3", Name: "tool-b", Args: map[string]interface{}{"query": "q"}},
	})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Success || !results[2].Success {
		t.Fatal("expected registered tools to succeed")
	}
	if results[1].Success {
		t.Fatal("expected missing tool call to fail")
	}
}
