package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/easyops/agenttools-go/pkg/otel"
)

func TestNoopTracer_Start(t *testing.T) {
	tracer := otel.NewNoopTracer()

	ctx, span := tracer.Start(context.Background(), "test-span")
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	if span == nil {
		t.Fatal("expected non-nil span")
	}

	// should not panic
	span.End()
}

func TestNoopSpan_Methods(t *testing.T) {
	tracer := otel.NewNoopTracer()
	_, span := tracer.Start(context.Background(), "test")

	// all methods must be safe to call
	span.SetStatus(otel.StatusOK, "ok")
	span.AddEvent("event-name")
	span.RecordError(errors.New("test error"))
	span.End()

	if sc := span.SpanContext(); sc.TraceID != "" {
		t.Fatalf("expected empty trace ID for noop span, got %q", sc.TraceID)
	}
}

func TestNoopTracer_SpanFromContext(t *testing.T) {
	tracer := otel.NewNoopTracer()

	if span := tracer.SpanFromContext(context.Background()); span == nil {
		t.Fatal("expected non-nil span")
	}
}

func TestStatusCodeConstants(t *testing.T) {
	if otel.StatusUnset != 0 {
		t.Fatalf("expected StatusUnset=0, got %d", otel.StatusUnset)
	}
	if otel.StatusOK != 1 {
		t.Fatalf("expected StatusOK=1, got %d", otel.StatusOK)
	}
	if otel.StatusError != 2 {
		t.Fatalf("expected StatusError=2, got %d", otel.StatusError)
	}
}

func TestWithSpanKind(t *testing.T) {
	cfg := &otel.SpanConfig{}
	otel.WithSpanKind(otel.SpanKindClient)(cfg)

	if cfg.Kind != otel.SpanKindClient {
		t.Fatalf("expected SpanKindClient, got %d", cfg.Kind)
	}
}

func TestWithAttributes(t *testing.T) {
	cfg := &otel.SpanConfig{}
	otel.WithAttributes(otel.ToolName("web_search"))(cfg)

	if len(cfg.Attributes) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(cfg.Attributes))
	}
}
