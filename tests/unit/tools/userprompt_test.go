package tools_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/easyops/agenttools-go/pkg/core/errors"
	"github.com/easyops/agenttools-go/pkg/tools/builtin"
)

func TestUserPrompt_ReturnsLine(t *testing.T) {
	var out bytes.Buffer
	tool := builtin.NewUserPrompt(
		builtin.WithPromptInput(strings.NewReader("hello\n")),
		builtin.WithPromptOutput(&out),
	)

	result, err := tool.Execute(context.Background(), map[string]interface{}{"query": "What is your name? "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "hello" {
		t.Fatalf("expected %q, got %q", "hello", result)
	}
	if out.String() != "What is your name? " {
		t.Fatalf("expected prompt to be written, got %q", out.String())
	}
}

func TestUserPrompt_StripsCRLF(t *testing.T) {
	tool := builtin.NewUserPrompt(
		builtin.WithPromptInput(strings.NewReader("hello\r\n")),
		builtin.WithPromptOutput(&bytes.Buffer{}),
	)

	result, err := tool.Execute(context.Background(), map[string]interface{}{"query": "> "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "hello" {
		t.Fatalf("expected %q, got %q", "hello", result)
	}
}

func TestUserPrompt_PartialLineAtEOF(t *testing.T) {
	tool := builtin.NewUserPrompt(
		builtin.WithPromptInput(strings.NewReader("partial")),
		builtin.WithPromptOutput(&bytes.Buffer{}),
	)

	result, err := tool.Execute(context.Background(), map[string]interface{}{"query": "> "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "partial" {
		t.Fatalf("expected %q, got %q", "partial", result)
	}
}

func TestUserPrompt_EmptyInput(t *testing.T) {
	tool := builtin.NewUserPrompt(
		builtin.WithPromptInput(strings.NewReader("")),
		builtin.WithPromptOutput(&bytes.Buffer{}),
	)

	_, err := tool.Execute(context.Background(), map[string]interface{}{"query": "> "})
	if err == nil {
		t.Fatal("expected error for exhausted input stream")
	}
}

func TestUserPrompt_ConsecutiveReads(t *testing.T) {
	tool := builtin.NewUserPrompt(
		builtin.WithPromptInput(strings.NewReader("first\nsecond\n")),
		builtin.WithPromptOutput(&bytes.Buffer{}),
	)

	for _, want := range []string{"first", "second"} {
		result, err := tool.Execute(context.Background(), map[string]interface{}{"query": "> "})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result != want {
			t.Fatalf("expected %q, got %q", want, result)
		}
	}
}

func TestUserPrompt_MissingQueryArg(t *testing.T) {
	tool := builtin.NewUserPrompt(
		builtin.WithPromptInput(strings.NewReader("hello\n")),
		builtin.WithPromptOutput(&bytes.Buffer{}),
	)

	_, err := tool.Execute(context.Background(), map[string]interface{}{"prompt": "oops"})
	if !stderrors.Is(err, errors.ErrInvalidToolArgs) {
		t.Fatalf("expected ErrInvalidToolArgs, got %v", err)
	}
}
