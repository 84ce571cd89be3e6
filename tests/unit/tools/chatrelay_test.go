package tools_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/easyops/agenttools-go/pkg/core/config"
	"github.com/easyops/agenttools-go/pkg/core/errors"
	"github.com/easyops/agenttools-go/pkg/tools/builtin"
)

// newRelayServer fakes the chat service for the full relay flow
func newRelayServer(t *testing.T, answerTokens []string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "ok", Path: "/"})
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/chat/conversation", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"conversationId": "conv-1"})
	})
	mux.HandleFunc("/chat/conversation/conv-1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, token := range answerTokens {
			fmt.Fprintf(w, "data: {\"type\":\"stream\",\"token\":%q}\n\n", token)
		}
		fmt.Fprint(w, "data: {\"type\":\"finalAnswer\",\"text\":\"done\"}\n\n")
	})

	return httptest.NewServer(mux)
}

func newRelayTool(t *testing.T, serverURL string, stream bool) *builtin.ChatRelay {
	t.Helper()
	tool, err := builtin.NewChatRelay(config.ChatConfig{
		Email:     "user@example.com",
		Password:  "secret",
		BaseURL:   serverURL,
		CookieDir: t.TempDir(),
		Stream:    stream,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return tool
}

func TestChatRelay_Execute(t *testing.T) {
	server := newRelayServer(t, []string{"The answer", " is 42"})
	defer server.Close()

	tool := newRelayTool(t, server.URL, false)
	result, err := tool.Execute(context.Background(), map[string]interface{}{"query": "what is the answer?"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "The answer is 42" {
		t.Fatalf("expected %q, got %q", "The answer is 42", result)
	}
}

func TestChatRelay_StreamingStillReturnsFullString(t *testing.T) {
	server := newRelayServer(t, []string{"a", "b", "c"})
	defer server.Close()

	tool := newRelayTool(t, server.URL, true)
	result, err := tool.Execute(context.Background(), map[string]interface{}{"query": "q"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "abc" {
		t.Fatalf("expected %q, got %q", "abc", result)
	}
}

func TestChatRelay_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	tool := newRelayTool(t, server.URL, false)
	_, err := tool.Execute(context.Background(), map[string]interface{}{"query": "q"})
	if !stderrors.Is(err, errors.ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}

func TestNewChatRelay_RequiresCredentials(t *testing.T) {
	_, err := builtin.NewChatRelay(config.ChatConfig{Email: "user@example.com"})
	if !stderrors.Is(err, errors.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
