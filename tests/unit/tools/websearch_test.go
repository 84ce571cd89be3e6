package tools_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/easyops/agenttools-go/pkg/core/config"
	"github.com/easyops/agenttools-go/pkg/core/errors"
	"github.com/easyops/agenttools-go/pkg/tools/builtin"
)

// newSearchServer returns a test server that replies with the given JSON body
func newSearchServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-KEY") == "" {
			t.Error("expected X-API-KEY header to be set")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
}

func newWebSearch(t *testing.T, serverURL string, opts ...builtin.WebSearchOption) *builtin.WebSearch {
	t.Helper()
	tool, err := builtin.NewWebSearch(config.SearchConfig{
		APIKey:  "test-key",
		BaseURL: serverURL,
	}, opts...)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return tool
}

func TestWebSearch_AnswerBox(t *testing.T) {
	server := newSearchServer(t, `{
		"answerBox": {"answer": "42"},
		"organic": [{"title": "T", "link": "L"}]
	}`)
	defer server.Close()

	tool := newWebSearch(t, server.URL)
	result, err := tool.Execute(context.Background(), map[string]interface{}{"query": "meaning of life"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "Answer: 42\nLink:L" {
		t.Fatalf("expected %q, got %q", "Answer: 42\nLink:L", result)
	}
}

func TestWebSearch_AnswerBoxSnippetFallback(t *testing.T) {
	server := newSearchServer(t, `{
		"answerBox": {"snippet": "line one\nline two"},
		"organic": [{"title": "T", "link": "L"}]
	}`)
	defer server.Close()

	tool := newWebSearch(t, server.URL)
	result, err := tool.Execute(context.Background(), map[string]interface{}{"query": "q"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "Answer: line one line two\nLink:L" {
		t.Fatalf("expected newlines replaced by spaces, got %q", result)
	}
}

func TestWebSearch_SingleOrganic(t *testing.T) {
	server := newSearchServer(t, `{
		"organic": [{"title": "T", "snippet": "S", "link": "L"}]
	}`)
	defer server.Close()

	tool := newWebSearch(t, server.URL)
	result, err := tool.Execute(context.Background(), map[string]interface{}{"query": "q"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "Description: TS\nLink:L" {
		t.Fatalf("expected %q, got %q", "Description: TS\nLink:L", result)
	}
}

func TestWebSearch_KnowledgeGraphPrepended(t *testing.T) {
	server := newSearchServer(t, `{
		"knowledgeGraph": {"title": "KG", "description": "D", "descriptionLink": "KL"},
		"organic": [{"title": "T", "snippet": "S", "link": "L"}]
	}`)
	defer server.Close()

	tool := newWebSearch(t, server.URL)
	result, err := tool.Execute(context.Background(), map[string]interface{}{"query": "q"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := "Description: KGD\nLink:KL\nDescription: TS\nLink:L"
	if result != want {
		t.Fatalf("expected %q, got %q", want, result)
	}
}

func TestWebSearch_NoResults(t *testing.T) {
	server := newSearchServer(t, `{"organic": []}`)
	defer server.Close()

	tool := newWebSearch(t, server.URL)
	result, err := tool.Execute(context.Background(), map[string]interface{}{"query": "q"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "No good Google Search Result was found" {
		t.Fatalf("expected no-results indicator, got %q", result)
	}
}

func TestWebSearch_EmptyAnswerBox(t *testing.T) {
	// an answer box with none of its answer fields is malformed,
	// not a fallback to the organic listing
	server := newSearchServer(t, `{
		"answerBox": {},
		"organic": [{"title": "T", "snippet": "S", "link": "L"}]
	}`)
	defer server.Close()

	tool := newWebSearch(t, server.URL)
	_, err := tool.Execute(context.Background(), map[string]interface{}{"query": "q"})
	if !stderrors.Is(err, errors.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestWebSearch_MissingOrganicKey(t *testing.T) {
	server := newSearchServer(t, `{"answerBox": {"answer": "42"}}`)
	defer server.Close()

	tool := newWebSearch(t, server.URL)
	_, err := tool.Execute(context.Background(), map[string]interface{}{"query": "q"})
	if !stderrors.Is(err, errors.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestWebSearch_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	tool := newWebSearch(t, server.URL)
	_, err := tool.Execute(context.Background(), map[string]interface{}{"query": "q"})
	if !stderrors.Is(err, errors.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestWebSearch_SiteRestriction(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"q"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		gotQuery = req.Query
		_, _ = io.WriteString(w, `{"organic": [{"title": "T", "snippet": "S", "link": "L"}]}`)
	}))
	defer server.Close()

	tool := newWebSearch(t, server.URL, builtin.WithSearchSite("example.com"))
	_, err := tool.Execute(context.Background(), map[string]interface{}{"query": "golang"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotQuery != "golang site:example.com" {
		t.Fatalf("expected site restriction appended, got %q", gotQuery)
	}
}

func TestWebSearch_MissingQueryArg(t *testing.T) {
	server := newSearchServer(t, `{"organic": []}`)
	defer server.Close()

	tool := newWebSearch(t, server.URL)
	_, err := tool.Execute(context.Background(), map[string]interface{}{})
	if !stderrors.Is(err, errors.ErrInvalidToolArgs) {
		t.Fatalf("expected ErrInvalidToolArgs, got %v", err)
	}
}

func TestNewWebSearch_RequiresAPIKey(t *testing.T) {
	_, err := builtin.NewWebSearch(config.SearchConfig{})
	if !stderrors.Is(err, errors.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
