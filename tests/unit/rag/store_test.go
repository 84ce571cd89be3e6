package rag_test

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"testing"

	"github.com/easyops/agenttools-go/pkg/core/errors"
	"github.com/easyops/agenttools-go/pkg/rag"
)

// storeFactories builds each DocumentStore implementation for shared tests
func storeFactories(t *testing.T) map[string]func() rag.DocumentStore {
	t.Helper()
	return map[string]func() rag.DocumentStore{
		"memory": func() rag.DocumentStore {
			return rag.NewInMemoryDocumentStore()
		},
		"sqlite": func() rag.DocumentStore {
			store, err := rag.NewSQLiteDocumentStore(filepath.Join(t.TempDir(), "docs.db"))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			return store
		},
	}
}

func TestDocumentStore_AddGet(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory()
			defer store.Close()
			ctx := context.Background()

			doc := rag.Document{
				ID:      "doc-1",
				Content: "hello world",
				Source:  "https://example.com",
				Metadata: map[string]interface{}{
					"lang": "en",
				},
			}
			if err := store.Add(ctx, doc); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			got, err := store.Get(ctx, "doc-1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got.Content != "hello world" || got.Source != "https://example.com" {
				t.Fatalf("unexpected document: %+v", got)
			}
			if got.Metadata["lang"] != "en" {
				t.Fatalf("expected metadata to round-trip, got %v", got.Metadata)
			}
		})
	}
}

func TestDocumentStore_Upsert(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory()
			defer store.Close()
			ctx := context.Background()

			_ = store.Add(ctx, rag.Document{ID: "doc-1", Content: "v1"})
			if err := store.Add(ctx, rag.Document{ID: "doc-1", Content: "v2"}); err != nil {
				t.Fatalf("expected upsert to succeed, got %v", err)
			}

			got, err := store.Get(ctx, "doc-1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got.Content != "v2" {
				t.Fatalf("expected updated content, got %q", got.Content)
			}

			count, err := store.Count(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if count != 1 {
				t.Fatalf("expected count 1 after upsert, got %d", count)
			}
		})
	}
}

func TestDocumentStore_GetNotFound(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory()
			defer store.Close()

			_, err := store.Get(context.Background(), "missing")
			if !stderrors.Is(err, errors.ErrDocumentNotFound) {
				t.Fatalf("expected ErrDocumentNotFound, got %v", err)
			}
		})
	}
}

func TestDocumentStore_Delete(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory()
			defer store.Close()
			ctx := context.Background()

			_ = store.Add(ctx, rag.Document{ID: "doc-1", Content: "x"})
			if err := store.Delete(ctx, "doc-1"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if err := store.Delete(ctx, "doc-1"); !stderrors.Is(err, errors.ErrDocumentNotFound) {
				t.Fatalf("expected ErrDocumentNotFound, got %v", err)
			}
		})
	}
}

func TestDocumentStore_AllOrdered(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory()
			defer store.Close()
			ctx := context.Background()

			for _, id := range []string{"a", "b", "c"} {
				if err := store.Add(ctx, rag.Document{ID: id, Content: id}); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
			}

			docs, err := store.All(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(docs) != 3 {
				t.Fatalf("expected 3 documents, got %d", len(docs))
			}
		})
	}
}
