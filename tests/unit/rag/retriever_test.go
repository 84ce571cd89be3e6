package rag_test

import (
	"context"
	"testing"

	"github.com/easyops/agenttools-go/pkg/otel"
	"github.com/easyops/agenttools-go/pkg/rag"
)

func seededStore(t *testing.T) rag.DocumentStore {
	t.Helper()
	store := rag.NewInMemoryDocumentStore()
	docs := []rag.Document{
		{ID: "1", Content: "the go programming language and its concurrency model", Source: "s1"},
		{ID: "2", Content: "a recipe for italian pasta with tomato sauce", Source: "s2"},
		{ID: "3", Content: "goroutines and channels make concurrency simple in go", Source: "s3"},
	}
	for _, doc := range docs {
		if err := store.Add(context.Background(), doc); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	return store
}

func TestTFIDFRetriever_RanksByRelevance(t *testing.T) {
	retriever := rag.NewTFIDFRetriever(seededStore(t))

	results, err := retriever.Retrieve(context.Background(), "go concurrency channels", 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected results for a matching query")
	}
	if results[0].Document.ID != "3" && results[0].Document.ID != "1" {
		t.Fatalf("expected a concurrency document first, got %s", results[0].Document.ID)
	}
	for _, result := range results {
		if result.Document.ID == "2" && result.Score >= results[0].Score {
			t.Fatal("expected the pasta document to rank below concurrency documents")
		}
	}
}

func TestTFIDFRetriever_TopK(t *testing.T) {
	retriever := rag.NewTFIDFRetriever(seededStore(t))

	results, err := retriever.Retrieve(context.Background(), "go", 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) > 1 {
		t.Fatalf("expected at most 1 result, got %d", len(results))
	}
}

func TestTFIDFRetriever_EmptyStore(t *testing.T) {
	retriever := rag.NewTFIDFRetriever(rag.NewInMemoryDocumentStore())

	results, err := retriever.Retrieve(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results from an empty store, got %d", len(results))
	}
}

func TestTFIDFRetriever_ReindexesAfterAdd(t *testing.T) {
	store := rag.NewInMemoryDocumentStore()
	retriever := rag.NewTFIDFRetriever(store)
	ctx := context.Background()

	results, err := retriever.Retrieve(ctx, "kubernetes", 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results before ingestion, got %d", len(results))
	}

	_ = store.Add(ctx, rag.Document{ID: "1", Content: "kubernetes operators in go", Source: "s"})

	results, err = retriever.Retrieve(ctx, "kubernetes", 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected the new document to be retrievable, got %d results", len(results))
	}
}

func TestTFIDFRetriever_RecordsMetrics(t *testing.T) {
	metrics := otel.NewInMemoryMetrics()
	retriever := rag.NewTFIDFRetriever(seededStore(t), rag.WithRetrieverMetrics(metrics))

	_, _ = retriever.Retrieve(context.Background(), "go", 1)

	if metrics.GetCounterValue(otel.MetricRetrieverQueries) != 1 {
		t.Fatalf("expected 1 retriever query recorded, got %d",
			metrics.GetCounterValue(otel.MetricRetrieverQueries))
	}
}

func TestTFIDFVectorizer_TransformBeforeFit(t *testing.T) {
	vectorizer := rag.NewTFIDFVectorizer()
	if vec := vectorizer.Transform("hello"); vec != nil {
		t.Fatalf("expected nil vector before Fit, got %v", vec)
	}
}

func TestTFIDFVectorizer_SimilarityOrdering(t *testing.T) {
	vectorizer := rag.NewTFIDFVectorizer()
	vectorizer.Fit([]string{
		"go concurrency",
		"french cooking",
	})

	query := vectorizer.Transform("go concurrency")
	same := vectorizer.Transform("go concurrency")
	other := vectorizer.Transform("french cooking")

	if rag.CosineSimilarity(query, same) <= rag.CosineSimilarity(query, other) {
		t.Fatal("expected identical text to be more similar than unrelated text")
	}
}
