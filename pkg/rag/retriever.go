package rag

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/easyops/agenttools-go/pkg/otel"
)

// Result 检索结果
type Result struct {
	// Document 命中的文档
	Document Document
	// Score 相似度分数（0-1）
	Score float32
}

// Retriever 文档检索接口
type Retriever interface {
	// Retrieve 检索与 query 最相关的 topK 个文档
	Retrieve(ctx context.Context, query string, topK int) ([]Result, error)
}

// TFIDFRetriever 基于 TF-IDF 的文档检索器
//
// 从 DocumentStore 加载文档构建向量索引，存储内容变化时自动重建。
type TFIDFRetriever struct {
	store      DocumentStore
	vectorizer *TFIDFVectorizer
	metrics    otel.Metrics

	// 索引缓存
	docs         []Document
	vectors      [][]float32
	indexedCount int
	mu           sync.Mutex
}

// RetrieverOption 检索器选项
type RetrieverOption func(*TFIDFRetriever)

// WithRetrieverMetrics 设置指标收集器
func WithRetrieverMetrics(metrics otel.Metrics) RetrieverOption {
	return func(r *TFIDFRetriever) {
		r.metrics = metrics
	}
}

// NewTFIDFRetriever 创建 TF-IDF 检索器
func NewTFIDFRetriever(store DocumentStore, opts ...RetrieverOption) *TFIDFRetriever {
	r := &TFIDFRetriever{
		store:      store,
		vectorizer: NewTFIDFVectorizer(),
		metrics:    otel.NewNoopMetrics(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Retrieve 检索与 query 最相关的 topK 个文档
func (r *TFIDFRetriever) Retrieve(ctx context.Context, query string, topK int) ([]Result, error) {
	start := time.Now()
	r.metrics.Counter(otel.MetricRetrieverQueries).Add(ctx, 1)
	defer func() {
		r.metrics.Histogram(otel.MetricRetrieverQueryDuration).Record(ctx,
			float64(time.Since(start).Milliseconds()))
	}()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureIndex(ctx); err != nil {
		return nil, err
	}
	if len(r.docs) == 0 {
		return nil, nil
	}

	queryVector := r.vectorizer.Transform(query)
	if queryVector == nil {
		return nil, nil
	}

	results := make([]Result, 0, len(r.docs))
	for i, docVector := range r.vectors {
		score := CosineSimilarity(queryVector, docVector)
		if score <= 0 {
			continue
		}
		results = append(results, Result{
			Document: r.docs[i],
			Score:    score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > 0 && topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

// ensureIndex 按需重建向量索引（调用者需持有锁）
func (r *TFIDFRetriever) ensureIndex(ctx context.Context) error {
	count, err := r.store.Count(ctx)
	if err != nil {
		return err
	}
	if count == r.indexedCount && r.vectors != nil {
		return nil
	}

	docs, err := r.store.All(ctx)
	if err != nil {
		return err
	}

	contents := make([]string, len(docs))
	for i, doc := range docs {
		contents[i] = doc.Content
	}
	r.vectorizer.Fit(contents)

	vectors := make([][]float32, len(docs))
	for i, content := range contents {
		vectors[i] = r.vectorizer.Transform(content)
	}

	r.docs = docs
	r.vectors = vectors
	r.indexedCount = count
	return nil
}

// compile-time interface check
var _ Retriever = (*TFIDFRetriever)(nil)
