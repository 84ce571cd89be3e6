package rag

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/easyops/agenttools-go/pkg/core/errors"
)

// DocumentStore 文档存储接口
type DocumentStore interface {
	// Add 存储文档（同 ID 覆盖）
	Add(ctx context.Context, doc Document) error
	// Get 按 ID 获取文档
	Get(ctx context.Context, id string) (*Document, error)
	// Delete 按 ID 删除文档
	Delete(ctx context.Context, id string) error
	// All 返回全部文档（按创建时间升序）
	All(ctx context.Context) ([]Document, error)
	// Count 返回文档数量
	Count(ctx context.Context) (int, error)
	// Close 关闭存储
	Close() error
}

// InMemoryDocumentStore 内存文档存储
//
// 适用于测试和短生命周期进程。
type InMemoryDocumentStore struct {
	docs map[string]Document
	mu   sync.RWMutex
}

// NewInMemoryDocumentStore 创建内存文档存储
func NewInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		docs: make(map[string]Document),
	}
}

// Add 存储文档
func (s *InMemoryDocumentStore) Add(ctx context.Context, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if existing, ok := s.docs[doc.ID]; ok {
		doc.CreatedAt = existing.CreatedAt
	} else if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	s.docs[doc.ID] = doc
	return nil
}

// Get 按 ID 获取文档
func (s *InMemoryDocumentStore) Get(ctx context.Context, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, errors.ErrDocumentNotFound
	}
	return &doc, nil
}

// Delete 按 ID 删除文档
func (s *InMemoryDocumentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return errors.ErrDocumentNotFound
	}
	delete(s.docs, id)
	return nil
}

// All 返回全部文档
func (s *InMemoryDocumentStore) All(ctx context.Context) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
	return docs, nil
}

// Count 返回文档数量
func (s *InMemoryDocumentStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs), nil
}

// Close 关闭存储（内存实现无操作）
func (s *InMemoryDocumentStore) Close() error {
	return nil
}

// compile-time interface check
var _ DocumentStore = (*InMemoryDocumentStore)(nil)
