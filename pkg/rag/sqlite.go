package rag

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/easyops/agenttools-go/pkg/core/errors"
)

// SQLiteDocumentStore SQLite 文档存储
//
// 基于 SQLite 的持久化文档存储，适用于跨进程共享上下文。
type SQLiteDocumentStore struct {
	db *sql.DB
}

// NewSQLiteDocumentStore 创建 SQLite 文档存储
func NewSQLiteDocumentStore(dbPath string) (*SQLiteDocumentStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteDocumentStore{db: db}

	// 初始化表结构
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return store, nil
}

// initSchema 初始化表结构
func (s *SQLiteDocumentStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS context_documents (
		id TEXT PRIMARY KEY,
		content TEXT,
		source TEXT,
		metadata TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_context_documents_created_at ON context_documents(created_at);
	`

	_, err := s.db.Exec(query)
	return err
}

// Add 存储文档（同 ID 覆盖）
func (s *SQLiteDocumentStore) Add(ctx context.Context, doc Document) error {
	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	now := time.Now().UnixMilli()
	createdAt := now
	if !doc.CreatedAt.IsZero() {
		createdAt = doc.CreatedAt.UnixMilli()
	}

	query := `
	INSERT INTO context_documents (id, content, source, metadata, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		content = excluded.content,
		source = excluded.source,
		metadata = excluded.metadata,
		updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query, doc.ID, doc.Content, doc.Source, string(metadata), createdAt, now)
	if err != nil {
		return errors.WrapError(errors.ErrStoreFailed, err.Error())
	}
	return nil
}

// Get 按 ID 获取文档
func (s *SQLiteDocumentStore) Get(ctx context.Context, id string) (*Document, error) {
	query := `SELECT id, content, source, metadata, created_at, updated_at FROM context_documents WHERE id = ?`

	var doc Document
	var metadataStr string
	var createdAt, updatedAt int64

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID, &doc.Content, &doc.Source, &metadataStr, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}

	if metadataStr != "" && metadataStr != "null" {
		if err := json.Unmarshal([]byte(metadataStr), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	doc.CreatedAt = time.UnixMilli(createdAt)
	doc.UpdatedAt = time.UnixMilli(updatedAt)

	return &doc, nil
}

// Delete 按 ID 删除文档
func (s *SQLiteDocumentStore) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM context_documents WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.ErrDocumentNotFound
	}

	return nil
}

// All 返回全部文档（按创建时间升序）
func (s *SQLiteDocumentStore) All(ctx context.Context) ([]Document, error) {
	query := `SELECT id, content, source, metadata, created_at, updated_at FROM context_documents ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Document
	for rows.Next() {
		var doc Document
		var metadataStr string
		var createdAt, updatedAt int64

		if err := rows.Scan(&doc.ID, &doc.Content, &doc.Source, &metadataStr, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		if metadataStr != "" && metadataStr != "null" {
			if err := json.Unmarshal([]byte(metadataStr), &doc.Metadata); err != nil {
				continue // 跳过无效记录
			}
		}

		doc.CreatedAt = time.UnixMilli(createdAt)
		doc.UpdatedAt = time.UnixMilli(updatedAt)
		results = append(results, doc)
	}

	return results, rows.Err()
}

// Count 返回文档数量
func (s *SQLiteDocumentStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM context_documents`).Scan(&count)
	return count, err
}

// Close 关闭连接
func (s *SQLiteDocumentStore) Close() error {
	return s.db.Close()
}

// compile-time interface check
var _ DocumentStore = (*SQLiteDocumentStore)(nil)
