// Package rag 提供本地上下文文档的存储与检索
//
// 为上下文检索工具提供底层能力：文档持久化、TF-IDF 向量化
// 和相似度检索，无需外部 API。
package rag

import "time"

// Document 上下文文档
type Document struct {
	// ID 文档唯一标识
	ID string `json:"id"`
	// Content 文档正文
	Content string `json:"content"`
	// Source 文档来源（URL 或文件路径），检索结果中作为链接返回
	Source string `json:"source"`
	// Metadata 附加元数据
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	// CreatedAt 创建时间
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt 更新时间
	UpdatedAt time.Time `json:"updated_at"`
}
