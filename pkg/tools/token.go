package tools

import (
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter 定义 Token 计数接口。
//
// Executor 用它对过长的工具输出做预算裁剪，
// 避免单次工具调用占满宿主框架的上下文窗口。
type TokenCounter interface {
	// Count 返回给定文本的 Token 数量。
	Count(text string) int

	// Truncate 将文本裁剪到不超过 maxTokens 个 Token。
	Truncate(text string, maxTokens int) string
}

// TiktokenCounter 使用 tiktoken 实现精确的 Token 计数。
type TiktokenCounter struct {
	encoding *tiktoken.Tiktoken
	model    string
}

// TiktokenOption 配置 TiktokenCounter。
type TiktokenOption func(*TiktokenCounter)

// WithModel 设置 Token 编码使用的模型。
// 支持的模型：gpt-4、gpt-4o、gpt-3.5-turbo 等。
func WithModel(model string) TiktokenOption {
	return func(c *TiktokenCounter) {
		c.model = model
	}
}

// NewTiktokenCounter 创建新的 TiktokenCounter。
// 默认使用 cl100k_base 编码（GPT-4、GPT-4o 等使用）。
func NewTiktokenCounter(opts ...TiktokenOption) (*TiktokenCounter, error) {
	c := &TiktokenCounter{
		model: "gpt-4o",
	}

	for _, opt := range opts {
		opt(c)
	}

	encoding, err := tiktoken.EncodingForModel(c.model)
	if err != nil {
		// 降级到 cl100k_base 编码
		encoding, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, err
		}
	}

	c.encoding = encoding
	return c, nil
}

// Count 返回给定文本的 Token 数量。
func (c *TiktokenCounter) Count(text string) int {
	return len(c.encoding.Encode(text, nil, nil))
}

// Truncate 将文本裁剪到不超过 maxTokens 个 Token。
func (c *TiktokenCounter) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}
	ids := c.encoding.Encode(text, nil, nil)
	if len(ids) <= maxTokens {
		return text
	}
	return c.encoding.Decode(ids[:maxTokens])
}

// EstimatedCounter 使用字符估算实现 Token 计数。
// 这是当 tiktoken 编码不可用时的降级方案。
type EstimatedCounter struct {
	// CharsPerToken 是每个 Token 的平均字符数。
	// 默认值为 4，这是英文文本的合理估计。
	CharsPerToken int
}

// NewEstimatedCounter 创建新的 EstimatedCounter。
func NewEstimatedCounter() *EstimatedCounter {
	return &EstimatedCounter{CharsPerToken: 4}
}

// Count 返回估算的 Token 数量。
func (c *EstimatedCounter) Count(text string) int {
	if c.CharsPerToken <= 0 {
		c.CharsPerToken = 4
	}
	return len(text) / c.CharsPerToken
}

// Truncate 将文本裁剪到估算的 Token 上限。
func (c *EstimatedCounter) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}
	if c.CharsPerToken <= 0 {
		c.CharsPerToken = 4
	}
	maxChars := maxTokens * c.CharsPerToken
	if len(text) <= maxChars {
		return text
	}
	// 不在多字节字符中间截断
	for maxChars > 0 && !utf8.RuneStart(text[maxChars]) {
		maxChars--
	}
	return text[:maxChars]
}

// DefaultTokenCounter 返回一个 TokenCounter，
// 优先使用 TiktokenCounter，如果不可用则降级到 EstimatedCounter。
func DefaultTokenCounter() TokenCounter {
	counter, err := NewTiktokenCounter()
	if err != nil {
		return NewEstimatedCounter()
	}
	return counter
}

// 编译时接口检查
var _ TokenCounter = (*TiktokenCounter)(nil)
var _ TokenCounter = (*EstimatedCounter)(nil)
