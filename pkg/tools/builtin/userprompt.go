package builtin

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/easyops/agenttools-go/pkg/tools"
)

// UserPrompt 人工输入工具
//
// 将查询作为提示写到控制台，阻塞读取操作员输入的一行文本。
// 没有超时；取消只能通过进程信号。
type UserPrompt struct {
	reader *bufio.Reader
	writer io.Writer
}

// UserPromptOption 人工输入工具选项
type UserPromptOption func(*UserPrompt)

// WithPromptInput 设置输入源（默认标准输入）
func WithPromptInput(r io.Reader) UserPromptOption {
	return func(t *UserPrompt) {
		t.reader = bufio.NewReader(r)
	}
}

// WithPromptOutput 设置提示输出（默认标准输出）
func WithPromptOutput(w io.Writer) UserPromptOption {
	return func(t *UserPrompt) {
		t.writer = w
	}
}

// NewUserPrompt 创建人工输入工具
func NewUserPrompt(opts ...UserPromptOption) *UserPrompt {
	t := &UserPrompt{
		reader: bufio.NewReader(os.Stdin),
		writer: os.Stdout,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Name 返回工具名称
func (t *UserPrompt) Name() string {
	return "user_prompt"
}

// Description 返回工具描述
func (t *UserPrompt) Description() string {
	return "Ask the human operator for input. The query is shown as a prompt and the operator's reply is returned."
}

// Parameters 返回参数 Schema
func (t *UserPrompt) Parameters() tools.ParameterSchema {
	return tools.QuerySchema("The prompt shown to the operator")
}

// Execute 提示并读取一行输入
//
// 返回值不含行尾换行符。输入流在行中途结束时返回已读到的内容。
func (t *UserPrompt) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	query, err := tools.QueryArg(args)
	if err != nil {
		return "", err
	}

	if _, err := fmt.Fprint(t.writer, query); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := t.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if line == "" && err == io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// ExecuteAsync 异步执行（不支持）
func (t *UserPrompt) ExecuteAsync(ctx context.Context, args map[string]interface{}) (<-chan string, <-chan error) {
	return tools.UnsupportedAsync()
}

// compile-time interface check
var _ tools.Tool = (*UserPrompt)(nil)
var _ tools.AsyncTool = (*UserPrompt)(nil)
