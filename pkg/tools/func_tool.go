package tools

import (
	"context"
	"fmt"
)

// FuncTool 通过函数快速创建工具
//
// 适合在测试或宿主框架中以闭包形式临时扩展工具集。
type FuncTool struct {
	name        string
	description string
	params      ParameterSchema
	fn          ToolFunc
	validator   ValidatorFunc
}

// ToolFunc 工具执行函数类型
type ToolFunc func(ctx context.Context, args map[string]interface{}) (string, error)

// ValidatorFunc 参数验证函数类型
type ValidatorFunc func(args map[string]interface{}) error

// FuncToolOption FuncTool 配置选项
type FuncToolOption func(*FuncTool)

// NewFuncTool 创建函数工具
func NewFuncTool(name, description string, params ParameterSchema, fn ToolFunc, opts ...FuncToolOption) *FuncTool {
	t := &FuncTool{
		name:        name,
		description: description,
		params:      params,
		fn:          fn,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithValidator 设置参数验证函数
func WithValidator(v ValidatorFunc) FuncToolOption {
	return func(t *FuncTool) {
		t.validator = v
	}
}

// Name 返回工具名称
func (t *FuncTool) Name() string {
	return t.name
}

// Description 返回工具描述
func (t *FuncTool) Description() string {
	return t.description
}

// Parameters 返回参数 Schema
func (t *FuncTool) Parameters() ParameterSchema {
	return t.params
}

// Execute 执行工具
func (t *FuncTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	if t.fn == nil {
		return "", fmt.Errorf("tool function not set")
	}
	return t.fn(ctx, args)
}

// Validate 验证参数
func (t *FuncTool) Validate(args map[string]interface{}) error {
	if t.validator != nil {
		return t.validator(args)
	}
	// 默认验证必需参数
	return validateRequired(t.params, args)
}

// validateRequired 验证必需参数是否存在
func validateRequired(schema ParameterSchema, args map[string]interface{}) error {
	for _, req := range schema.Required {
		if _, ok := args[req]; !ok {
			return fmt.Errorf("missing required parameter: %s", req)
		}
	}
	return nil
}

// compile-time interface check
var _ Tool = (*FuncTool)(nil)
var _ ToolWithValidation = (*FuncTool)(nil)
