// Package config 提供配置加载和管理功能
//
// 所有配置在进程启动时加载一次，随后只读地传入各工具的构造函数，
// 不存在模块级可变状态。
package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config 全局配置结构
type Config struct {
	// Search 网络搜索配置
	Search SearchConfig `koanf:"search"`
	// Chat 第三方聊天服务配置
	Chat ChatConfig `koanf:"chat"`
	// Agent Agent 配置
	Agent AgentConfig `koanf:"agent"`
	// Observability 可观测性配置
	Observability ObservabilityConfig `koanf:"observability"`
}

// ObservabilityConfig 可观测性配置
type ObservabilityConfig struct {
	// Enabled 是否启用
	Enabled bool `koanf:"enabled"`
	// ServiceName 服务名称
	ServiceName string `koanf:"service_name"`
	// TracerEndpoint 追踪端点
	TracerEndpoint string `koanf:"tracer_endpoint"`
	// MetricsEndpoint 指标端点
	MetricsEndpoint string `koanf:"metrics_endpoint"`
	// SampleRate 采样率 [0, 1]
	SampleRate float64 `koanf:"sample_rate"`
}

// Loader 配置加载器
type Loader struct {
	k *koanf.Koanf
}

// NewLoader 创建配置加载器
func NewLoader() *Loader {
	return &Loader{
		k: koanf.New("."),
	}
}

// LoadEnv 从环境变量加载配置
func (l *Loader) LoadEnv(prefix string) error {
	return l.k.Load(env.Provider(prefix, ".", func(s string) string {
		// 转换环境变量名: AGENTTOOLS_SEARCH_API_KEY -> search.api_key
		// 第一个下划线是段分隔符，其余保留为键名的一部分
		s = strings.TrimPrefix(s, prefix)
		s = strings.ToLower(s)
		s = strings.Replace(s, "_", ".", 1)
		return s
	}), nil)
}

// Unmarshal 解析配置到结构体
func (l *Loader) Unmarshal(cfg *Config) error {
	return l.k.Unmarshal("", cfg)
}

// Get 获取配置值
func (l *Loader) Get(key string) interface{} {
	return l.k.Get(key)
}

// GetString 获取字符串配置值
func (l *Loader) GetString(key string) string {
	return l.k.String(key)
}

// GetBool 获取布尔配置值
func (l *Loader) GetBool(key string) bool {
	return l.k.Bool(key)
}

// GetDuration 获取时间间隔配置值
func (l *Loader) GetDuration(key string) time.Duration {
	return l.k.Duration(key)
}

// Load 从环境变量加载完整配置
func Load() (*Config, error) {
	loader := NewLoader()

	if err := loader.LoadEnv("AGENTTOOLS_"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := loader.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// 应用默认值
	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults 应用默认配置值
func applyDefaults(cfg *Config) {
	cfg.Search = cfg.Search.WithDefaults()
	cfg.Chat = cfg.Chat.WithDefaults()

	// Observability 默认值
	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = "agenttools"
	}
	if cfg.Observability.SampleRate == 0 {
		cfg.Observability.SampleRate = 1.0
	}
}
