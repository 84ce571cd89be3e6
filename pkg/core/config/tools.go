package config

import "time"

// SearchConfig 网络搜索（Serper API）配置
type SearchConfig struct {
	// APIKey Serper API 密钥，为空时跳过 WebSearch 工具
	APIKey string `koanf:"api_key"`
	// BaseURL 搜索 API 地址
	// 默认: https://google.serper.dev
	BaseURL string `koanf:"base_url"`
	// MaxResults 返回的最大结果数
	// 默认: 10
	MaxResults int `koanf:"max_results"`
	// Timeout 请求超时时间
	// 默认: 30s
	Timeout time.Duration `koanf:"timeout"`
}

// Configured 返回搜索 API 是否已配置
func (c SearchConfig) Configured() bool {
	return c.APIKey != ""
}

// WithDefaults 返回带默认值的配置
func (c SearchConfig) WithDefaults() SearchConfig {
	if c.BaseURL == "" {
		c.BaseURL = "https://google.serper.dev"
	}
	if c.MaxResults == 0 {
		c.MaxResults = 10
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}

// ChatConfig 第三方聊天服务（HugChat）配置
type ChatConfig struct {
	// Email 登录邮箱，与 Password 同时存在时才启用 ChatRelay 工具
	Email string `koanf:"email"`
	// Password 登录密码
	Password string `koanf:"password"`
	// BaseURL 服务地址
	// 默认: https://huggingface.co
	BaseURL string `koanf:"base_url"`
	// Stream 是否请求流式返回
	Stream bool `koanf:"stream"`
	// WebSearch 是否请求服务端搜索增强
	WebSearch bool `koanf:"web_search"`
	// CookieDir 会话 Cookie 持久化目录
	// 默认: ./cookies_snapshot
	CookieDir string `koanf:"cookie_dir"`
	// Timeout 请求超时时间
	// 默认: 2m
	Timeout time.Duration `koanf:"timeout"`
}

// Configured 返回聊天服务凭证是否完整
func (c ChatConfig) Configured() bool {
	return c.Email != "" && c.Password != ""
}

// WithDefaults 返回带默认值的配置
func (c ChatConfig) WithDefaults() ChatConfig {
	if c.BaseURL == "" {
		c.BaseURL = "https://huggingface.co"
	}
	if c.CookieDir == "" {
		c.CookieDir = "./cookies_snapshot"
	}
	if c.Timeout == 0 {
		c.Timeout = 2 * time.Minute
	}
	return c
}
