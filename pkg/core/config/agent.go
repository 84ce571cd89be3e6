package config

// AgentConfig Agent 配置
//
// 由宿主框架构造并以只读方式传入各工具。
type AgentConfig struct {
	// Name Agent 名称
	Name string `koanf:"name"`
	// Site 搜索站点限制，非空时会在搜索词后追加 "site:<domain>"
	Site string `koanf:"site"`
	// VerboseLogger 是否输出调试日志
	VerboseLogger bool `koanf:"verbose_logger"`
}

// Validate 验证 Agent 配置
func (c *AgentConfig) Validate() error {
	// 所有字段均可为空；Site 仅做基本合法性检查
	if c.Site != "" && len(c.Site) > 255 {
		return ErrInvalidSite
	}
	return nil
}
