package config

import "errors"

// 配置相关错误
var (
	// ErrInvalidSite 站点限制无效
	ErrInvalidSite = errors.New("invalid site restriction")
	// ErrMissingCredentials 凭证缺失
	ErrMissingCredentials = errors.New("missing credentials")
)
