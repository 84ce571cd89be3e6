package hugchat

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// persistedCookie Cookie 持久化结构
type persistedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Domain  string    `json:"domain,omitempty"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// CookiePath 返回当前账户的 Cookie 文件路径
func (c *Client) CookiePath() string {
	return filepath.Join(c.cookieDir, c.email+".json")
}

// SaveCookies 将当前会话 Cookie 写入 <cookieDir>/<email>.json
func (c *Client) SaveCookies() error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	cookies := c.jar.Cookies(u)
	persisted := make([]persistedCookie, 0, len(cookies))
	for _, ck := range cookies {
		persisted = append(persisted, persistedCookie{
			Name:    ck.Name,
			Value:   ck.Value,
			Domain:  ck.Domain,
			Path:    ck.Path,
			Expires: ck.Expires,
		})
	}

	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cookies: %w", err)
	}

	if err := os.MkdirAll(c.cookieDir, 0755); err != nil {
		return fmt.Errorf("failed to create cookie directory: %w", err)
	}

	// 凭据敏感，仅对当前用户可读写
	if err := os.WriteFile(c.CookiePath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write cookie file: %w", err)
	}

	return nil
}

// LoadCookies 从 Cookie 文件恢复会话
//
// 文件不存在时返回 os.ErrNotExist，调用方可据此回退到 Login。
func (c *Client) LoadCookies() error {
	data, err := os.ReadFile(c.CookiePath())
	if err != nil {
		return err
	}

	var persisted []persistedCookie
	if err := json.Unmarshal(data, &persisted); err != nil {
		return fmt.Errorf("failed to parse cookie file: %w", err)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	cookies := make([]*http.Cookie, 0, len(persisted))
	for _, pc := range persisted {
		cookies = append(cookies, &http.Cookie{
			Name:    pc.Name,
			Value:   pc.Value,
			Domain:  pc.Domain,
			Path:    pc.Path,
			Expires: pc.Expires,
		})
	}
	c.jar.SetCookies(u, cookies)

	return nil
}
