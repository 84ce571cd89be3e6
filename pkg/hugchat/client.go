// Package hugchat 提供 HuggingFace Chat 服务的客户端
//
// 支持凭据登录、Cookie 持久化、会话管理和流式查询。
package hugchat

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/easyops/agenttools-go/pkg/core/errors"
)

// Client HuggingFace Chat 客户端
type Client struct {
	baseURL    string
	email      string
	password   string
	cookieDir  string
	model      string
	httpClient *http.Client
	jar        *cookiejar.Jar
}

// Option 客户端选项
type Option func(*Client)

// WithBaseURL 设置服务基础 URL
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithCookieDir 设置 Cookie 持久化目录
func WithCookieDir(dir string) Option {
	return func(c *Client) {
		c.cookieDir = dir
	}
}

// WithModel 设置会话模型
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithHTTPClient 设置 HTTP 客户端
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout 设置请求超时
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient 创建 HuggingFace Chat 客户端
//
// email 和 password 为登录凭据，不能为空。
func NewClient(email, password string, opts ...Option) (*Client, error) {
	if email == "" || password == "" {
		return nil, errors.WrapError(errors.ErrInvalidConfig, "hugchat requires email and password")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		baseURL:   "https://huggingface.co",
		email:     email,
		password:  password,
		cookieDir: "./cookies_snapshot",
		jar:       jar,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}

	for _, opt := range opts {
		opt(c)
	}
	c.httpClient.Jar = jar

	return c, nil
}

// Login 登录并持久化 Cookie
//
// 登录成功后会话 Cookie 保存到 <cookieDir>/<email>.json，
// 供后续进程复用，避免重复登录。
func (c *Client) Login(ctx context.Context) error {
	form := url.Values{}
	form.Set("username", c.email)
	form.Set("password", c.password)

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WrapError(errors.ErrServiceUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return errors.WrapError(errors.ErrAuthFailed, fmt.Sprintf("login returned status %d", resp.StatusCode))
	}

	if err := c.SaveCookies(); err != nil {
		return fmt.Errorf("failed to persist cookies: %w", err)
	}

	return nil
}

// conversationResponse 会话创建响应
type conversationResponse struct {
	ConversationID string `json:"conversationId"`
}

// NewConversation 创建新会话，返回会话 ID
func (c *Client) NewConversation(ctx context.Context) (string, error) {
	payload := map[string]string{}
	if c.model != "" {
		payload["model"] = c.model
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal conversation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/conversation", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create conversation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.WrapError(errors.ErrServiceUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", errors.WrapError(errors.ErrServiceUnavailable,
			fmt.Sprintf("conversation create returned %s - %s", resp.Status, string(bodyBytes)))
	}

	var convResp conversationResponse
	if err := json.NewDecoder(resp.Body).Decode(&convResp); err != nil {
		return "", errors.WrapError(errors.ErrMalformedResponse, err.Error())
	}
	if convResp.ConversationID == "" {
		return "", errors.WrapError(errors.ErrMalformedResponse, "conversation response missing conversationId")
	}

	return convResp.ConversationID, nil
}

// ChatOptions 查询选项
type ChatOptions struct {
	// WebSearch 是否启用服务端联网搜索
	WebSearch bool
}

// chatRequest 查询请求结构
type chatRequest struct {
	Inputs    string `json:"inputs"`
	ID        string `json:"id"`
	IsRetry   bool   `json:"is_retry"`
	WebSearch bool   `json:"web_search"`
}

// chatEvent 流式事件
//
// 服务以 SSE 推送事件，type 为 "stream" 时 token 携带增量文本，
// 为 "finalAnswer" 时 text 携带完整回复。
type chatEvent struct {
	Type  string `json:"type"`
	Token string `json:"token"`
	Text  string `json:"text"`
}

// Chat 发送查询并等待完整回复（非流式）
func (c *Client) Chat(ctx context.Context, conversationID, query string, opts ChatOptions) (string, error) {
	tokenCh, errCh := c.ChatStream(ctx, conversationID, query, opts)

	var sb strings.Builder
	for token := range tokenCh {
		sb.WriteString(token)
	}
	if err := <-errCh; err != nil {
		return "", err
	}

	return sb.String(), nil
}

// ChatStream 发送查询并流式返回增量文本
func (c *Client) ChatStream(ctx context.Context, conversationID, query string, opts ChatOptions) (<-chan string, <-chan error) {
	tokenCh := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		defer close(tokenCh)
		defer close(errCh)

		chatReq := chatRequest{
			Inputs:    query,
			ID:        uuid.NewString(),
			IsRetry:   false,
			WebSearch: opts.WebSearch,
		}

		body, err := json.Marshal(chatReq)
		if err != nil {
			errCh <- fmt.Errorf("failed to marshal chat request: %w", err)
			return
		}

		reqURL := fmt.Sprintf("%s/chat/conversation/%s", c.baseURL, conversationID)
		req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(body))
		if err != nil {
			errCh <- fmt.Errorf("failed to create chat request: %w", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "text/event-stream")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			errCh <- errors.WrapError(errors.ErrServiceUnavailable, err.Error())
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			errCh <- errors.WrapError(errors.ErrAuthFailed, fmt.Sprintf("chat returned status %d", resp.StatusCode))
			return
		}
		if resp.StatusCode != http.StatusOK {
			bodyBytes, _ := io.ReadAll(resp.Body)
			errCh <- errors.WrapError(errors.ErrServiceUnavailable,
				fmt.Sprintf("chat returned %s - %s", resp.Status, string(bodyBytes)))
			return
		}

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		sawEvent := false
		streamed := false

		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			if !strings.HasPrefix(line, "data:") {
				continue
			}
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if data == "" {
				continue
			}

			var event chatEvent
			if err := json.Unmarshal([]byte(data), &event); err != nil {
				errCh <- errors.WrapError(errors.ErrMalformedResponse, err.Error())
				return
			}
			sawEvent = true

			switch event.Type {
			case "stream":
				streamed = true
				select {
				case tokenCh <- event.Token:
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				}
			case "finalAnswer":
				// 服务可能不推送 stream 事件，只在此处携带完整回复
				if !streamed && event.Text != "" {
					select {
					case tokenCh <- event.Text:
					case <-ctx.Done():
						errCh <- ctx.Err()
					}
				}
				return
			}
		}

		if err := scanner.Err(); err != nil {
			errCh <- fmt.Errorf("stream read error: %w", err)
			return
		}
		if !sawEvent {
			errCh <- errors.WrapError(errors.ErrMalformedResponse, "chat stream contained no events")
		}
	}()

	return tokenCh, errCh
}
