// Package http 封装交易网关的 HTTP 会话。
// 登录后的会话 Cookie 与后续交易请求共用同一个 Client。
package http

import (
	"context"
	"encoding/json"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// 网关校验 User-Agent，这里固定用浏览器指纹。
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client HTTP 会话封装
type Client struct {
	client *resty.Client
}

// NewClient 创建新的 HTTP 会话。
// resty 会自动从环境变量读取代理配置（HTTP_PROXY/HTTPS_PROXY）。
func NewClient(baseURL string, timeout time.Duration) *Client {
	jar, _ := cookiejar.New(nil)

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetCookieJar(jar).
		SetHeader("User-Agent", defaultUserAgent).
		SetHeader("Accept", "*/*").
		SetHeader("Connection", "keep-alive")

	return &Client{client: client}
}

// PostForm 发送表单 POST，out 非空时把 JSON 响应体解到 out。
func (c *Client) PostForm(ctx context.Context, endpoint string, form map[string]string, out any) (*resty.Response, error) {
	r := c.client.R().
		SetContext(ctx).
		SetHeader("X-Requested-With", "XMLHttpRequest")
	if len(form) > 0 {
		r.SetFormData(form)
	}

	resp, err := r.Post(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "POST %s 失败", endpoint)
	}
	if err := decode(resp, endpoint, out); err != nil {
		return resp, err
	}
	return resp, nil
}

// Get 发送 GET，out 非空时把 JSON 响应体解到 out。
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string, out any) (*resty.Response, error) {
	r := c.client.R().SetContext(ctx)
	if len(params) > 0 {
		r.SetQueryParams(params)
	}

	resp, err := r.Get(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s 失败", endpoint)
	}
	if err := decode(resp, endpoint, out); err != nil {
		return resp, err
	}
	return resp, nil
}

// GetText 发送 GET 并返回响应体文本（用于抓取网页内嵌字段）。
func (c *Client) GetText(ctx context.Context, endpoint string, params map[string]string) (string, error) {
	resp, err := c.Get(ctx, endpoint, params, nil)
	if err != nil {
		return "", err
	}
	return string(resp.Body()), nil
}

// decode 统一校验状态码并解析 JSON。
// 网关的 Content-Type 不稳定，这里不依赖 resty 的自动反序列化。
func decode(resp *resty.Response, endpoint string, out any) error {
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return errors.Errorf("%s 返回 HTTP %d: %s", endpoint, resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return errors.Wrapf(err, "解析 %s 响应失败, 响应体: %s", endpoint, strings.TrimSpace(string(resp.Body())))
	}
	return nil
}

// Close 释放底层连接。
func (c *Client) Close() {
	c.client.GetClient().CloseIdleConnections()
}
