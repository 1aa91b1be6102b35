// Package auth 交易网关认证：登录、登出、validatekey 维护。
package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	sdkhttp "github.com/zsmatrix62/EMTradingAgent/pkg/sdk/http"
)

const (
	endpointLogin  = "/Login/Authentication"
	endpointLogout = "/Login/Logout"
	// 登录成功后 validatekey 埋在交易页的隐藏域里
	endpointValidateKeyPage = "/Trade/Buy"
)

// 登录表单要求密码用网关公钥做 RSA 加密后再提交。
const loginPublicKeyPEM = `-----BEGIN PUBLIC KEY-----
MIGfMA0GCSqGSIb3DQEBAQUAA4GNADCBiQKBgQDAvsxqnQ+e7U/dEp2FIRkqGTfq
lvGGBlnA6AGI5oNhzbun1wUYhD/9J+n2iUQaj90d0V1iyRQc/2kvjBgunAavnNDn
rGgyGtjm9Mi2EBz0qNLNHeoJq1tPW/m/+sy6DaY6sqR0T8ujF9GECAG5WZuN4Q83
n2xKCiO6cM50nOBqEQIDAQAB
-----END PUBLIC KEY-----`

var validateKeyRe = regexp.MustCompile(`id="em_validatekey"[^>]*value="([^"]+)"`)

// LoginResponse 登录接口的原始响应
type LoginResponse struct {
	Status  int    `json:"Status"`
	Errcode int    `json:"Errcode"`
	Message string `json:"Message"`
}

// Client 认证客户端。与交易客户端共用同一个 HTTP 会话（Cookie 在会话里）。
type Client struct {
	http        *sdkhttp.Client
	log         *logrus.Entry
	validateKey string
}

// NewClient 创建认证客户端
func NewClient(h *sdkhttp.Client) *Client {
	return &Client{
		http: h,
		log:  logrus.WithField("component", "auth"),
	}
}

// Login 登录。duration 为会话时长（分钟）。
// 返回 (认证是否通过, 错误)；业务拒绝（密码错误等）不算错误，只是 false。
func (c *Client) Login(ctx context.Context, username, password string, duration int) (bool, error) {
	encPassword, err := encryptPassword(password)
	if err != nil {
		return false, err
	}

	form := map[string]string{
		"userId":       username,
		"password":     encPassword,
		"duration":     strconv.Itoa(duration),
		"randNumber":   "",
		"identifyCode": "",
		"authCode":     "",
		"type":         "Z",
	}

	var lr LoginResponse
	if _, err := c.http.PostForm(ctx, endpointLogin, form, &lr); err != nil {
		return false, err
	}
	if lr.Status != 0 {
		c.log.Warnf("登录被拒绝: status=%d message=%s", lr.Status, lr.Message)
		return false, nil
	}

	key, err := c.fetchValidateKey(ctx)
	if err != nil {
		return false, err
	}
	c.validateKey = key
	c.log.Info("登录成功，已获取 validatekey")
	return true, nil
}

// fetchValidateKey 抓取交易页并提取 validatekey。
func (c *Client) fetchValidateKey(ctx context.Context) (string, error) {
	page, err := c.http.GetText(ctx, endpointValidateKeyPage, nil)
	if err != nil {
		return "", err
	}
	m := validateKeyRe.FindStringSubmatch(page)
	if len(m) < 2 {
		return "", errors.New("交易页中未找到 em_validatekey")
	}
	return m[1], nil
}

// ValidateKey 返回当前会话令牌，未登录时为空串。
func (c *Client) ValidateKey() string {
	return c.validateKey
}

// Logout 登出并作废会话令牌。未登录时为空操作。
func (c *Client) Logout(ctx context.Context) error {
	key := c.validateKey
	c.validateKey = ""
	if key == "" {
		return nil
	}
	_, err := c.http.PostForm(ctx, fmt.Sprintf("%s?validatekey=%s", endpointLogout, key), nil, nil)
	return err
}

// encryptPassword 用网关公钥加密交易密码，输出 base64。
func encryptPassword(password string) (string, error) {
	block, _ := pem.Decode([]byte(loginPublicKeyPEM))
	if block == nil {
		return "", errors.New("解析登录公钥失败")
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return "", errors.Wrap(err, "解析登录公钥失败")
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return "", errors.New("登录公钥不是 RSA 公钥")
	}
	cipher, err := rsa.EncryptPKCS1v15(rand.Reader, rsaPub, []byte(password))
	if err != nil {
		return "", errors.Wrap(err, "加密密码失败")
	}
	return base64.StdEncoding.EncodeToString(cipher), nil
}
