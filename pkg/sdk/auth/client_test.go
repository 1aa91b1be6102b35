package auth

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkhttp "github.com/zsmatrix62/EMTradingAgent/pkg/sdk/http"
)

func newTestAuth(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(sdkhttp.NewClient(srv.URL, 5*time.Second))
}

func TestLoginSuccess(t *testing.T) {
	c := newTestAuth(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Login/Authentication":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "540000000000", r.PostFormValue("userId"))
			assert.Equal(t, "30", r.PostFormValue("duration"))
			assert.Equal(t, "Z", r.PostFormValue("type"))
			// 密码必须是密文，不能明文上送
			enc := r.PostFormValue("password")
			assert.NotEqual(t, "secret", enc)
			_, err := base64.StdEncoding.DecodeString(enc)
			assert.NoError(t, err)

			_, _ = w.Write([]byte(`{"Status": 0, "Errcode": 0, "Message": ""}`))
		case "/Trade/Buy":
			_, _ = w.Write([]byte(`<html><input id="em_validatekey" type="hidden" value="abcd-1234"/></html>`))
		default:
			t.Errorf("未预期的请求: %s", r.URL.Path)
		}
	}))

	ok, err := c.Login(context.Background(), "540000000000", "secret", 30)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abcd-1234", c.ValidateKey())
}

// TestLoginRejected 业务拒绝（密码错误等）返回 false 而不是错误
func TestLoginRejected(t *testing.T) {
	c := newTestAuth(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Status": -1, "Errcode": 1, "Message": "密码错误"}`))
	}))

	ok, err := c.Login(context.Background(), "u", "p", 30)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, c.ValidateKey())
}

// TestLoginValidateKeyMissing 登录通过但交易页没有令牌时算失败
func TestLoginValidateKeyMissing(t *testing.T) {
	c := newTestAuth(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Login/Authentication":
			_, _ = w.Write([]byte(`{"Status": 0}`))
		default:
			_, _ = w.Write([]byte(`<html>维护中</html>`))
		}
	}))

	ok, err := c.Login(context.Background(), "u", "p", 30)
	require.Error(t, err)
	assert.False(t, ok)
}

func TestLogout(t *testing.T) {
	logoutCalls := 0
	c := newTestAuth(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Login/Authentication":
			_, _ = w.Write([]byte(`{"Status": 0}`))
		case "/Trade/Buy":
			_, _ = w.Write([]byte(`<input id="em_validatekey" value="k1"/>`))
		case "/Login/Logout":
			logoutCalls++
			assert.Equal(t, "k1", r.URL.Query().Get("validatekey"))
			w.WriteHeader(http.StatusOK)
		}
	}))

	ok, err := c.Login(context.Background(), "u", "p", 30)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.ValidateKey())
	assert.Equal(t, 1, logoutCalls)

	// 未登录状态下登出是空操作
	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, 1, logoutCalls)
}

func TestEncryptPassword(t *testing.T) {
	c1, err := encryptPassword("123456")
	require.NoError(t, err)
	c2, err := encryptPassword("123456")
	require.NoError(t, err)

	// PKCS1v15 填充带随机数，同一明文两次密文不同
	assert.NotEqual(t, c1, c2)
	raw, err := base64.StdEncoding.DecodeString(c1)
	require.NoError(t, err)
	assert.Len(t, raw, 128, "1024 位公钥的密文长度")
}
