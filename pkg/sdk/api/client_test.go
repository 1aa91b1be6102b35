package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zsmatrix62/EMTradingAgent/pkg/models"
	sdkhttp "github.com/zsmatrix62/EMTradingAgent/pkg/sdk/http"
)

// newTestClient 把 trade 和 quote 都指向同一个测试服务器
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	hc := sdkhttp.NewClient(srv.URL, 5*time.Second)
	c := NewClient(hc, hc, time.Second)
	c.SetValidateKey("test-key")
	return c, srv
}

func TestQueryAssetAndPositionV1(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Com/queryAssetAndPositionV1", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("validatekey"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "RMB", r.PostFormValue("moneyType"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Status": 0,
			"Message": "",
			"Data": [{
				"Zzc": "10000.00",
				"Kyzj": "5000.00",
				"Money_type": "RMB",
				"positions": [
					{"Zqdm": "600000", "Zqmc": "浦发银行", "Zqsl": "100"}
				]
			}]
		}`))
	}))

	resp, err := c.QueryAssetAndPositionV1(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)

	asset := resp.Data[0]
	assert.Equal(t, "10000.00", asset.Fields["Zzc"])
	assert.NotContains(t, asset.Fields, "positions", "持仓列表从账户字段里拆出")
	require.Len(t, asset.Positions, 1)
	assert.Equal(t, "600000", asset.Positions[0]["Zqdm"])
}

func TestSubmitTradeV2(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Trade/SubmitTradeV2", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "600000", r.PostFormValue("stockCode"))
		assert.Equal(t, "B", r.PostFormValue("tradeType"))
		assert.Equal(t, "HA", r.PostFormValue("market"))
		assert.Equal(t, "8.1", r.PostFormValue("price"))
		assert.Equal(t, "100", r.PostFormValue("amount"))

		_, _ = w.Write([]byte(`{"Status": 0, "Message": "", "Data": [{"Wtbh": "130662"}]}`))
	}))

	resp, err := c.SubmitTradeV2(context.Background(), "600000", models.OrderTypeBuy, "HA", 8.1, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "130662", resp.Data[0].Wtbh)
}

func TestGetOrdersData(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Search/GetOrdersData", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "100", r.PostFormValue("qqhs"))

		_, _ = w.Write([]byte(`{"Status": 0, "Data": [{"Wtrq": "20240520", "Wtbh": "77"}]}`))
	}))

	resp, err := c.GetOrdersData(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "20240520", resp.Data[0]["Wtrq"])
}

func TestRevokeOrders(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Trade/RevokeOrders", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "20240520_130662", r.PostFormValue("revokes"))

		_, _ = w.Write([]byte(`{"Status": 0, "Message": "已提交"}`))
	}))

	resp, err := c.RevokeOrders(context.Background(), "20240520_130662")
	require.NoError(t, err)
	assert.Equal(t, "已提交", resp.Message)
}

// TestRevokeOrdersPlainText 撤单接口返回纯文本时按文本回执处理
func TestRevokeOrdersPlainText(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("您的撤单委托已提交"))
	}))

	resp, err := c.RevokeOrders(context.Background(), "20240520_130662")
	require.NoError(t, err)
	assert.Equal(t, "您的撤单委托已提交", resp.Message)
}

func TestSecID(t *testing.T) {
	assert.Equal(t, "1.600000", secID("600000"))
	assert.Equal(t, "1.510300", secID("510300"))
	assert.Equal(t, "1.900901", secID("900901"))
	assert.Equal(t, "0.000001", secID("000001"))
	assert.Equal(t, "0.300750", secID("300750"))
	assert.Equal(t, "0.830799", secID("830799"))
}

func TestStockBidAskEM(t *testing.T) {
	hits := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/api/qt/stock/get", r.URL.Path)
		assert.Equal(t, "1.600000", r.URL.Query().Get("secid"))
		assert.Equal(t, "2", r.URL.Query().Get("fltt"))

		_, _ = w.Write([]byte(`{"data": {"f43": 8.1, "f39": 8.11, "f19": 8.09, "f47": "-"}}`))
	}))

	quote, err := c.StockBidAskEM(context.Background(), "600000")
	require.NoError(t, err)

	assert.Equal(t, "8.1", quote["最新"])
	assert.Equal(t, "8.11", quote["卖一"])
	assert.Equal(t, "8.09", quote["买一"])
	assert.Equal(t, "-", quote["总手"], "停牌等场景字段值是 -")
	assert.NotContains(t, quote, "均价", "接口没回的字段不出现在结果里")

	// 缓存命中，不再打到服务器
	_, err = c.StockBidAskEM(context.Background(), "600000")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

// TestStockBidAskEMNoData 行情接口 data 为空时报错
func TestStockBidAskEMNoData(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": null}`))
	}))

	_, err := c.StockBidAskEM(context.Background(), "600000")
	require.Error(t, err)
}
