// Package api 交易网关业务接口：资产持仓查询、下单、委托查询、撤单，以及行情快照。
package api

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zsmatrix62/EMTradingAgent/pkg/cache"
	"github.com/zsmatrix62/EMTradingAgent/pkg/models"
	sdkhttp "github.com/zsmatrix62/EMTradingAgent/pkg/sdk/http"
)

const (
	endpointAssetAndPosition = "/Com/queryAssetAndPositionV1"
	endpointSubmitTrade      = "/Trade/SubmitTradeV2"
	endpointOrdersData       = "/Search/GetOrdersData"
	endpointRevokeOrders     = "/Trade/RevokeOrders"
)

// Client 业务接口客户端。
// validatekey 由认证方登录成功后注入，交易类接口都要求携带。
type Client struct {
	http        *sdkhttp.Client
	quote       *sdkhttp.Client
	quoteCache  *cache.QuoteCache
	log         *logrus.Entry
	validateKey string
}

// NewClient 创建业务接口客户端。trade 和 quote 分别指向交易网关和行情服务。
func NewClient(trade, quote *sdkhttp.Client, quoteTTL time.Duration) *Client {
	return &Client{
		http:       trade,
		quote:      quote,
		quoteCache: cache.NewQuoteCache(quoteTTL),
		log:        logrus.WithField("component", "api"),
	}
}

// SetValidateKey 注入会话令牌
func (c *Client) SetValidateKey(key string) {
	c.validateKey = key
}

func (c *Client) keyed(endpoint string) string {
	return fmt.Sprintf("%s?validatekey=%s", endpoint, c.validateKey)
}

// QueryAssetAndPositionV1 查询资产与持仓
func (c *Client) QueryAssetAndPositionV1(ctx context.Context) (*AssetPositionResponse, error) {
	var out AssetPositionResponse
	if _, err := c.http.PostForm(ctx, c.keyed(endpointAssetAndPosition), map[string]string{"moneyType": "RMB"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitTradeV2 提交委托。
// tradeType 为方向码（B/S），market 为市场标识，amount 为股数。
func (c *Client) SubmitTradeV2(ctx context.Context, stockCode string, tradeType models.OrderType, market string, price float64, amount int) (*TradeResponse, error) {
	form := map[string]string{
		"stockCode": stockCode,
		"tradeType": string(tradeType),
		"market":    market,
		"price":     strconv.FormatFloat(price, 'f', -1, 64),
		"amount":    strconv.Itoa(amount),
		"zqmc":      "",
	}
	var out TradeResponse
	if _, err := c.http.PostForm(ctx, c.keyed(endpointSubmitTrade), form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrdersData 查询当日委托
func (c *Client) GetOrdersData(ctx context.Context) (*OrdersResponse, error) {
	form := map[string]string{
		"qqhs": "100",
		"dwc":  "",
	}
	var out OrdersResponse
	if _, err := c.http.PostForm(ctx, c.keyed(endpointOrdersData), form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeOrders 撤单。orderID 形如 20240520_130662（委托日期_委托编号）。
// 撤单接口偶尔返回纯文本，这里做宽松解析，失败时把原文放进 Message。
func (c *Client) RevokeOrders(ctx context.Context, orderID string) (*RevokeResponse, error) {
	form := map[string]string{"revokes": orderID}

	var out RevokeResponse
	resp, err := c.http.PostForm(ctx, c.keyed(endpointRevokeOrders), form, &out)
	if err != nil {
		if resp == nil {
			return nil, err
		}
		// HTTP 层成功但不是 JSON，按文本回执处理
		if resp.StatusCode() >= 200 && resp.StatusCode() < 300 {
			c.log.Debugf("撤单响应非 JSON，按文本处理: %s", resp.String())
			return &RevokeResponse{Message: resp.String()}, nil
		}
		return nil, err
	}
	return &out, nil
}
