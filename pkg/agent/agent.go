// Package agent 交易代理：持有一个已认证会话，负责登录登出、下单撤单、
// 持仓与委托查询，并把网关的原始响应翻译成强类型模型。
//
// 约定的出错方式：前置条件不满足、网关业务拒绝、传输或解析异常，统一折叠为
// bool/空集合/nil 的哨兵返回值，具体原因只进日志。同一个 Agent 不支持并发调用。
package agent

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zsmatrix62/EMTradingAgent/pkg/config"
	"github.com/zsmatrix62/EMTradingAgent/pkg/market"
	"github.com/zsmatrix62/EMTradingAgent/pkg/models"
	"github.com/zsmatrix62/EMTradingAgent/pkg/sdk/api"
	"github.com/zsmatrix62/EMTradingAgent/pkg/sdk/auth"
	sdkhttp "github.com/zsmatrix62/EMTradingAgent/pkg/sdk/http"
)

// DefaultSessionDuration 默认会话时长（分钟）
const DefaultSessionDuration = 30

// Authenticator 认证协作方
type Authenticator interface {
	Login(ctx context.Context, username, password string, duration int) (bool, error)
	Logout(ctx context.Context) error
	ValidateKey() string
}

// TradeAPI 业务接口协作方
type TradeAPI interface {
	SetValidateKey(key string)
	QueryAssetAndPositionV1(ctx context.Context) (*api.AssetPositionResponse, error)
	SubmitTradeV2(ctx context.Context, stockCode string, tradeType models.OrderType, market string, price float64, amount int) (*api.TradeResponse, error)
	GetOrdersData(ctx context.Context) (*api.OrdersResponse, error)
	RevokeOrders(ctx context.Context, orderID string) (*api.RevokeResponse, error)
	StockBidAskEM(ctx context.Context, stockCode string) (map[string]string, error)
}

// MarketResolver 根据证券代码推断市场标识
type MarketResolver func(stockCode string) string

// session 会话状态。只允许在登录/登出两个迁移点整体变更。
type session struct {
	loggedIn bool
	accounts []models.AccountInfo
}

func (s *session) reset() {
	s.loggedIn = false
	s.accounts = nil
}

// Agent 交易代理
type Agent struct {
	username string
	password string

	auth          Authenticator
	api           TradeAPI
	resolveMarket MarketResolver

	session session
	closers []io.Closer
	log     *logrus.Entry
}

// New 按配置装配交易代理：共享 HTTP 会话 + 认证客户端 + 业务客户端。
func New(cfg *config.Config) *Agent {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	tradeHTTP := sdkhttp.NewClient(cfg.TradeBaseURL, timeout)
	quoteHTTP := sdkhttp.NewClient(cfg.QuoteBaseURL, timeout)

	a := NewWithCollaborators(
		cfg.Username,
		cfg.Password,
		auth.NewClient(tradeHTTP),
		api.NewClient(tradeHTTP, quoteHTTP, time.Duration(cfg.QuoteCacheTTL)*time.Second),
		market.GetMarketCode,
	)
	a.closers = append(a.closers, closerFunc(tradeHTTP.Close), closerFunc(quoteHTTP.Close))
	return a
}

// NewWithCollaborators 用外部注入的协作方创建交易代理（测试或自定义传输时使用）。
func NewWithCollaborators(username, password string, authClient Authenticator, tradeAPI TradeAPI, resolver MarketResolver) *Agent {
	if resolver == nil {
		resolver = market.GetMarketCode
	}
	return &Agent{
		username:      username,
		password:      password,
		auth:          authClient,
		api:           tradeAPI,
		resolveMarket: resolver,
		log:           logrus.WithField("component", "agent"),
	}
}

// IsLoggedIn 是否处于已登录状态
func (a *Agent) IsLoggedIn() bool {
	return a.session.loggedIn
}

// Accounts 当前会话记录的所有账户快照
func (a *Agent) Accounts() []models.AccountInfo {
	return a.session.accounts
}

// Login 登录。
// 入参为空时回退到构造时的凭据；duration<=0 时按默认 30 分钟。
// 只返回是否成功，失败原因（缺凭据/认证拒绝/快照失败）记录在日志里。
func (a *Agent) Login(ctx context.Context, username, password string, duration int) bool {
	if username == "" {
		username = a.username
	}
	if password == "" {
		password = a.password
	}
	if username == "" || password == "" {
		a.log.Error("登录需要用户名和密码")
		return false
	}

	// 先记住本次解析出的凭据，后续免参重登可用
	a.username = username
	a.password = password

	if duration <= 0 {
		duration = DefaultSessionDuration
	}

	ok, err := a.auth.Login(ctx, username, password, duration)
	if err != nil {
		a.log.Errorf("登录失败: %v", err)
		a.session.reset()
		return false
	}
	if !ok {
		a.log.Info("认证未通过")
		return false
	}

	a.session.loggedIn = true
	a.api.SetValidateKey(a.auth.ValidateKey())

	if err := a.loadAccountSnapshot(ctx, username); err != nil {
		// 快照任何一步失败都整体回退，不保留半成品账户列表
		a.log.Errorf("登录后拉取资产持仓失败: %v", err)
		a.session.reset()
		return false
	}
	return true
}

// loadAccountSnapshot 拉取资产持仓并物化为账户快照。响应缺 Data 键时静默跳过。
func (a *Agent) loadAccountSnapshot(ctx context.Context, username string) error {
	resp, err := a.api.QueryAssetAndPositionV1(ctx)
	if err != nil {
		return err
	}
	a.log.Debugf("资产持仓响应: status=%d 账户数=%d", resp.Status, len(resp.Data))

	accounts := make([]models.AccountInfo, 0, len(resp.Data))
	for _, asset := range resp.Data {
		overview, err := models.NewAccountOverview(asset.Fields)
		if err != nil {
			return err
		}
		portfolio := models.NewPortfolio()
		for _, raw := range asset.Positions {
			pos, err := models.NewPosition(raw)
			if err != nil {
				return err
			}
			portfolio.AddPosition(*pos)
		}
		accounts = append(accounts, models.AccountInfo{
			Username:        username,
			AccountOverview: overview,
			Portfolio:       portfolio,
		})
	}
	a.session.accounts = accounts
	return nil
}

// Logout 登出。无条件清空会话状态并作废令牌，重复调用无害。
func (a *Agent) Logout(ctx context.Context) {
	a.session.reset()
	a.api.SetValidateKey("")
	if err := a.auth.Logout(ctx); err != nil {
		a.log.Warnf("登出请求失败: %v", err)
	}
	a.log.Info("已登出")
}

// GetAccountInfo 返回第一个账户的简化视图；未登录或无账户时返回 nil。
// 多账户会话只暴露第一个账户是既有约定，调用方需要全部账户时用 Accounts。
func (a *Agent) GetAccountInfo() *models.AccountSummary {
	if !a.session.loggedIn {
		a.log.Warn("用户未登录")
		return nil
	}
	if len(a.session.accounts) == 0 {
		return nil
	}

	first := a.session.accounts[0]
	balance := 0.0
	if first.AccountOverview != nil {
		balance = first.AccountOverview.Zjye
	}
	return &models.AccountSummary{
		Username:       first.Username,
		AccountBalance: balance,
		Portfolio:      first.Portfolio,
	}
}

// PlaceOrder 下单。
// 未登录或缺会话令牌时返回 nil；网关拒单时返回携带错误信息的失败结果；
// 成功时 OrderIDs 为「当日日期_委托编号」列表。
func (a *Agent) PlaceOrder(ctx context.Context, stockCode string, tradeType models.OrderType, amount int, price float64) *models.PlaceOrderResult {
	if !a.session.loggedIn || a.auth.ValidateKey() == "" {
		a.log.Error("用户未登录")
		return nil
	}

	log := a.log.WithFields(logrus.Fields{
		"ref":        uuid.NewString(),
		"stock_code": stockCode,
		"trade_type": tradeType,
		"amount":     amount,
		"price":      price,
	})
	log.Info("提交委托")

	mkt := a.resolveMarket(stockCode)
	resp, err := a.api.SubmitTradeV2(ctx, stockCode, tradeType, mkt, price, amount)
	if err != nil {
		log.Errorf("提交委托失败: %v", err)
		return nil
	}

	if resp.Status != 0 {
		log.Errorf("委托被拒绝: %s", resp.Message)
		return &models.PlaceOrderResult{
			// 保持既有对外形状：失败时编号列表里放错误信息
			OrderIDs:     []string{resp.Message},
			Success:      false,
			ErrorMessage: resp.Message,
		}
	}

	// 订单编号 = 委托日期_委托编号，和委托查询接口里的 Wtrq_Wtbh 同构
	date := time.Now().Format("20060102")
	orderIDs := make([]string, 0, len(resp.Data))
	for _, leg := range resp.Data {
		orderID := date + "_" + leg.Wtbh
		orderIDs = append(orderIDs, orderID)
		log.Infof("委托已受理: %s", orderID)
	}
	return &models.PlaceOrderResult{OrderIDs: orderIDs, Success: true}
}

// QueryOrders 查询当日委托，未登录或无数据时返回空。
func (a *Agent) QueryOrders(ctx context.Context) []models.OrderRecord {
	if !a.session.loggedIn || a.auth.ValidateKey() == "" {
		a.log.Error("用户未登录")
		return nil
	}

	resp, err := a.api.GetOrdersData(ctx)
	if err != nil {
		a.log.Errorf("查询委托失败: %v", err)
		return nil
	}
	if len(resp.Data) == 0 {
		return nil
	}

	orders := make([]models.OrderRecord, 0, len(resp.Data))
	for _, raw := range resp.Data {
		orders = append(orders, models.OrderRecordFromMap(raw))
	}
	return orders
}

// CancelOrder 撤单。
// 未登录返回 false；已登录时发出撤单请求后即返回 true，不检查回执内容
// （既有约定的 fire-and-forget 语义，回执只进日志）。
func (a *Agent) CancelOrder(ctx context.Context, orderID string) bool {
	if !a.session.loggedIn {
		a.log.Error("用户未登录")
		return false
	}

	a.log.Infof("撤单: %s", orderID)
	resp, err := a.api.RevokeOrders(ctx, orderID)
	if err != nil {
		a.log.Warnf("撤单请求异常: %v", err)
		return true
	}
	a.log.Infof("撤单回执: status=%d message=%s", resp.Status, resp.Message)
	return true
}

// GetMarketData 查询最新价，不要求登录。
// 行情缺「最新」字段或解析失败时返回 nil。
func (a *Agent) GetMarketData(ctx context.Context, stockCode string) *float64 {
	resp, err := a.api.StockBidAskEM(ctx, stockCode)
	if err != nil {
		a.log.Errorf("查询行情失败: %v", err)
		return nil
	}

	raw, ok := resp["最新"]
	if !ok {
		a.log.Error("行情响应缺少最新价")
		return nil
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		a.log.Errorf("解析最新价失败: %q", raw)
		return nil
	}
	return &price
}

// GetMarketSnapshot 查询行情并组装成快照模型，不要求登录。
func (a *Agent) GetMarketSnapshot(ctx context.Context, stockCode string) *models.MarketData {
	resp, err := a.api.StockBidAskEM(ctx, stockCode)
	if err != nil {
		a.log.Errorf("查询行情失败: %v", err)
		return nil
	}

	md := &models.MarketData{
		Symbol:    stockCode,
		LastPrice: parseQuoteFloat(resp, "最新"),
		BidPrice:  parseQuoteFloat(resp, "买一"),
		AskPrice:  parseQuoteFloat(resp, "卖一"),
		Volume:    int64(parseQuoteFloat(resp, "总手")),
		Timestamp: time.Now().Format(time.RFC3339),
	}
	return md
}

func parseQuoteFloat(quote map[string]string, label string) float64 {
	v, err := strconv.ParseFloat(quote[label], 64)
	if err != nil {
		return 0
	}
	return v
}

// Close 释放代理独占的 HTTP 会话资源。
func (a *Agent) Close() error {
	for _, c := range a.closers {
		_ = c.Close()
	}
	return nil
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}
