package agent

import (
	"context"
	"sync"

	"github.com/zsmatrix62/EMTradingAgent/pkg/models"
	"github.com/zsmatrix62/EMTradingAgent/pkg/sdk/api"
)

// MockAuthenticator 测试用认证协作方
type MockAuthenticator struct {
	mu sync.Mutex

	// 预设返回
	LoginOK     bool
	Key         string
	LogoutError error

	// 调用计数
	Calls map[string]int

	// 单次错误注入
	ErrorOnNext map[string]error
}

// NewMockAuthenticator 创建测试用认证协作方
func NewMockAuthenticator() *MockAuthenticator {
	return &MockAuthenticator{
		LoginOK:     true,
		Key:         "mock-validate-key",
		Calls:       make(map[string]int),
		ErrorOnNext: make(map[string]error),
	}
}

func (m *MockAuthenticator) trackCall(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls[name]++
	if err, ok := m.ErrorOnNext[name]; ok {
		delete(m.ErrorOnNext, name)
		return err
	}
	return nil
}

func (m *MockAuthenticator) Login(ctx context.Context, username, password string, duration int) (bool, error) {
	if err := m.trackCall("Login"); err != nil {
		return false, err
	}
	return m.LoginOK, nil
}

func (m *MockAuthenticator) Logout(ctx context.Context) error {
	_ = m.trackCall("Logout")
	return m.LogoutError
}

func (m *MockAuthenticator) ValidateKey() string {
	return m.Key
}

// MockTradeAPI 测试用业务接口协作方
type MockTradeAPI struct {
	mu sync.Mutex

	// 预设响应
	AssetPositionResp *api.AssetPositionResponse
	TradeResp         *api.TradeResponse
	OrdersResp        *api.OrdersResponse
	RevokeResp        *api.RevokeResponse
	QuoteResp         map[string]string

	// 记录最近一次下单参数
	LastTrade struct {
		StockCode string
		TradeType models.OrderType
		Market    string
		Price     float64
		Amount    int
	}
	ValidateKey string

	// 调用计数
	Calls map[string]int

	// 单次错误注入
	ErrorOnNext map[string]error
}

// NewMockTradeAPI 创建测试用业务接口协作方
func NewMockTradeAPI() *MockTradeAPI {
	return &MockTradeAPI{
		AssetPositionResp: &api.AssetPositionResponse{},
		TradeResp:         &api.TradeResponse{},
		OrdersResp:        &api.OrdersResponse{},
		RevokeResp:        &api.RevokeResponse{},
		QuoteResp:         map[string]string{},
		Calls:             make(map[string]int),
		ErrorOnNext:       make(map[string]error),
	}
}

func (m *MockTradeAPI) trackCall(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls[name]++
	if err, ok := m.ErrorOnNext[name]; ok {
		delete(m.ErrorOnNext, name)
		return err
	}
	return nil
}

func (m *MockTradeAPI) SetValidateKey(key string) {
	m.ValidateKey = key
}

func (m *MockTradeAPI) QueryAssetAndPositionV1(ctx context.Context) (*api.AssetPositionResponse, error) {
	if err := m.trackCall("QueryAssetAndPositionV1"); err != nil {
		return nil, err
	}
	return m.AssetPositionResp, nil
}

func (m *MockTradeAPI) SubmitTradeV2(ctx context.Context, stockCode string, tradeType models.OrderType, market string, price float64, amount int) (*api.TradeResponse, error) {
	if err := m.trackCall("SubmitTradeV2"); err != nil {
		return nil, err
	}
	m.LastTrade.StockCode = stockCode
	m.LastTrade.TradeType = tradeType
	m.LastTrade.Market = market
	m.LastTrade.Price = price
	m.LastTrade.Amount = amount
	return m.TradeResp, nil
}

func (m *MockTradeAPI) GetOrdersData(ctx context.Context) (*api.OrdersResponse, error) {
	if err := m.trackCall("GetOrdersData"); err != nil {
		return nil, err
	}
	return m.OrdersResp, nil
}

func (m *MockTradeAPI) RevokeOrders(ctx context.Context, orderID string) (*api.RevokeResponse, error) {
	if err := m.trackCall("RevokeOrders"); err != nil {
		return nil, err
	}
	return m.RevokeResp, nil
}

func (m *MockTradeAPI) StockBidAskEM(ctx context.Context, stockCode string) (map[string]string, error) {
	if err := m.trackCall("StockBidAskEM"); err != nil {
		return nil, err
	}
	return m.QuoteResp, nil
}
