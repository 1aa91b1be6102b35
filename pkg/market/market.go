// Package market 根据证券代码推断交易市场标识，下单接口要求携带该标识。
package market

import "strings"

// 交易接口使用的市场标识。
const (
	MarketShanghai = "HA" // 沪市
	MarketShenzhen = "SA" // 深市
	MarketBeijing  = "B"  // 北交所
)

// GetMarketCode 根据证券代码格式推断市场标识，纯函数。
// 沪市代码以 5/6/9 开头，北交所以 4/8 开头，其余按深市处理。
func GetMarketCode(stockCode string) string {
	code := strings.TrimSpace(stockCode)
	if code == "" {
		return MarketShenzhen
	}
	switch code[0] {
	case '5', '6', '9':
		return MarketShanghai
	case '4', '8':
		return MarketBeijing
	default:
		return MarketShenzhen
	}
}
