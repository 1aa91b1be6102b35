package api

import "encoding/json"

// 各端点的响应统一是 {Status, Message, Data} 信封。
// Data 里的账户/持仓字段在不同账户类型下差异很大，保持原始映射，
// 收敛到强类型的工作交给 models 层完成。

// AssetPositionResponse 资产与持仓查询响应
type AssetPositionResponse struct {
	Status  int            `json:"Status"`
	Message string         `json:"Message"`
	Data    []AccountAsset `json:"Data"`
}

// AccountAsset 单个资金账户的资产快照。
// Fields 为账户级原始字段，Positions 为其名下持仓的原始字段列表。
type AccountAsset struct {
	Fields    map[string]any
	Positions []map[string]any
}

// UnmarshalJSON 把嵌套的 positions 拆出来，其余字段原样保留。
func (a *AccountAsset) UnmarshalJSON(b []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if ps, ok := raw["positions"].([]any); ok {
		for _, p := range ps {
			if m, ok := p.(map[string]any); ok {
				a.Positions = append(a.Positions, m)
			}
		}
	}
	delete(raw, "positions")
	a.Fields = raw
	return nil
}

// TradeResponse 下单接口响应
type TradeResponse struct {
	Status  int                 `json:"Status"`
	Message string              `json:"Message"`
	Data    []TradeConfirmation `json:"Data"`
}

// TradeConfirmation 单笔委托回执。Wtbh 是当日委托编号。
type TradeConfirmation struct {
	Wtbh string `json:"Wtbh"`
}

// OrdersResponse 委托查询响应。委托条目字段保持原始映射。
type OrdersResponse struct {
	Status  int              `json:"Status"`
	Message string           `json:"Message"`
	Data    []map[string]any `json:"Data"`
}

// RevokeResponse 撤单接口响应
type RevokeResponse struct {
	Status  int    `json:"Status"`
	Message string `json:"Message"`
}
