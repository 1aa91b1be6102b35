package models

import "fmt"

// OrderType 买卖方向，取值即接口报文里的方向码。
type OrderType string

const (
	OrderTypeBuy  OrderType = "B" // 买入
	OrderTypeSell OrderType = "S" // 卖出
)

// OrderStatus 委托状态。目前委托查询接口未回填该枚举，保留备用。
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusFilled    OrderStatus = "filled"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRejected  OrderStatus = "rejected"
)

// Order 一笔本地视角的委托。
type Order struct {
	Symbol    string
	OrderType OrderType
	Quantity  float64
	Price     float64
	OrderID   string
	Status    OrderStatus
}

// OrderRecord 委托记录（仅关键字段）。
// OrderID 由委托日期和委托编号拼接而成，例如 20240520_130662。
type OrderRecord struct {
	Zqdm    string // 证券代码
	Zqmc    string // 证券名称
	OrderID string // 订单编号
	Mmsm    string // 操作类型
	Wtsl    string // 委托数量
	Wtjg    string // 委托价格
	Wtzt    string // 委托状态
	Cjsl    string // 成交数量
	Cjje    string // 成交金额
}

// OrderRecordFromMap 从原始委托数据提取关键字段。
func OrderRecordFromMap(raw map[string]any) OrderRecord {
	return OrderRecord{
		Zqdm:    stringField(raw, "Zqdm"),
		Zqmc:    stringField(raw, "Zqmc"),
		Mmsm:    stringField(raw, "Mmsm"),
		Wtsl:    stringField(raw, "Wtsl"),
		Wtjg:    stringField(raw, "Wtjg"),
		Wtzt:    stringField(raw, "Wtzt"),
		Cjsl:    stringField(raw, "Cjsl"),
		Cjje:    stringField(raw, "Cjje"),
		OrderID: stringField(raw, "Wtrq") + "_" + stringField(raw, "Wtbh"),
	}
}

// ToMap 转回字符串字典。
func (r OrderRecord) ToMap() map[string]string {
	return map[string]string{
		"Zqdm":     r.Zqdm,
		"Zqmc":     r.Zqmc,
		"order_id": r.OrderID,
		"Mmsm":     r.Mmsm,
		"Wtsl":     r.Wtsl,
		"Wtjg":     r.Wtjg,
		"Wtzt":     r.Wtzt,
		"Cjsl":     r.Cjsl,
		"Cjje":     r.Cjje,
	}
}

// String 格式化输出单条记录。
func (r OrderRecord) String() string {
	return fmt.Sprintf(
		"证券代码: %s | 证券名称: %s | 订单编号: %s\n"+
			"操作类型: %s | 委托数量: %s | 委托价格: %s\n"+
			"委托状态: %s | 成交数量: %s | 成交金额: %s\n",
		r.Zqdm, r.Zqmc, r.OrderID,
		r.Mmsm, r.Wtsl, r.Wtjg,
		r.Wtzt, r.Cjsl, r.Cjje,
	)
}

// PlaceOrderResult 下单结果。
// 失败时 OrderIDs 只含一条错误信息（保持既有对外形状），ErrorMessage 单独携带原因。
type PlaceOrderResult struct {
	OrderIDs     []string
	Success      bool
	ErrorMessage string
}

// MarketData 单只证券的行情快照。
type MarketData struct {
	Symbol    string
	LastPrice float64
	BidPrice  float64
	AskPrice  float64
	Volume    int64
	Timestamp string
}
