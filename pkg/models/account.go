package models

import "strings"

// AccountOverview 账户资金总览。
// 所有数值字段统一保存为 float64，空字符串按 0 处理（仅此模型有该兜底）。
type AccountOverview struct {
	Djzj      float64 // 冻结资金
	Dryk      float64 // 当日盈亏
	Kqzj      float64 // 可取资金
	Kyzj      float64 // 可用资金
	Ljyk      float64 // 累计盈亏
	MoneyType string  // 货币类型
	RMBZzc    float64 // 人民币总资产
	Zjye      float64 // 资金余额
	Zxsz      float64 // 证券市值
	Zzc       float64 // 总资产
}

// NewAccountOverview 从原始响应字段构建资金总览。
// 数值字段缺失或为空字符串时按 0 处理，非法数字串返回错误。
func NewAccountOverview(raw map[string]any) (*AccountOverview, error) {
	o := &AccountOverview{MoneyType: stringField(raw, "Money_type")}

	fields := []struct {
		key string
		dst *float64
	}{
		{"Djzj", &o.Djzj},
		{"Dryk", &o.Dryk},
		{"Kqzj", &o.Kqzj},
		{"Kyzj", &o.Kyzj},
		{"Ljyk", &o.Ljyk},
		{"RMBZzc", &o.RMBZzc},
		{"Zjye", &o.Zjye},
		{"Zxsz", &o.Zxsz},
		{"Zzc", &o.Zzc},
	}
	for _, f := range fields {
		v, err := overviewFloat(raw, f.key)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	return o, nil
}

// String 格式化打印账户资金总览。
func (o *AccountOverview) String() string {
	separator := strings.Repeat("=", 50)
	lines := []string{
		separator,
		center("账户资金总览", 50),
		separator,
		padRight("货币类型:", 20) + " " + padLeft(o.MoneyType, 30),
		padRight("总资产： ", 20) + " " + padLeft(commaFloat(o.Zzc), 30),
		padRight("证券市值:", 20) + " " + padLeft(commaFloat(o.Zxsz), 30),
		padRight("可用资金:", 20) + " " + padLeft(commaFloat(o.Kyzj), 30),
		padRight("可取资金:", 20) + " " + padLeft(commaFloat(o.Kqzj), 30),
		padRight("冻结资金:", 20) + " " + padLeft(commaFloat(o.Djzj), 30),
		padRight("累计盈亏:", 20) + " " + padLeft(commaFloat(o.Ljyk), 30),
		padRight("当日盈亏:", 20) + " " + padLeft(commaFloat(o.Dryk), 30),
		padRight("资金余额:", 20) + " " + padLeft(commaFloat(o.Zjye), 30),
		separator,
	}
	return strings.Join(lines, "\n")
}

// AccountInfo 一个已登录账户的完整快照：用户名 + 资金总览 + 持仓组合。
type AccountInfo struct {
	Username        string
	AccountOverview *AccountOverview
	Portfolio       *Portfolio
}

// AccountSummary 是 GetAccountInfo 返回的简化视图（只取第一个账户）。
type AccountSummary struct {
	Username       string
	AccountBalance float64
	Portfolio      *Portfolio
}
