package models

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewAccountOverviewEmptyStringFallsBackToZero 空字符串数值字段按 0 处理
func TestNewAccountOverviewEmptyStringFallsBackToZero(t *testing.T) {
	o, err := NewAccountOverview(map[string]any{
		"Djzj":       "",
		"Dryk":       "",
		"Kqzj":       "1000.5",
		"Kyzj":       2000.25,
		"Money_type": "RMB",
	})

	require.NoError(t, err)
	assert.Zero(t, o.Djzj)
	assert.Zero(t, o.Dryk)
	assert.InDelta(t, 1000.5, o.Kqzj, 1e-9)
	assert.InDelta(t, 2000.25, o.Kyzj, 1e-9)
	assert.Equal(t, "RMB", o.MoneyType)
	assert.Zero(t, o.Zzc, "缺失字段按 0 处理")
}

// TestNewAccountOverviewRejectsMalformedNumber 非法数字串必须报错
func TestNewAccountOverviewRejectsMalformedNumber(t *testing.T) {
	_, err := NewAccountOverview(map[string]any{"Zzc": "12.3.4"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Zzc")
}

// TestNewPositionDecimalPrecision 金额字段保持字符串给出的精确值
func TestNewPositionDecimalPrecision(t *testing.T) {
	p, err := NewPosition(map[string]any{
		"Zqdm": "600000",
		"Zqmc": "浦发银行",
		"Cbjg": "12.340",
		"Zxjg": "12.345",
		"Ykbl": "0.0318",
		"Zqsl": "200",
		"Kysl": 100.0,
	})

	require.NoError(t, err)
	assert.True(t, p.Cbjg.Equal(decimal.RequireFromString("12.340")),
		"成本价应精确等于 12.340，实际 %s", p.Cbjg)
	assert.True(t, p.Zxjg.Equal(decimal.RequireFromString("12.345")))
	assert.True(t, p.Ykbl.Equal(decimal.RequireFromString("0.0318")))
	assert.Equal(t, int64(200), p.Zqsl)
	assert.Equal(t, int64(100), p.Kysl, "数值类型的数量字段原样收下")
}

// TestNewPositionRejectsMalformedFields 持仓字段没有 0 兜底，坏数据直接报错
func TestNewPositionRejectsMalformedFields(t *testing.T) {
	_, err := NewPosition(map[string]any{"Cbjg": "abc"})
	require.Error(t, err)

	_, err = NewPosition(map[string]any{"Zqsl": "12.5"})
	require.Error(t, err, "数量字段必须是整数")

	_, err = NewPosition(map[string]any{"Ljyk": ""})
	require.Error(t, err, "空字符串在持仓字段里不是合法小数")
}

// TestPortfolioString 表格渲染：列宽、截断、合计行
func TestPortfolioString(t *testing.T) {
	empty := NewPortfolio()
	assert.Equal(t, "暂无持仓", empty.String())

	p := NewPortfolio()
	pos1, err := NewPosition(map[string]any{
		"Zqmc": "浦发银行",
		"Zqdm": "600000",
		"Zxjg": "8.100",
		"Zqsl": "1200",
		"Cbjg": "7.850",
		"Zxsz": "9720.00",
		"Ljyk": "300.00",
		"Ykbl": "0.0318",
	})
	require.NoError(t, err)
	pos2, err := NewPosition(map[string]any{
		"Zqmc": "一个特别长的证券名称需要截断",
		"Zqdm": "000001",
		"Zxjg": "10.000",
		"Zqsl": "100",
		"Cbjg": "9.000",
		"Zxsz": "1000.00",
		"Ljyk": "-50.00",
		"Ykbl": "-0.05",
	})
	require.NoError(t, err)
	p.AddPosition(*pos1)
	p.AddPosition(*pos2)

	out := p.String()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6, "表头+分隔+两行+分隔+合计")

	assert.Contains(t, lines[0], "证券名称")
	assert.Contains(t, lines[2], "600000")
	assert.Contains(t, lines[2], "1,200")
	assert.Contains(t, lines[2], "3.18%")
	assert.Contains(t, lines[3], "一个特别长的证...", "超过 10 个字符的名称取前 7 个字符加省略号")

	// 合计行：市值 9720+1000，盈亏 300-50
	last := lines[len(lines)-1]
	assert.Contains(t, last, "总计")
	assert.Contains(t, last, "10,720.00")
	assert.Contains(t, last, "250.00")
}

// TestAccountOverviewString 资金总览渲染
func TestAccountOverviewString(t *testing.T) {
	o, err := NewAccountOverview(map[string]any{
		"Money_type": "RMB",
		"Zzc":        "1234567.891",
		"Zjye":       "1000",
	})
	require.NoError(t, err)

	out := o.String()
	assert.Contains(t, out, "账户资金总览")
	assert.Contains(t, out, "1,234,567.89")
	assert.Contains(t, out, "1,000.00")
	assert.Contains(t, out, strings.Repeat("=", 50))
}

// TestOrderRecordFromMap 订单编号由 Wtrq_Wtbh 拼接
func TestOrderRecordFromMap(t *testing.T) {
	r := OrderRecordFromMap(map[string]any{
		"Wtrq": "20240520",
		"Wtbh": "77",
		"Zqdm": "600000",
		"Zqmc": "浦发银行",
		"Mmsm": "证券买入",
		"Wtsl": "100",
		"Wtjg": "8.10",
		"Wtzt": "已报",
		"Cjsl": "0",
		"Cjje": "0.00",
	})

	assert.Equal(t, "20240520_77", r.OrderID)
	assert.Equal(t, "600000", r.Zqdm)

	m := r.ToMap()
	assert.Equal(t, "20240520_77", m["order_id"])
	assert.Equal(t, "浦发银行", m["Zqmc"])

	s := r.String()
	assert.Contains(t, s, "订单编号: 20240520_77")
	assert.Contains(t, s, "委托状态: 已报")
}

// TestOrderRecordFromMapMissingFields 缺字段时拼出的编号仍是 前_后 结构
func TestOrderRecordFromMapMissingFields(t *testing.T) {
	r := OrderRecordFromMap(map[string]any{})
	assert.Equal(t, "_", r.OrderID)
	assert.Empty(t, r.Zqdm)
}

// TestGroupDigits 千位分隔
func TestGroupDigits(t *testing.T) {
	cases := map[string]string{
		"0":        "0",
		"100":      "100",
		"1000":     "1,000",
		"1234567":  "1,234,567",
		"-1234567": "-1,234,567",
	}
	for in, want := range cases {
		assert.Equal(t, want, groupDigits(in), "groupDigits(%s)", in)
	}
}
