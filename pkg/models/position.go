package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Position 持仓明细。
// 金额与比例字段用高精度小数保存，避免浮点累计误差；数量字段保存为整数。
type Position struct {
	Bz       string          // 币种
	Cbjg     decimal.Decimal // 成本价格
	Cbjgex   decimal.Decimal // 成本价格(精确)
	Ckcb     decimal.Decimal // 持仓成本
	Ckcbj    decimal.Decimal // 持仓成本价
	Ckyk     decimal.Decimal // 持仓盈亏
	Cwbl     decimal.Decimal // 仓位比例
	Djsl     int64           // 冻结数量
	Dqcb     decimal.Decimal // 当前成本
	Dryk     decimal.Decimal // 当日盈亏
	Drykbl   decimal.Decimal // 当日盈亏比例
	Gddm     string          // 股东代码
	Gfmcdj   int64           // 股份卖出冻结
	Gfmrjd   int64           // 股份买入解冻
	Gfssmmce int64           // 股份上市末码额
	Gfye     int64           // 股份余额
	Jgbm     string          // 机构编码
	Khdm     string          // 客户代码
	Ksssl    int64           // 可售数量
	Kysl     int64           // 可用数量
	Ljyk     decimal.Decimal // 累计盈亏
	Market   string          // 市场
	Mrssc    int64           // 买入市场
	Sssl     int64           // 申购数量
	Szjsbs   int64           // 市值计算标识
	Ykbl     decimal.Decimal // 盈亏比例
	Zjzh     string          // 资金账号
	Zqdm     string          // 证券代码
	Zqlx     string          // 证券类型
	Zqlxmc   string          // 证券类型名称
	Zqmc     string          // 证券名称
	Zqsl     int64           // 证券数量
	Ztmc     int64           // 状态码
	Ztmr     int64           // 状态码
	Zxjg     decimal.Decimal // 最新价格
	Zxsz     decimal.Decimal // 最新市值
	Zqzwqc   string          // 证券中文全称
	Zxsznew  decimal.Decimal // 最新市值(新)
}

// NewPosition 从原始响应字段构建持仓明细。
// 指定字段按 decimal/int 严格解析，非法数字串返回错误，不做 0 兜底。
func NewPosition(raw map[string]any) (*Position, error) {
	p := &Position{
		Bz:     stringField(raw, "Bz"),
		Gddm:   stringField(raw, "Gddm"),
		Jgbm:   stringField(raw, "Jgbm"),
		Khdm:   stringField(raw, "Khdm"),
		Market: stringField(raw, "Market"),
		Zjzh:   stringField(raw, "Zjzh"),
		Zqdm:   stringField(raw, "Zqdm"),
		Zqlx:   stringField(raw, "Zqlx"),
		Zqlxmc: stringField(raw, "Zqlxmc"),
		Zqmc:   stringField(raw, "Zqmc"),
		Zqzwqc: stringField(raw, "zqzwqc"),
	}

	decimals := []struct {
		key string
		dst *decimal.Decimal
	}{
		{"Cbjg", &p.Cbjg},
		{"Cbjgex", &p.Cbjgex},
		{"Ckcb", &p.Ckcb},
		{"Ckcbj", &p.Ckcbj},
		{"Ckyk", &p.Ckyk},
		{"Cwbl", &p.Cwbl},
		{"Dqcb", &p.Dqcb},
		{"Dryk", &p.Dryk},
		{"Drykbl", &p.Drykbl},
		{"Ljyk", &p.Ljyk},
		{"Ykbl", &p.Ykbl},
		{"Zxjg", &p.Zxjg},
		{"Zxsz", &p.Zxsz},
		{"zxsznew", &p.Zxsznew},
	}
	for _, f := range decimals {
		v, err := decimalField(raw, f.key)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	ints := []struct {
		key string
		dst *int64
	}{
		{"Djsl", &p.Djsl},
		{"Gfmcdj", &p.Gfmcdj},
		{"Gfmrjd", &p.Gfmrjd},
		{"Gfssmmce", &p.Gfssmmce},
		{"Gfye", &p.Gfye},
		{"Ksssl", &p.Ksssl},
		{"Kysl", &p.Kysl},
		{"Mrssc", &p.Mrssc},
		{"Sssl", &p.Sssl},
		{"Szjsbs", &p.Szjsbs},
		{"Zqsl", &p.Zqsl},
		{"Ztmc", &p.Ztmc},
		{"Ztmr", &p.Ztmr},
	}
	for _, f := range ints {
		v, err := intField(raw, f.key)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	return p, nil
}

// Portfolio 持仓组合，持仓列表由其独占，只通过 AddPosition 增长。
type Portfolio struct {
	Positions []Position
}

// NewPortfolio 创建空持仓组合。
func NewPortfolio() *Portfolio {
	return &Portfolio{}
}

// AddPosition 追加一条持仓。
func (p *Portfolio) AddPosition(pos Position) {
	p.Positions = append(p.Positions, pos)
}

var portfolioHeaders = []string{"证券名称", "证券代码", "当前价", "持仓数量", "成本价", "当前市值", "累计盈亏", "盈亏比例"}
var portfolioColWidths = []int{12, 10, 10, 12, 10, 12, 12, 12}

// String 格式化打印持仓表格，末尾带市值与盈亏合计行。
func (p *Portfolio) String() string {
	if len(p.Positions) == 0 {
		return "暂无持仓"
	}

	total := 0
	for _, w := range portfolioColWidths {
		total += w
	}
	separator := strings.Repeat("-", total)

	var header strings.Builder
	for i, h := range portfolioHeaders {
		header.WriteString(padRight(h, portfolioColWidths[i]))
	}

	rows := []string{header.String(), separator}
	totalMarketValue := decimal.Zero
	totalProfitLoss := decimal.Zero

	for _, pos := range p.Positions {
		name := pos.Zqmc
		if nameRunes := []rune(name); len(nameRunes) > 10 {
			name = string(nameRunes[:7]) + "..."
		}
		cols := []string{
			name,
			pos.Zqdm,
			pos.Zxjg.StringFixed(3),
			commaInt(pos.Zqsl),
			pos.Cbjg.StringFixed(3),
			commaDecimal(pos.Zxsz),
			commaDecimal(pos.Ljyk),
			percent(pos.Ykbl),
		}
		var row strings.Builder
		for i, c := range cols {
			row.WriteString(padRight(c, portfolioColWidths[i]))
		}
		rows = append(rows, row.String())

		totalMarketValue = totalMarketValue.Add(pos.Zxsz)
		totalProfitLoss = totalProfitLoss.Add(pos.Ljyk)
	}

	rows = append(rows, separator)
	totals := []string{"总计", "", "", "", "", commaDecimal(totalMarketValue), commaDecimal(totalProfitLoss), ""}
	var totalRow strings.Builder
	for i, c := range totals {
		totalRow.WriteString(padRight(c, portfolioColWidths[i]))
	}
	rows = append(rows, totalRow.String())

	return strings.Join(rows, "\n")
}
