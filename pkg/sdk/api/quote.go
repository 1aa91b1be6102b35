package api

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const endpointStockQuote = "/api/qt/stock/get"

// 五档行情接口的字段编号与中文标签的对应关系。
// fltt=2 时价格字段已经是按精度换算好的小数。
var quoteFieldLabels = []struct {
	field string
	label string
}{
	{"f31", "卖五"},
	{"f32", "卖五量"},
	{"f33", "卖四"},
	{"f34", "卖四量"},
	{"f35", "卖三"},
	{"f36", "卖三量"},
	{"f37", "卖二"},
	{"f38", "卖二量"},
	{"f39", "卖一"},
	{"f40", "卖一量"},
	{"f19", "买一"},
	{"f20", "买一量"},
	{"f17", "买二"},
	{"f18", "买二量"},
	{"f15", "买三"},
	{"f16", "买三量"},
	{"f13", "买四"},
	{"f14", "买四量"},
	{"f11", "买五"},
	{"f12", "买五量"},
	{"f43", "最新"},
	{"f71", "均价"},
	{"f170", "涨幅"},
	{"f169", "涨跌"},
	{"f47", "总手"},
	{"f48", "金额"},
	{"f44", "最高"},
	{"f45", "最低"},
	{"f46", "今开"},
	{"f60", "昨收"},
}

type stockQuoteResponse struct {
	Data map[string]any `json:"data"`
}

// secID 行情接口的证券定位串：沪市前缀 1，其余前缀 0。
func secID(stockCode string) string {
	code := strings.TrimSpace(stockCode)
	if code != "" {
		switch code[0] {
		case '5', '6', '9':
			return "1." + code
		}
	}
	return "0." + code
}

// StockBidAskEM 查询五档行情快照，返回「中文标签 -> 字符串值」的映射。
// 结果有秒级缓存；停牌等场景下个别字段会是 "-"。
func (c *Client) StockBidAskEM(ctx context.Context, stockCode string) (map[string]string, error) {
	if cached, ok := c.quoteCache.Get(stockCode); ok {
		return cached, nil
	}

	fields := make([]string, 0, len(quoteFieldLabels))
	for _, fl := range quoteFieldLabels {
		fields = append(fields, fl.field)
	}
	params := map[string]string{
		"secid":  secID(stockCode),
		"fields": strings.Join(fields, ","),
		"invt":   "2",
		"fltt":   "2",
	}

	var out stockQuoteResponse
	if _, err := c.quote.Get(ctx, endpointStockQuote, params, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, errors.Errorf("行情接口未返回数据: %s", stockCode)
	}

	quote := make(map[string]string, len(quoteFieldLabels))
	for _, fl := range quoteFieldLabels {
		v, ok := out.Data[fl.field]
		if !ok {
			continue
		}
		quote[fl.label] = formatQuoteValue(v)
	}

	c.quoteCache.Set(stockCode, quote)
	return quote, nil
}

func formatQuoteValue(v any) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return t
	default:
		return ""
	}
}
