package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMarketCode(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"600000", MarketShanghai}, // 沪市主板
		{"510300", MarketShanghai}, // 沪市 ETF
		{"900901", MarketShanghai}, // 沪市 B 股
		{"000001", MarketShenzhen}, // 深市主板
		{"300750", MarketShenzhen}, // 创业板
		{"159915", MarketShenzhen}, // 深市 ETF
		{"430047", MarketBeijing},
		{"830799", MarketBeijing},
		{" 600000 ", MarketShanghai}, // 前后空白不影响判断
		{"", MarketShenzhen},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, GetMarketCode(c.code), "code=%q", c.code)
	}
}
