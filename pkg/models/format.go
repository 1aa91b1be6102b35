package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// 表格渲染按字符数（rune）对齐，保持与既有输出格式兼容。

func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func padLeft(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	right := width - n - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// groupDigits 在整数部分插入千位分隔符，例如 1234567 -> 1,234,567。
func groupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// commaFloat 等价于 Python 的 "{:,.2f}"。
func commaFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	return groupDigits(s[:dot]) + s[dot:]
}

// commaDecimal 等价于 "{:,.2f}"，保留 decimal 精度再取两位。
func commaDecimal(d decimal.Decimal) string {
	s := d.StringFixed(2)
	dot := strings.IndexByte(s, '.')
	return groupDigits(s[:dot]) + s[dot:]
}

// commaInt 等价于 "{:,}"。
func commaInt(n int64) string {
	return groupDigits(strconv.FormatInt(n, 10))
}

// percent 等价于 "{:.2%}"。
func percent(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
