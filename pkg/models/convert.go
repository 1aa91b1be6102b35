package models

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// 响应解码后数值字段可能是 string、float64 或 json.Number，
// 这里统一做一次性类型收敛，失败的字符串直接报错，不做静默替换。

func stringField(raw map[string]any, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

// overviewFloat 资金总览字段：缺失或空字符串按 0 处理，其余字符串必须可解析。
func overviewFloat(raw map[string]any, key string) (float64, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, errors.Wrapf(err, "字段 %s 数值非法: %q", key, t.String())
		}
		return f, nil
	case string:
		if t == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "字段 %s 数值非法: %q", key, t)
		}
		return f, nil
	default:
		return 0, errors.Errorf("字段 %s 类型不支持: %T", key, v)
	}
}

// decimalField 持仓金额/比例字段：字符串严格解析为高精度小数，数值按原样收下。
func decimalField(raw map[string]any, key string) (decimal.Decimal, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return decimal.Zero, nil
	}
	switch t := v.(type) {
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return decimal.Zero, errors.Wrapf(err, "字段 %s 小数非法: %q", key, t)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Zero, errors.Wrapf(err, "字段 %s 小数非法: %q", key, t.String())
		}
		return d, nil
	default:
		return decimal.Zero, errors.Errorf("字段 %s 类型不支持: %T", key, v)
	}
}

// intField 持仓数量类字段：字符串严格解析为整数。
func intField(raw map[string]any, key string) (int64, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch t := v.(type) {
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "字段 %s 整数非法: %q", key, t)
		}
		return n, nil
	case float64:
		return int64(t), nil
	case int:
		return int64(t), nil
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, errors.Wrapf(err, "字段 %s 整数非法: %q", key, t.String())
		}
		return n, nil
	default:
		return 0, errors.Errorf("字段 %s 类型不支持: %T", key, v)
	}
}
