package validation

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout 日期字段的存储和输出格式
const DateLayout = "2006-01-02"

var (
	numberPattern  = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
	integerPattern = regexp.MustCompile(`^[+-]?\d+$`)
	leadingNumber  = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)`)
)

// Attributes 待校验的原始字段值，来自请求参数或已有记录。
// 值的类型可能是 string、json.Number、bool、整数、浮点数或 nil。
type Attributes map[string]any

// Merge 返回合并后的新副本，other 中的值覆盖当前值
func (a Attributes) Merge(other Attributes) Attributes {
	merged := make(Attributes, len(a)+len(other))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Has 判断是否提供了该字段
func (a Attributes) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Blank 字段缺失、为 nil 或为空白字符串
func (a Attributes) Blank(key string) bool {
	return isBlank(a[key])
}

// String 返回字段的文本形式
func (a Attributes) String(key string) string {
	return stringify(a[key])
}

// Number 严格解析数值，"12abc" 之类的值视为非数字
func (a Attributes) Number(key string) (float64, bool) {
	switch v := a[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case nil, bool:
		return 0, false
	}

	s := strings.TrimSpace(stringify(a[key]))
	if !numberPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// IsInteger 字段的文本形式是否为整数
func (a Attributes) IsInteger(key string) bool {
	return integerPattern.MatchString(strings.TrimSpace(stringify(a[key])))
}

// Float 返回数值，无法解析时为 0
func (a Attributes) Float(key string) float64 {
	f, _ := a.Number(key)
	return f
}

// Int64 严格解析整数，不是整数或超出 int64 范围时返回 false
func (a Attributes) Int64(key string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(stringify(a[key])), 10, 64)
	return n, err == nil
}

// Int 返回整数值，小数部分被截断，超出范围的值取边界
func (a Attributes) Int(key string) int64 {
	if n, ok := a.Int64(key); ok {
		return n
	}
	f := a.Float(key)
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// LenientFloat 宽松解析：取字符串开头的数字部分，没有数字时为 0
func (a Attributes) LenientFloat(key string) float64 {
	if f, ok := a.Number(key); ok {
		return f
	}
	m := leadingNumber.FindString(strings.TrimSpace(stringify(a[key])))
	if m == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(m, 64)
	return f
}

// Uint 解析外键ID，只接受正整数
func (a Attributes) Uint(key string) (uint, bool) {
	if !a.IsInteger(key) {
		return 0, false
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(stringify(a[key])), "+"), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// Bool 解析布尔值，接受 true/false 以及常见的文本形式
func (a Attributes) Bool(key string) (bool, bool) {
	switch v := a[key].(type) {
	case bool:
		return v, true
	case nil:
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(stringify(a[key]))) {
	case "true", "t", "1":
		return true, true
	case "false", "f", "0":
		return false, true
	}
	return false, false
}

// Date 解析日期，接受 YYYY-MM-DD 和 RFC3339
func (a Attributes) Date(key string) (time.Time, bool) {
	if t, ok := a[key].(time.Time); ok {
		return t, true
	}
	s := strings.TrimSpace(stringify(a[key]))
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case json.Number:
		return strings.TrimSpace(string(val)) == ""
	case *string:
		return val == nil || strings.TrimSpace(*val) == ""
	}
	return false
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case *string:
		if val == nil {
			return ""
		}
		return *val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		return val.Format(DateLayout)
	}
	return ""
}
