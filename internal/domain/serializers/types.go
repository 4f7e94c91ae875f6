package serializers

import (
	"strconv"
	"strings"
	"time"
)

// Decimal 总是以浮点字面量输出，10 输出为 10.0
type Decimal float64

func (d Decimal) MarshalJSON() ([]byte, error) {
	s := strconv.FormatFloat(float64(d), 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return []byte(s), nil
}

// Date 以 YYYY-MM-DD 输出，零值输出为 null
type Date time.Time

func (d Date) MarshalJSON() ([]byte, error) {
	t := time.Time(d)
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format("2006-01-02") + `"`), nil
}

// collection 把实体切片映射为输出切片，空集合输出 []
func collection[T any, S any](items []T, one func(*T) S) []S {
	out := make([]S, 0, len(items))
	for i := range items {
		out = append(out, one(&items[i]))
	}
	return out
}
