package filter

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Kind 决定查询参数如何转换为列值
type Kind int

const (
	String Kind = iota
	Integer
	Decimal
	Boolean
	Date
)

// Field 一个允许过滤的查询参数及其对应的列
type Field struct {
	Param  string
	Column string
	Kind   Kind
}

// Set 某个资源允许的过滤字段列表
type Set []Field

// Of 构造过滤字段，参数名与列名相同
func Of(kind Kind, params ...string) Set {
	set := make(Set, 0, len(params))
	for _, p := range params {
		set = append(set, Field{Param: p, Column: p, Kind: kind})
	}
	return set
}

// With 合并多个字段列表
func (s Set) With(other ...Set) Set {
	merged := append(Set{}, s...)
	for _, o := range other {
		merged = append(merged, o...)
	}
	return merged
}

// Predicate 单个等值条件
type Predicate struct {
	Column string
	Value  any
}

// Predicates 把查询参数转换为等值条件。
// 不在列表中的参数和空值被忽略；无法解析的值返回 ok=false，表示结果必然为空。
func (s Set) Predicates(query url.Values) (preds []Predicate, ok bool) {
	for _, f := range s {
		raw := strings.TrimSpace(query.Get(f.Param))
		if raw == "" {
			continue
		}
		value, valid := f.parse(raw)
		if !valid {
			return nil, false
		}
		preds = append(preds, Predicate{Column: f.Column, Value: value})
	}
	return preds, true
}

// Scope 返回可用于 gorm Scopes 的过滤函数
func (s Set) Scope(query url.Values) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		preds, ok := s.Predicates(query)
		if !ok {
			return db.Where("1 = 0")
		}
		for _, p := range preds {
			db = db.Where(clause.Eq{Column: clause.Column{Name: p.Column}, Value: p.Value})
		}
		return db
	}
}

func (f Field) parse(raw string) (any, bool) {
	switch f.Kind {
	case Integer:
		n, err := strconv.ParseInt(raw, 10, 64)
		return n, err == nil
	case Decimal:
		n, err := strconv.ParseFloat(raw, 64)
		return n, err == nil
	case Boolean:
		b, err := strconv.ParseBool(raw)
		return b, err == nil
	case Date:
		t, err := time.Parse("2006-01-02", raw)
		return t, err == nil
	default:
		return raw, true
	}
}
