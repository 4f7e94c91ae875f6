package validation

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// 校验失败的提示信息
const (
	MsgBlank          = "can't be blank"
	MsgNotANumber     = "is not a number"
	MsgNotAnInteger   = "must be an integer"
	MsgOutOfRange     = "is out of range"
	MsgTaken          = "has already been taken"
	MsgMustExist      = "must exist"
	MsgNotIncluded    = "is not included in the list"
	MsgInvalidDate    = "is not a valid date"
	MsgInvalidEmail   = "must be a valid email"
	MsgInvalidPhone   = "must be a valid 10-digit phone number"
	msgGreaterThan    = "must be greater than %s"
	msgGreaterOrEqual = "must be greater than or equal to %s"
	msgTooShort       = "is too short (minimum is %d characters)"
	msgTooLong        = "is too long (maximum is %d characters)"
)

var (
	// EmailPattern 邮箱格式，忽略大小写
	EmailPattern = regexp.MustCompile(`(?i)^[\w+\-.]+@[a-z\d\-.]+\.[a-z]+$`)
	// PhonePattern 10位数字的电话号码
	PhonePattern = regexp.MustCompile(`^\d{10}$`)
)

// Errors 字段名到错误信息列表的映射，所有规则的错误会一起返回
type Errors map[string][]string

// Add 追加一条字段错误
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Empty 是否没有任何错误
func (e Errors) Empty() bool {
	return len(e) == 0
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+" "+strings.Join(e[field], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Store 提供唯一性和关联存在性检查所需的查询
type Store interface {
	Exists(ctx context.Context, table, column string, value any, excludeID uint) (bool, error)
}

// Context 一次校验的输入
type Context struct {
	Ctx   context.Context
	Attrs Attributes
	ID    uint // 更新时为记录ID，创建时为0
	Store Store
}

// Creating 是否为创建操作
func (c *Context) Creating() bool {
	return c.ID == 0
}

// Rule 校验规则，只有查询出错时才返回 error
type Rule interface {
	Apply(c *Context, errs Errors) error
}

// RuleFunc 函数形式的校验规则
type RuleFunc func(c *Context, errs Errors) error

func (f RuleFunc) Apply(c *Context, errs Errors) error {
	return f(c, errs)
}

// Validate 依次执行所有规则，收集全部错误
func Validate(c *Context, rules []Rule) (Errors, error) {
	if c.Ctx == nil {
		c.Ctx = context.Background()
	}
	errs := Errors{}
	for _, rule := range rules {
		if err := rule.Apply(c, errs); err != nil {
			return nil, err
		}
	}
	return errs, nil
}

// Presence 字段不能为空
func Presence(fields ...string) Rule {
	return RuleFunc(func(c *Context, errs Errors) error {
		for _, field := range fields {
			if c.Attrs.Blank(field) {
				errs.Add(field, MsgBlank)
			}
		}
		return nil
	})
}

type numericality struct {
	field          string
	onlyInteger    bool
	greaterThan    *float64
	greaterOrEqual *float64
}

// NumericOption 数值规则的可选约束
type NumericOption func(*numericality)

// OnlyInteger 只允许整数
func OnlyInteger() NumericOption {
	return func(n *numericality) { n.onlyInteger = true }
}

// GreaterThan 必须大于 v
func GreaterThan(v float64) NumericOption {
	return func(n *numericality) { n.greaterThan = &v }
}

// GreaterThanOrEqualTo 必须大于等于 v
func GreaterThanOrEqualTo(v float64) NumericOption {
	return func(n *numericality) { n.greaterOrEqual = &v }
}

// Numericality 字段必须是数字，空值同样视为非数字
func Numericality(field string, opts ...NumericOption) Rule {
	n := &numericality{field: field}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *numericality) Apply(c *Context, errs Errors) error {
	value, ok := c.Attrs.Number(n.field)
	if !ok {
		errs.Add(n.field, MsgNotANumber)
		return nil
	}
	if n.onlyInteger {
		if !c.Attrs.IsInteger(n.field) {
			errs.Add(n.field, MsgNotAnInteger)
			return nil
		}
		if _, ok := c.Attrs.Int64(n.field); !ok {
			errs.Add(n.field, MsgOutOfRange)
			return nil
		}
	}
	if n.greaterThan != nil && !(value > *n.greaterThan) {
		errs.Add(n.field, fmt.Sprintf(msgGreaterThan, formatNumber(*n.greaterThan)))
	}
	if n.greaterOrEqual != nil && !(value >= *n.greaterOrEqual) {
		errs.Add(n.field, fmt.Sprintf(msgGreaterOrEqual, formatNumber(*n.greaterOrEqual)))
	}
	return nil
}

// Format 字段文本必须匹配正则，空值同样视为不匹配
func Format(field string, pattern *regexp.Regexp, message string) Rule {
	return RuleFunc(func(c *Context, errs Errors) error {
		if !pattern.MatchString(c.Attrs.String(field)) {
			errs.Add(field, message)
		}
		return nil
	})
}

// Length 字段长度（按字符计）必须在 [min, max] 之内，max 为 0 时不限制上限
func Length(field string, min, max int) Rule {
	return RuleFunc(func(c *Context, errs Errors) error {
		length := utf8.RuneCountInString(c.Attrs.String(field))
		if min > 0 && length < min {
			errs.Add(field, fmt.Sprintf(msgTooShort, min))
		}
		if max > 0 && length > max {
			errs.Add(field, fmt.Sprintf(msgTooLong, max))
		}
		return nil
	})
}

// MaxBytes 字段按字节计的长度不能超过 max，bcrypt 只接受 72 字节以内的密码
func MaxBytes(field string, max int) Rule {
	return RuleFunc(func(c *Context, errs Errors) error {
		if len(c.Attrs.String(field)) > max {
			errs.Add(field, fmt.Sprintf(msgTooLong, max))
		}
		return nil
	})
}

// Inclusion 字段必须是给定取值之一
func Inclusion(field string, values []string) Rule {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return RuleFunc(func(c *Context, errs Errors) error {
		if _, ok := allowed[c.Attrs.String(field)]; !ok {
			errs.Add(field, MsgNotIncluded)
		}
		return nil
	})
}

// Boolean 字段必须是 true 或 false
func Boolean(field string) Rule {
	return RuleFunc(func(c *Context, errs Errors) error {
		if _, ok := c.Attrs.Bool(field); !ok {
			errs.Add(field, MsgNotIncluded)
		}
		return nil
	})
}

// Date 非空的日期字段必须能被解析
func Date(field string) Rule {
	return RuleFunc(func(c *Context, errs Errors) error {
		if c.Attrs.Blank(field) {
			return nil
		}
		if _, ok := c.Attrs.Date(field); !ok {
			errs.Add(field, MsgInvalidDate)
		}
		return nil
	})
}

// Uniqueness 字段值在表内唯一，更新时排除记录自身
func Uniqueness(field, table string) Rule {
	return RuleFunc(func(c *Context, errs Errors) error {
		if c.Attrs.Blank(field) {
			return nil
		}
		taken, err := c.Store.Exists(c.Ctx, table, field, c.Attrs.String(field), c.ID)
		if err != nil {
			return err
		}
		if taken {
			errs.Add(field, MsgTaken)
		}
		return nil
	})
}

// BelongsTo 外键必须指向存在的记录，错误挂在关联名上
func BelongsTo(association, field, table string) Rule {
	return RuleFunc(func(c *Context, errs Errors) error {
		id, ok := c.Attrs.Uint(field)
		if !ok {
			errs.Add(association, MsgMustExist)
			return nil
		}
		exists, err := c.Store.Exists(c.Ctx, table, "id", id, 0)
		if err != nil {
			return err
		}
		if !exists {
			errs.Add(association, MsgMustExist)
		}
		return nil
	})
}

// AllowBlank 字段为空时跳过内部规则
func AllowBlank(field string, rules ...Rule) Rule {
	return RuleFunc(func(c *Context, errs Errors) error {
		if c.Attrs.Blank(field) {
			return nil
		}
		return apply(c, errs, rules)
	})
}

// OnCreate 只在创建时执行
func OnCreate(rules ...Rule) Rule {
	return RuleFunc(func(c *Context, errs Errors) error {
		if !c.Creating() {
			return nil
		}
		return apply(c, errs, rules)
	})
}

// OnUpdate 只在更新时执行
func OnUpdate(rules ...Rule) Rule {
	return RuleFunc(func(c *Context, errs Errors) error {
		if c.Creating() {
			return nil
		}
		return apply(c, errs, rules)
	})
}

func apply(c *Context, errs Errors, rules []Rule) error {
	for _, rule := range rules {
		if err := rule.Apply(c, errs); err != nil {
			return err
		}
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
