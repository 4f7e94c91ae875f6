package validation

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore 用内存集合模拟数据库查询
type fakeStore struct {
	rows map[string]map[string]uint // table.column -> value -> id
}

func (s *fakeStore) Exists(_ context.Context, table, column string, value any, excludeID uint) (bool, error) {
	id, ok := s.rows[table+"."+column][stringify(value)]
	if !ok {
		return false, nil
	}
	return id != excludeID, nil
}

func run(t *testing.T, attrs Attributes, id uint, rules ...Rule) Errors {
	t.Helper()
	store := &fakeStore{rows: map[string]map[string]uint{
		"customers.phone": {"0123456789": 1},
		"orders.id":       {"3": 3},
	}}
	errs, err := Validate(&Context{Attrs: attrs, ID: id, Store: store}, rules)
	require.NoError(t, err)
	return errs
}

func TestPresenceAndFormatAccumulate(t *testing.T) {
	errs := run(t, Attributes{"name": "  "},
		0,
		Presence("name", "phone"),
		Format("phone", PhonePattern, MsgInvalidPhone),
	)

	assert.Equal(t, Errors{
		"name":  {MsgBlank},
		"phone": {MsgBlank, MsgInvalidPhone},
	}, errs)
}

func TestPhoneFormat(t *testing.T) {
	for _, phone := range []string{"123456789", "12345678901", "12345abcde", "+123456789"} {
		errs := run(t, Attributes{"phone": phone}, 0, Format("phone", PhonePattern, MsgInvalidPhone))
		assert.Equal(t, []string{MsgInvalidPhone}, errs["phone"], phone)
	}
	errs := run(t, Attributes{"phone": json.Number("1234567890")}, 0, Format("phone", PhonePattern, MsgInvalidPhone))
	assert.True(t, errs.Empty())
}

func TestEmailFormatIgnoresCase(t *testing.T) {
	rule := Format("email", EmailPattern, MsgInvalidEmail)
	assert.True(t, run(t, Attributes{"email": "Ismail.Test+x@Example.COM"}, 0, rule).Empty())
	assert.Equal(t, []string{MsgInvalidEmail}, run(t, Attributes{"email": "not-an-email"}, 0, rule)["email"])
}

func TestNumericality(t *testing.T) {
	cases := []struct {
		name  string
		value any
		rule  Rule
		want  []string
	}{
		{"missing", nil, Numericality("x"), []string{MsgNotANumber}},
		{"text", "abc", Numericality("x"), []string{MsgNotANumber}},
		{"trailing garbage", "12abc", Numericality("x"), []string{MsgNotANumber}},
		{"not integer", json.Number("1.5"), Numericality("x", OnlyInteger()), []string{MsgNotAnInteger}},
		{"integer string", "42", Numericality("x", OnlyInteger()), nil},
		{"zero not greater", json.Number("0"), Numericality("x", GreaterThan(0)), []string{"must be greater than 0"}},
		{"negative", "-1", Numericality("x", GreaterThanOrEqualTo(0)), []string{"must be greater than or equal to 0"}},
		{"zero allowed", 0.0, Numericality("x", GreaterThanOrEqualTo(0)), nil},
		{"integer overflow", "99999999999999999999", Numericality("x", OnlyInteger()), []string{MsgOutOfRange}},
		{"integer overflow number", json.Number("-99999999999999999999"), Numericality("x", OnlyInteger()), []string{MsgOutOfRange}},
		{"max int64", "9223372036854775807", Numericality("x", OnlyInteger()), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := run(t, Attributes{"x": tc.value}, 0, tc.rule)
			assert.Equal(t, tc.want, errs["x"])
		})
	}
}

func TestPresenceWithNumericalityOnBlank(t *testing.T) {
	errs := run(t, Attributes{"quantity": " "}, 0, Presence("quantity"), Numericality("quantity", GreaterThan(0)))
	assert.Equal(t, []string{MsgBlank, MsgNotANumber}, errs["quantity"])
}

func TestLengthOnCreateAndUpdate(t *testing.T) {
	rules := []Rule{
		OnCreate(Presence("password"), Length("password", 6, 72)),
		OnUpdate(AllowBlank("password", Length("password", 6, 72))),
	}

	created := run(t, Attributes{}, 0, rules...)
	assert.Equal(t, []string{MsgBlank, "is too short (minimum is 6 characters)"}, created["password"])

	updated := run(t, Attributes{}, 9, rules...)
	assert.True(t, updated.Empty())

	short := run(t, Attributes{"password": "abc"}, 9, rules...)
	assert.Equal(t, []string{"is too short (minimum is 6 characters)"}, short["password"])
}

func TestMaxBytesCountsBytes(t *testing.T) {
	rule := MaxBytes("password", 72)

	// 24 个三字节字符正好 72 字节
	assert.True(t, run(t, Attributes{"password": strings.Repeat("密", 24)}, 0, rule).Empty())
	assert.True(t, run(t, Attributes{"password": strings.Repeat("a", 72)}, 0, rule).Empty())

	errs := run(t, Attributes{"password": strings.Repeat("密", 30)}, 0, rule, Length("password", 6, 0))
	assert.Equal(t, []string{"is too long (maximum is 72 characters)"}, errs["password"])
}

func TestInclusionAndBoolean(t *testing.T) {
	errs := run(t, Attributes{"content_type": "toys"}, 0,
		Inclusion("content_type", []string{"shoes", "clothes"}),
		Boolean("super_editor"),
	)
	assert.Equal(t, []string{MsgNotIncluded}, errs["content_type"])
	assert.Equal(t, []string{MsgNotIncluded}, errs["super_editor"])

	ok := run(t, Attributes{"super_editor": "false"}, 0, Boolean("super_editor"))
	assert.True(t, ok.Empty())
}

func TestUniquenessExcludesSelf(t *testing.T) {
	rule := Uniqueness("phone", "customers")
	assert.Equal(t, []string{MsgTaken}, run(t, Attributes{"phone": "0123456789"}, 0, rule)["phone"])
	assert.True(t, run(t, Attributes{"phone": "0123456789"}, 1, rule).Empty())
}

func TestBelongsTo(t *testing.T) {
	rule := BelongsTo("order", "order_id", "orders")
	assert.True(t, run(t, Attributes{"order_id": json.Number("3")}, 0, rule).Empty())
	assert.Equal(t, []string{MsgMustExist}, run(t, Attributes{"order_id": "invalid_id"}, 0, rule)["order"])
	assert.Equal(t, []string{MsgMustExist}, run(t, Attributes{"order_id": "4"}, 0, rule)["order"])
}

func TestDateRule(t *testing.T) {
	rule := Date("flight_date")
	assert.True(t, run(t, Attributes{"flight_date": "2024-05-01"}, 0, rule).Empty())
	assert.True(t, run(t, Attributes{}, 0, rule).Empty())
	assert.Equal(t, []string{MsgInvalidDate}, run(t, Attributes{"flight_date": "05/01/2024"}, 0, rule)["flight_date"])
}

func TestIntParsesExactly(t *testing.T) {
	attrs := Attributes{
		"big":   "9007199254740993",
		"plus":  "+42",
		"float": json.Number("7.9"),
		"huge":  "99999999999999999999",
		"none":  nil,
	}
	// 超过 2^53 的整数不经过浮点数转换
	assert.Equal(t, int64(9007199254740993), attrs.Int("big"))
	assert.Equal(t, int64(42), attrs.Int("plus"))
	assert.Equal(t, int64(7), attrs.Int("float"))
	assert.Equal(t, int64(math.MaxInt64), attrs.Int("huge"))
	assert.Equal(t, int64(0), attrs.Int("none"))

	_, ok := attrs.Int64("huge")
	assert.False(t, ok)
}

func TestLenientFloat(t *testing.T) {
	attrs := Attributes{"a": "12.5kg", "b": "abc", "c": json.Number("3"), "d": nil}
	assert.Equal(t, 12.5, attrs.LenientFloat("a"))
	assert.Equal(t, 0.0, attrs.LenientFloat("b"))
	assert.Equal(t, 3.0, attrs.LenientFloat("c"))
	assert.Equal(t, 0.0, attrs.LenientFloat("d"))
}

func TestErrorsMessageIsSorted(t *testing.T) {
	errs := Errors{"phone": {MsgTaken}, "name": {MsgBlank}}
	assert.Equal(t, "validation failed: name can't be blank; phone has already been taken", errs.Error())
}
