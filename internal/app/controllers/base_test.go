package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"logistics-http-service/internal/domain/services"
	"logistics-http-service/internal/domain/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(body, contentType string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", contentType)
	return c, w
}

func TestRequireParamsJSON(t *testing.T) {
	permitted := []string{"name", "phone"}

	c, _ := newContext(`{"customer":{"name":"a","phone":"0555123456","id":9,"tags":["x"]}}`, "application/json")
	params, ok := requireParams(c, "customer", permitted)
	require.True(t, ok)
	assert.Equal(t, validation.Attributes{"name": "a", "phone": "0555123456"}, params)

	c, _ = newContext(`{"name":"flat"}`, "application/json")
	params, ok = requireParams(c, "customer", permitted)
	require.True(t, ok)
	assert.Equal(t, "flat", params["name"])

	for _, body := range []string{``, `[]`, `{"customer":"x"}`, `{"customer":{}}`, `{"customer":{"name":{"a":1}}}`, `not json`} {
		c, w := newContext(body, "application/json")
		_, ok := requireParams(c, "customer", permitted)
		assert.False(t, ok, body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, body)
		assert.JSONEq(t, `{"error":"param is missing or the value is empty: customer"}`, w.Body.String(), body)
	}
}

func TestRequireParamsForm(t *testing.T) {
	c, _ := newContext("customer[name]=a&customer[admin]=1", "application/x-www-form-urlencoded")
	params, ok := requireParams(c, "customer", []string{"name"})
	require.True(t, ok)
	assert.Equal(t, validation.Attributes{"name": "a"}, params)

	c, _ = newContext("name=b", "application/x-www-form-urlencoded")
	params, ok = requireParams(c, "customer", []string{"name"})
	require.True(t, ok)
	assert.Equal(t, "b", params["name"])
}

func TestParseID(t *testing.T) {
	for raw, want := range map[string]uint{"1": 1, "42": 42, "0": 0, "-3": 0, "abc": 0, "": 0} {
		c, _ := newContext("", "")
		c.Params = gin.Params{{Key: "id", Value: raw}}
		id, ok := parseID(c, "id")
		assert.Equal(t, want != 0, ok, raw)
		assert.Equal(t, want, id, raw)
	}
}

func TestRenderError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{validation.Errors{"name": {validation.MsgBlank}}, http.StatusUnprocessableEntity, `{"name":["can't be blank"]}`},
		{services.ErrRecordNotFound, http.StatusNotFound, `{"error":"customer record not found"}`},
		{&notFoundError{resource: "product"}, http.StatusNotFound, `{"error":"product record not found"}`},
		{services.ErrStockExceeded, http.StatusUnprocessableEntity, `{"error":"Quantity exceeds available stock"}`},
		{&services.DependentsError{Association: "flights"}, http.StatusUnprocessableEntity, `{"error":"Cannot delete record because dependent flights exist"}`},
		{errors.New("disk on fire"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tc := range cases {
		c, w := newContext("", "")
		renderError(c, "customer", tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		assert.JSONEq(t, tc.body, w.Body.String())
	}
}
