package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"logistics-http-service/internal/domain/services"
	"logistics-http-service/internal/domain/validation"
	"logistics-http-service/internal/error/code"
	"logistics-http-service/internal/error/response"
	Logger "logistics-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"
)

// notFoundError 关联资源不存在，例如订单行引用的商品
type notFoundError struct {
	resource string
}

func (e *notFoundError) Error() string {
	return e.resource + " record not found"
}

// requireParams 读取请求体中 root 键下的参数，只保留允许的标量字段。
// 没有 root 键时使用顶层字段。参数为空时返回 false 并已写入 422 响应。
func requireParams(c *gin.Context, root string, permitted []string) (validation.Attributes, bool) {
	raw, err := readBody(c, root)
	if err != nil {
		Logger.Warning("解析请求体失败: %v", err)
	}

	params := permit(raw, permitted)
	if len(params) == 0 {
		response.ParamMissing(c, root)
		return nil, false
	}
	return params, true
}

// readBody 按 Content-Type 解析 JSON 或表单请求体
func readBody(c *gin.Context, root string) (map[string]any, error) {
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		return readForm(c, root), nil
	default:
		return readJSON(c, root)
	}
}

func readJSON(c *gin.Context, root string) (map[string]any, error) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var body any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&body); err != nil {
		return nil, err
	}

	top, ok := body.(map[string]any)
	if !ok {
		return nil, nil
	}
	if nested, exists := top[root]; exists {
		// root 键存在但不是对象时视为缺少参数
		params, _ := nested.(map[string]any)
		return params, nil
	}
	return top, nil
}

func readForm(c *gin.Context, root string) map[string]any {
	params := make(map[string]any)
	if nested := c.PostFormMap(root); len(nested) > 0 {
		for key, value := range nested {
			params[key] = value
		}
		return params
	}

	// PostFormMap 已经解析过表单
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// permit 只保留允许的标量字段
func permit(raw map[string]any, permitted []string) validation.Attributes {
	params := make(validation.Attributes)
	for _, key := range permitted {
		value, ok := raw[key]
		if !ok {
			continue
		}
		switch value.(type) {
		case map[string]any, []any:
			continue
		}
		params[key] = value
	}
	return params
}

// parseID 解析路径中的ID，不是正整数时按不存在处理
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(param)), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// renderError 把服务层错误映射为响应
func renderError(c *gin.Context, resource string, err error) {
	var (
		fieldErrors validation.Errors
		dependents  *services.DependentsError
		missing     *notFoundError
	)

	switch {
	case errors.As(err, &fieldErrors):
		response.ValidationFailed(c, fieldErrors)
	case errors.As(err, &missing):
		response.NotFound(c, missing.resource)
	case errors.Is(err, services.ErrRecordNotFound):
		response.NotFound(c, resource)
	case errors.Is(err, services.ErrStockExceeded):
		response.Fail(c, code.ErrStockExceeded)
	case errors.As(err, &dependents):
		response.FailWithMessage(c, code.ErrDependentExists, dependents.Error())
	default:
		Logger.WithFields(logrus.Fields{
			"resource": resource,
			"path":     c.Request.URL.Path,
		}).Errorf("请求处理失败: %v", err)
		response.ServerError(c)
	}
}
