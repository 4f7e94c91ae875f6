package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logistics-http-service/internal/error/code"
)

// ErrorResponse 错误响应格式
type ErrorResponse struct {
	Error string `json:"error"`
}

// Success 成功响应，直接返回序列化后的实体
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 删除成功响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail 失败响应
func Fail(c *gin.Context, errorCode int) {
	FailWithMessage(c, errorCode, code.GetMessage(errorCode))
}

// FailWithMessage 失败响应（自定义消息）
func FailWithMessage(c *gin.Context, errorCode int, message string) {
	c.AbortWithStatusJSON(code.GetStatus(errorCode), ErrorResponse{Error: message})
}

// ParamMissing 缺少必填参数
func ParamMissing(c *gin.Context, param string) {
	FailWithMessage(c, code.ErrParamMissing, code.GetMessage(code.ErrParamMissing)+": "+param)
}

// ValidationFailed 字段校验失败，按字段返回错误列表
func ValidationFailed(c *gin.Context, fieldErrors map[string][]string) {
	c.AbortWithStatusJSON(code.GetStatus(code.ErrValidation), fieldErrors)
}

// NotFound 资源不存在响应
func NotFound(c *gin.Context, resource string) {
	message := code.GetMessage(code.ErrRecordNotFound)
	if resource != "" {
		message = resource + " record not found"
	}
	FailWithMessage(c, code.ErrRecordNotFound, message)
}

// ServerError 服务器错误响应，具体原因只写日志
func ServerError(c *gin.Context) {
	Fail(c, code.ErrDatabase)
}
