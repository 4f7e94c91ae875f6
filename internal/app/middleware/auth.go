package middleware

import (
	"errors"

	"logistics-http-service/internal/domain/services"
	"logistics-http-service/internal/error/code"
	"logistics-http-service/internal/error/response"
	Logger "logistics-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthedHandler 认证通过后执行的处理函数，认证结果显式传入
type AuthedHandler func(*gin.Context, *services.AuthResult)

// Gate 把认证和授权包装在处理函数外层
type Gate struct {
	auth    services.InterfaceAuthService
	metrics *Metrics
}

// NewGate 创建认证关卡，metrics 可以为 nil
func NewGate(auth services.InterfaceAuthService, metrics *Metrics) *Gate {
	return &Gate{auth: auth, metrics: metrics}
}

// Editor 任何已认证的 Editor 都可访问
func (g *Gate) Editor(next AuthedHandler) gin.HandlerFunc {
	return g.guard(false, next)
}

// Admin 仅 super_editor 可访问
func (g *Gate) Admin(next AuthedHandler) gin.HandlerFunc {
	return g.guard(true, next)
}

func (g *Gate) guard(requireAdmin bool, next AuthedHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := g.auth.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err == nil {
			err = g.auth.Authorize(result, requireAdmin)
		}
		if err != nil {
			g.reject(c, err)
			return
		}

		c.Set(EditorIDKey, result.Editor.ID)
		next(c, result)
	}
}

// reject 把认证错误映射为 401 响应
func (g *Gate) reject(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTokenDecode):
		g.metrics.authFailed("invalid_token")
		response.Fail(c, code.ErrTokenInvalid)
	case errors.Is(err, services.ErrEditorNotFound):
		g.metrics.authFailed("unknown_editor")
		response.Fail(c, code.ErrEditorNotFound)
	case errors.Is(err, services.ErrAdminOnly):
		g.metrics.authFailed("admin_only")
		response.Fail(c, code.ErrAdminOnly)
	default:
		Logger.Error("认证失败: %v", err)
		response.ServerError(c)
	}
}
