package controllers

import (
	"errors"
	"net/http"

	"logistics-http-service/internal/domain/services"
	"logistics-http-service/internal/domain/services/container"
	"logistics-http-service/internal/error/code"
	"logistics-http-service/internal/error/response"
	Logger "logistics-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// InterfaceAuthController 定义认证控制器接口
type InterfaceAuthController interface {
	Login()
	Logout()
}

// AuthController 处理登录和登出请求
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController 创建一个新的认证控制器
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAuthFunc 返回一个处理认证请求的Gin处理函数
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "logout":
			controller.Logout()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid method"})
		}
	}
}

// Login 1. 校验邮箱和密码，成功时返回 201 和令牌
func (c *AuthController) Login() {
	body, err := readBody(c.Ctx, "")
	if err != nil {
		Logger.Warning("解析登录请求失败: %v", err)
	}
	params := permit(body, []string{"email", "password"})

	for _, key := range []string{"password", "email"} {
		if params.Blank(key) {
			response.ParamMissing(c.Ctx, key)
			return
		}
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	token, err := authService.Login(c.Ctx.Request.Context(), params.String("email"), params.String("password"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		response.Fail(c.Ctx, code.ErrLoginFailed)
		return
	}
	if err != nil {
		Logger.Error("登录失败: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	response.Created(c.Ctx, gin.H{"token": token})
}

// Logout 2. 令牌不在服务端保存，登出只做确认
func (c *AuthController) Logout() {
	response.Success(c.Ctx, gin.H{"message": "Logged out successfully"})
}
