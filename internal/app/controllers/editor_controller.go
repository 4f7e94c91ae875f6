package controllers

import (
	"logistics-http-service/internal/domain/models"
	"logistics-http-service/internal/domain/serializers"
	"logistics-http-service/internal/domain/services"
	"logistics-http-service/internal/domain/services/container"

	"github.com/gin-gonic/gin"
)

// HandleEditorFunc 返回处理 Editor 请求的函数，管理员限制由路由决定
func HandleEditorFunc(container *container.ServiceContainer, method string) func(*gin.Context, *services.AuthResult) {
	return handleResource(resourceConfig[models.Editor]{
		root:      "editor",
		service:   container.GetService("editor").(*services.EditorService),
		render:    func(e *models.Editor) any { return serializers.NewEditor(e) },
		renderAll: func(items []models.Editor) any { return serializers.NewEditors(items) },
	}, method)
}
