package controllers

import (
	"logistics-http-service/internal/domain/services/container"
	"logistics-http-service/internal/error/code"
	"logistics-http-service/internal/error/response"
	"logistics-http-service/internal/infrastructure/database"
	Logger "logistics-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// HealthCheckController 健康检查控制器
type HealthCheckController struct {
	pool *database.ConnectionPool
}

// NewHealthCheckController 创建健康检查控制器实例
func NewHealthCheckController(container *container.ServiceContainer) *HealthCheckController {
	pool, _ := container.GetService("pool").(*database.ConnectionPool)
	return &HealthCheckController{pool: pool}
}

// Ping 检查数据库连接并返回连接池状态
func (h *HealthCheckController) Ping(c *gin.Context) {
	if err := h.pool.HealthCheck(c.Request.Context()); err != nil {
		Logger.Error("数据库健康检查失败: %v", err)
		response.Fail(c, code.ErrDatabaseUnavailable)
		return
	}

	stats, err := h.pool.Stats()
	if err != nil {
		Logger.Warning("获取连接池状态失败: %v", err)
	}
	response.Success(c, gin.H{
		"status":   "healthy",
		"driver":   h.pool.Driver,
		"database": stats,
	})
}
