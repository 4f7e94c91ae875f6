package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"logistics-http-service/internal/app/routes"
	"logistics-http-service/internal/domain/services"
	"logistics-http-service/internal/infrastructure/config"
	"logistics-http-service/internal/infrastructure/database"
	Logger "logistics-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 加载.env文件，环境变量也可能通过其他方式设置
	envErr := godotenv.Load()

	// 获取配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志配置
	if err := Logger.SetupLogger(Logger.Options{Dir: cfg.LogDir, Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}
	if envErr != nil {
		Logger.Warning("无法加载.env文件: %v", envErr)
	}
	Logger.Info("当前配置: %s", cfg)

	gin.SetMode(cfg.GinMode)

	// 创建数据库连接池
	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		Logger.Error("无法创建数据库连接池: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.DBMigrationMode == "drop" {
		Logger.Warning("在drop模式下运行，将删除并重建所有表")
	}
	if err := database.Migrate(pool.GetDB(), cfg.DBMigrationMode); err != nil {
		Logger.Error("数据库迁移失败: %v", err)
		os.Exit(1)
	}

	// 确保系统中有管理员账户
	ctx := context.Background()
	created, err := services.NewEditorService(pool.GetDB(), cfg.BcryptCost).
		EnsureSuperEditor(ctx, cfg.DefaultAdminName, cfg.DefaultAdminEmail, cfg.DefaultAdminPassword)
	if err != nil {
		Logger.Error("初始化默认管理员失败: %v", err)
		os.Exit(1)
	}
	if created {
		Logger.Info("已创建默认管理员账户: %s", cfg.DefaultAdminEmail)
	}

	// 初始化路由
	r := routes.SetupRouter(pool, cfg)
	printSystemInfo(pool)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		Logger.Info("服务器启动在: http://%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger.Error("启动服务器失败: %v", err)
			os.Exit(1)
		}
	}()

	// 等待退出信号后优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	Logger.Info("正在关闭服务器...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		Logger.Error("服务器关闭失败: %v", err)
	}
	Logger.Info("服务器已退出")
}

// printSystemInfo 打印系统信息
func printSystemInfo(pool *database.ConnectionPool) {
	stats, err := pool.Stats()
	if err == nil {
		Logger.Info("数据库连接池状态: %+v", stats)
	}

	Logger.Info("系统CPU核心数: %d", runtime.NumCPU())
	Logger.Info("当前Go协程数: %d", runtime.NumGoroutine())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	Logger.Info("系统内存使用: Alloc=%v MiB, Sys=%v MiB", m.Alloc/1024/1024, m.Sys/1024/1024)
}
