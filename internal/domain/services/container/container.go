package container

import (
	"context"
	"sync"
	"time"

	"logistics-http-service/internal/domain/services"
	"logistics-http-service/internal/infrastructure/config"
	"logistics-http-service/internal/infrastructure/database"
	Logger "logistics-http-service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	pool   *database.ConnectionPool
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService   services.InterfaceJWTService
	authService  services.InterfaceAuthService
	cacheService services.InterfaceCacheService

	// 业务服务
	editorService        *services.EditorService
	customerService      *services.CustomerService
	travelerService      *services.TravelerService
	flightService        *services.FlightService
	flightExpenseService *services.FlightExpenseService
	shipmentService      *services.ShipmentService
	contentService       *services.ContentService
	productService       *services.ProductService
	orderService         *services.OrderService
	orderProductService  *services.OrderProductService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(pool *database.ConnectionPool, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if pool == nil || pool.GetDB() == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接，不可用时退回进程内缓存
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			Logger.Warning("Redis连接测试失败: %v，改用内存缓存", err)
			redisClient = nil
			if cfg.CacheBackend == "redis" {
				fallback := *cfg
				fallback.CacheBackend = "memory"
				cfg = &fallback
			}
		}
	}

	container := &ServiceContainer{
		pool:   pool,
		db:     pool.GetDB(),
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化缓存服务
	cache, err := services.NewCacheService(c.config, c.redis)
	if err != nil {
		Logger.Warning("缓存服务初始化失败: %v，响应缓存已关闭", err)
		noop := *c.config
		noop.CacheBackend = "none"
		cache, _ = services.NewCacheService(&noop, nil)
	}
	c.cacheService = cache

	// 初始化业务服务
	c.editorService = services.NewEditorService(c.db, c.config.BcryptCost)
	c.customerService = services.NewCustomerService(c.db)
	c.travelerService = services.NewTravelerService(c.db)
	c.flightService = services.NewFlightService(c.db)
	c.flightExpenseService = services.NewFlightExpenseService(c.db)
	c.shipmentService = services.NewShipmentService(c.db)
	c.contentService = services.NewContentService(c.db)
	c.productService = services.NewProductService(c.db)
	c.orderService = services.NewOrderService(c.db)
	c.orderProductService = services.NewOrderProductService(c.db, c.productService)

	// 初始化认证服务
	c.jwtService = services.NewJWTService(c.config.JWTSecretKey)
	c.authService = services.NewAuthService(c.db, c.jwtService, c.editorService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "pool":
		return c.pool
	case "jwt":
		return c.jwtService
	case "auth":
		return c.authService
	case "cache":
		return c.cacheService
	case "editor":
		return c.editorService
	case "customer":
		return c.customerService
	case "traveler":
		return c.travelerService
	case "flight":
		return c.flightService
	case "flight_expense":
		return c.flightExpenseService
	case "shipment":
		return c.shipmentService
	case "content":
		return c.contentService
	case "product":
		return c.productService
	case "order":
		return c.orderService
	case "order_product":
		return c.orderProductService
	default:
		return nil
	}
}
