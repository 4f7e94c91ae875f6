package routes

import (
	"logistics-http-service/internal/app/controllers"
	"logistics-http-service/internal/app/middleware"
	"logistics-http-service/internal/domain/services"
	"logistics-http-service/internal/domain/services/container"
	"logistics-http-service/internal/infrastructure/config"
	"logistics-http-service/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// handlerFactory 按动作名返回认证后的处理函数
type handlerFactory func(container *container.ServiceContainer, method string) func(*gin.Context, *services.AuthResult)

// guard 认证关卡，Gate.Editor 或 Gate.Admin
type guard func(middleware.AuthedHandler) gin.HandlerFunc

// access 资源各动作使用的认证关卡
type access struct {
	index guard
	show  guard
	write guard
}

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(pool *database.ConnectionPool, cfg *config.Config) *gin.Engine {
	r := gin.New()
	metrics := middleware.NewMetrics()
	r.Use(gin.Recovery(), middleware.RequestLogger(), metrics.Middleware())

	// 创建服务容器
	var redisClient *redis.Client
	if cfg.CacheBackend == "redis" {
		redisClient = services.NewRedisClient(cfg)
	}
	serviceContainer := container.NewServiceContainer(pool, cfg, redisClient)

	// 健康检查和指标
	health := controllers.NewHealthCheckController(serviceContainer)
	r.GET("/health", health.Ping)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// 注册路由
	registerRoutes(r, serviceContainer, cfg, metrics)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(r *gin.Engine, container *container.ServiceContainer, cfg *config.Config, metrics *middleware.Metrics) {
	api := r.Group("/api/v1")
	api.Use(middleware.IPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, metrics))

	// 公共路由
	api.POST("/login",
		middleware.CombinedRateLimiter("login", cfg.LoginRateLimitRPS, cfg.LoginRateLimitBurst, metrics),
		controllers.HandleAuthFunc(container, "login"))
	api.POST("/logout", controllers.HandleAuthFunc(container, "logout"))

	gate := middleware.NewGate(container.GetService("auth").(services.InterfaceAuthService), metrics)
	cache := middleware.NewResponseCache(container.GetService("cache").(services.InterfaceCacheService), metrics)

	editorOnly := access{index: gate.Editor, show: gate.Editor, write: gate.Editor}
	adminWrites := access{index: gate.Editor, show: gate.Editor, write: gate.Admin}

	// Editor 管理：只有查看单个 Editor 不需要管理员
	resourceRoutes(api, "/editors", "id", container, controllers.HandleEditorFunc,
		access{index: gate.Admin, show: gate.Editor, write: gate.Admin}, cache, "editors")

	resourceRoutes(api, "/customers", "id", container, controllers.HandleCustomerFunc, editorOnly, cache, "customers")
	resourceRoutes(api, "/travelers", "id", container, controllers.HandleTravelerFunc, adminWrites, cache, "travelers")

	// 航班及其费用，删除航班时级联删除费用
	resourceRoutes(api, "/flights", controllers.FlightIDParam, container, controllers.HandleFlightFunc, adminWrites, cache, "flights", "flight_expenses")
	resourceRoutes(api, "/flights/:"+controllers.FlightIDParam+"/flight_expenses", "id", container, controllers.HandleFlightExpenseFunc, editorOnly, cache, "flight_expenses")

	// 货运及其内容
	resourceRoutes(api, "/shipments", controllers.ShipmentIDParam, container, controllers.HandleShipmentFunc, editorOnly, cache, "shipments", "contents")
	resourceRoutes(api, "/shipments/:"+controllers.ShipmentIDParam+"/contents", "id", container, controllers.HandleContentFunc, editorOnly, cache, "contents")

	// 商品和订单
	resourceRoutes(api, "/products", "id", container, controllers.HandleProductFunc, editorOnly, cache, "products")
	resourceRoutes(api, "/orders", "id", container, controllers.HandleOrderFunc, editorOnly, cache, "orders", "order_products")
	resourceRoutes(api, "/order_products", "id", container, controllers.HandleOrderProductFunc, editorOnly, cache, "order_products")
}

// resourceRoutes 注册一种资源的五个动作，PUT 和 PATCH 都映射到更新。
// idParam 必须与嵌套路由中父资源的参数名一致。
// resources 的第一个是缓存名，其余是写操作后一并清除缓存的资源。
func resourceRoutes(
	api *gin.RouterGroup,
	path string,
	idParam string,
	container *container.ServiceContainer,
	handle handlerFactory,
	guards access,
	cache *middleware.ResponseCache,
	resources ...string,
) {
	name := resources[0]
	group := api.Group(path)
	member := "/:" + idParam

	group.GET("", guards.index(cache.Read(name, handle(container, "index"))))
	group.GET(member, guards.show(cache.Read(name, handle(container, "show"))))

	create := guards.write(cache.Invalidate(handle(container, "create"), resources...))
	update := guards.write(cache.Invalidate(handle(container, "update"), resources...))
	destroy := guards.write(cache.Invalidate(handle(container, "destroy"), resources...))

	group.POST("", create)
	group.PUT(member, update)
	group.PATCH(member, update)
	group.DELETE(member, destroy)
}
