package middleware

import (
	"sync"
	"time"

	"logistics-http-service/internal/error/code"
	"logistics-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// RateLimiterConfig 限流器配置
type RateLimiterConfig struct {
	Name       string                    // 指标中的限流器名称
	Rate       float64                   // 每秒允许的请求数，<= 0 表示不限流
	Burst      int                       // 允许的突发请求数
	ExpiryTime time.Duration             // 空闲限流器的过期时间
	MaxKeys    int                       // 最多同时跟踪的键数量
	LimitType  string                    // 限流类型: "ip", "combined"
	Metrics    *Metrics                  // 可以为 nil
	KeyFunc    func(*gin.Context) string // 自定义键生成函数
}

// DefaultRateLimiterConfig 默认限流器配置
var DefaultRateLimiterConfig = RateLimiterConfig{
	Name:       "ip",
	Burst:      5,
	ExpiryTime: 1 * time.Hour,
	MaxKeys:    10000,
	LimitType:  "ip",
}

// limiterStore 按键保存令牌桶，过期和容量淘汰由 LRU 负责
type limiterStore struct {
	cfg      RateLimiterConfig
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
}

func newLimiterStore(cfg RateLimiterConfig) *limiterStore {
	return &limiterStore{
		cfg:      cfg,
		limiters: expirable.NewLRU[string, *rate.Limiter](cfg.MaxKeys, nil, cfg.ExpiryTime),
	}
}

// get 返回键对应的限流器，不存在时创建。同一个键并发的首个请求共享同一个限流器
func (s *limiterStore) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limiter, ok := s.limiters.Get(key); ok {
		return limiter
	}
	limiter := rate.NewLimiter(rate.Limit(s.cfg.Rate), s.cfg.Burst)
	s.limiters.Add(key, limiter)
	return limiter
}

// RateLimiter 创建限流中间件
func RateLimiter(config ...RateLimiterConfig) gin.HandlerFunc {
	// 使用默认配置或自定义配置
	cfg := DefaultRateLimiterConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Rate <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	// 确保配置有效
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultRateLimiterConfig.Burst
	}
	if cfg.ExpiryTime <= 0 {
		cfg.ExpiryTime = DefaultRateLimiterConfig.ExpiryTime
	}
	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = DefaultRateLimiterConfig.MaxKeys
	}
	if cfg.LimitType == "" {
		cfg.LimitType = DefaultRateLimiterConfig.LimitType
	}
	if cfg.Name == "" {
		cfg.Name = cfg.LimitType
	}

	store := newLimiterStore(cfg)

	return func(c *gin.Context) {
		var key string

		// 根据限流类型选择键
		switch {
		case cfg.KeyFunc != nil:
			key = cfg.KeyFunc(c)
		case cfg.LimitType == "combined":
			key = c.ClientIP() + ":" + c.Request.URL.Path
		default:
			key = c.ClientIP()
		}

		if !store.get(key).Allow() {
			cfg.Metrics.limited(cfg.Name)
			response.Fail(c, code.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}

// IPRateLimiter 按IP限流
func IPRateLimiter(rate float64, burst int, metrics *Metrics) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Name:      "ip",
		Rate:      rate,
		Burst:     burst,
		LimitType: "ip",
		Metrics:   metrics,
	})
}

// CombinedRateLimiter 按IP和路径组合限流，用于登录等敏感接口
func CombinedRateLimiter(name string, rate float64, burst int, metrics *Metrics) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Name:      name,
		Rate:      rate,
		Burst:     burst,
		LimitType: "combined",
		Metrics:   metrics,
	})
}
