package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics-http-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// InterfaceCacheService 响应缓存的存储接口
type InterfaceCacheService interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	DeletePrefix(ctx context.Context, prefix string) error
	Enabled() bool
}

// NewCacheService 根据配置创建缓存服务
func NewCacheService(cfg *config.Config, client *redis.Client) (InterfaceCacheService, error) {
	switch cfg.CacheBackend {
	case "redis":
		if client == nil {
			return nil, errors.New("redis cache backend requires a redis client")
		}
		return NewRedisCacheService(client, cfg.CacheTTL), nil
	case "memory":
		return NewMemoryCacheService(cfg.CacheSize, cfg.CacheTTL), nil
	case "none", "":
		return noopCacheService{}, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.CacheBackend)
	}
}

// NewRedisClient creates a Redis client from configuration
func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// RedisCacheService 基于 Redis 的缓存
type RedisCacheService struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCacheService creates a new Redis cache service
func NewRedisCacheService(client *redis.Client, ttl time.Duration) *RedisCacheService {
	return &RedisCacheService{client: client, ttl: ttl}
}

func (s *RedisCacheService) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *RedisCacheService) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, s.ttl).Err()
}

// DeletePrefix 用 SCAN 遍历匹配前缀的键并删除
func (s *RedisCacheService) DeletePrefix(ctx context.Context, prefix string) error {
	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *RedisCacheService) Enabled() bool { return true }

// MemoryCacheService 进程内的 LRU 缓存，条目按 TTL 过期
type MemoryCacheService struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemoryCacheService 创建进程内缓存
func NewMemoryCacheService(size int, ttl time.Duration) *MemoryCacheService {
	if size <= 0 {
		size = 1024
	}
	return &MemoryCacheService{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (s *MemoryCacheService) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, ok := s.lru.Get(key)
	return val, ok, nil
}

func (s *MemoryCacheService) Set(_ context.Context, key string, value []byte) error {
	s.lru.Add(key, value)
	return nil
}

func (s *MemoryCacheService) DeletePrefix(_ context.Context, prefix string) error {
	for _, key := range s.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			s.lru.Remove(key)
		}
	}
	return nil
}

func (s *MemoryCacheService) Enabled() bool { return true }

type noopCacheService struct{}

func (noopCacheService) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (noopCacheService) Set(context.Context, string, []byte) error         { return nil }
func (noopCacheService) DeletePrefix(context.Context, string) error        { return nil }
func (noopCacheService) Enabled() bool                                     { return false }
