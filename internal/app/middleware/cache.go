package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"sort"
	"strings"

	"logistics-http-service/internal/domain/services"
	Logger "logistics-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// cacheKeyPrefix 所有响应缓存键的前缀
const cacheKeyPrefix = "resp:"

// ResponseCache 缓存已认证的 GET 响应，写操作成功后按资源清除
type ResponseCache struct {
	store   services.InterfaceCacheService
	metrics *Metrics
}

// NewResponseCache 创建响应缓存，metrics 可以为 nil
func NewResponseCache(store services.InterfaceCacheService, metrics *Metrics) *ResponseCache {
	return &ResponseCache{store: store, metrics: metrics}
}

// ResourcePrefix 某个资源所有缓存键的公共前缀
func ResourcePrefix(resource string) string {
	return cacheKeyPrefix + resource + ":"
}

// cacheKey 由路径和排序后的查询参数生成，使用MD5哈希
func cacheKey(resource string, c *gin.Context) string {
	queryParams := c.Request.URL.Query()
	queryKeys := make([]string, 0, len(queryParams))
	for key := range queryParams {
		queryKeys = append(queryKeys, key)
	}
	sort.Strings(queryKeys)

	var query strings.Builder
	for _, key := range queryKeys {
		values := append([]string(nil), queryParams[key]...)
		sort.Strings(values)
		for _, value := range values {
			query.WriteString(key + "=" + value + "&")
		}
	}

	hasher := md5.New()
	hasher.Write([]byte(c.Request.URL.Path + "?" + query.String()))
	return ResourcePrefix(resource) + hex.EncodeToString(hasher.Sum(nil))
}

// Read 命中时直接返回缓存内容，未命中时缓存 200 响应
func (rc *ResponseCache) Read(resource string, next AuthedHandler) AuthedHandler {
	if rc == nil || !rc.store.Enabled() {
		return next
	}

	return func(c *gin.Context, auth *services.AuthResult) {
		key := cacheKey(resource, c)
		ctx := c.Request.Context()

		content, found, err := rc.store.Get(ctx, key)
		if err != nil {
			Logger.Warning("读取响应缓存失败: %v", err)
		}
		rc.metrics.cacheLookup(resource, found)
		if found {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", content)
			c.Abort()
			return
		}

		// 缓存未命中，捕获响应
		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer
		c.Header("X-Cache", "MISS")

		next(c, auth)

		if c.Writer.Status() == http.StatusOK {
			if err := rc.store.Set(ctx, key, writer.body.Bytes()); err != nil {
				Logger.Warning("写入响应缓存失败: %v", err)
			}
		}
	}
}

// Invalidate 写操作成功后清除资源及其级联子资源的缓存
func (rc *ResponseCache) Invalidate(next AuthedHandler, resources ...string) AuthedHandler {
	if rc == nil || !rc.store.Enabled() {
		return next
	}

	return func(c *gin.Context, auth *services.AuthResult) {
		next(c, auth)

		if status := c.Writer.Status(); status < 200 || status >= 300 {
			return
		}
		for _, resource := range resources {
			if err := rc.store.DeletePrefix(c.Request.Context(), ResourcePrefix(resource)); err != nil {
				Logger.Warning("清除响应缓存失败: %s: %v", resource, err)
			}
		}
	}
}

// 自定义响应写入器，用于捕获响应内容
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write 同时写入原始响应和缓冲区
func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// WriteString 同时写入原始响应和缓冲区
func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
