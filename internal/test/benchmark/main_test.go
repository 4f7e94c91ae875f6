package benchmark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"logistics-http-service/internal/app/routes"
	"logistics-http-service/internal/domain/services"
	"logistics-http-service/internal/infrastructure/config"
	"logistics-http-service/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "bench@example.com"
	adminPassword = "bench123"
	concurrency   = 8
	requests      = 50
)

// startServer 启动使用内存数据库的完整服务并登录管理员
func startServer(tb testing.TB) (baseURL, token string) {
	tb.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		DBDriver:       "sqlite",
		DBPath:         "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		DBMaxOpenConns: 1,
		DBLogLevel:     "silent",
		CacheBackend:   "memory",
		CacheTTL:       time.Minute,
		CacheSize:      256,
		JWTSecretKey:   "bench-secret",
		BcryptCost:     4,
	}

	pool, err := database.NewConnectionPool(cfg)
	require.NoError(tb, err)
	tb.Cleanup(func() { pool.Close() })
	require.NoError(tb, database.Migrate(pool.GetDB(), "auto"))

	_, err = services.NewEditorService(pool.GetDB(), cfg.BcryptCost).
		EnsureSuperEditor(context.Background(), "bench", adminEmail, adminPassword)
	require.NoError(tb, err)

	server := httptest.NewServer(routes.SetupRouter(pool, cfg))
	tb.Cleanup(server.Close)

	return server.URL + "/api/v1", login(tb, server.URL+"/api/v1")
}

// login 通过登录接口获取令牌
func login(tb testing.TB, baseURL string) string {
	tb.Helper()

	body, err := json.Marshal(map[string]string{"email": adminEmail, "password": adminPassword})
	require.NoError(tb, err)
	resp, err := http.Post(baseURL+"/login", "application/json", bytes.NewReader(body))
	require.NoError(tb, err)
	defer resp.Body.Close()
	require.Equal(tb, http.StatusCreated, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(tb, json.NewDecoder(resp.Body).Decode(&out))
	return out.Token
}

func customerPayload(i int) any {
	return map[string]any{"customer": map[string]any{
		"name":  fmt.Sprintf("customer %d", i),
		"phone": fmt.Sprintf("05%08d", i),
	}}
}

// TestCustomerCreateUnderLoad 并发创建客户，每个请求使用不同的电话
func TestCustomerCreateUnderLoad(t *testing.T) {
	baseURL, token := startServer(t)

	bench := NewAPIBenchmark(baseURL, concurrency, requests, token)
	result := bench.Run(context.Background(), http.MethodPost, "/customers", customerPayload)
	result.Log()

	assert.Equal(t, requests, result.SuccessCount, result.Errors)
	assert.Equal(t, requests, result.StatusCodes[http.StatusCreated])

	list := NewAPIBenchmark(baseURL, concurrency, requests, token).Run(context.Background(), http.MethodGet, "/customers", nil)
	list.Log()
	assert.Equal(t, float64(100), list.SuccessRate())
}

// TestDuplicatePhonesUnderLoad 相同电话并发创建时只有一个成功
func TestDuplicatePhonesUnderLoad(t *testing.T) {
	baseURL, token := startServer(t)

	bench := NewAPIBenchmark(baseURL, concurrency, 20, token)
	result := bench.Run(context.Background(), http.MethodPost, "/customers", func(int) any {
		return customerPayload(1)
	})
	result.Log()

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 19, result.StatusCodes[http.StatusUnprocessableEntity])
}

// TestUnauthenticatedLoad 未认证的请求全部被拒绝
func TestUnauthenticatedLoad(t *testing.T) {
	baseURL, _ := startServer(t)

	result := NewAPIBenchmark(baseURL, concurrency, requests, "").Run(context.Background(), http.MethodGet, "/products", nil)
	assert.Zero(t, result.SuccessCount)
	assert.Equal(t, requests, result.StatusCodes[http.StatusUnauthorized])
}

func BenchmarkCustomerIndex(b *testing.B) {
	baseURL, token := startServer(b)
	seed := NewAPIBenchmark(baseURL, 1, 20, token)
	seed.Run(context.Background(), http.MethodPost, "/customers", customerPayload)

	bench := NewAPIBenchmark(baseURL, 1, 1, token)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := bench.do(context.Background(), http.MethodGet, "/customers", nil)
		if r.err != nil {
			b.Fatal(r.err)
		}
	}
}

func BenchmarkCustomerShow(b *testing.B) {
	baseURL, token := startServer(b)
	NewAPIBenchmark(baseURL, 1, 1, token).Run(context.Background(), http.MethodPost, "/customers", customerPayload)

	bench := NewAPIBenchmark(baseURL, 1, 1, token)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if r := bench.do(context.Background(), http.MethodGet, "/customers/1", nil); r.statusCode != http.StatusOK {
			b.Fatalf("unexpected status %d", r.statusCode)
		}
	}
}
