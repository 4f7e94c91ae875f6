package benchmark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	Logger "logistics-http-service/pkg/logger"

	"github.com/sirupsen/logrus"
)

// PayloadFunc 为第 i 个请求生成请求体，唯一字段需要每次不同
type PayloadFunc func(i int) any

// APIBenchmark 对一个 API 路径并发发送固定数量的请求
type APIBenchmark struct {
	BaseURL     string
	Concurrency int
	Requests    int
	AuthToken   string
	Client      *http.Client
}

// Result 一轮压测的汇总
type Result struct {
	Method         string
	Path           string
	Concurrency    int
	TotalRequests  int
	SuccessCount   int
	FailureCount   int
	Elapsed        time.Duration
	Average        time.Duration
	P50            time.Duration
	P95            time.Duration
	Max            time.Duration
	RequestsPerSec float64
	StatusCodes    map[int]int
	Errors         []string
}

type requestResult struct {
	duration   time.Duration
	statusCode int
	err        error
}

// NewAPIBenchmark 创建压测实例，concurrency 至少为 1
func NewAPIBenchmark(baseURL string, concurrency, requests int, authToken string) *APIBenchmark {
	if concurrency < 1 {
		concurrency = 1
	}
	return &APIBenchmark{
		BaseURL:     baseURL,
		Concurrency: concurrency,
		Requests:    requests,
		AuthToken:   authToken,
		Client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Run 执行一轮压测，payload 为 nil 时不发送请求体
func (b *APIBenchmark) Run(ctx context.Context, method, path string, payload PayloadFunc) *Result {
	results := make(chan requestResult, b.Requests)
	limiter := make(chan struct{}, b.Concurrency)
	var wg sync.WaitGroup

	start := time.Now()
	for i := 0; i < b.Requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			limiter <- struct{}{}
			defer func() { <-limiter }()

			var body any
			if payload != nil {
				body = payload(i)
			}
			results <- b.do(ctx, method, path, body)
		}(i)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	result := &Result{
		Method:        method,
		Path:          path,
		Concurrency:   b.Concurrency,
		TotalRequests: b.Requests,
		StatusCodes:   make(map[int]int),
	}
	durations := make([]time.Duration, 0, b.Requests)
	for r := range results {
		if r.err != nil {
			result.FailureCount++
			result.Errors = append(result.Errors, r.err.Error())
			continue
		}
		durations = append(durations, r.duration)
		result.StatusCodes[r.statusCode]++
		if r.statusCode >= 200 && r.statusCode < 300 {
			result.SuccessCount++
		} else {
			result.FailureCount++
		}
	}

	result.Elapsed = time.Since(start)
	if result.Elapsed > 0 {
		result.RequestsPerSec = float64(b.Requests) / result.Elapsed.Seconds()
	}
	summarize(result, durations)
	return result
}

// do 发送单个请求并读完响应体
func (b *APIBenchmark) do(ctx context.Context, method, path string, payload any) requestResult {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return requestResult{err: fmt.Errorf("JSON编码错误: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.BaseURL+path, reader)
	if err != nil {
		return requestResult{err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if b.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+b.AuthToken)
	}

	start := time.Now()
	resp, err := b.Client.Do(req)
	if err != nil {
		return requestResult{err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return requestResult{duration: time.Since(start), statusCode: resp.StatusCode}
}

// summarize 计算平均值和分位数
func summarize(r *Result, durations []time.Duration) {
	if len(durations) == 0 {
		return
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	var total time.Duration
	for _, d := range durations {
		total += d
	}
	r.Average = total / time.Duration(len(durations))
	r.P50 = durations[len(durations)*50/100]
	r.P95 = durations[len(durations)*95/100]
	r.Max = durations[len(durations)-1]
}

// SuccessRate 成功请求占比，单位为百分比
func (r *Result) SuccessRate() float64 {
	if r.TotalRequests == 0 {
		return 0
	}
	return float64(r.SuccessCount) / float64(r.TotalRequests) * 100
}

// Log 把结果写入日志，错误最多记录 5 条
func (r *Result) Log() {
	Logger.WithFields(logrus.Fields{
		"method":       r.Method,
		"path":         r.Path,
		"concurrency":  r.Concurrency,
		"requests":     r.TotalRequests,
		"success":      r.SuccessCount,
		"failure":      r.FailureCount,
		"elapsed":      r.Elapsed.String(),
		"avg":          r.Average.String(),
		"p50":          r.P50.String(),
		"p95":          r.P95.String(),
		"max":          r.Max.String(),
		"rps":          fmt.Sprintf("%.2f", r.RequestsPerSec),
		"status_codes": r.StatusCodes,
	}).Info("压测结果")

	for i, msg := range r.Errors {
		if i >= 5 {
			Logger.Warning("... 还有 %d 个错误", len(r.Errors)-5)
			break
		}
		Logger.Warning("请求错误: %s", msg)
	}
}
