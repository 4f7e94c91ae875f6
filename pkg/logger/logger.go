package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Options 日志配置
type Options struct {
	Dir    string // 日志目录，为空时只输出到控制台
	Level  string // debug, info, warn, error
	Format string // text 或 json
}

var std = logrus.New()

// SetupLogger 初始化日志配置：同时输出到控制台和按日期命名的日志文件
func SetupLogger(opts Options) error {
	level, err := logrus.ParseLevel(strings.ToLower(defaultString(opts.Level, "info")))
	if err != nil {
		return fmt.Errorf("无效的日志级别 %q: %w", opts.Level, err)
	}
	std.SetLevel(level)

	if strings.EqualFold(opts.Format, "json") {
		std.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}

	if opts.Dir == "" {
		std.SetOutput(os.Stdout)
		return nil
	}

	// 创建日志目录
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return fmt.Errorf("创建日志目录失败: %w", err)
	}

	// 生成当前日期的日志文件名
	logFileName := filepath.Join(opts.Dir, time.Now().Format("2006-01-02")+".log")
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("打开日志文件失败: %w", err)
	}

	std.SetOutput(io.MultiWriter(os.Stdout, logFile))
	return nil
}

// L 返回底层的 logrus 实例
func L() *logrus.Logger {
	return std
}

// SetOutput 替换日志输出，测试中用于捕获日志
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// WithFields 返回带结构化字段的日志条目
func WithFields(fields logrus.Fields) *logrus.Entry {
	return std.WithFields(fields)
}

// Debug 记录调试级别的日志
func Debug(format string, v ...interface{}) {
	std.Debugf(format, v...)
}

// Info 记录信息级别的日志
func Info(format string, v ...interface{}) {
	std.Infof(format, v...)
}

// Warning 记录警告级别的日志
func Warning(format string, v ...interface{}) {
	std.Warnf(format, v...)
}

// Error 记录错误级别的日志
func Error(format string, v ...interface{}) {
	std.Errorf(format, v...)
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
