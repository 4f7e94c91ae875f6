package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string

	// Database
	DBDriver        string // mysql, postgres, sqlite
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBPath          string // sqlite 数据库文件或内存DSN
	DBMigrationMode string // 数据库迁移模式: "auto"(默认), "drop"(删除重建)
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBLogLevel      string

	// Server
	ServerPort   string
	GinMode      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Response cache
	CacheBackend string // none, memory, redis
	CacheTTL     time.Duration
	CacheSize    int

	// Rate limiting
	RateLimitRPS        float64
	RateLimitBurst      int
	LoginRateLimitRPS   float64
	LoginRateLimitBurst int

	// JWT Authentication
	JWTSecretKey string
	BcryptCost   int

	// Default super editor
	DefaultAdminName     string
	DefaultAdminEmail    string
	DefaultAdminPassword string

	// Logging
	LogLevel  string
	LogFormat string
	LogDir    string
}

// Load 从环境变量读取配置，数据库相关的键按 ENV_TYPE 加 LOCAL_ / SERVER_ 前缀
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	envType := strings.ToUpper(v.GetString("ENV_TYPE"))
	var prefix string
	switch envType {
	case "LOCAL":
		prefix = "LOCAL_"
	case "SERVER":
		prefix = "SERVER_"
	default:
		return nil, fmt.Errorf("unknown ENV_TYPE %q", envType)
	}

	// 优先读取带前缀的键，未设置时回退到无前缀的键
	get := func(key string) string {
		if val := v.GetString(prefix + key); val != "" {
			return val
		}
		return v.GetString(key)
	}

	cfg := &Config{
		EnvType: envType,

		DBDriver:        strings.ToLower(get("DB_DRIVER")),
		DBHost:          get("DB_HOST"),
		DBUser:          get("DB_USER"),
		DBPassword:      get("DB_PASSWORD"),
		DBName:          get("DB_NAME"),
		DBPort:          get("DB_PORT"),
		DBPath:          get("DB_PATH"),
		DBMigrationMode: strings.ToLower(get("DB_MIGRATION_MODE")),
		DBMaxOpenConns:  v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:  v.GetInt("DB_MAX_IDLE_CONNS"),
		DBLogLevel:      v.GetString("DB_LOG_LEVEL"),

		ServerPort:   get("SERVER_PORT"),
		GinMode:      v.GetString("GIN_MODE"),
		ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
		WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),

		RedisHost:     get("REDIS_HOST"),
		RedisPort:     get("REDIS_PORT"),
		RedisPassword: get("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		CacheBackend: strings.ToLower(v.GetString("CACHE_BACKEND")),
		CacheTTL:     v.GetDuration("CACHE_TTL"),
		CacheSize:    v.GetInt("CACHE_SIZE"),

		RateLimitRPS:        v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:      v.GetInt("RATE_LIMIT_BURST"),
		LoginRateLimitRPS:   v.GetFloat64("LOGIN_RATE_LIMIT_RPS"),
		LoginRateLimitBurst: v.GetInt("LOGIN_RATE_LIMIT_BURST"),

		JWTSecretKey: v.GetString("JWT_SECRET_KEY"),
		BcryptCost:   v.GetInt("BCRYPT_COST"),

		DefaultAdminName:     v.GetString("DEFAULT_ADMIN_NAME"),
		DefaultAdminEmail:    v.GetString("DEFAULT_ADMIN_EMAIL"),
		DefaultAdminPassword: v.GetString("DEFAULT_ADMIN_PASSWORD"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
		LogDir:    v.GetString("LOG_DIR"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV_TYPE", "LOCAL")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_PATH", "logistics.db")
	v.SetDefault("DB_MIGRATION_MODE", "auto")
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_BACKEND", "memory")
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("CACHE_SIZE", 1024)
	v.SetDefault("RATE_LIMIT_RPS", 30)
	v.SetDefault("RATE_LIMIT_BURST", 50)
	v.SetDefault("LOGIN_RATE_LIMIT_RPS", 1)
	v.SetDefault("LOGIN_RATE_LIMIT_BURST", 5)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("DEFAULT_ADMIN_NAME", "admin")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_DIR", "logs")
}

// Validate 检查必填项和取值范围
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	}

	switch c.DBDriver {
	case "mysql", "postgres":
		if c.DBUser == "" || c.DBName == "" {
			errs = append(errs, fmt.Errorf("DB_USER and DB_NAME are required for driver %s", c.DBDriver))
		}
	case "sqlite":
		if c.DBPath == "" {
			errs = append(errs, errors.New("DB_PATH is required for driver sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}

	switch c.DBMigrationMode {
	case "auto", "drop", "none":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_MIGRATION_MODE %q", c.DBMigrationMode))
	}

	switch c.CacheBackend {
	case "none", "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("unsupported CACHE_BACKEND %q", c.CacheBackend))
	}

	return errors.Join(errs...)
}

// GetDSN returns the database connection string for the configured driver
func (c *Config) GetDSN() string {
	switch c.DBDriver {
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	case "sqlite":
		return c.DBPath
	default:
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=UTC"
	}
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// String 打印配置时隐藏密钥和密码
func (c *Config) String() string {
	return fmt.Sprintf("env=%s db=%s@%s:%s/%s driver=%s migration=%s port=%s cache=%s jwt_secret=%s",
		c.EnvType, c.DBUser, c.DBHost, c.DBPort, c.DBName, c.DBDriver, c.DBMigrationMode,
		c.ServerPort, c.CacheBackend, redact(c.JWTSecretKey))
}

func redact(s string) string {
	if s == "" {
		return "<empty>"
	}
	return "<redacted>"
}
