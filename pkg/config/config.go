package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ==================== 配置 ====================

// Config 服务配置，全部来自环境变量
type Config struct {
	// 服务元信息
	ServiceName    string
	ServiceVersion string
	ServerPort     string

	// 数据库
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret          string
	JWTSecretGenerated bool // true 表示密钥是本进程随机生成的
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	// 日志
	LogLevel  string
	LogFormat string // json | console

	// Token 黑名单
	BlocklistBackend string // memory | redis
	RedisAddr        string
}

// Load 从环境变量加载配置
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	// 默认值
	v.SetDefault("SERVICE_NAME", "store-api")
	v.SetDefault("SERVICE_VERSION", "v1")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "stores")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("ACCESS_TOKEN_TTL", "15m")
	v.SetDefault("REFRESH_TOKEN_TTL", "720h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("BLOCKLIST_BACKEND", "memory")
	v.SetDefault("REDIS_ADDR", "localhost:6379")

	cfg := &Config{
		ServiceName:      v.GetString("SERVICE_NAME"),
		ServiceVersion:   v.GetString("SERVICE_VERSION"),
		ServerPort:       v.GetString("SERVER_PORT"),
		DBHost:           v.GetString("DB_HOST"),
		DBPort:           v.GetString("DB_PORT"),
		DBUser:           v.GetString("DB_USER"),
		DBPassword:       v.GetString("DB_PASSWORD"),
		DBName:           v.GetString("DB_NAME"),
		DBSSLMode:        v.GetString("DB_SSLMODE"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		AccessTokenTTL:   v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:  v.GetDuration("REFRESH_TOKEN_TTL"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		BlocklistBackend: v.GetString("BLOCKLIST_BACKEND"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
	}

	// 未配置密钥时，每次进程启动生成一个随机密钥。
	// 副作用：重启后所有已签发的 Token 全部失效，多副本部署时各副本密钥不一致。
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = randomSecret()
		cfg.JWTSecretGenerated = true
	}

	return cfg
}

// DSN 拼接 Postgres 连接串
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// randomSecret 生成 32 字节随机密钥
func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic("config: failed to generate random JWT secret: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
