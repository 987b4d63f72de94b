package middleware

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// ==================== 懒初始化 ====================

// SchemaInitializer 一次性建表守卫
// 双重检查：成功后走无锁的快路径；失败不置位，下个请求重试
type SchemaInitializer struct {
	mu     sync.Mutex
	done   atomic.Bool
	initFn func(ctx context.Context) error
}

// NewSchemaInitializer 创建建表守卫
// initFn 负责建表和默认数据，保证可重入
func NewSchemaInitializer(initFn func(ctx context.Context) error) *SchemaInitializer {
	return &SchemaInitializer{initFn: initFn}
}

// Ensure 确保表结构已初始化，并发首访只执行一次
func (s *SchemaInitializer) Ensure(ctx context.Context) error {
	if s.done.Load() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done.Load() {
		return nil
	}
	if err := s.initFn(ctx); err != nil {
		return err
	}
	s.done.Store(true)
	return nil
}

// Middleware 建表中间件
// 存活/就绪探针和未匹配路由不触发建表
func (s *SchemaInitializer) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || route == "/healthz" || route == "/readyz" || route == "/metrics" {
			c.Next()
			return
		}

		if err := s.Ensure(c.Request.Context()); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":    http.StatusInternalServerError,
				"error":   "internal_error",
				"message": "Schema initialization failed.",
			})
			return
		}

		c.Next()
	}
}
