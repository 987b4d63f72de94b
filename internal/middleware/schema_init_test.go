package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
)

// ==================== 并发初始化 ====================

func TestSchemaInitializer_ConcurrentEnsure_InitializesOnce(t *testing.T) {
	var calls atomic.Int32
	s := NewSchemaInitializer(func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	const workers = 32
	var wg sync.WaitGroup
	wg.Add(workers)
	start := make(chan struct{})

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			if err := s.Ensure(context.Background()); err != nil {
				t.Errorf("Ensure 失败: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("初始化执行了 %d 次, want 1", n)
	}

	// 初始化成功后快路径直接通过
	if err := s.Ensure(context.Background()); err != nil {
		t.Errorf("后续 Ensure 失败: %v", err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("快路径又触发了初始化: %d", n)
	}
}

func TestSchemaInitializer_RetriesAfterFailure(t *testing.T) {
	var calls atomic.Int32
	failFirst := errors.New("db unreachable")

	s := NewSchemaInitializer(func(ctx context.Context) error {
		if calls.Add(1) == 1 {
			return failFirst
		}
		return nil
	})

	if err := s.Ensure(context.Background()); !errors.Is(err, failFirst) {
		t.Fatalf("首次 Ensure 应失败, got %v", err)
	}
	// 失败不置位，下次重试
	if err := s.Ensure(context.Background()); err != nil {
		t.Fatalf("重试应成功, got %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("初始化执行了 %d 次, want 2", n)
	}
}

// ==================== 中间件跳过路径 ====================

func TestSchemaInitializer_Middleware_SkipsProbes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var calls atomic.Int32
	s := NewSchemaInitializer(func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	r := gin.New()
	r.Use(s.Middleware())
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/readyz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/store", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/healthz", "/readyz", "/no/such/route"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("探针/未匹配路由不应触发建表, 执行了 %d 次", n)
	}

	req := httptest.NewRequest(http.MethodGet, "/store", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)
	if n := calls.Load(); n != 1 {
		t.Errorf("业务路由应触发建表一次, 执行了 %d 次", n)
	}
}
