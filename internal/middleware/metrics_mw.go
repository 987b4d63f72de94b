package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"stores_api_v1/internal/metrics"
)

// ==================== HTTP 指标 ====================

// Metrics HTTP 指标中间件
// in-flight 进 +1 出 -1（无论成败），完成后记录总量/错误量/时延
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 不统计指标端点自身
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		method := c.Request.Method
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.RequestStarted(method, route)
		start := time.Now()

		defer func() {
			metrics.RequestFinished(method, route, c.Writer.Status(), time.Since(start).Seconds())
		}()

		c.Next()
	}
}
