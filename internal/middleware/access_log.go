package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ==================== 请求日志 ====================

// AccessLog 请求日志中间件
// 每个请求输出一条结构化日志；panic 时输出带堆栈的错误日志并返回通用 500，
// 不向客户端泄露内部细节
func AccessLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			route := c.FullPath()
			fields := []zap.Field{
				zap.String("request_id", GetRequestID(c)),
				zap.String("method", c.Request.Method),
				zap.String("route", route),
				zap.String("path", c.Request.URL.Path),
				zap.String("remote_addr", c.ClientIP()),
			}

			if r := recover(); r != nil {
				log.Error("unhandled panic",
					append(fields,
						zap.Any("panic", r),
						zap.String("stacktrace", string(debug.Stack())),
					)...)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"code":    http.StatusInternalServerError,
					"error":   "internal_error",
					"message": "An internal error occurred.",
				})
				return
			}

			fields = append(fields,
				zap.Int("status", c.Writer.Status()),
				zap.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000.0),
			)
			// 带合法 Token 的请求补上用户身份
			if uid := GetUserID(c); uid > 0 {
				fields = append(fields, zap.Int64("user_id", uid))
			}

			log.Info("http request", fields...)
		}()

		c.Next()
	}
}
