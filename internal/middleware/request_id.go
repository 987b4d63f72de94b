package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ==================== 请求 ID ====================

// HeaderXRequestID 请求 ID 头
const HeaderXRequestID = "X-Request-ID"

// ContextKeyRequestID Context Key
const ContextKeyRequestID = "request_id"

// RequestID 请求 ID 中间件
// 透传上游带来的 X-Request-ID，没有则生成一个；响应头上原样带回
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderXRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set(ContextKeyRequestID, rid)
		c.Writer.Header().Set(HeaderXRequestID, rid)

		c.Next()
	}
}

// GetRequestID 从 Context 获取请求 ID
func GetRequestID(c *gin.Context) string {
	if rid, exists := c.Get(ContextKeyRequestID); exists {
		return rid.(string)
	}
	return ""
}
