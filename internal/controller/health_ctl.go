package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ==================== HealthController 探针控制器 ====================

// HealthController 存活/就绪探针
type HealthController struct {
	db *gorm.DB
}

// NewHealthController 创建探针控制器
func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Healthz 存活探针，不查任何依赖
// @Summary 存活探针
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /healthz [get]
func (c *HealthController) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz 就绪探针，探一下数据库
// 数据库不通只报 not_ready，进程继续活着
// @Summary 就绪探针
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /readyz [get]
func (c *HealthController) Readyz(ctx *gin.Context) {
	probeCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(probeCtx)
	}
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}
