package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stores_api_v1/internal/controller"
	"stores_api_v1/internal/metrics"
	"stores_api_v1/internal/middleware"
	"stores_api_v1/internal/repository"
)

// Controllers 控制器集合
type Controllers struct {
	Health *controller.HealthController
	User   *controller.UserController
	Store  *controller.StoreController
	Item   *controller.ItemController
	Tag    *controller.TagController
}

// SetupRouter 注册所有中间件和路由
// 中间件顺序：请求 ID → 指标 → 日志（含 panic 恢复）→ 懒建表
// 指标必须包在 panic 恢复外层，panic 路径写出的 500 才会被计入
func SetupRouter(log *zap.Logger,
	schemaInit *middleware.SchemaInitializer,
	blocklist repository.TokenBlocklist,
	ctl *Controllers) *gin.Engine {

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Metrics(),
		middleware.AccessLog(log),
		schemaInit.Middleware(),
	)

	// 探针 & 指标
	r.GET("/healthz", ctl.Health.Healthz)
	r.GET("/readyz", ctl.Health.Readyz)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// 鉴权中间件
	auth := middleware.JWTAuth(blocklist)
	admin := middleware.RequireAdmin()
	fresh := middleware.RequireFresh()

	// 认证生命周期
	r.POST("/user/register", ctl.User.Register)
	r.POST("/user/login", ctl.User.Login)
	r.POST("/refresh", ctl.User.Refresh)
	r.POST("/logout", auth, ctl.User.Logout)

	// 用户管理
	r.GET("/user/:id", ctl.User.Get)
	r.DELETE("/user/:id", auth, admin, ctl.User.Delete)

	// 店铺
	store := r.Group("/store")
	{
		store.GET("", ctl.Store.List)
		store.POST("", ctl.Store.Create)
		store.GET("/search", ctl.Store.Search)
		store.GET("/:id", ctl.Store.Get)
		store.DELETE("/:id", ctl.Store.Delete)
		store.GET("/:id/count", ctl.Store.ItemCount)

		// 商品挂接 / 解绑
		store.PUT("/:id/item/:item_id", ctl.Store.LinkItem)
		store.DELETE("/:id/item/:item_id", ctl.Store.UnlinkItem)

		// 店铺维度的标签
		store.GET("/:id/tag", ctl.Tag.ListByStore)
		store.POST("/:id/tag", ctl.Tag.CreateForStore)
	}

	// 商品：写操作全部要管理员，改/删还要 fresh Token
	item := r.Group("/item")
	{
		item.GET("", ctl.Item.List)
		item.GET("/:id", ctl.Item.Get)
		item.POST("", auth, admin, ctl.Item.Create)
		item.PUT("/:id", auth, fresh, admin, ctl.Item.Update)
		item.DELETE("/:id", auth, fresh, admin, ctl.Item.Delete)

		// 商品打标 / 去标
		item.POST("/:id/tag/:tag_id", ctl.Tag.LinkItem)
		item.DELETE("/:id/tag/:tag_id", ctl.Tag.UnlinkItem)
	}

	// 标签
	tag := r.Group("/tag")
	{
		tag.GET("", ctl.Tag.List)
		tag.GET("/:id", ctl.Tag.Get)
		tag.DELETE("/:id", ctl.Tag.Delete)
	}

	return r
}
