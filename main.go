package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stores_api_v1/internal/controller"
	"stores_api_v1/internal/metrics"
	"stores_api_v1/internal/middleware"
	"stores_api_v1/internal/model"
	"stores_api_v1/internal/repository"
	"stores_api_v1/internal/router"
	"stores_api_v1/internal/service"
	"stores_api_v1/internal/task"
	"stores_api_v1/pkg/config"
	"stores_api_v1/pkg/database"
	"stores_api_v1/pkg/logger"
)

func main() {
	// 1. 加载配置（.env 可选）
	_ = godotenv.Load()
	cfg := config.Load()

	// 2. 初始化日志
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic("logger init failed: " + err.Error())
	}
	defer log.Sync()

	if cfg.JWTSecretGenerated {
		// 随机密钥意味着重启后所有 Token 失效，且多副本之间互不相认
		log.Warn("JWT_SECRET not set, generated a random per-process secret; " +
			"issued tokens will not survive a restart")
	}

	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:       cfg.JWTSecret,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
		Issuer:          cfg.ServiceName,
	})
	metrics.Init(cfg.ServiceName, cfg.ServiceVersion)

	if !strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. 初始化数据库
	db := database.InitDB(cfg.DSN())

	// 4. 初始化依赖
	deps := initDependencies(db, cfg, log)

	// 5. 启动定时任务
	initTasks(deps)

	// 6. 初始化路由
	r := router.SetupRouter(log, deps.SchemaInit, deps.Blocklist, deps.Controllers)

	// 7. 启动服务
	startServer(r, cfg, log)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Log         *zap.Logger
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
	Blocklist   repository.TokenBlocklist
	SchemaInit  *middleware.SchemaInitializer
}

// Repositories 仓库集合
type Repositories struct {
	Store repository.StoreRepository
	Item  repository.ItemRepository
	Tag   repository.TagRepository
	User  repository.UserRepository
}

// Services 服务集合
type Services struct {
	Store *service.StoreService
	Item  *service.ItemService
	Tag   *service.TagService
	User  *service.UserService
}

// ==================== 初始化函数 ====================

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB, cfg *config.Config, log *zap.Logger) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Store: repository.NewStoreRepository(db),
		Item:  repository.NewItemRepository(db),
		Tag:   repository.NewTagRepository(db),
		User:  repository.NewUserRepository(db),
	}

	// -------- 黑名单 --------
	blocklist := initBlocklist(cfg, log)

	// -------- 业务服务 --------
	services := &Services{
		Store: service.NewStoreService(repos.Store, repos.Item),
		Item:  service.NewItemService(repos.Item, repos.Store),
		Tag:   service.NewTagService(repos.Tag, repos.Item, repos.Store),
		User:  service.NewUserService(repos.User, blocklist),
	}

	// -------- 懒建表 --------
	// 首个业务请求触发，双重检查保证并发下只执行一次
	schemaInit := middleware.NewSchemaInitializer(func(ctx context.Context) error {
		if err := db.WithContext(ctx).AutoMigrate(
			&model.Store{}, &model.Item{}, &model.Tag{}, &model.User{},
		); err != nil {
			return err
		}
		return repos.Store.EnsureUnassigned(ctx)
	})

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Health: controller.NewHealthController(db),
		User:   controller.NewUserController(services.User),
		Store:  controller.NewStoreController(services.Store),
		Item:   controller.NewItemController(services.Item),
		Tag:    controller.NewTagController(services.Tag),
	}

	return &Dependencies{
		DB:          db,
		Log:         log,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		Blocklist:   blocklist,
		SchemaInit:  schemaInit,
	}
}

// initBlocklist 按配置选择黑名单后端
func initBlocklist(cfg *config.Config, log *zap.Logger) repository.TokenBlocklist {
	if strings.EqualFold(cfg.BlocklistBackend, "redis") {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		log.Info("token blocklist backend: redis", zap.String("addr", cfg.RedisAddr))
		return repository.NewRedisBlocklist(client)
	}

	log.Info("token blocklist backend: memory")
	return repository.NewMemoryBlocklist()
}

// ==================== 定时任务 ====================

// initTasks 启动定时任务
func initTasks(deps *Dependencies) {
	blocklistTask := task.NewBlocklistTask(deps.Blocklist, deps.Log)
	blocklistTask.Start()

	deps.Log.Info("scheduled tasks started")
}

// ==================== 服务启动 ====================

// startServer 启动服务并等待退出信号
func startServer(r *gin.Engine, cfg *config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Info("server listening",
			zap.String("port", cfg.ServerPort),
			zap.String("service", cfg.ServiceName),
			zap.String("version", cfg.ServiceVersion),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
