package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopify_creator_v1/internal/config"
	"shopify_creator_v1/internal/controller"
	"shopify_creator_v1/internal/model"
	"shopify_creator_v1/internal/repository"
	"shopify_creator_v1/internal/router"
	"shopify_creator_v1/internal/service"
	"shopify_creator_v1/internal/task"
	"shopify_creator_v1/pkg/database"
	"shopify_creator_v1/pkg/logger"
	"shopify_creator_v1/pkg/shopify"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title Shopify Creator Dashboard API
// @version 1.0
// @description 创作者看板后端：店铺安装、webhook 入库、订单对账与创作者账号
// @BasePath /
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("配置校验失败", zap.Error(err))
	}

	// 2. 初始化数据库
	db := initDatabase(cfg, log)

	// 3. 初始化依赖
	deps := initDependencies(cfg, db, log)

	// 4. 启动定时任务
	initTasks(cfg, deps, log)

	// 5. 初始化路由
	r := router.SetupRouter(deps.Controllers, router.Options{
		CORSOrigins:   cfg.CORS.Origins,
		SyncCooldown:  cfg.Sync.Cooldown,
		EnableSwagger: cfg.Swagger.Enabled,
	}, log)

	// 6. 启动服务
	startServer(cfg.Port, r, deps, log)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Clients     *Clients
	Services    *Services
	SyncTask    *task.OrderSyncTask
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Order     repository.OrderRepository
	Product   repository.ProductRepository
	Customer  repository.CustomerRepository
	ShopToken repository.ShopTokenRepository
}

// Clients Shopify 出站客户端
type Clients struct {
	Admin      *shopify.AdminClient
	Storefront *shopify.StorefrontClient
	OAuth      *shopify.OAuthClient
	Registrar  *shopify.WebhookRegistrar
}

// Services 服务集合
type Services struct {
	Auth     *service.AuthService
	Webhook  *service.WebhookService
	Sync     *service.SyncService
	Query    *service.QueryService
	Customer *service.CustomerService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config, log *zap.Logger) *gorm.DB {
	opts := database.DefaultOptions()
	opts.Logger = logger.NewGormLogger(log, logger.GormLevel(cfg.Database.LogLevel))

	db, err := database.InitDB(cfg.Database.URL, opts, model.AllModels()...)
	if err != nil {
		log.Fatal("数据库初始化失败", zap.Error(err))
	}
	log.Info("数据库连接成功")
	return db
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB, log *zap.Logger) *Dependencies {
	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 出站客户端 --------
	clients := initClients(cfg, log)

	// -------- 业务服务 --------
	reconciler := service.NewReconciler(clients.Admin, repos.Product, cfg.Catalog.LiveProductFallback, log.Named("reconcile"))

	services := &Services{
		Auth:    service.NewAuthService(clients.OAuth, repos.ShopToken, clients.Registrar, log.Named("auth")),
		Webhook: service.NewWebhookService(cfg.Shopify.WebhookSecret, repos.Order, repos.Product, log.Named("webhook")),
		Query:   service.NewQueryService(repos.Order, repos.Product),
	}
	services.Sync = service.NewSyncService(
		clients.Admin, repos.Order, reconciler,
		service.NewIntervalThrottler(cfg.Sync.Delay),
		shopify.OrderQuery{
			Status:       "any",
			Limit:        cfg.Sync.PageSize,
			CreatedAtMin: cfg.Sync.CreatedAtMin,
			MaxPages:     cfg.Sync.MaxPages,
		},
		log.Named("sync"),
	)

	admin := clients.Admin
	services.Customer = service.NewCustomerService(
		clients.Storefront, admin,
		func(token string) service.CustomerAdmin { return admin.WithAccessToken(token) },
		repos.Customer, repos.ShopToken,
		cfg.Shopify.Store,
		service.LookupPolicy{
			Attempts: cfg.Signup.LookupAttempts,
			Interval: cfg.Signup.LookupInterval,
		},
		log.Named("customer"),
	)

	syncTask := task.NewOrderSyncTask(services.Sync, log.Named("order_sync_task"))

	// -------- Controller 层 --------
	controllers := initControllers(services, syncTask)

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Clients:     clients,
		Services:    services,
		SyncTask:    syncTask,
		Controllers: controllers,
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Order:     repository.NewOrderRepository(db),
		Product:   repository.NewProductRepository(db),
		Customer:  repository.NewCustomerRepository(db),
		ShopToken: repository.NewShopTokenRepository(db),
	}
}

// initClients 初始化 Shopify 客户端
func initClients(cfg *config.Config, log *zap.Logger) *Clients {
	return &Clients{
		Admin: shopify.NewAdminClient(shopify.AdminConfig{
			BaseURL:     shopify.AdminBaseURL(cfg.Shopify.Store, cfg.Shopify.APIVersion),
			AccessToken: cfg.Shopify.AccessToken,
			Timeout:     cfg.HTTP.Timeout,
		}),
		Storefront: shopify.NewStorefrontClient(shopify.StorefrontConfig{
			Endpoint: shopify.StorefrontEndpoint(cfg.Shopify.Store, cfg.Storefront.APIVersion),
			Token:    cfg.Storefront.Token,
			Timeout:  cfg.HTTP.Timeout,
		}),
		OAuth: shopify.NewOAuthClient(shopify.OAuthConfig{
			APIKey:      cfg.Shopify.APIKey,
			APISecret:   cfg.Shopify.APISecret,
			Scopes:      cfg.Shopify.Scopes,
			RedirectURI: cfg.RedirectURI(),
			Timeout:     cfg.HTTP.Timeout,
		}),
		Registrar: shopify.NewWebhookRegistrar(
			cfg.Shopify.APIKey, cfg.Shopify.APISecret,
			cfg.WebhookAddress,
			&http.Client{Timeout: cfg.HTTP.Timeout},
			log,
		),
	}
}

// initControllers 初始化所有控制器
func initControllers(svc *Services, syncTask *task.OrderSyncTask) *router.Controllers {
	return &router.Controllers{
		Auth:     controller.NewAuthController(svc.Auth),
		Webhook:  controller.NewWebhookController(svc.Webhook),
		Sync:     controller.NewSyncController(syncTask),
		Order:    controller.NewOrderController(svc.Query),
		Product:  controller.NewProductController(svc.Query),
		Customer: controller.NewCustomerController(svc.Customer),
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(cfg *config.Config, deps *Dependencies, log *zap.Logger) {
	if err := deps.SyncTask.Start(cfg.Sync.Cron); err != nil {
		log.Fatal("定时任务启动失败", zap.Error(err))
	}
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(port string, r *gin.Engine, deps *Dependencies, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("服务强制关闭", zap.Error(err))
	}

	deps.SyncTask.Stop()
	if err := database.Close(deps.DB); err != nil {
		log.Warn("关闭数据库失败", zap.Error(err))
	}

	log.Info("服务已退出")
}
