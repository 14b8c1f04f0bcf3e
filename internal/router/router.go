package router

import (
	"net/http"
	"time"

	"shopify_creator_v1/internal/controller"
	"shopify_creator_v1/internal/middleware"
	"shopify_creator_v1/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "shopify_creator_v1/docs"
)

// Controllers 路由依赖的全部控制器
type Controllers struct {
	Auth     *controller.AuthController
	Webhook  *controller.WebhookController
	Sync     *controller.SyncController
	Order    *controller.OrderController
	Product  *controller.ProductController
	Customer *controller.CustomerController
}

// Options 路由级配置
type Options struct {
	CORSOrigins   []string
	SyncCooldown  time.Duration
	EnableSwagger bool
}

// SetupRouter 创建 gin 引擎并注册所有路由
func SetupRouter(ctls *Controllers, opts Options, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(middleware.DefaultCORSConfig(opts.CORSOrigins)),
	)

	// 1. 健康检查
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Backend running")
	})

	// 2. Swagger 文档路由
	// 访问 http://localhost:4000/swagger/index.html 即可查看
	if opts.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// 3. 店铺安装授权
	r.GET("/auth", ctls.Auth.Install)
	r.GET("/auth/callback", ctls.Auth.Callback)

	// 4. Shopify webhook，需要原始 body 校验签名
	r.POST("/webhook/:resource/:event", ctls.Webhook.Receive)

	// 5. 全量同步
	limiter := middleware.NewCooldownLimiter()
	r.GET("/sync/orders",
		middleware.SyncCooldown(limiter, middleware.OrderSyncKey, opts.SyncCooldown),
		ctls.Sync.SyncOrders,
	)

	// 6. 看板 API
	api := r.Group("/api")
	{
		api.POST("/signup", ctls.Customer.Signup)
		api.POST("/login", ctls.Customer.Login)
		api.GET("/customer", ctls.Customer.Profile)

		api.GET("/sales", ctls.Order.Sales)
		api.GET("/products", ctls.Product.List)
	}

	return r
}
