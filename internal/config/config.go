package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 进程级配置，启动时构造一次后以指针注入各组件
type Config struct {
	Port       string
	Database   DatabaseConfig
	Shopify    ShopifyConfig
	Storefront StorefrontConfig
	CORS       CORSConfig
	Sync       SyncConfig
	Signup     SignupConfig
	Catalog    CatalogConfig
	Log        LogConfig
	HTTP       HTTPConfig
	Swagger    SwaggerConfig
}

// DatabaseConfig 数据库
type DatabaseConfig struct {
	URL      string
	LogLevel string
}

// ShopifyConfig Admin API 与 OAuth 应用配置
type ShopifyConfig struct {
	APIKey        string
	APISecret     string
	WebhookSecret string
	AccessToken   string
	Store         string // xxx.myshopify.com
	AppURL        string // 不带协议的公网域名
	Scopes        string
	APIVersion    string
}

// StorefrontConfig Storefront GraphQL 配置
type StorefrontConfig struct {
	Token      string
	APIVersion string
}

// CORSConfig 跨域白名单
type CORSConfig struct {
	Origins []string
}

// SyncConfig 全量订单同步
type SyncConfig struct {
	PageSize     int
	CreatedAtMin string
	MaxPages     int
	Delay        time.Duration // 每单之间的间隔
	Cooldown     time.Duration // 手动触发冷却
	Cron         string        // 为空表示不开启定时同步
}

// SignupConfig 注册后查询客户的重试策略
type SignupConfig struct {
	LookupAttempts int
	LookupInterval time.Duration
}

// CatalogConfig 商品元数据查询
type CatalogConfig struct {
	LiveProductFallback bool
}

// LogConfig 日志
type LogConfig struct {
	Level  string
	Format string
	Output string
}

// HTTPConfig 出站 HTTP
type HTTPConfig struct {
	Timeout time.Duration
}

// SwaggerConfig 文档
type SwaggerConfig struct {
	Enabled bool
}

// Load 加载配置
// 优先级：环境变量 > config.yaml > 默认值
// 环境变量名为键名大写并把 "." 换成 "_"，如 shopify.api_key -> SHOPIFY_API_KEY
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "4000")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("shopify.api_version", "2025-04")
	v.SetDefault("storefront.api_version", "2024-04")
	v.SetDefault("sync.page_size", 100)
	v.SetDefault("sync.created_at_min", "2024-01-01T00:00:00Z")
	v.SetDefault("sync.max_pages", 1)
	v.SetDefault("sync.delay", 500*time.Millisecond)
	v.SetDefault("sync.cooldown", time.Minute)
	v.SetDefault("sync.cron", "")
	v.SetDefault("signup.lookup_attempts", 5)
	v.SetDefault("signup.lookup_interval", 1500*time.Millisecond)
	v.SetDefault("catalog.live_product_fallback", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("swagger.enabled", true)
	v.SetDefault("cors.origins", "")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Port: v.GetString("port"),
		Database: DatabaseConfig{
			URL:      v.GetString("database.url"),
			LogLevel: v.GetString("database.log_level"),
		},
		Shopify: ShopifyConfig{
			APIKey:        v.GetString("shopify.api_key"),
			APISecret:     v.GetString("shopify.api_secret"),
			WebhookSecret: v.GetString("shopify.webhook_secret"),
			AccessToken:   v.GetString("shopify.access_token"),
			Store:         v.GetString("shopify.store"),
			AppURL:        v.GetString("shopify.app_url"),
			Scopes:        v.GetString("shopify.scopes"),
			APIVersion:    v.GetString("shopify.api_version"),
		},
		Storefront: StorefrontConfig{
			Token:      v.GetString("storefront.token"),
			APIVersion: v.GetString("storefront.api_version"),
		},
		Sync: SyncConfig{
			PageSize:     v.GetInt("sync.page_size"),
			CreatedAtMin: v.GetString("sync.created_at_min"),
			MaxPages:     v.GetInt("sync.max_pages"),
			Delay:        v.GetDuration("sync.delay"),
			Cooldown:     v.GetDuration("sync.cooldown"),
			Cron:         v.GetString("sync.cron"),
		},
		Signup: SignupConfig{
			LookupAttempts: v.GetInt("signup.lookup_attempts"),
			LookupInterval: v.GetDuration("signup.lookup_interval"),
		},
		Catalog: CatalogConfig{
			LiveProductFallback: v.GetBool("catalog.live_product_fallback"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			Timeout: v.GetDuration("http.timeout"),
		},
		Swagger: SwaggerConfig{
			Enabled: v.GetBool("swagger.enabled"),
		},
	}

	cfg.CORS.Origins = corsOrigins(v.GetString("cors.origins"), cfg.Shopify.AppURL)
	return cfg
}

// corsOrigins 显式配置优先，否则使用本地前端 + 应用域名
func corsOrigins(raw, appURL string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) > 0 {
		return origins
	}

	origins = []string{"http://localhost:5173"}
	if appURL != "" {
		origins = append(origins, "https://"+appURL)
	}
	return origins
}

// Validate 校验启动必需项
func (c *Config) Validate() error {
	var errs []error
	if c.Database.URL == "" {
		errs = append(errs, errors.New("database.url (DATABASE_URL) 未配置"))
	}
	if c.Shopify.Store == "" {
		errs = append(errs, errors.New("shopify.store (SHOPIFY_STORE) 未配置"))
	}
	if c.Sync.PageSize <= 0 || c.Sync.PageSize > 250 {
		errs = append(errs, fmt.Errorf("sync.page_size 必须在 1-250 之间, 当前 %d", c.Sync.PageSize))
	}
	if c.Sync.MaxPages <= 0 {
		errs = append(errs, fmt.Errorf("sync.max_pages 必须大于 0, 当前 %d", c.Sync.MaxPages))
	}
	if c.Signup.LookupAttempts <= 0 {
		errs = append(errs, fmt.Errorf("signup.lookup_attempts 必须大于 0, 当前 %d", c.Signup.LookupAttempts))
	}
	return errors.Join(errs...)
}

// RedirectURI OAuth 回调地址
func (c *Config) RedirectURI() string {
	return "https://" + c.Shopify.AppURL + "/auth/callback"
}

// WebhookAddress 某个 topic 的回调地址，topic 形如 orders/create
func (c *Config) WebhookAddress(topic string) string {
	return "https://" + c.Shopify.AppURL + "/webhook/" + topic
}
