package shopify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"go.uber.org/zap"
)

// WebhookTopics 安装时订阅的 topic
var WebhookTopics = []string{
	"orders/create",
	"products/create",
	"products/update",
	"customers/create",
	"customers/update",
}

// WebhookRegistrar 安装回调后为店铺订阅 webhook
type WebhookRegistrar struct {
	app        goshopify.App
	httpClient *http.Client
	addressFor func(topic string) string
	topics     []string
	logger     *zap.Logger
}

// NewWebhookRegistrar addressFor 返回某个 topic 的回调地址
func NewWebhookRegistrar(apiKey, apiSecret string, addressFor func(topic string) string, httpClient *http.Client, logger *zap.Logger) *WebhookRegistrar {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookRegistrar{
		app:        goshopify.App{ApiKey: apiKey, ApiSecret: apiSecret},
		httpClient: httpClient,
		addressFor: addressFor,
		topics:     WebhookTopics,
		logger:     logger.Named("webhook_registrar"),
	}
}

// Register 订阅缺失的 topic，已存在的跳过
// 单个 topic 失败不影响其它 topic，最后合并返回
func (r *WebhookRegistrar) Register(ctx context.Context, shop, accessToken string) error {
	client, err := goshopify.NewClient(r.app, shop, accessToken, goshopify.WithHTTPClient(r.httpClient))
	if err != nil {
		return fmt.Errorf("创建 Shopify 客户端失败: %w", err)
	}

	existing, err := client.Webhook.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("获取已有 webhook 失败: %w", err)
	}

	registered := make(map[string]bool, len(existing))
	for _, w := range existing {
		if w.Address == r.addressFor(w.Topic) {
			registered[w.Topic] = true
		}
	}

	var errs []error
	for _, topic := range r.topics {
		if registered[topic] {
			r.logger.Debug("webhook 已存在，跳过", zap.String("shop", shop), zap.String("topic", topic))
			continue
		}

		_, err := client.Webhook.Create(ctx, goshopify.Webhook{
			Topic:   topic,
			Address: r.addressFor(topic),
			Format:  "json",
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("订阅 %s 失败: %w", topic, err))
			continue
		}
		r.logger.Info("webhook 已订阅", zap.String("shop", shop), zap.String("topic", topic))
	}
	return errors.Join(errs...)
}
