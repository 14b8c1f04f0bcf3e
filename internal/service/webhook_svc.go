package service

import (
	"context"
	"encoding/json"
	"fmt"

	"shopify_creator_v1/internal/model"
	"shopify_creator_v1/internal/repository"
	"shopify_creator_v1/pkg/shopify"
	"shopify_creator_v1/pkg/utils"

	"go.uber.org/zap"
)

// ==================== Topic ====================

// Topic webhook 事件类型
type Topic int

const (
	TopicUnknown Topic = iota
	TopicOrdersCreate
	TopicProductsCreate
	TopicProductsUpdate
	TopicCustomersCreate
	TopicCustomersUpdate
)

var topicNames = map[Topic]string{
	TopicOrdersCreate:    "orders/create",
	TopicProductsCreate:  "products/create",
	TopicProductsUpdate:  "products/update",
	TopicCustomersCreate: "customers/create",
	TopicCustomersUpdate: "customers/update",
}

// ParseTopic 由路由参数 {resource}/{event} 得到事件类型，未识别的为 TopicUnknown
func ParseTopic(resource, event string) Topic {
	name := resource + "/" + event
	for t, n := range topicNames {
		if n == name {
			return t
		}
	}
	return TopicUnknown
}

func (t Topic) String() string {
	if n, ok := topicNames[t]; ok {
		return n
	}
	return "unknown"
}

// ==================== WebhookService ====================

// WebhookService webhook 事件处理
type WebhookService struct {
	secret      string
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewWebhookService 创建 webhook 服务
func NewWebhookService(secret string, orderRepo repository.OrderRepository, productRepo repository.ProductRepository, logger *zap.Logger) *WebhookService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookService{
		secret:      secret,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// VerifySignature 校验 X-Shopify-Hmac-Sha256，必须在解析 body 之前调用
func (s *WebhookService) VerifySignature(body []byte, signature string) error {
	if !utils.VerifyHMACSHA256(s.secret, body, signature) {
		return ErrInvalidSignature
	}
	return nil
}

// Handle 按事件类型分发
// 返回 ErrInvalidPayload 表示 body 无法解析，其余错误为持久化失败
func (s *WebhookService) Handle(ctx context.Context, topic Topic, body []byte) error {
	if !json.Valid(body) {
		return ErrInvalidPayload
	}

	log := s.logger.With(zap.String("topic", topic.String()))

	switch topic {
	case TopicOrdersCreate:
		return s.handleOrderCreate(ctx, body, log)
	case TopicProductsCreate, TopicProductsUpdate:
		return s.handleProductUpsert(ctx, body, log)
	case TopicCustomersCreate, TopicCustomersUpdate:
		var c shopify.Customer
		if err := json.Unmarshal(body, &c); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		log.Info("收到客户事件", zap.String("email", c.Email), zap.String("tags", c.Tags))
		return nil
	default:
		log.Info("忽略未识别的 webhook 事件")
		return nil
	}
}

func (s *WebhookService) handleOrderCreate(ctx context.Context, body []byte, log *zap.Logger) error {
	var raw shopify.Order
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if raw.ID == 0 {
		return fmt.Errorf("%w: missing order id", ErrInvalidPayload)
	}

	order, err := NormalizeWebhookOrder(&raw)
	if err != nil {
		return err
	}

	inserted, err := s.orderRepo.CreateIfAbsent(ctx, order)
	if err != nil {
		return fmt.Errorf("写入订单失败: %w", err)
	}
	log.Info("webhook 订单已处理", zap.Int64("order_id", raw.ID), zap.Bool("inserted", inserted))
	return nil
}

// handleProductUpsert body 可能是 {"product": {...}} 也可能直接是商品
func (s *WebhookService) handleProductUpsert(ctx context.Context, body []byte, log *zap.Logger) error {
	var envelope struct {
		Product *shopify.Product `json:"product"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	p := envelope.Product
	if p == nil {
		p = &shopify.Product{}
		if err := json.Unmarshal(body, p); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}
	if p.ID == 0 {
		return fmt.Errorf("%w: missing product id", ErrInvalidPayload)
	}

	product := &model.Product{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.FirstVariantPrice(),
		ImageURL: p.ImageSrc(),
		Tags:     model.JoinTags(p.Tags),
	}
	if err := s.productRepo.Upsert(ctx, product); err != nil {
		return fmt.Errorf("写入商品失败: %w", err)
	}
	log.Info("webhook 商品已写入", zap.Int64("product_id", p.ID))
	return nil
}
