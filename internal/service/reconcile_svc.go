package service

import (
	"context"
	"fmt"
	"time"

	"shopify_creator_v1/internal/model"
	"shopify_creator_v1/pkg/shopify"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ==================== 依赖接口 ====================

// CatalogClient 外部商品目录查询，重试由调用方决定
type CatalogClient interface {
	ResolveInventoryItem(ctx context.Context, variantID int64) (int64, error)
	ResolveCost(ctx context.Context, inventoryItemID int64) (decimal.Decimal, error)
	ResolveProductMeta(ctx context.Context, productID int64) (*shopify.ProductMeta, error)
}

// ProductLookup 本地商品侧表，按商品 ID 取标签和主图
type ProductLookup interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
}

// ==================== Reconciler ====================

// Reconciler 订单对账：逐行解析成本、汇总标签、计算收入
type Reconciler struct {
	catalog      CatalogClient
	products     ProductLookup
	liveFallback bool
	logger       *zap.Logger
}

// NewReconciler 创建对账器
// liveFallback 为 true 时侧表未命中会回查外部目录
func NewReconciler(catalog CatalogClient, products ProductLookup, liveFallback bool, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		catalog:      catalog,
		products:     products,
		liveFallback: liveFallback,
		logger:       logger,
	}
}

// Reconcile 把上游订单转换为带成本的订单快照
// 单行的成本、标签、图片查询失败只降级该行，不会中断整单
func (r *Reconciler) Reconcile(ctx context.Context, raw *shopify.Order) (*model.Order, error) {
	tags := model.NewTagSet()
	items := make([]model.LineItem, 0, len(raw.LineItems))

	for _, li := range raw.LineItems {
		cost := r.resolveCost(ctx, raw.ID, li.VariantID)

		var image *string
		if li.ProductID != nil {
			var productTags []string
			productTags, image = r.resolveProduct(ctx, raw.ID, *li.ProductID)
			tags.AddAll(productTags)
		}

		items = append(items, model.NewLineItem(li.Title, li.VariantTitle, li.Price.Decimal, cost, li.TotalDiscount.Decimal, image))
	}

	return assembleOrder(raw, items, tags)
}

// resolveCost variant -> inventory item -> cost，任一步失败成本记 0
func (r *Reconciler) resolveCost(ctx context.Context, orderID int64, variantID *int64) decimal.Decimal {
	if variantID == nil {
		return decimal.Zero
	}

	inventoryItemID, err := r.catalog.ResolveInventoryItem(ctx, *variantID)
	if err != nil {
		r.logger.Warn("解析库存项失败，成本按 0 处理",
			zap.Int64("order_id", orderID),
			zap.Int64("variant_id", *variantID),
			zap.Error(err),
		)
		return decimal.Zero
	}
	if inventoryItemID == 0 {
		return decimal.Zero
	}

	cost, err := r.catalog.ResolveCost(ctx, inventoryItemID)
	if err != nil {
		r.logger.Warn("查询成本失败，成本按 0 处理",
			zap.Int64("order_id", orderID),
			zap.Int64("inventory_item_id", inventoryItemID),
			zap.Error(err),
		)
		return decimal.Zero
	}
	return cost
}

// resolveProduct 从侧表取标签和主图，未命中返回空
func (r *Reconciler) resolveProduct(ctx context.Context, orderID, productID int64) ([]string, *string) {
	p, err := r.products.GetByID(ctx, productID)
	if err != nil {
		r.logger.Warn("查询商品侧表失败",
			zap.Int64("order_id", orderID),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		return nil, nil
	}
	if p != nil {
		return model.SplitTags(p.Tags), nonEmpty(p.ImageURL)
	}
	if !r.liveFallback {
		return nil, nil
	}

	meta, err := r.catalog.ResolveProductMeta(ctx, productID)
	if err != nil || meta == nil {
		if err != nil {
			r.logger.Warn("回查商品元数据失败",
				zap.Int64("order_id", orderID),
				zap.Int64("product_id", productID),
				zap.Error(err),
			)
		}
		return nil, nil
	}
	return meta.Tags, nonEmpty(meta.ImageURL)
}

// ==================== Webhook 精简路径 ====================

// NormalizeWebhookOrder webhook 下单事件的精简对账
// 不做外部查询：成本固定为 0，图片为空，标签取订单自带标签
func NormalizeWebhookOrder(raw *shopify.Order) (*model.Order, error) {
	tags := model.NewTagSet()
	tags.AddAll(model.SplitTags(raw.Tags))

	items := make([]model.LineItem, 0, len(raw.LineItems))
	for _, li := range raw.LineItems {
		items = append(items, model.NewLineItem(li.Title, li.VariantTitle, li.Price.Decimal, decimal.Zero, li.TotalDiscount.Decimal, nil))
	}
	return assembleOrder(raw, items, tags)
}

// ==================== 组装 ====================

// assembleOrder 汇总订单行
// 零售价和成本由订单行求和，总价取上游报告值，两者互不推导
func assembleOrder(raw *shopify.Order, items []model.LineItem, tags *model.TagSet) (*model.Order, error) {
	order := &model.Order{
		ID:          raw.ID,
		OrderNumber: raw.Name,
		Tags:        tags.String(),
		TotalPrice:  raw.TotalPrice.Decimal,
		ItemPrice:   decimal.Zero,
		CostPrice:   decimal.Zero,
		Status:      orderStatus(raw.FulfillmentStatus),
		CreatedAt:   parseCreatedAt(raw.CreatedAt),
	}

	for _, item := range items {
		order.ItemPrice = order.ItemPrice.Add(item.Price)
		order.CostPrice = order.CostPrice.Add(item.Cost)
		if order.ImageURL == nil && item.ImageURL != nil {
			order.ImageURL = item.ImageURL
		}
	}

	if err := order.SetLineItems(items); err != nil {
		return nil, fmt.Errorf("序列化订单行失败: %w", err)
	}
	return order, nil
}

func orderStatus(fulfillment *string) string {
	if fulfillment == nil || *fulfillment == "" {
		return model.OrderStatusUnfulfilled
	}
	return *fulfillment
}

// parseCreatedAt 解析失败返回零值，写库时由 GORM 填当前时间
func parseCreatedAt(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
