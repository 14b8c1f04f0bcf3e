package service

import (
	"context"
	"fmt"
	"strings"

	"shopify_creator_v1/internal/api/dto"
	"shopify_creator_v1/internal/model"
	"shopify_creator_v1/internal/repository"
)

// QueryService 看板只读查询
type QueryService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewQueryService 创建查询服务
func NewQueryService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) *QueryService {
	return &QueryService{orderRepo: orderRepo, productRepo: productRepo}
}

func normalizeTag(tag string) (string, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return "", ErrTagRequired
	}
	return tag, nil
}

// SalesByTag 标签集合中完整包含 tag 的订单，按创建时间倒序
func (s *QueryService) SalesByTag(ctx context.Context, tag string) (*dto.SalesResponse, error) {
	tag, err := normalizeTag(tag)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListByTag(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}

	sales := make([]dto.SaleItem, 0, len(orders))
	for i := range orders {
		sales = append(sales, toSaleItem(&orders[i]))
	}
	return &dto.SalesResponse{Sales: sales}, nil
}

// ProductsByTag 标签串包含 tag 子串的商品，按 ID 倒序
func (s *QueryService) ProductsByTag(ctx context.Context, tag string) (*dto.ProductsResponse, error) {
	tag, err := normalizeTag(tag)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.ListByTag(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}

	items := make([]dto.ProductItem, 0, len(products))
	for _, p := range products {
		items = append(items, dto.ProductItem{
			ID:    p.ID,
			Title: p.Title,
			Price: p.Price.InexactFloat64(),
			Image: p.ImageURL,
			Tags:  p.Tags,
		})
	}
	return &dto.ProductsResponse{Products: items}, nil
}

// ==================== 转换 ====================

func toSaleItem(o *model.Order) dto.SaleItem {
	lineItems := o.Items()
	items := make([]dto.SaleLineItem, 0, len(lineItems))
	for _, li := range lineItems {
		title := li.Title
		if title == "" {
			title = "Unknown"
		}
		variant := ""
		if li.Variant != nil {
			variant = *li.Variant
		}
		items = append(items, dto.SaleLineItem{
			Title:        title,
			VariantTitle: variant,
			Price:        li.Price.InexactFloat64(),
			Cost:         li.Cost.InexactFloat64(),
			Discount:     li.Discount.InexactFloat64(),
			Revenue:      li.Revenue.InexactFloat64(),
			Image:        li.ImageURL,
		})
	}

	return dto.SaleItem{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		Tags:        o.Tags,
		CreatedAt:   o.CreatedAt,
		ItemPrice:   o.ItemPrice.InexactFloat64(),
		TotalPrice:  o.TotalPrice.InexactFloat64(),
		CostPrice:   o.CostPrice.InexactFloat64(),
		ImageURL:    o.ImageURL,
		Items:       items,
	}
}
