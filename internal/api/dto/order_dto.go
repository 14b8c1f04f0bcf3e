package dto

import "time"

// ==================== 销售查询 ====================

// SalesResponse 销售列表响应
type SalesResponse struct {
	Sales []SaleItem `json:"sales"`
}

// SaleItem 单个订单
type SaleItem struct {
	ID          int64          `json:"id"`
	OrderNumber string         `json:"orderNumber"`
	Status      string         `json:"status"`
	Tags        string         `json:"tags"`
	CreatedAt   time.Time      `json:"createdAt"`
	ItemPrice   float64        `json:"itemPrice"`
	TotalPrice  float64        `json:"totalPrice"`
	CostPrice   float64        `json:"costPrice"`
	ImageURL    *string        `json:"imageUrl"`
	Items       []SaleLineItem `json:"items"`
}

// SaleLineItem 订单行
type SaleLineItem struct {
	Title        string  `json:"title"`
	VariantTitle string  `json:"variantTitle"`
	Price        float64 `json:"price"`
	Cost         float64 `json:"cost"`
	Discount     float64 `json:"discount"`
	Revenue      float64 `json:"revenue"`
	Image        *string `json:"image"`
}

// ==================== 全量同步 ====================

// SyncOrdersResponse GET /sync/orders
type SyncOrdersResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// SyncResult 同步统计，日志和定时任务使用
type SyncResult struct {
	Fetched  int
	Inserted int
	Skipped  int // 已存在
	Failed   int
	Errors   []string
}
