package shopify

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ==================== 金额 ====================

// Money Shopify 金额字段，兼容字符串和数字
// 缺失、null、空串或非法值一律视为 0
type Money struct {
	decimal.Decimal
}

// NewMoney 从字符串构造，非法值为 0
func NewMoney(s string) Money {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{decimal.Zero}
	}
	return Money{d}
}

func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		m.Decimal = decimal.Zero
		return nil
	}
	*m = NewMoney(s)
	return nil
}

// ==================== 订单 ====================

// Order Admin API 订单（只取对账需要的字段）
type Order struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	CreatedAt         string     `json:"created_at"`
	TotalPrice        Money      `json:"total_price"`
	Tags              string     `json:"tags"`
	FulfillmentStatus *string    `json:"fulfillment_status"`
	LineItems         []LineItem `json:"line_items"`
}

// LineItem 订单行
type LineItem struct {
	ProductID     *int64  `json:"product_id"`
	VariantID     *int64  `json:"variant_id"`
	Title         string  `json:"title"`
	VariantTitle  *string `json:"variant_title"`
	Price         Money   `json:"price"`
	TotalDiscount Money   `json:"total_discount"`
}

type ordersResp struct {
	Orders []Order `json:"orders"`
}

// OrderFields 全量同步请求的字段列表
const OrderFields = "id,name,line_items,created_at,fulfillment_status,total_price,tags"

// OrderQuery 订单列表查询参数
type OrderQuery struct {
	Status       string // any
	Limit        int
	CreatedAtMin string
	MaxPages     int // 跟随 Link 翻页的最大页数，<=1 只取一页
}

// ==================== 商品 ====================

// Product webhook / Admin API 商品
type Product struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Tags     string    `json:"tags"`
	Image    *Image    `json:"image"`
	Variants []Variant `json:"variants"`
}

// Image 商品主图
type Image struct {
	Src string `json:"src"`
}

// Variant 商品变体
type Variant struct {
	ID              int64 `json:"id"`
	Price           Money `json:"price"`
	InventoryItemID int64 `json:"inventory_item_id"`
}

// ImageSrc 主图地址，没有时为 nil
func (p *Product) ImageSrc() *string {
	if p.Image == nil || p.Image.Src == "" {
		return nil
	}
	src := p.Image.Src
	return &src
}

// FirstVariantPrice 首个变体价格，没有变体时为 0
func (p *Product) FirstVariantPrice() decimal.Decimal {
	if len(p.Variants) == 0 {
		return decimal.Zero
	}
	return p.Variants[0].Price.Decimal
}

// ProductMeta 对账用的商品元数据
type ProductMeta struct {
	Tags     []string
	ImageURL *string
}

type variantResp struct {
	Variant Variant `json:"variant"`
}

type inventoryItemResp struct {
	InventoryItem struct {
		ID   int64  `json:"id"`
		Cost *Money `json:"cost"`
	} `json:"inventory_item"`
}

type productResp struct {
	Product Product `json:"product"`
}

// ==================== 客户 ====================

// Customer Admin API 客户
type Customer struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Tags      string `json:"tags"`
}

// FirstTag 逗号拆分后的第一个标签
func (c *Customer) FirstTag() string {
	for _, t := range strings.Split(c.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	return ""
}

type customersResp struct {
	Customers []Customer `json:"customers"`
}

// ==================== 错误 ====================

// APIError 上游非 2xx 响应
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Shopify API 错误 [%d]: %s", e.StatusCode, e.Body)
}

// splitTags 逗号拆分并去空白
func splitTags(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
