package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ==================== 订单状态常量 ====================

// 履约状态，上游其它取值原样透传
const (
	OrderStatusUnfulfilled = "unfulfilled" // 默认
	OrderStatusFulfilled   = "fulfilled"
)

// ==================== Order 订单快照 ====================

// Order 已对账的订单快照，主键为 Shopify 订单 ID
// 只插不改：同一 ID 再次写入时不做任何变更
type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	OrderNumber string          `gorm:"size:64" json:"order_number"`
	Tags        string          `gorm:"type:text" json:"tags"` // 小写、去重、", " 拼接
	LineItems   datatypes.JSON  `json:"line_items"`
	ItemPrice   decimal.Decimal `gorm:"type:numeric(12,2)" json:"item_price"`  // Σ 单价
	TotalPrice  decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_price"` // 上游订单总额
	Status      string          `gorm:"size:32;default:unfulfilled" json:"status"`
	ImageURL    *string         `gorm:"type:text" json:"image_url"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
	CostPrice   decimal.Decimal `gorm:"type:numeric(12,2)" json:"cost_price"` // Σ 成本
}

func (Order) TableName() string { return "orders" }

// LineItem 订单行，只作为 Order.LineItems 的序列化内容存在
type LineItem struct {
	Title    string          `json:"title"`
	Variant  *string         `json:"variant"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	Discount decimal.Decimal `json:"discount"`
	Revenue  decimal.Decimal `json:"revenue"`
	ImageURL *string         `json:"image_url"`
}

// NewLineItem 按 revenue = price - cost - discount 构造订单行
func NewLineItem(title string, variant *string, price, cost, discount decimal.Decimal, image *string) LineItem {
	return LineItem{
		Title:    title,
		Variant:  variant,
		Price:    price,
		Cost:     cost,
		Discount: discount,
		Revenue:  price.Sub(cost).Sub(discount),
		ImageURL: image,
	}
}

// SetLineItems 序列化订单行
func (o *Order) SetLineItems(items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	o.LineItems = datatypes.JSON(raw)
	return nil
}

// Items 反序列化订单行，存量数据损坏时返回空列表
func (o *Order) Items() []LineItem {
	var items []LineItem
	if len(o.LineItems) == 0 {
		return []LineItem{}
	}
	if err := json.Unmarshal(o.LineItems, &items); err != nil || items == nil {
		return []LineItem{}
	}
	return items
}
