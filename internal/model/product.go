package model

import "github.com/shopspring/decimal"

// Product 商品侧表，webhook 写入，对账时按 ID 查标签和图片
type Product struct {
	ID       int64           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title    string          `gorm:"type:text" json:"title"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"` // 首个变体价格
	ImageURL *string         `gorm:"type:text" json:"image_url"`
	Tags     string          `gorm:"type:text" json:"tags"` // ", " 拼接，保留原大小写
}

func (Product) TableName() string { return "products" }
