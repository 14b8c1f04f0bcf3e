package model

import "time"

// Customer 注册时写入的创作者账号
type Customer struct {
	ShopifyID int64     `gorm:"column:shopify_id;primaryKey;autoIncrement:false" json:"shopify_id"`
	Email     string    `gorm:"size:255;index" json:"email"`
	Tag       string    `gorm:"size:255" json:"tag"` // 创作者标识
	Name      string    `gorm:"size:255" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Customer) TableName() string { return "customers" }

// ShopToken 店铺 Admin API 凭证，每次授权回调覆盖
type ShopToken struct {
	Shop        string `gorm:"primaryKey;size:255" json:"shop"`
	AccessToken string `gorm:"type:text;not null" json:"-"`
}

func (ShopToken) TableName() string { return "shop_tokens" }

// AllModels AutoMigrate 使用
func AllModels() []interface{} {
	return []interface{}{&Order{}, &Product{}, &Customer{}, &ShopToken{}}
}
