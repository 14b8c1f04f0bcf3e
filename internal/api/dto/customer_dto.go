package dto

import "time"

// ==================== 注册 / 登录 ====================

// SignupRequest POST /api/signup
type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"firstName" binding:"required"`
	CreatorName string `json:"creatorName" binding:"required"`
}

// LoginRequest POST /api/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录结果
type LoginResponse struct {
	AccessToken string  `json:"accessToken"`
	Email       string  `json:"email"`
	Tag         *string `json:"tag"`
}

// ==================== 客户资料 ====================

// CustomerProfileResponse 资料响应
type CustomerProfileResponse struct {
	Customer CustomerProfile `json:"customer"`
}

// CustomerProfile 本地字段 + 前端占位字段
type CustomerProfile struct {
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Tag         string            `json:"tag"`
	CreatedAt   time.Time         `json:"createdAt"`
	Company     string            `json:"company"`
	Phone       string            `json:"phone"`
	Address     map[string]string `json:"address"`
	OrdersCount int               `json:"ordersCount"`
	TotalSpent  string            `json:"totalSpent"`
	Marketing   MarketingPrefs    `json:"marketing"`
}

// MarketingPrefs 营销订阅偏好（暂无数据源）
type MarketingPrefs struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
}
