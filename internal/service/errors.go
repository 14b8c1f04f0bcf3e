package service

import "errors"

// ==================== 业务错误 ====================

// 认证失败
var (
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrMissingOAuthParams = errors.New("missing shop or code")
	ErrInvalidShop        = errors.New("invalid shop domain")
	ErrInvalidState       = errors.New("invalid oauth state")
)

// 参数校验
var (
	ErrTagRequired     = errors.New("tag is required")
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrMissingIdentity = errors.New("missing email or token")
)

// 客户
var (
	ErrCustomerNotFound       = errors.New("customer created, but not found")
	ErrCustomerProfileMissing = errors.New("customer not found")
	ErrMissingShopToken       = errors.New("missing access token for shop")
	ErrInvalidCustomerToken   = errors.New("invalid or expired token")
)

// ErrSyncInProgress 已有全量同步在运行
var ErrSyncInProgress = errors.New("order sync already in progress")

// UserError 上游返回的面向用户的错误信息，原样透传给调用方
type UserError struct {
	Message string
}

func (e *UserError) Error() string { return e.Message }
