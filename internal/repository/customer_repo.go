package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"shopify_creator_v1/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ==================== CustomerRepository ====================

// CustomerRepository 创作者账号仓库
type CustomerRepository interface {
	// Upsert 按 shopify_id 覆盖 email/tag/name，created_at 只在首次写入
	Upsert(ctx context.Context, customer *model.Customer) error
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓库
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Upsert(ctx context.Context, customer *model.Customer) error {
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shopify_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "tag", "name"}),
		}).
		Create(customer).Error
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// ==================== ShopTokenRepository ====================

// ShopTokenRepository 店铺凭证仓库
type ShopTokenRepository interface {
	Upsert(ctx context.Context, shop, accessToken string) error
	// GetToken 不存在时返回空串
	GetToken(ctx context.Context, shop string) (string, error)
}

type shopTokenRepository struct {
	db *gorm.DB
}

// NewShopTokenRepository 创建凭证仓库
func NewShopTokenRepository(db *gorm.DB) ShopTokenRepository {
	return &shopTokenRepository{db: db}
}

func (r *shopTokenRepository) Upsert(ctx context.Context, shop, accessToken string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shop"}},
			DoUpdates: clause.AssignmentColumns([]string{"access_token"}),
		}).
		Create(&model.ShopToken{Shop: shop, AccessToken: accessToken}).Error
}

func (r *shopTokenRepository) GetToken(ctx context.Context, shop string) (string, error) {
	var token model.ShopToken
	err := r.db.WithContext(ctx).Where("shop = ?", shop).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}
