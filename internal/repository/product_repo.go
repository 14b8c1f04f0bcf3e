package repository

import (
	"context"
	"errors"
	"strings"

	"shopify_creator_v1/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository 商品侧表仓库
type ProductRepository interface {
	// Upsert 按 ID 覆盖 title/price/image_url/tags
	Upsert(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	// ListByTag 标签子串匹配（忽略大小写），按 ID 倒序
	ListByTag(ctx context.Context, tag string) ([]model.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Upsert(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "price", "image_url", "tags"}),
		}).
		Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListByTag(ctx context.Context, tag string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(tags) LIKE ? ESCAPE '\\'", containsPattern(strings.ToLower(strings.TrimSpace(tag)))).
		Order("id DESC").
		Find(&products).Error
	return products, err
}
