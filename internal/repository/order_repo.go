package repository

import (
	"context"
	"errors"
	"strings"

	"shopify_creator_v1/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ==================== OrderRepository 订单仓库 ====================

// OrderRepository 订单仓库接口
type OrderRepository interface {
	// CreateIfAbsent 按 ID 插入，已存在时静默跳过；返回是否真正插入
	CreateIfAbsent(ctx context.Context, order *model.Order) (bool, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	// ListByTag 标签完整匹配，按创建时间倒序
	ListByTag(ctx context.Context, tag string) ([]model.Order, error)
	Count(ctx context.Context) (int64, error)
	// Truncate 清空订单表并重置序列
	Truncate(ctx context.Context) error
}

// ==================== 实现 ====================

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateIfAbsent(ctx context.Context, order *model.Order) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(order)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByTag(ctx context.Context, tag string) ([]model.Order, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))

	// SQL 先用 LIKE 粗筛，再在内存里做完整元素匹配
	var candidates []model.Order
	err := r.db.WithContext(ctx).
		Where("LOWER(tags) LIKE ? ESCAPE '\\'", containsPattern(tag)).
		Order("created_at DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	orders := make([]model.Order, 0, len(candidates))
	for _, o := range candidates {
		if model.HasTag(o.Tags, tag) {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&n).Error
	return n, err
}

func (r *orderRepository) Truncate(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		return db.Exec("TRUNCATE TABLE orders RESTART IDENTITY CASCADE").Error
	}
	// sqlite 等不支持 TRUNCATE
	return db.Exec("DELETE FROM orders").Error
}

// ==================== 辅助函数 ====================

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern 生成 %tag% 模式并转义通配符
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
