package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shopify_creator_v1/internal/api/dto"
	"shopify_creator_v1/internal/repository"
	"shopify_creator_v1/pkg/shopify"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ==================== 依赖接口 ====================

// OrderSource 历史订单来源
type OrderSource interface {
	ListOrders(ctx context.Context, q shopify.OrderQuery) ([]shopify.Order, error)
}

// Throttler 逐单处理之间的节流
type Throttler interface {
	Wait(ctx context.Context) error
}

// NewIntervalThrottler 固定间隔节流，interval <= 0 时不限速
// 初始令牌先取走，第一单处理完后同样要等满一个间隔
func NewIntervalThrottler(interval time.Duration) Throttler {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	l := rate.NewLimiter(rate.Every(interval), 1)
	l.Allow()
	return l
}

// ==================== SyncService ====================

// SyncService 订单全量同步：清表后逐单对账重建
type SyncService struct {
	source     OrderSource
	orderRepo  repository.OrderRepository
	reconciler *Reconciler
	throttler  Throttler
	query      shopify.OrderQuery
	logger     *zap.Logger

	mu sync.Mutex // 同一时刻只允许一次全量同步
}

// NewSyncService 创建同步服务
func NewSyncService(
	source OrderSource,
	orderRepo repository.OrderRepository,
	reconciler *Reconciler,
	throttler Throttler,
	query shopify.OrderQuery,
	logger *zap.Logger,
) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		source:     source,
		orderRepo:  orderRepo,
		reconciler: reconciler,
		throttler:  throttler,
		query:      query,
		logger:     logger,
	}
}

// SyncAll 清空订单表，拉取历史订单并逐单对账写入
// 清表或拉取失败直接返回错误；单个订单失败只记录，继续下一单
func (s *SyncService) SyncAll(ctx context.Context) (*dto.SyncResult, error) {
	if !s.mu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.mu.Unlock()

	start := time.Now()

	if err := s.orderRepo.Truncate(ctx); err != nil {
		return nil, fmt.Errorf("清空订单表失败: %w", err)
	}
	s.logger.Info("已清空订单表")

	orders, err := s.source.ListOrders(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("拉取订单失败: %w", err)
	}
	s.logger.Info("拉取订单完成", zap.Int("count", len(orders)))

	result := &dto.SyncResult{Fetched: len(orders)}
	for i := range orders {
		raw := &orders[i]
		s.syncOne(ctx, raw, result)

		if err := s.throttler.Wait(ctx); err != nil {
			return result, fmt.Errorf("同步被中断: %w", err)
		}
	}

	s.logger.Info("订单同步完成",
		zap.Int("fetched", result.Fetched),
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

func (s *SyncService) syncOne(ctx context.Context, raw *shopify.Order, result *dto.SyncResult) {
	log := s.logger.With(zap.Int64("order_id", raw.ID), zap.String("order_number", raw.Name))

	order, err := s.reconciler.Reconcile(ctx, raw)
	if err != nil {
		log.Error("订单对账失败", zap.Error(err))
		result.Failed++
		result.Errors = append(result.Errors, fmt.Sprintf("订单 %d: %v", raw.ID, err))
		return
	}

	inserted, err := s.orderRepo.CreateIfAbsent(ctx, order)
	if err != nil {
		log.Error("订单写入失败", zap.Error(err))
		result.Failed++
		result.Errors = append(result.Errors, fmt.Sprintf("订单 %d: %v", raw.ID, err))
		return
	}
	if !inserted {
		result.Skipped++
		return
	}
	result.Inserted++
}
