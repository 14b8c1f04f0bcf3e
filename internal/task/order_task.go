package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopify_creator_v1/internal/api/dto"
	"shopify_creator_v1/internal/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OrderSyncer 订单全量同步
type OrderSyncer interface {
	SyncAll(ctx context.Context) (*dto.SyncResult, error)
}

// ==================== OrderSyncTask 订单同步任务 ====================

// OrderSyncTask 订单全量同步：定时执行 + 手动触发共用同一入口
type OrderSyncTask struct {
	syncer  OrderSyncer
	cron    *cron.Cron
	timeout time.Duration
	logger  *zap.Logger
}

// NewOrderSyncTask 创建订单同步任务
func NewOrderSyncTask(syncer OrderSyncer, logger *zap.Logger) *OrderSyncTask {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderSyncTask{
		syncer:  syncer,
		cron:    cron.New(cron.WithSeconds()),
		timeout: 10 * time.Minute,
		logger:  logger,
	}
}

// Start 按 6 段 cron 表达式（含秒）启动定时同步，表达式为空时不启用
func (t *OrderSyncTask) Start(spec string) error {
	if spec == "" {
		t.logger.Info("定时订单同步未启用")
		return nil
	}

	if _, err := t.cron.AddFunc(spec, t.runScheduled); err != nil {
		return fmt.Errorf("定时任务表达式无效 %q: %w", spec, err)
	}

	t.cron.Start()
	t.logger.Info("定时订单同步已启动", zap.String("spec", spec))
	return nil
}

// Stop 停止调度并等待正在执行的任务结束
func (t *OrderSyncTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.logger.Info("定时订单同步已停止")
}

// SyncNow 立即执行一次全量同步
// 同步已清表，调用方取消（如 HTTP 客户端断开）不能中断重建，只受任务超时约束
func (t *OrderSyncTask) SyncNow(ctx context.Context) (*dto.SyncResult, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.timeout)
	defer cancel()

	return t.syncer.SyncAll(ctx)
}

func (t *OrderSyncTask) runScheduled() {
	result, err := t.SyncNow(context.Background())
	switch {
	case errors.Is(err, service.ErrSyncInProgress):
		t.logger.Info("已有同步在执行，跳过本次定时同步")
	case err != nil:
		t.logger.Error("定时订单同步失败", zap.Error(err))
	default:
		t.logger.Info("定时订单同步完成",
			zap.Int("fetched", result.Fetched),
			zap.Int("inserted", result.Inserted),
			zap.Int("failed", result.Failed),
		)
	}
}
