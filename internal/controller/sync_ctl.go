package controller

import (
	"errors"
	"net/http"

	"shopify_creator_v1/internal/api/dto"
	"shopify_creator_v1/internal/service"
	"shopify_creator_v1/internal/task"

	"github.com/gin-gonic/gin"
)

// SyncController 同步控制器
type SyncController struct {
	orderTask *task.OrderSyncTask
}

// NewSyncController 创建同步控制器
func NewSyncController(orderTask *task.OrderSyncTask) *SyncController {
	return &SyncController{orderTask: orderTask}
}

// SyncOrders 订单全量同步
// @Summary 手动触发订单全量同步
// @Description 清空订单表后重新拉取并对账，同步完成后返回拉取数量
// @Tags Sync
// @Produce json
// @Success 200 {object} dto.SyncOrdersResponse
// @Failure 409 {object} ErrorResponse "已有同步在执行"
// @Failure 429 {object} map[string]interface{} "冷却中"
// @Failure 500 {object} ErrorResponse
// @Router /sync/orders [get]
func (ctrl *SyncController) SyncOrders(c *gin.Context) {
	result, err := ctrl.orderTask.SyncNow(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrSyncInProgress) {
			abortJSON(c, http.StatusConflict, "Order sync already in progress")
			return
		}
		abortInternal(c, http.StatusInternalServerError, "Failed to sync orders", err)
		return
	}

	c.JSON(http.StatusOK, dto.SyncOrdersResponse{
		Message: "Order sync complete",
		Count:   result.Fetched,
	})
}
