package controller

import (
	"errors"
	"net/http"

	"shopify_creator_v1/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderController 创作者销售查询
type OrderController struct {
	queryService *service.QueryService
}

func NewOrderController(s *service.QueryService) *OrderController {
	return &OrderController{queryService: s}
}

// Sales
// @Summary 按创作者标签查询销售
// @Description 标签需完整匹配订单标签集合中的某一项，按创建时间倒序
// @Tags Sales
// @Produce json
// @Param tag query string true "创作者标签"
// @Success 200 {object} dto.SalesResponse
// @Failure 400 {object} ErrorResponse "Tag is required"
// @Failure 500 {object} ErrorResponse
// @Router /api/sales [get]
func (ctrl *OrderController) Sales(c *gin.Context) {
	resp, err := ctrl.queryService.SalesByTag(c.Request.Context(), c.Query("tag"))
	if err != nil {
		if errors.Is(err, service.ErrTagRequired) {
			abortJSON(c, http.StatusBadRequest, "Tag is required")
			return
		}
		abortInternal(c, http.StatusInternalServerError, "Failed to fetch sales", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
