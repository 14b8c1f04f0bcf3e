package controller

import (
	"errors"
	"net/http"

	"shopify_creator_v1/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductController 创作者商品查询
type ProductController struct {
	queryService *service.QueryService
}

func NewProductController(s *service.QueryService) *ProductController {
	return &ProductController{queryService: s}
}

// List
// @Summary 按创作者标签查询商品
// @Description 标签串包含 tag 子串即命中（忽略大小写），按商品 ID 倒序
// @Tags Products
// @Produce json
// @Param tag query string true "创作者标签"
// @Success 200 {object} dto.ProductsResponse
// @Failure 400 {object} ErrorResponse "Tag is required"
// @Failure 500 {object} ErrorResponse
// @Router /api/products [get]
func (ctrl *ProductController) List(c *gin.Context) {
	resp, err := ctrl.queryService.ProductsByTag(c.Request.Context(), c.Query("tag"))
	if err != nil {
		if errors.Is(err, service.ErrTagRequired) {
			abortJSON(c, http.StatusBadRequest, "Tag is required")
			return
		}
		abortInternal(c, http.StatusInternalServerError, "Failed to fetch products", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
