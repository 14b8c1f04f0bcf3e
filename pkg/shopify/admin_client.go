package shopify

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"shopify_creator_v1/pkg/utils"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// AccessTokenHeader Admin API 鉴权头
const AccessTokenHeader = "X-Shopify-Access-Token"

// AdminConfig Admin 客户端配置
type AdminConfig struct {
	BaseURL     string // https://{store}/admin/api/{version}
	AccessToken string
	Timeout     time.Duration
	Debug       bool
}

// AdminBaseURL 拼接 Admin REST 根路径
func AdminBaseURL(store, version string) string {
	return "https://" + store + "/admin/api/" + version
}

// AdminClient Admin REST API 客户端
// 同时实现对账所需的三个目录查询
type AdminClient struct {
	client *resty.Client
	token  string
}

// NewAdminClient 创建 Admin 客户端
func NewAdminClient(cfg AdminConfig) *AdminClient {
	return &AdminClient{
		client: utils.NewHTTPClient(cfg.Timeout, cfg.Debug).SetBaseURL(cfg.BaseURL),
		token:  cfg.AccessToken,
	}
}

// WithAccessToken 使用另一个店铺凭证，底层连接复用
func (c *AdminClient) WithAccessToken(token string) *AdminClient {
	clone := *c
	clone.token = token
	return &clone
}

func (c *AdminClient) request(ctx context.Context) *resty.Request {
	return c.client.R().
		SetContext(ctx).
		SetHeader(AccessTokenHeader, c.token)
}

// ==================== 目录查询 ====================

// ResolveInventoryItem 变体 -> 库存项 ID
func (c *AdminClient) ResolveInventoryItem(ctx context.Context, variantID int64) (int64, error) {
	var res variantResp
	resp, err := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(variantID, 10)).
		SetResult(&res).
		Get("/variants/{id}.json")
	if err := checkResponse(resp, err); err != nil {
		return 0, fmt.Errorf("查询变体 %d 失败: %w", variantID, err)
	}
	if res.Variant.InventoryItemID == 0 {
		return 0, fmt.Errorf("变体 %d 没有库存项", variantID)
	}
	return res.Variant.InventoryItemID, nil
}

// ResolveCost 库存项 -> 成本，未设置成本时为 0
func (c *AdminClient) ResolveCost(ctx context.Context, inventoryItemID int64) (decimal.Decimal, error) {
	var res inventoryItemResp
	resp, err := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(inventoryItemID, 10)).
		SetResult(&res).
		Get("/inventory_items/{id}.json")
	if err := checkResponse(resp, err); err != nil {
		return decimal.Zero, fmt.Errorf("查询库存项 %d 失败: %w", inventoryItemID, err)
	}
	if res.InventoryItem.Cost == nil {
		return decimal.Zero, nil
	}
	return res.InventoryItem.Cost.Decimal, nil
}

// ResolveProductMeta 商品 -> 标签 + 主图
func (c *AdminClient) ResolveProductMeta(ctx context.Context, productID int64) (*ProductMeta, error) {
	var res productResp
	resp, err := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(productID, 10)).
		SetQueryParam("fields", "id,tags,image").
		SetResult(&res).
		Get("/products/{id}.json")
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("查询商品 %d 失败: %w", productID, err)
	}
	return &ProductMeta{
		Tags:     splitTags(res.Product.Tags),
		ImageURL: res.Product.ImageSrc(),
	}, nil
}

// ==================== 订单 ====================

var nextLinkPattern = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// ListOrders 拉取历史订单，按 Link 头翻页直到 MaxPages
func (c *AdminClient) ListOrders(ctx context.Context, q OrderQuery) ([]Order, error) {
	status := q.Status
	if status == "" {
		status = "any"
	}
	maxPages := q.MaxPages
	if maxPages < 1 {
		maxPages = 1
	}

	var orders []Order
	next := ""
	for page := 1; page <= maxPages; page++ {
		var res ordersResp
		req := c.request(ctx).SetResult(&res)

		var (
			resp *resty.Response
			err  error
		)
		if next == "" {
			resp, err = req.
				SetQueryParams(map[string]string{
					"status":         status,
					"limit":          strconv.Itoa(q.Limit),
					"created_at_min": q.CreatedAtMin,
					"fields":         OrderFields,
				}).
				Get("/orders.json")
		} else {
			// page_info 游标请求不能再带过滤参数
			resp, err = req.Get(next)
		}
		if err := checkResponse(resp, err); err != nil {
			return nil, fmt.Errorf("拉取订单列表失败 (第 %d 页): %w", page, err)
		}

		orders = append(orders, res.Orders...)

		next = nextPageURL(resp.Header().Get("Link"))
		if next == "" {
			break
		}
	}
	return orders, nil
}

// nextPageURL 解析 Link: <...>; rel="next"
func nextPageURL(link string) string {
	m := nextLinkPattern.FindStringSubmatch(link)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// ==================== 客户 ====================

// SearchCustomerByEmail 按邮箱搜索，没找到返回 nil
func (c *AdminClient) SearchCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	var res customersResp
	resp, err := c.request(ctx).
		SetQueryParam("query", "email:"+email).
		SetResult(&res).
		Get("/customers/search.json")
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("搜索客户失败: %w", err)
	}
	if len(res.Customers) == 0 {
		return nil, nil
	}
	return &res.Customers[0], nil
}

// UpdateCustomerTags 覆盖客户标签
func (c *AdminClient) UpdateCustomerTags(ctx context.Context, customerID int64, tags string) error {
	body := map[string]interface{}{
		"customer": map[string]interface{}{
			"id":   customerID,
			"tags": tags,
		},
	}
	resp, err := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(customerID, 10)).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Put("/customers/{id}.json")
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("更新客户 %d 标签失败: %w", customerID, err)
	}
	return nil
}

// ==================== 辅助函数 ====================

// checkResponse 网络错误或非 2xx 统一转成 error
func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
