package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopify_creator_v1/pkg/utils"

	"github.com/go-resty/resty/v2"
)

// StorefrontTokenHeader Storefront API 鉴权头
const StorefrontTokenHeader = "X-Shopify-Storefront-Access-Token"

// StorefrontConfig Storefront 客户端配置
type StorefrontConfig struct {
	Endpoint string // https://{store}/api/{version}/graphql.json
	Token    string
	Timeout  time.Duration
	Debug    bool
}

// StorefrontEndpoint 拼接 GraphQL 地址
func StorefrontEndpoint(store, version string) string {
	return "https://" + store + "/api/" + version + "/graphql.json"
}

// StorefrontClient Storefront GraphQL 客户端
type StorefrontClient struct {
	client   *resty.Client
	endpoint string
	token    string
}

// NewStorefrontClient 创建 Storefront 客户端
func NewStorefrontClient(cfg StorefrontConfig) *StorefrontClient {
	return &StorefrontClient{
		client:   utils.NewHTTPClient(cfg.Timeout, cfg.Debug),
		endpoint: cfg.Endpoint,
		token:    cfg.Token,
	}
}

// ==================== 类型 ====================

// UserError customerUserErrors 条目
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// UserErrors 多条业务错误，取第一条作为提示
type UserErrors []UserError

func (e UserErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

// CustomerInput customerCreate 入参
type CustomerInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
}

// StorefrontCustomer 令牌对应的客户身份
type StorefrontCustomer struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// ==================== 查询语句 ====================

const customerCreateMutation = `
mutation customerCreate($input: CustomerCreateInput!) {
  customerCreate(input: $input) {
    customer { id email }
    customerUserErrors { field message }
  }
}`

const customerAccessTokenCreateMutation = `
mutation customerAccessTokenCreate($input: CustomerAccessTokenCreateInput!) {
  customerAccessTokenCreate(input: $input) {
    customerAccessToken { accessToken expiresAt }
    customerUserErrors { field message }
  }
}`

const customerQuery = `
query customer($token: String!) {
  customer(customerAccessToken: $token) { id email firstName }
}`

// ==================== 接口 ====================

// CustomerCreate 创建客户账号
// 业务错误以 UserErrors 返回，调用方用 errors.As 区分
func (c *StorefrontClient) CustomerCreate(ctx context.Context, input CustomerInput) (string, error) {
	var out struct {
		CustomerCreate struct {
			Customer *struct {
				ID string `json:"id"`
			} `json:"customer"`
			CustomerUserErrors UserErrors `json:"customerUserErrors"`
		} `json:"customerCreate"`
	}
	if err := c.do(ctx, customerCreateMutation, map[string]interface{}{"input": input}, &out); err != nil {
		return "", fmt.Errorf("customerCreate 请求失败: %w", err)
	}
	if len(out.CustomerCreate.CustomerUserErrors) > 0 {
		return "", out.CustomerCreate.CustomerUserErrors
	}
	if out.CustomerCreate.Customer == nil {
		return "", nil
	}
	return out.CustomerCreate.Customer.ID, nil
}

// CustomerAccessTokenCreate 邮箱密码换取客户令牌
func (c *StorefrontClient) CustomerAccessTokenCreate(ctx context.Context, email, password string) (string, error) {
	var out struct {
		CustomerAccessTokenCreate struct {
			CustomerAccessToken *struct {
				AccessToken string `json:"accessToken"`
				ExpiresAt   string `json:"expiresAt"`
			} `json:"customerAccessToken"`
			CustomerUserErrors UserErrors `json:"customerUserErrors"`
		} `json:"customerAccessTokenCreate"`
	}
	vars := map[string]interface{}{
		"input": map[string]string{"email": email, "password": password},
	}
	if err := c.do(ctx, customerAccessTokenCreateMutation, vars, &out); err != nil {
		return "", fmt.Errorf("customerAccessTokenCreate 请求失败: %w", err)
	}

	data := out.CustomerAccessTokenCreate
	if len(data.CustomerUserErrors) > 0 {
		return "", data.CustomerUserErrors
	}
	if data.CustomerAccessToken == nil || data.CustomerAccessToken.AccessToken == "" {
		return "", UserErrors{{Message: "Unidentified customer"}}
	}
	return data.CustomerAccessToken.AccessToken, nil
}

// Customer 用客户令牌查询身份，令牌无效时返回 nil
func (c *StorefrontClient) Customer(ctx context.Context, accessToken string) (*StorefrontCustomer, error) {
	var out struct {
		Customer *StorefrontCustomer `json:"customer"`
	}
	if err := c.do(ctx, customerQuery, map[string]interface{}{"token": accessToken}, &out); err != nil {
		return nil, fmt.Errorf("customer 查询失败: %w", err)
	}
	return out.Customer, nil
}

// do 发送 GraphQL 请求并把 data 解析到 out
func (c *StorefrontClient) do(ctx context.Context, query string, vars map[string]interface{}, out interface{}) error {
	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader(StorefrontTokenHeader, c.token).
		SetHeader("Content-Type", "application/json").
		SetBody(graphQLRequest{Query: query, Variables: vars}).
		SetResult(&envelope).
		Post(c.endpoint)
	if err := checkResponse(resp, err); err != nil {
		return err
	}

	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	if len(envelope.Data) == 0 {
		return errors.New("GraphQL 响应缺少 data")
	}
	return json.Unmarshal(envelope.Data, out)
}
