package shopify

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"shopify_creator_v1/pkg/utils"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/go-resty/resty/v2"
)

// OAuthConfig 应用授权配置
type OAuthConfig struct {
	APIKey      string
	APISecret   string
	Scopes      string
	RedirectURI string
	Timeout     time.Duration
	// ShopURL 店铺根地址，默认 https://{shop}，测试时可替换
	ShopURL func(shop string) string
}

// OAuthClient 处理安装跳转和授权码换令牌
type OAuthClient struct {
	cfg    OAuthConfig
	app    goshopify.App
	client *resty.Client
}

// NewOAuthClient 创建授权客户端
func NewOAuthClient(cfg OAuthConfig) *OAuthClient {
	if cfg.ShopURL == nil {
		cfg.ShopURL = func(shop string) string { return "https://" + shop }
	}
	return &OAuthClient{
		cfg: cfg,
		app: goshopify.App{
			ApiKey:      cfg.APIKey,
			ApiSecret:   cfg.APISecret,
			RedirectUrl: cfg.RedirectURI,
			Scope:       cfg.Scopes,
		},
		client: utils.NewHTTPClient(cfg.Timeout, false),
	}
}

var shopDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-]*\.myshopify\.com$`)

// ValidShopDomain 只接受 xxx.myshopify.com
func ValidShopDomain(shop string) bool {
	return shopDomainPattern.MatchString(shop)
}

// AuthorizeURL 安装跳转地址
func (c *OAuthClient) AuthorizeURL(shop, state string) string {
	q := url.Values{}
	q.Set("client_id", c.cfg.APIKey)
	q.Set("scope", c.cfg.Scopes)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	if state != "" {
		q.Set("state", state)
	}
	return "https://" + shop + "/admin/oauth/authorize?" + q.Encode()
}

// VerifyCallback 校验回调 URL 上的 hmac 参数
func (c *OAuthClient) VerifyCallback(u *url.URL) (bool, error) {
	return c.app.VerifyAuthorizationURL(u)
}

type accessTokenResp struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
}

// ExchangeToken 授权码换取店铺 Admin 令牌
func (c *OAuthClient) ExchangeToken(ctx context.Context, shop, code string) (string, error) {
	var res accessTokenResp
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"client_id":     c.cfg.APIKey,
			"client_secret": c.cfg.APISecret,
			"code":          code,
		}).
		SetResult(&res).
		Post(c.cfg.ShopURL(shop) + "/admin/oauth/access_token")
	if err := checkResponse(resp, err); err != nil {
		return "", fmt.Errorf("换取 %s 令牌失败: %w", shop, err)
	}
	if res.AccessToken == "" {
		return "", fmt.Errorf("换取 %s 令牌失败: 响应缺少 access_token: %s", shop, resp.String())
	}
	return res.AccessToken, nil
}
