package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidShopDomain(t *testing.T) {
	tests := map[string]bool{
		"demo.myshopify.com":          true,
		"demo-store-1.myshopify.com":  true,
		"demo.myshopify.com.evil.com": false,
		"evil.com":                    false,
		"":                            false,
		"-demo.myshopify.com":         false,
	}
	for shop, want := range tests {
		if got := ValidShopDomain(shop); got != want {
			t.Errorf("ValidShopDomain(%q) = %v, want %v", shop, got, want)
		}
	}
}

func TestOAuthClient_AuthorizeURL(t *testing.T) {
	c := NewOAuthClient(OAuthConfig{
		APIKey:      "key",
		Scopes:      "read_orders,read_products",
		RedirectURI: "https://creator.example.com/auth/callback",
	})

	raw := c.AuthorizeURL("demo.myshopify.com", "st4te")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "demo.myshopify.com", u.Host)
	assert.Equal(t, "/admin/oauth/authorize", u.Path)
	assert.Equal(t, "key", u.Query().Get("client_id"))
	assert.Equal(t, "read_orders,read_products", u.Query().Get("scope"))
	assert.Equal(t, "https://creator.example.com/auth/callback", u.Query().Get("redirect_uri"))
	assert.Equal(t, "st4te", u.Query().Get("state"))
}

func TestOAuthClient_ExchangeToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/oauth/access_token", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "key", body["client_id"])
		assert.Equal(t, "secret", body["client_secret"])
		if body["code"] != "good" {
			writeJSON(w, http.StatusBadRequest, `{"error":"invalid_request"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"access_token":"shpat_new","scope":"read_orders"}`)
	}))
	defer srv.Close()

	c := NewOAuthClient(OAuthConfig{
		APIKey: "key", APISecret: "secret",
		ShopURL: func(string) string { return srv.URL },
	})

	token, err := c.ExchangeToken(context.Background(), "demo.myshopify.com", "good")
	require.NoError(t, err)
	assert.Equal(t, "shpat_new", token)

	_, err = c.ExchangeToken(context.Background(), "demo.myshopify.com", "bad")
	assert.Error(t, err)
}

// ==================== webhook 订阅 ====================

// rewriteTransport 把所有请求转发到测试服务器
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	req.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func TestWebhookRegistrar_SkipsExistingTopics(t *testing.T) {
	address := func(topic string) string { return "https://creator.example.com/webhook/" + topic }

	var (
		mu      sync.Mutex
		created []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "shpat_x", r.Header.Get(AccessTokenHeader))
		if !strings.HasSuffix(r.URL.Path, "/webhooks.json") {
			writeJSON(w, http.StatusNotFound, `{"errors":"Not Found"}`)
			return
		}
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, `{"webhooks":[{"id":1,"topic":"orders/create","address":"https://creator.example.com/webhook/orders/create","format":"json"}]}`)
		case http.MethodPost:
			var body struct {
				Webhook struct {
					Topic   string `json:"topic"`
					Address string `json:"address"`
				} `json:"webhook"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, address(body.Webhook.Topic), body.Webhook.Address)
			mu.Lock()
			created = append(created, body.Webhook.Topic)
			mu.Unlock()
			writeJSON(w, http.StatusCreated, `{"webhook":{"id":2,"topic":"`+body.Webhook.Topic+`"}}`)
		}
	}))
	defer srv.Close()

	target, _ := url.Parse(srv.URL)
	httpClient := &http.Client{Transport: rewriteTransport{target: target}}
	r := NewWebhookRegistrar("key", "secret", address, httpClient, zap.NewNop())

	require.NoError(t, r.Register(context.Background(), "demo.myshopify.com", "shpat_x"))
	assert.Equal(t, []string{"products/create", "products/update", "customers/create", "customers/update"}, created)
}
