package service

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"shopify_creator_v1/internal/repository"
	"shopify_creator_v1/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== 测试辅助 ====================

type fakeOAuth struct {
	lastState string
	hmacOK    bool
	exchanged []string
	tokenErr  error
}

func (f *fakeOAuth) AuthorizeURL(shop, state string) string {
	f.lastState = state
	return "https://" + shop + "/admin/oauth/authorize?state=" + state
}

func (f *fakeOAuth) VerifyCallback(*url.URL) (bool, error) { return f.hmacOK, nil }

func (f *fakeOAuth) ExchangeToken(_ context.Context, shop, code string) (string, error) {
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	f.exchanged = append(f.exchanged, shop+":"+code)
	return "shpat_" + code, nil
}

type fakeRegistrar struct {
	shops []string
	err   error
}

func (f *fakeRegistrar) Register(_ context.Context, shop, _ string) error {
	f.shops = append(f.shops, shop)
	return f.err
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeOAuth, *fakeRegistrar, repository.ShopTokenRepository) {
	t.Helper()
	oauth := &fakeOAuth{hmacOK: true}
	registrar := &fakeRegistrar{}
	tokens := repository.NewShopTokenRepository(testutil.NewSQLiteDB(t))
	return NewAuthService(oauth, tokens, registrar, nil), oauth, registrar, tokens
}

// ==================== 测试用例 ====================

func TestAuthService_InstallURL(t *testing.T) {
	svc, oauth, _, _ := newAuthFixture(t)

	u, err := svc.InstallURL(" Demo.myshopify.com ")
	require.NoError(t, err)
	assert.Contains(t, u, "https://demo.myshopify.com/admin/oauth/authorize")
	assert.Len(t, oauth.lastState, 32)

	_, err = svc.InstallURL("evil.com")
	assert.ErrorIs(t, err, ErrInvalidShop)
	_, err = svc.InstallURL("")
	assert.ErrorIs(t, err, ErrInvalidShop)
}

func TestAuthService_HandleCallback(t *testing.T) {
	ctx := context.Background()
	svc, oauth, registrar, tokens := newAuthFixture(t)

	_, err := svc.InstallURL("demo.myshopify.com")
	require.NoError(t, err)
	state := oauth.lastState

	redirect, err := svc.HandleCallback(ctx, CallbackParams{Shop: "demo.myshopify.com", Code: "abc", State: state})
	require.NoError(t, err)
	assert.Equal(t, "https://demo.myshopify.com/admin/apps", redirect)
	assert.Equal(t, []string{"demo.myshopify.com:abc"}, oauth.exchanged)
	assert.Equal(t, []string{"demo.myshopify.com"}, registrar.shops)

	token, err := tokens.GetToken(ctx, "demo.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, "shpat_abc", token)

	// state 只能用一次
	_, err = svc.HandleCallback(ctx, CallbackParams{Shop: "demo.myshopify.com", Code: "abc", State: state})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAuthService_HandleCallback_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, oauth, _, _ := newAuthFixture(t)

	_, err := svc.HandleCallback(ctx, CallbackParams{Shop: "demo.myshopify.com"})
	assert.ErrorIs(t, err, ErrMissingOAuthParams)

	_, err = svc.HandleCallback(ctx, CallbackParams{Shop: "evil.com", Code: "x"})
	assert.ErrorIs(t, err, ErrInvalidShop)

	_, err = svc.HandleCallback(ctx, CallbackParams{Shop: "demo.myshopify.com", Code: "x", State: "forged"})
	assert.ErrorIs(t, err, ErrInvalidState)

	// state 属于另一家店铺
	_, err = svc.InstallURL("other.myshopify.com")
	require.NoError(t, err)
	_, err = svc.HandleCallback(ctx, CallbackParams{Shop: "demo.myshopify.com", Code: "x", State: oauth.lastState})
	assert.ErrorIs(t, err, ErrInvalidState)

	oauth.hmacOK = false
	u, _ := url.Parse("https://app.example.com/auth/callback?shop=demo.myshopify.com&code=x&hmac=deadbeef")
	_, err = svc.HandleCallback(ctx, CallbackParams{Shop: "demo.myshopify.com", Code: "x", URL: u})
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Empty(t, oauth.exchanged)
}

func TestAuthService_HandleCallback_ExchangeAndRegistrationFailures(t *testing.T) {
	ctx := context.Background()
	svc, oauth, registrar, tokens := newAuthFixture(t)

	oauth.tokenErr = errors.New("invalid_request")
	_, err := svc.HandleCallback(ctx, CallbackParams{Shop: "demo.myshopify.com", Code: "x"})
	require.Error(t, err)
	assert.Empty(t, registrar.shops)

	// 订阅失败不影响回调
	oauth.tokenErr = nil
	registrar.err = errors.New("webhook quota")
	redirect, err := svc.HandleCallback(ctx, CallbackParams{Shop: "demo.myshopify.com", Code: "y"})
	require.NoError(t, err)
	assert.Equal(t, "https://demo.myshopify.com/admin/apps", redirect)

	token, err := tokens.GetToken(ctx, "demo.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, "shpat_y", token)
}
