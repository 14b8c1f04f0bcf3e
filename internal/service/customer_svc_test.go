package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopify_creator_v1/internal/api/dto"
	"shopify_creator_v1/internal/model"
	"shopify_creator_v1/internal/repository"
	"shopify_creator_v1/internal/testutil"
	"shopify_creator_v1/pkg/shopify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== 测试辅助 ====================

type fakeStorefront struct {
	createErr error
	tokenErr  error
	customers map[string]*shopify.StorefrontCustomer // token -> customer
}

func (f *fakeStorefront) CustomerCreate(context.Context, shopify.CustomerInput) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	return "gid://shopify/Customer/55", nil
}

func (f *fakeStorefront) CustomerAccessTokenCreate(_ context.Context, email, _ string) (string, error) {
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	return "cat_" + email, nil
}

func (f *fakeStorefront) Customer(_ context.Context, token string) (*shopify.StorefrontCustomer, error) {
	return f.customers[token], nil
}

// fakeAdmin 前 visibleAfter 次搜索返回未找到
type fakeAdmin struct {
	visibleAfter int
	searches     int
	searchErr    error
	customer     *shopify.Customer
	taggedID     int64
	taggedWith   string
}

func (f *fakeAdmin) SearchCustomerByEmail(context.Context, string) (*shopify.Customer, error) {
	f.searches++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.searches <= f.visibleAfter {
		return nil, nil
	}
	return f.customer, nil
}

func (f *fakeAdmin) UpdateCustomerTags(_ context.Context, id int64, tags string) error {
	f.taggedID, f.taggedWith = id, tags
	return nil
}

type customerFixture struct {
	svc        *CustomerService
	storefront *fakeStorefront
	admin      *fakeAdmin
	shopAdmin  *fakeAdmin
	usedToken  string
	customers  repository.CustomerRepository
	tokens     repository.ShopTokenRepository
}

func newCustomerFixture(t *testing.T) *customerFixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	f := &customerFixture{
		storefront: &fakeStorefront{customers: map[string]*shopify.StorefrontCustomer{}},
		admin:      &fakeAdmin{customer: &shopify.Customer{ID: 77, Email: "ana@example.com"}},
		shopAdmin:  &fakeAdmin{customer: &shopify.Customer{ID: 77, Email: "ana@example.com", Tags: " anaprints , vip"}},
		customers:  repository.NewCustomerRepository(db),
		tokens:     repository.NewShopTokenRepository(db),
	}
	adminFor := func(token string) CustomerAdmin {
		f.usedToken = token
		return f.shopAdmin
	}
	f.svc = NewCustomerService(f.storefront, f.admin, adminFor, f.customers, f.tokens,
		"demo.myshopify.com", LookupPolicy{Attempts: 5, Interval: time.Millisecond}, nil)
	return f
}

func signupRequest() *dto.SignupRequest {
	return &dto.SignupRequest{Email: "ana@example.com", Password: "pw", FirstName: "Ana", CreatorName: "anaprints"}
}

// ==================== 注册 ====================

func TestCustomerService_Signup(t *testing.T) {
	ctx := context.Background()
	f := newCustomerFixture(t)
	f.admin.visibleAfter = 2

	require.NoError(t, f.svc.Signup(ctx, signupRequest()))
	assert.Equal(t, 3, f.admin.searches)
	assert.Equal(t, int64(77), f.admin.taggedID)
	assert.Equal(t, "anaprints", f.admin.taggedWith)

	c, err := f.customers.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "anaprints", c.Tag)
	assert.Equal(t, "Ana", c.Name)
}

func TestCustomerService_Signup_LookupExhausted(t *testing.T) {
	f := newCustomerFixture(t)
	f.admin.visibleAfter = 100

	err := f.svc.Signup(context.Background(), signupRequest())
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Equal(t, 5, f.admin.searches)
	assert.Zero(t, f.admin.taggedID)
}

func TestCustomerService_Signup_Errors(t *testing.T) {
	ctx := context.Background()

	f := newCustomerFixture(t)
	f.storefront.createErr = shopify.UserErrors{{Message: "Email has already been taken"}}
	err := f.svc.Signup(ctx, signupRequest())
	var userErr *UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "Email has already been taken", userErr.Message)
	assert.Zero(t, f.admin.searches)

	// 搜索接口本身出错不重试
	f = newCustomerFixture(t)
	f.admin.searchErr = &shopify.APIError{StatusCode: 500, Body: "boom"}
	err = f.svc.Signup(ctx, signupRequest())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCustomerNotFound))
	assert.Equal(t, 1, f.admin.searches)
}

// ==================== 登录 ====================

func TestCustomerService_Login(t *testing.T) {
	ctx := context.Background()
	f := newCustomerFixture(t)

	_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrMissingShopToken)

	require.NoError(t, f.tokens.Upsert(ctx, "demo.myshopify.com", "shpat_shop"))
	resp, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "cat_ana@example.com", resp.AccessToken)
	assert.Equal(t, "shpat_shop", f.usedToken)
	require.NotNil(t, resp.Tag)
	assert.Equal(t, "anaprints", *resp.Tag)

	f.shopAdmin.customer = nil
	resp, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Nil(t, resp.Tag)

	f.storefront.tokenErr = shopify.UserErrors{{Message: "Unidentified customer"}}
	_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "bad"})
	var userErr *UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "Unidentified customer", userErr.Message)
}

// ==================== 资料 ====================

func TestCustomerService_Profile(t *testing.T) {
	ctx := context.Background()
	f := newCustomerFixture(t)
	f.storefront.customers["good"] = &shopify.StorefrontCustomer{Email: "Ana@Example.com"}
	f.storefront.customers["other"] = &shopify.StorefrontCustomer{Email: "bob@example.com"}

	_, err := f.svc.Profile(ctx, "", "good")
	assert.ErrorIs(t, err, ErrMissingIdentity)

	_, err = f.svc.Profile(ctx, "ana@example.com", "expired")
	assert.ErrorIs(t, err, ErrInvalidCustomerToken)
	_, err = f.svc.Profile(ctx, "ana@example.com", "other")
	assert.ErrorIs(t, err, ErrInvalidCustomerToken)

	_, err = f.svc.Profile(ctx, "ana@example.com", "good")
	assert.ErrorIs(t, err, ErrCustomerProfileMissing)

	require.NoError(t, f.customers.Upsert(ctx, &model.Customer{ShopifyID: 77, Email: "ana@example.com", Tag: "anaprints", Name: "Ana"}))
	resp, err := f.svc.Profile(ctx, "ana@example.com", "good")
	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.Customer.Name)
	assert.Equal(t, "anaprints", resp.Customer.Tag)
	assert.Equal(t, "0.00", resp.Customer.TotalSpent)
	assert.Empty(t, resp.Customer.Address)
	assert.NotNil(t, resp.Customer.Address)
	assert.False(t, resp.Customer.CreatedAt.IsZero())
}
