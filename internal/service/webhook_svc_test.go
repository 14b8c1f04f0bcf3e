package service

import (
	"context"
	"testing"

	"shopify_creator_v1/internal/repository"
	"shopify_creator_v1/internal/testutil"
	"shopify_creator_v1/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test"

func newWebhookFixture(t *testing.T) (*WebhookService, repository.OrderRepository, repository.ProductRepository) {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	orders := repository.NewOrderRepository(db)
	products := repository.NewProductRepository(db)
	return NewWebhookService(testWebhookSecret, orders, products, nil), orders, products
}

const order1001 = `{
  "id": 1001,
  "name": "#1001",
  "created_at": "2024-06-01T09:30:00-04:00",
  "total_price": "50.00",
  "tags": "Art",
  "fulfillment_status": null,
  "line_items": [
    {"title": "Tee", "price": "25.00", "total_discount": "5.00", "variant_title": "L"},
    {"title": "Mug", "price": "25.00", "total_discount": "0"}
  ]
}`

func TestParseTopic(t *testing.T) {
	assert.Equal(t, TopicOrdersCreate, ParseTopic("orders", "create"))
	assert.Equal(t, TopicProductsUpdate, ParseTopic("products", "update"))
	assert.Equal(t, TopicCustomersCreate, ParseTopic("customers", "create"))
	assert.Equal(t, TopicUnknown, ParseTopic("orders", "paid"))
	assert.Equal(t, "products/create", TopicProductsCreate.String())
	assert.Equal(t, "unknown", TopicUnknown.String())
}

func TestWebhookService_VerifySignature(t *testing.T) {
	svc, _, _ := newWebhookFixture(t)
	body := []byte(order1001)

	sig := utils.SignHMACSHA256(testWebhookSecret, body)
	assert.NoError(t, svc.VerifySignature(body, sig))
	assert.ErrorIs(t, svc.VerifySignature(body, ""), ErrInvalidSignature)
	assert.ErrorIs(t, svc.VerifySignature(append([]byte(nil), body[1:]...), sig), ErrInvalidSignature)
	assert.ErrorIs(t, svc.VerifySignature(body, utils.SignHMACSHA256("other", body)), ErrInvalidSignature)
}

func TestWebhookService_OrderCreate(t *testing.T) {
	ctx := context.Background()
	svc, orders, _ := newWebhookFixture(t)

	require.NoError(t, svc.Handle(ctx, TopicOrdersCreate, []byte(order1001)))

	got, err := orders.GetByID(ctx, 1001)
	require.NoError(t, err)
	require.NotNil(t, got)
	assertDecimal(t, "50.00", got.TotalPrice)
	assertDecimal(t, "0", got.CostPrice)
	assert.Equal(t, "art", got.Tags)
	assert.Equal(t, "unfulfilled", got.Status)

	items := got.Items()
	require.Len(t, items, 2)
	assertDecimal(t, "20.00", items[0].Revenue)
	assertDecimal(t, "25.00", items[1].Revenue)

	// 重复投递不改变已有数据
	changed := `{"id": 1001, "name": "#1001", "total_price": "99.00", "line_items": []}`
	require.NoError(t, svc.Handle(ctx, TopicOrdersCreate, []byte(changed)))

	again, err := orders.GetByID(ctx, 1001)
	require.NoError(t, err)
	assertDecimal(t, "50.00", again.TotalPrice)
	n, err := orders.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestWebhookService_ProductUpsert(t *testing.T) {
	ctx := context.Background()
	svc, _, products := newWebhookFixture(t)

	wrapped := `{"product": {"id": 7, "title": "Poster", "tags": "Vintage-Art ,Wall", "image": {"src": "https://cdn.example.com/p.png"}, "variants": [{"id": 1, "price": "19.99"}]}}`
	require.NoError(t, svc.Handle(ctx, TopicProductsCreate, []byte(wrapped)))

	p, err := products.GetByID(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Poster", p.Title)
	assert.Equal(t, "Vintage-Art, Wall", p.Tags)
	assertDecimal(t, "19.99", p.Price)
	require.NotNil(t, p.ImageURL)

	// 直接是商品对象，无变体、无图片时覆盖为 0 和空
	bare := `{"id": 7, "title": "Poster v2", "tags": "wall"}`
	require.NoError(t, svc.Handle(ctx, TopicProductsUpdate, []byte(bare)))

	p, err = products.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Poster v2", p.Title)
	assert.Equal(t, "wall", p.Tags)
	assertDecimal(t, "0", p.Price)
	assert.Nil(t, p.ImageURL)
}

func TestWebhookService_InvalidAndIgnoredPayloads(t *testing.T) {
	ctx := context.Background()
	svc, orders, _ := newWebhookFixture(t)

	assert.ErrorIs(t, svc.Handle(ctx, TopicOrdersCreate, []byte(`{not json`)), ErrInvalidPayload)
	assert.ErrorIs(t, svc.Handle(ctx, TopicOrdersCreate, []byte(`{"name": "#1"}`)), ErrInvalidPayload)
	assert.ErrorIs(t, svc.Handle(ctx, TopicProductsCreate, []byte(`{"title": "x"}`)), ErrInvalidPayload)

	// 客户事件与未知事件只记录
	assert.NoError(t, svc.Handle(ctx, TopicCustomersUpdate, []byte(`{"id": 5, "email": "ana@example.com", "tags": "ana"}`)))
	assert.NoError(t, svc.Handle(ctx, TopicUnknown, []byte(`{"id": 5}`)))

	n, err := orders.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
