package repository

import (
	"context"
	"testing"
	"time"

	"shopify_creator_v1/internal/model"
	"shopify_creator_v1/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestProductRepository_UpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(testutil.NewSQLiteDB(t))

	require.NoError(t, repo.Upsert(ctx, &model.Product{
		ID: 7, Title: "Tee", Price: decimal.RequireFromString("25.00"),
		ImageURL: strPtr("https://cdn.example.com/tee.png"), Tags: "Art, Summer",
	}))
	require.NoError(t, repo.Upsert(ctx, &model.Product{
		ID: 7, Title: "Tee v2", Price: decimal.RequireFromString("30.00"), Tags: "Retro",
	}))

	got, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Tee v2", got.Title)
	assert.Equal(t, "Retro", got.Tags)
	assert.Nil(t, got.ImageURL)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("30.00")))
}

func TestProductRepository_ListByTag_SubstringDescendingID(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(testutil.NewSQLiteDB(t))

	for _, p := range []*model.Product{
		{ID: 1, Title: "Poster", Tags: "Vintage-Art"},
		{ID: 2, Title: "Mug", Tags: "kitchen"},
		{ID: 3, Title: "Print", Tags: "art"},
	} {
		require.NoError(t, repo.Upsert(ctx, p))
	}

	products, err := repo.ListByTag(ctx, "ART")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.EqualValues(t, 3, products[0].ID)
	assert.EqualValues(t, 1, products[1].ID)
}

func TestCustomerRepository_UpsertKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(testutil.NewSQLiteDB(t))

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, &model.Customer{
		ShopifyID: 55, Email: "Ana@Example.com", Tag: "ana-art", Name: "Ana", CreatedAt: created,
	}))
	require.NoError(t, repo.Upsert(ctx, &model.Customer{
		ShopifyID: 55, Email: "ana@example.com", Tag: "ana-studio", Name: "Ana B",
	}))

	got, err := repo.GetByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ana-studio", got.Tag)
	assert.Equal(t, "Ana B", got.Name)
	assert.True(t, got.CreatedAt.Equal(created), "created_at = %v", got.CreatedAt)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestShopTokenRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewShopTokenRepository(testutil.NewSQLiteDB(t))

	token, err := repo.GetToken(ctx, "demo.myshopify.com")
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, repo.Upsert(ctx, "demo.myshopify.com", "shpat_1"))
	require.NoError(t, repo.Upsert(ctx, "demo.myshopify.com", "shpat_2"))

	token, err = repo.GetToken(ctx, "demo.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, "shpat_2", token)
}
