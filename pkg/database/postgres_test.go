package database

import (
	"testing"

	"shopify_creator_v1/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

func TestOpen_MigratesModels(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxOpenConns = 1
	opts.Logger = logger.Default.LogMode(logger.Silent)

	db, err := Open(sqlite.Open(":memory:"), opts, model.AllModels()...)
	require.NoError(t, err)
	defer func() { assert.NoError(t, Close(db)) }()

	for _, table := range []string{"orders", "products", "customers", "shop_tokens"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}
