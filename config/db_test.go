package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk-backend/models"
)

func TestConnectAndSeed_sqlite(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := AppConfig{
		DBDriver:      "sqlite",
		SQLitePath:    filepath.Join(t.TempDir(), "frontdesk.db"),
		RoomNumbers:   []string{"201", "202"},
		DefaultPrices: models.PriceTable{FirstHour: 90000, ExtraHour: 20000, Overnight: 200000},
	}

	db, err := ConnectDatabase(cfg, logger)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	require.NoError(t, SeedDatabase(ctx, db, cfg, logger))
	require.NoError(t, SeedDatabase(ctx, db, cfg, logger))

	var rooms int64
	require.NoError(t, db.Model(&models.Room{}).Count(&rooms).Error)
	assert.EqualValues(t, 2, rooms)

	var prices models.PriceTable
	require.NoError(t, db.First(&prices, models.PriceTableID).Error)
	assert.EqualValues(t, 90000, prices.FirstHour)
}

func TestConnectRedis_disabledWithoutAddress(t *testing.T) {
	rdb, err := ConnectRedis(context.Background(), AppConfig{})
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}
