package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"frontdesk-backend/models"
)

var testPrices = models.PriceTable{FirstHour: 90000, ExtraHour: 20000, Overnight: 200000}

// newTestDB opens a private in-memory database with the production schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Room{},
		&models.InventoryItem{},
		&models.PriceTable{},
		&models.Transaction{},
	))
	return db
}

type fixture struct {
	db        *gorm.DB
	inventory *InventoryService
	prices    *PriceService
	rooms     *RoomService
	billing   *BillingService
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := newTestDB(t)

	f := &fixture{
		db:        db,
		inventory: NewInventoryService(db),
		prices:    NewPriceService(db),
		now:       time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC),
	}
	locker := NewLocalLocker()
	f.rooms = NewRoomService(db, f.inventory, locker)
	f.billing = NewBillingService(db, f.prices, f.inventory, locker)
	f.billing.Now = func() time.Time { return f.now }

	require.NoError(t, f.prices.EnsureDefaults(ctx, testPrices))
	_, err := f.rooms.EnsureRoster(ctx, []string{"201", "202", "301"})
	require.NoError(t, err)
	return f
}

func (f *fixture) room(t *testing.T, number string) models.Room {
	t.Helper()
	var room models.Room
	require.NoError(t, f.db.Where("number = ?", number).First(&room).Error)
	return room
}

func (f *fixture) item(t *testing.T, id uint) models.InventoryItem {
	t.Helper()
	var item models.InventoryItem
	require.NoError(t, f.db.First(&item, id).Error)
	return item
}

func (f *fixture) addItem(t *testing.T, name string, qty int64, salePrice *int64) models.InventoryItem {
	t.Helper()
	item := models.InventoryItem{Name: name, Quantity: qty, PurchasePrice: 5000, SalePrice: salePrice}
	require.NoError(t, f.db.Create(&item).Error)
	return item
}

func (f *fixture) transactionCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Transaction{}).Count(&n).Error)
	return n
}

func (f *fixture) checkIn(t *testing.T, roomID uint, stay models.StayType, at time.Time, items ...models.ConsumedItem) models.Room {
	t.Helper()
	req := CheckInRequest{RoomID: roomID, Items: items, CheckInTime: &at, StayType: stay}
	if stay == models.StayOvernight {
		req.GuestID = "P1234567"
		req.GuestName = "Jane Doe"
	}
	room, err := f.rooms.CheckIn(context.Background(), req)
	require.NoError(t, err)
	return room
}

func int64Ptr(v int64) *int64 { return &v }
