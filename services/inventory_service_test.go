package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertBulk_isAdditiveByName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	existing := f.addItem(t, "Water", 4, int64Ptr(10000))

	sheet := []StockEntry{
		{Name: "Water", Quantity: 6, PurchasePrice: 4000},
		{Name: " Beer ", Quantity: 12, PurchasePrice: 15000},
	}

	n, err := f.inventory.UpsertBulk(ctx, sheet)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	water := f.item(t, existing.ID)
	assert.EqualValues(t, 10, water.Quantity)
	assert.EqualValues(t, 4000, water.PurchasePrice)
	require.NotNil(t, water.SalePrice)
	assert.EqualValues(t, 10000, *water.SalePrice)

	// a second import of the same sheet doubles the stock
	_, err = f.inventory.UpsertBulk(ctx, sheet)
	require.NoError(t, err)

	items, err := f.inventory.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Beer", items[0].Name)
	assert.EqualValues(t, 24, items[0].Quantity)
	assert.Nil(t, items[0].SalePrice)
	assert.Equal(t, "Water", items[1].Name)
	assert.EqualValues(t, 16, items[1].Quantity)
}

func TestUpsertBulk_rejectsBadEntriesAtomically(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.inventory.UpsertBulk(ctx, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.inventory.UpsertBulk(ctx, []StockEntry{
		{Name: "Water", Quantity: 1},
		{Name: "  ", Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.inventory.UpsertBulk(ctx, []StockEntry{{Name: "Water", Quantity: -1}})
	assert.ErrorIs(t, err, ErrValidation)

	items, err := f.inventory.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpsert_byNameCreatesThenByIDUpdates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	name := "Chips"

	created, err := f.inventory.Upsert(ctx, ItemUpsert{Name: &name, Quantity: int64Ptr(3), PurchasePrice: int64Ptr(2000)})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.EqualValues(t, 3, created.Quantity)
	assert.Nil(t, created.SalePrice)

	updated, err := f.inventory.Upsert(ctx, ItemUpsert{ID: &created.ID, SalePrice: int64Ptr(5000)})
	require.NoError(t, err)
	require.NotNil(t, updated.SalePrice)
	assert.EqualValues(t, 5000, *updated.SalePrice)
	assert.EqualValues(t, 3, updated.Quantity)
	assert.Equal(t, "Chips", updated.Name)

	// by name, supplied fields overwrite
	again, err := f.inventory.Upsert(ctx, ItemUpsert{Name: &name, Quantity: int64Ptr(9)})
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.EqualValues(t, 9, again.Quantity)
}

func TestUpsert_errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	water := f.addItem(t, "Water", 1, nil)
	f.addItem(t, "Beer", 1, nil)

	_, err := f.inventory.Upsert(ctx, ItemUpsert{})
	assert.ErrorIs(t, err, ErrValidation)

	missing := uint(9999)
	_, err = f.inventory.Upsert(ctx, ItemUpsert{ID: &missing, Quantity: int64Ptr(1)})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.inventory.Upsert(ctx, ItemUpsert{ID: &water.ID, SalePrice: int64Ptr(-5)})
	assert.ErrorIs(t, err, ErrValidation)

	beer := "Beer"
	_, err = f.inventory.Upsert(ctx, ItemUpsert{ID: &water.ID, Name: &beer})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Water", f.item(t, water.ID).Name)
}

func TestAdjust_neverGoesNegative(t *testing.T) {
	f := newFixture(t)
	water := f.addItem(t, "Water", 2, nil)

	_, err := f.inventory.Adjust(f.db, water.ID, -3)
	assert.ErrorIs(t, err, ErrInsufficientInventory)

	got, err := f.inventory.Adjust(f.db, water.ID, -2)
	require.NoError(t, err)
	assert.Zero(t, got.Quantity)

	got, err = f.inventory.Adjust(f.db, water.ID, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 5, got.Quantity)
	assert.EqualValues(t, 5, f.item(t, water.ID).Quantity)
}

func TestInventoryGet(t *testing.T) {
	f := newFixture(t)
	water := f.addItem(t, "Water", 2, nil)

	got, err := f.inventory.Get(context.Background(), water.ID)
	require.NoError(t, err)
	assert.Equal(t, "Water", got.Name)

	_, err = f.inventory.Get(context.Background(), 77)
	assert.ErrorIs(t, err, ErrNotFound)
}
