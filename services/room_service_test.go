package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk-backend/models"
)

func TestEnsureRoster_createsOnlyMissingRooms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.rooms.EnsureRoster(ctx, []string{"201", "202", "301", "302", " "})
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	rooms, err := f.rooms.List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 4)
	assert.Equal(t, "201", rooms[0].Number)
	assert.Equal(t, "2", rooms[0].Floor)
	for _, r := range rooms {
		assert.Equal(t, models.RoomVacant, r.Status)
	}
}

func TestCheckIn_occupiesRoomAndDrawsStock(t *testing.T) {
	f := newFixture(t)
	water := f.addItem(t, "Water", 10, int64Ptr(10000))
	beer := f.addItem(t, "Beer", 5, int64Ptr(25000))
	room := f.room(t, "201")
	at := f.now.Add(-30 * time.Minute)

	got := f.checkIn(t, room.ID, models.StayHourly, at,
		models.ConsumedItem{ItemID: water.ID, Quantity: 2},
		models.ConsumedItem{ItemID: beer.ID, Quantity: 1},
		models.ConsumedItem{ItemID: water.ID, Quantity: 1},
	)

	assert.Equal(t, models.RoomOccupied, got.Status)
	require.NotNil(t, got.StayType)
	assert.Equal(t, models.StayHourly, *got.StayType)
	require.NotNil(t, got.CheckInTime)
	assert.True(t, at.Equal(*got.CheckInTime))
	assert.Nil(t, got.GuestID)
	assert.Nil(t, got.GuestName)
	assert.Equal(t, []models.ConsumedItem{
		{ItemID: water.ID, Quantity: 3},
		{ItemID: beer.ID, Quantity: 1},
	}, []models.ConsumedItem(got.Items))

	assert.EqualValues(t, 7, f.item(t, water.ID).Quantity)
	assert.EqualValues(t, 4, f.item(t, beer.ID).Quantity)
}

func TestCheckIn_overnightStoresGuest(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "202")

	got := f.checkIn(t, room.ID, models.StayOvernight, f.now)

	require.NotNil(t, got.GuestID)
	require.NotNil(t, got.GuestName)
	assert.Equal(t, "P1234567", *got.GuestID)
	assert.Equal(t, "Jane Doe", *got.GuestName)
	assert.Empty(t, got.Items)
}

func TestCheckIn_rejectsInvalidRequests(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "201")
	at := f.now

	tests := []struct {
		name string
		req  CheckInRequest
	}{
		{"missing room", CheckInRequest{CheckInTime: &at, StayType: models.StayHourly}},
		{"missing time", CheckInRequest{RoomID: room.ID, StayType: models.StayHourly}},
		{"unknown stay type", CheckInRequest{RoomID: room.ID, CheckInTime: &at, StayType: "weekly"}},
		{"overnight without guest", CheckInRequest{RoomID: room.ID, CheckInTime: &at, StayType: models.StayOvernight, GuestName: "Jane"}},
		{"negative quantity", CheckInRequest{RoomID: room.ID, CheckInTime: &at, StayType: models.StayHourly,
			Items: []models.ConsumedItem{{ItemID: 1, Quantity: -1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.rooms.CheckIn(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Equal(t, models.RoomVacant, f.room(t, "201").Status)
}

func TestCheckIn_occupiedRoomIsInvalidState(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "201")
	f.checkIn(t, room.ID, models.StayHourly, f.now)

	at := f.now
	_, err := f.rooms.CheckIn(context.Background(), CheckInRequest{RoomID: room.ID, CheckInTime: &at, StayType: models.StayHourly})
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestCheckIn_insufficientStockChangesNothing(t *testing.T) {
	f := newFixture(t)
	water := f.addItem(t, "Water", 10, int64Ptr(10000))
	beer := f.addItem(t, "Beer", 1, int64Ptr(25000))
	room := f.room(t, "201")
	at := f.now

	_, err := f.rooms.CheckIn(context.Background(), CheckInRequest{
		RoomID:      room.ID,
		CheckInTime: &at,
		StayType:    models.StayHourly,
		Items: []models.ConsumedItem{
			{ItemID: water.ID, Quantity: 2},
			{ItemID: beer.ID, Quantity: 3},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientInventory))
	assert.Contains(t, err.Error(), "Beer")

	assert.EqualValues(t, 10, f.item(t, water.ID).Quantity)
	assert.EqualValues(t, 1, f.item(t, beer.ID).Quantity)
	after := f.room(t, "201")
	assert.Equal(t, models.RoomVacant, after.Status)
	assert.Nil(t, after.CheckInTime)
}

func TestCheckIn_unknownRoomOrItemIsNotFound(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "201")
	at := f.now

	_, err := f.rooms.CheckIn(context.Background(), CheckInRequest{RoomID: 9999, CheckInTime: &at, StayType: models.StayHourly})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.rooms.CheckIn(context.Background(), CheckInRequest{
		RoomID: room.ID, CheckInTime: &at, StayType: models.StayHourly,
		Items: []models.ConsumedItem{{ItemID: 4242, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, models.RoomVacant, f.room(t, "201").Status)
}

func TestCheckIn_concurrentRequestsOccupyOnce(t *testing.T) {
	f := newFixture(t)
	water := f.addItem(t, "Water", 10, int64Ptr(10000))
	room := f.room(t, "201")

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		invalid   int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			at := f.now
			_, err := f.rooms.CheckIn(context.Background(), CheckInRequest{
				RoomID: room.ID, CheckInTime: &at, StayType: models.StayHourly,
				Items: []models.ConsumedItem{{ItemID: water.ID, Quantity: 1}},
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case KindOf(err) == KindInvalidState:
				invalid++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, invalid)
	assert.EqualValues(t, 9, f.item(t, water.ID).Quantity)
}

func TestClean_dirtyRoomBecomesVacant(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "201")
	f.checkIn(t, room.ID, models.StayHourly, f.now.Add(-time.Hour))
	_, err := f.billing.Checkout(context.Background(), CheckoutRequest{RoomID: room.ID})
	require.NoError(t, err)

	got, err := f.rooms.Clean(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomVacant, got.Status)
	assert.Equal(t, models.RoomVacant, f.room(t, "201").Status)
}

func TestClean_onlyDirtyRooms(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "201")

	_, err := f.rooms.Clean(context.Background(), room.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	f.checkIn(t, room.ID, models.StayHourly, f.now)
	_, err = f.rooms.Clean(context.Background(), room.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, models.RoomOccupied, f.room(t, "201").Status)

	_, err = f.rooms.Clean(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMergeItems(t *testing.T) {
	got := mergeItems([]models.ConsumedItem{
		{ItemID: 2, Quantity: 1},
		{ItemID: 1, Quantity: 0},
		{ItemID: 2, Quantity: 2},
		{ItemID: 3, Quantity: 1},
	})
	assert.Equal(t, []models.ConsumedItem{{ItemID: 2, Quantity: 3}, {ItemID: 3, Quantity: 1}}, got)
}
