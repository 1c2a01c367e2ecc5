package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"frontdesk-backend/models"
)

func TestBilledHours_roundsUpToQuarterHour(t *testing.T) {
	start := time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, "0"},
		{-5 * time.Minute, "0"},
		{time.Second, "0.25"},
		{15 * time.Minute, "0.25"},
		{50 * time.Minute, "1"},
		{time.Hour, "1"},
		{61 * time.Minute, "1.25"},
		{70 * time.Minute, "1.25"},
		{105 * time.Minute, "1.75"},
		{2 * time.Hour, "2"},
	}
	for _, tt := range tests {
		got := BilledHours(start, start.Add(tt.elapsed))
		assert.Equal(t, tt.want, got.String(), "elapsed %s", tt.elapsed)
	}
}

func TestStayCharge(t *testing.T) {
	tests := []struct {
		name  string
		stay  models.StayType
		hours string
		want  int64
	}{
		{"hourly under an hour", models.StayHourly, "0.5", 90000},
		{"hourly exactly one hour", models.StayHourly, "1", 90000},
		{"hourly plus a quarter", models.StayHourly, "1.25", 95000},
		{"hourly two hours", models.StayHourly, "2", 110000},
		{"overnight short", models.StayOvernight, "0.25", 200000},
		{"overnight long", models.StayOvernight, "14", 200000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StayCharge(tt.stay, decimal.RequireFromString(tt.hours), testPrices)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestQuote_addsItemsAndSurchargeWithoutRounding(t *testing.T) {
	in := time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)
	items := []models.BilledItem{
		{ItemID: 1, Name: "Water", Quantity: 2, UnitPrice: 10000, Amount: 20000},
		{ItemID: 2, Name: "Beer", Quantity: 1, UnitPrice: 25000, Amount: 25000},
	}

	bill := Quote(models.StayHourly, in, in.Add(70*time.Minute), testPrices, items, 3500)

	assert.Equal(t, "1.25", bill.HoursUsed.String())
	assert.Equal(t, "95000", bill.StayCharge.String())
	assert.Equal(t, "45000", bill.ItemsTotal.String())
	assert.Equal(t, "3500", bill.Surcharge.String())
	assert.Equal(t, "143500", bill.Total.String())
}

func TestQuote_fractionalExtraHourIsKept(t *testing.T) {
	in := time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)
	prices := models.PriceTable{FirstHour: 100, ExtraHour: 30}

	bill := Quote(models.StayHourly, in, in.Add(75*time.Minute), prices, nil, 0)

	assert.Equal(t, "107.5", bill.Total.String())
}
