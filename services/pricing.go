package services

import (
	"time"

	"github.com/shopspring/decimal"

	"frontdesk-backend/models"
)

// BillingIncrement is the granularity elapsed stay time is rounded up to.
const BillingIncrement = 15 * time.Minute

var (
	oneHour         = decimal.NewFromInt(1)
	incrementsPerHr = decimal.NewFromInt(int64(time.Hour / BillingIncrement))
)

// Bill is the priced breakdown of a single stay.
type Bill struct {
	HoursUsed  decimal.Decimal
	StayCharge decimal.Decimal
	ItemsTotal decimal.Decimal
	Surcharge  decimal.Decimal
	Total      decimal.Decimal
}

// BilledHours rounds the time between checkIn and checkOut up to the next
// quarter hour and returns it in hours. Negative durations count as zero.
func BilledHours(checkIn, checkOut time.Time) decimal.Decimal {
	elapsed := checkOut.Sub(checkIn)
	if elapsed <= 0 {
		return decimal.Zero
	}
	buckets := int64(elapsed / BillingIncrement)
	if elapsed%BillingIncrement != 0 {
		buckets++
	}
	return decimal.NewFromInt(buckets).Div(incrementsPerHr)
}

// StayCharge prices the room itself. Overnight stays are flat; hourly stays
// pay the first hour in full and every further quarter hour pro rata.
func StayCharge(stay models.StayType, hours decimal.Decimal, prices models.PriceTable) decimal.Decimal {
	if stay == models.StayOvernight {
		return decimal.NewFromInt(prices.Overnight)
	}
	first := decimal.NewFromInt(prices.FirstHour)
	if hours.LessThanOrEqual(oneHour) {
		return first
	}
	return first.Add(hours.Sub(oneHour).Mul(decimal.NewFromInt(prices.ExtraHour)))
}

// Quote computes the full bill. Only the elapsed time is rounded.
func Quote(stay models.StayType, checkIn, checkOut time.Time, prices models.PriceTable, items []models.BilledItem, surcharge int64) Bill {
	hours := BilledHours(checkIn, checkOut)
	charge := StayCharge(stay, hours, prices)

	itemsTotal := decimal.Zero
	for _, it := range items {
		itemsTotal = itemsTotal.Add(decimal.NewFromInt(it.Amount))
	}
	extra := decimal.NewFromInt(surcharge)

	return Bill{
		HoursUsed:  hours,
		StayCharge: charge,
		ItemsTotal: itemsTotal,
		Surcharge:  extra,
		Total:      charge.Add(itemsTotal).Add(extra),
	}
}
