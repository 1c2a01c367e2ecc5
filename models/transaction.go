package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func init() {
	// the dashboard reads totals as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type Surcharge struct {
	Amount int64  `json:"amount"`
	Note   string `json:"note"`
}

// BilledItem is the checkout-time snapshot of a consumed item.
type BilledItem struct {
	ItemID    uint   `json:"itemId"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Amount    int64  `json:"amount"`
}

// Transaction is written once at checkout and only ever deleted by undo-checkout.
type Transaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	RoomID     uint   `json:"roomId" gorm:"column:room_id;index;not null"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;type:varchar(20)"`

	StayType     StayType  `json:"stayType" gorm:"column:stay_type;type:varchar(16);not null"`
	CheckInTime  time.Time `json:"checkInTime" gorm:"column:check_in_time;not null"`
	CheckOutTime time.Time `json:"checkOutTime" gorm:"column:check_out_time;index;not null"`
	GuestID      *string   `json:"guestId" gorm:"column:guest_id;type:varchar(64)"`
	GuestName    *string   `json:"guestName" gorm:"column:guest_name;type:varchar(255)"`

	HoursUsed  decimal.Decimal `json:"hoursUsed" gorm:"column:hours_used;type:decimal(10,2);not null"`
	StayCharge decimal.Decimal `json:"stayCharge" gorm:"column:stay_charge;type:decimal(20,4);not null"`
	Total      decimal.Decimal `json:"total" gorm:"column:total;type:decimal(20,4);not null"`

	Items     datatypes.JSONSlice[BilledItem] `json:"items" gorm:"column:items"`
	Surcharge datatypes.JSONType[Surcharge]   `json:"surcharge" gorm:"column:surcharge"`
}

// ConsumedItems converts the billed snapshot back into room occupancy lines.
func (t Transaction) ConsumedItems() []ConsumedItem {
	out := make([]ConsumedItem, 0, len(t.Items))
	for _, it := range t.Items {
		out = append(out, ConsumedItem{ItemID: it.ItemID, Quantity: it.Quantity})
	}
	return out
}

type RevenueReport struct {
	Daily   decimal.Decimal `json:"daily"`
	Weekly  decimal.Decimal `json:"weekly"`
	Monthly decimal.Decimal `json:"monthly"`
}
