package models

import (
	"time"

	"gorm.io/datatypes"
)

type RoomStatus string

const (
	RoomVacant   RoomStatus = "vacant"
	RoomOccupied RoomStatus = "occupied"
	RoomDirty    RoomStatus = "dirty"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomVacant, RoomOccupied, RoomDirty:
		return true
	}
	return false
}

type StayType string

const (
	StayHourly    StayType = "hourly"
	StayOvernight StayType = "overnight"
)

func (t StayType) Valid() bool {
	return t == StayHourly || t == StayOvernight
}

// ConsumedItem is one minibar line drawn from inventory for the current stay.
type ConsumedItem struct {
	ItemID   uint  `json:"itemId" binding:"required"`
	Quantity int64 `json:"quantity" binding:"min=0"`
}

type Room struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Number string `json:"number" gorm:"column:number;uniqueIndex;type:varchar(20);not null"`
	Floor  string `json:"floor" gorm:"type:varchar(10)"`

	Status RoomStatus `json:"status" gorm:"type:varchar(16);not null;default:vacant;index"`

	// Occupancy fields, set only while Status is occupied.
	StayType    *StayType                         `json:"stayType" gorm:"column:stay_type;type:varchar(16)"`
	CheckInTime *time.Time                        `json:"checkInTime" gorm:"column:check_in_time"`
	GuestID     *string                           `json:"guestId" gorm:"column:guest_id;type:varchar(64)"`
	GuestName   *string                           `json:"guestName" gorm:"column:guest_name;type:varchar(255)"`
	Items       datatypes.JSONSlice[ConsumedItem] `json:"items" gorm:"column:consumed_items"`
}

// FloorOf derives the floor label from a room number such as "305".
func FloorOf(number string) string {
	if len(number) <= 2 {
		return ""
	}
	return number[:len(number)-2]
}
