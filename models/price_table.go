package models

import "time"

// PriceTableID is the primary key of the single active price table row.
const PriceTableID uint = 1

type PriceTable struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UpdatedAt time.Time `json:"updatedAt"`

	FirstHour int64 `json:"firstHour" gorm:"column:first_hour;not null"`
	ExtraHour int64 `json:"extraHour" gorm:"column:extra_hour;not null"`
	Overnight int64 `json:"overnight" gorm:"column:overnight;not null"`
}
