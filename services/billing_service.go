package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"frontdesk-backend/models"
)

// BillingService checks guests out and reverses the latest checkout.
type BillingService struct {
	DB        *gorm.DB
	Prices    *PriceService
	Inventory *InventoryService
	Locker    Locker
	Now       func() time.Time
}

func NewBillingService(db *gorm.DB, prices *PriceService, inventory *InventoryService, locker Locker) *BillingService {
	if locker == nil {
		locker = NewLocalLocker()
	}
	return &BillingService{
		DB:        db,
		Prices:    prices,
		Inventory: inventory,
		Locker:    locker,
		Now:       time.Now,
	}
}

type SurchargeInput struct {
	Amount int64  `json:"amount" binding:"min=0"`
	Note   string `json:"note"`
}

// CheckoutRequest is the payload of POST /checkout.
type CheckoutRequest struct {
	RoomID    uint            `json:"roomId" binding:"required"`
	Surcharge *SurchargeInput `json:"surcharge"`
}

// Receipt is what the front desk shows after checkout.
type Receipt struct {
	TransactionID uint                `json:"transactionId"`
	Total         decimal.Decimal     `json:"total"`
	StayCharge    decimal.Decimal     `json:"stayCharge"`
	CheckInTime   time.Time           `json:"checkInTime"`
	CheckOutTime  time.Time           `json:"checkOutTime"`
	HoursUsed     decimal.Decimal     `json:"hoursUsed"`
	Items         []models.BilledItem `json:"items"`
	Surcharge     models.Surcharge    `json:"surcharge"`
}

// Checkout bills an occupied room, records the transaction and marks the room
// dirty. Consumed items stay sold; nothing goes back to stock.
func (s *BillingService) Checkout(ctx context.Context, req CheckoutRequest) (Receipt, error) {
	var receipt Receipt
	if req.RoomID == 0 {
		return receipt, validationError("roomId is required")
	}
	surcharge := models.Surcharge{}
	if req.Surcharge != nil {
		if req.Surcharge.Amount < 0 {
			return receipt, validationError("surcharge.amount must be non-negative")
		}
		surcharge = models.Surcharge{Amount: req.Surcharge.Amount, Note: req.Surcharge.Note}
	}

	release, err := s.Locker.Lock(ctx, roomKey(req.RoomID))
	if err != nil {
		return receipt, err
	}
	defer release()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := forUpdate(tx).First(&room, req.RoomID).Error; err != nil {
			return lookupError(err, "room", req.RoomID)
		}
		if room.Status != models.RoomOccupied || room.CheckInTime == nil || room.StayType == nil {
			return invalidState("room %s is %s, not occupied", room.Number, room.Status)
		}

		prices, err := s.Prices.current(tx)
		if err != nil {
			return err
		}

		billed := make([]models.BilledItem, 0, len(room.Items))
		for _, line := range room.Items {
			var item models.InventoryItem
			if err := tx.First(&item, line.ItemID).Error; err != nil {
				return lookupError(err, "inventory item", line.ItemID)
			}
			if item.SalePrice == nil {
				return pricingError(item.Name)
			}
			billed = append(billed, models.BilledItem{
				ItemID:    item.ID,
				Name:      item.Name,
				Quantity:  line.Quantity,
				UnitPrice: *item.SalePrice,
				Amount:    line.Quantity * *item.SalePrice,
			})
		}

		checkIn := room.CheckInTime.UTC()
		checkOut := s.Now().UTC()
		bill := Quote(*room.StayType, checkIn, checkOut, prices, billed, surcharge.Amount)

		trx := models.Transaction{
			RoomID:       room.ID,
			RoomNumber:   room.Number,
			StayType:     *room.StayType,
			CheckInTime:  checkIn,
			CheckOutTime: checkOut,
			GuestID:      room.GuestID,
			GuestName:    room.GuestName,
			HoursUsed:    bill.HoursUsed,
			StayCharge:   bill.StayCharge,
			Total:        bill.Total,
			Items:        datatypes.JSONSlice[models.BilledItem](billed),
			Surcharge:    datatypes.NewJSONType(surcharge),
		}
		if err := tx.Create(&trx).Error; err != nil {
			return storageError("failed to record transaction", err)
		}

		res := tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", room.ID, models.RoomOccupied).
			Updates(vacateColumns(models.RoomDirty))
		if res.Error != nil {
			return storageError("failed to release room", res.Error)
		}
		if res.RowsAffected == 0 {
			return invalidState("room %s is no longer occupied", room.Number)
		}

		receipt = Receipt{
			TransactionID: trx.ID,
			Total:         bill.Total,
			StayCharge:    bill.StayCharge,
			CheckInTime:   checkIn,
			CheckOutTime:  checkOut,
			HoursUsed:     bill.HoursUsed,
			Items:         billed,
			Surcharge:     surcharge,
		}
		return nil
	})
	return receipt, err
}

// vacateColumns clears every occupancy field and sets the given status.
func vacateColumns(status models.RoomStatus) map[string]interface{} {
	return map[string]interface{}{
		"status":         status,
		"stay_type":      nil,
		"check_in_time":  nil,
		"guest_id":       nil,
		"guest_name":     nil,
		"consumed_items": datatypesItems(nil),
	}
}

// UndoCheckout reverses the most recent checkout of a room: the room is
// occupied again with the recorded stay, the consumed items go back to stock
// and the transaction is deleted. It is refused once the room has been
// checked in again.
func (s *BillingService) UndoCheckout(ctx context.Context, roomID uint) (models.Room, error) {
	var room models.Room
	if roomID == 0 {
		return room, validationError("roomId is required")
	}

	// item keys are unknown until the transaction is read, so peek first
	var peek models.Transaction
	err := s.DB.WithContext(ctx).Where("room_id = ?", roomID).Order("id DESC").First(&peek).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return room, storageError("failed to load last transaction", err)
	}
	keys := []string{roomKey(roomID)}
	for _, it := range peek.Items {
		keys = append(keys, itemKey(it.ItemID))
	}
	release, err := s.Locker.Lock(ctx, keys...)
	if err != nil {
		return room, err
	}
	defer release()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&room, roomID).Error; err != nil {
			return lookupError(err, "room", roomID)
		}

		var last models.Transaction
		if err := forUpdate(tx).Where("room_id = ?", roomID).Order("id DESC").First(&last).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("room %s has no checkout to undo", room.Number)
			}
			return storageError("failed to load last transaction", err)
		}
		if last.ID != peek.ID {
			return conflict("room "+room.Number+" changed while undoing checkout, retry", nil)
		}
		if room.Status == models.RoomOccupied {
			return invalidState("room %s has been checked in again", room.Number)
		}

		for _, it := range last.Items {
			if _, err := s.Inventory.Adjust(tx, it.ItemID, it.Quantity); err != nil {
				return err
			}
		}

		stay := last.StayType
		checkIn := last.CheckInTime
		res := tx.Model(&models.Room{}).
			Where("id = ? AND status <> ?", room.ID, models.RoomOccupied).
			Updates(map[string]interface{}{
				"status":         models.RoomOccupied,
				"stay_type":      stay,
				"check_in_time":  checkIn,
				"guest_id":       last.GuestID,
				"guest_name":     last.GuestName,
				"consumed_items": datatypesItems(last.ConsumedItems()),
			})
		if res.Error != nil {
			return storageError("failed to restore room", res.Error)
		}
		if res.RowsAffected == 0 {
			return invalidState("room %s has been checked in again", room.Number)
		}

		if err := tx.Delete(&models.Transaction{}, last.ID).Error; err != nil {
			return storageError("failed to delete transaction", err)
		}
		return storageError("failed to reload room", tx.First(&room, room.ID).Error)
	})
	return room, err
}
