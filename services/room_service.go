package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"frontdesk-backend/models"
)

// RoomService drives the vacant -> occupied -> dirty -> vacant lifecycle.
type RoomService struct {
	DB        *gorm.DB
	Inventory *InventoryService
	Locker    Locker
}

func NewRoomService(db *gorm.DB, inventory *InventoryService, locker Locker) *RoomService {
	if locker == nil {
		locker = NewLocalLocker()
	}
	return &RoomService{DB: db, Inventory: inventory, Locker: locker}
}

// CheckInRequest is the payload of POST /checkin.
type CheckInRequest struct {
	RoomID      uint                  `json:"roomId" binding:"required"`
	Items       []models.ConsumedItem `json:"items" binding:"omitempty,dive"`
	CheckInTime *time.Time            `json:"checkInTime" binding:"required"`
	StayType    models.StayType       `json:"stayType" binding:"required,oneof=hourly overnight"`
	GuestID     string                `json:"guestId" binding:"required_if=StayType overnight"`
	GuestName   string                `json:"guestName" binding:"required_if=StayType overnight"`
}

// Validate repeats the binding rules so callers outside HTTP get the same guarantees.
func (r CheckInRequest) Validate() error {
	if r.RoomID == 0 {
		return validationError("roomId is required")
	}
	if r.CheckInTime == nil || r.CheckInTime.IsZero() {
		return validationError("checkInTime is required")
	}
	if !r.StayType.Valid() {
		return validationError("stayType must be one of hourly, overnight")
	}
	if r.StayType == models.StayOvernight {
		if strings.TrimSpace(r.GuestID) == "" || strings.TrimSpace(r.GuestName) == "" {
			return validationError("guestId and guestName are required for overnight stays")
		}
	}
	for i, it := range r.Items {
		if it.ItemID == 0 {
			return validationError("items[%d].itemId is required", i)
		}
		if it.Quantity < 0 {
			return validationError("items[%d].quantity must be non-negative", i)
		}
	}
	return nil
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	rooms := []models.Room{}
	if err := s.DB.WithContext(ctx).Order("number ASC").Find(&rooms).Error; err != nil {
		return nil, storageError("failed to load rooms", err)
	}
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, id).Error; err != nil {
		return room, lookupError(err, "room", id)
	}
	return room, nil
}

// EnsureRoster creates every configured room that does not exist yet.
// Existing rooms keep their state.
func (s *RoomService) EnsureRoster(ctx context.Context, numbers []string) (int, error) {
	created := 0
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, n := range numbers {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			var existing int64
			if err := tx.Model(&models.Room{}).Where("number = ?", n).Count(&existing).Error; err != nil {
				return storageError("failed to check room "+n, err)
			}
			if existing > 0 {
				continue
			}
			room := models.Room{Number: n, Floor: models.FloorOf(n), Status: models.RoomVacant, Items: datatypesItems(nil)}
			if err := tx.Create(&room).Error; err != nil {
				return storageError("failed to seed room "+n, err)
			}
			created++
		}
		return nil
	})
	return created, err
}

// mergeItems sums duplicate lines for the same item, keeping first-seen order
// and dropping zero quantities.
func mergeItems(items []models.ConsumedItem) []models.ConsumedItem {
	idx := make(map[uint]int, len(items))
	out := make([]models.ConsumedItem, 0, len(items))
	for _, it := range items {
		if it.Quantity == 0 {
			continue
		}
		if i, ok := idx[it.ItemID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		idx[it.ItemID] = len(out)
		out = append(out, it)
	}
	return out
}

// CheckIn occupies a vacant room and draws the requested items from stock.
// Either every write lands or none does.
func (s *RoomService) CheckIn(ctx context.Context, req CheckInRequest) (models.Room, error) {
	var room models.Room
	if err := req.Validate(); err != nil {
		return room, err
	}
	items := mergeItems(req.Items)

	keys := []string{roomKey(req.RoomID)}
	for _, it := range items {
		keys = append(keys, itemKey(it.ItemID))
	}
	release, err := s.Locker.Lock(ctx, keys...)
	if err != nil {
		return room, err
	}
	defer release()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&room, req.RoomID).Error; err != nil {
			return lookupError(err, "room", req.RoomID)
		}
		if room.Status != models.RoomVacant {
			return invalidState("room %s is %s, not vacant", room.Number, room.Status)
		}

		for _, it := range items {
			if _, err := s.Inventory.Adjust(tx, it.ItemID, -it.Quantity); err != nil {
				return err
			}
		}

		stay := req.StayType
		checkIn := req.CheckInTime.UTC()
		var guestID, guestName *string
		if v := strings.TrimSpace(req.GuestID); v != "" {
			guestID = &v
		}
		if v := strings.TrimSpace(req.GuestName); v != "" {
			guestName = &v
		}

		res := tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", room.ID, models.RoomVacant).
			Updates(map[string]interface{}{
				"status":         models.RoomOccupied,
				"stay_type":      stay,
				"check_in_time":  checkIn,
				"guest_id":       guestID,
				"guest_name":     guestName,
				"consumed_items": datatypesItems(items),
			})
		if res.Error != nil {
			return storageError("failed to occupy room", res.Error)
		}
		if res.RowsAffected == 0 {
			return invalidState("room %s is no longer vacant", room.Number)
		}
		return storageError("failed to reload room", tx.First(&room, room.ID).Error)
	})
	return room, err
}

// Clean returns a dirty room to service.
func (s *RoomService) Clean(ctx context.Context, roomID uint) (models.Room, error) {
	var room models.Room
	if roomID == 0 {
		return room, validationError("roomId is required")
	}
	release, err := s.Locker.Lock(ctx, roomKey(roomID))
	if err != nil {
		return room, err
	}
	defer release()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&room, roomID).Error; err != nil {
			return lookupError(err, "room", roomID)
		}
		if room.Status != models.RoomDirty {
			return invalidState("room %s is %s, not dirty", room.Number, room.Status)
		}
		res := tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", roomID, models.RoomDirty).
			Update("status", models.RoomVacant)
		if res.Error != nil {
			return storageError("failed to clean room", res.Error)
		}
		if res.RowsAffected == 0 {
			return invalidState("room %s is no longer dirty", room.Number)
		}
		room.Status = models.RoomVacant
		return nil
	})
	return room, err
}
