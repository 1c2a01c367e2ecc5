package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"frontdesk-backend/models"
)

// InventoryService is the minibar stock ledger.
type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// StockEntry is one line of a bulk or spreadsheet import.
type StockEntry struct {
	Name          string `json:"name" binding:"required"`
	Quantity      int64  `json:"quantity" binding:"min=0"`
	PurchasePrice int64  `json:"purchasePrice" binding:"min=0"`
	SalePrice     *int64 `json:"salePrice" binding:"omitempty,min=0"`
}

// ItemUpsert backs the single-item endpoint: ID selects an existing item,
// otherwise Name selects or creates one. Nil fields are left as they are.
type ItemUpsert struct {
	ID            *uint   `json:"id"`
	Name          *string `json:"name"`
	Quantity      *int64  `json:"quantity" binding:"omitempty,min=0"`
	PurchasePrice *int64  `json:"purchasePrice" binding:"omitempty,min=0"`
	SalePrice     *int64  `json:"salePrice" binding:"omitempty,min=0"`
}

func (s *InventoryService) List(ctx context.Context) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, storageError("failed to load inventory", err)
	}
	return items, nil
}

func (s *InventoryService) Get(ctx context.Context, id uint) (models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return item, lookupError(err, "inventory item", id)
	}
	return item, nil
}

// Adjust applies delta to an item's on-hand quantity inside tx. The update is
// conditional, so stock never goes below zero even under concurrent writers.
func (s *InventoryService) Adjust(tx *gorm.DB, itemID uint, delta int64) (models.InventoryItem, error) {
	var item models.InventoryItem
	if err := forUpdate(tx).First(&item, itemID).Error; err != nil {
		return item, lookupError(err, "inventory item", itemID)
	}
	if delta == 0 {
		return item, nil
	}
	if item.Quantity+delta < 0 {
		return item, insufficientInventory(item.Name, item.Quantity, -delta)
	}

	q := tx.Model(&models.InventoryItem{}).Where("id = ?", itemID)
	if delta < 0 {
		q = q.Where("quantity >= ?", -delta)
	}
	res := q.Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return item, storageError("failed to adjust inventory", res.Error)
	}
	if res.RowsAffected == 0 {
		return item, insufficientInventory(item.Name, item.Quantity, -delta)
	}
	item.Quantity += delta
	return item, nil
}

// UpsertBulk adds each entry's quantity to the item of the same name and
// overwrites its purchase price, creating missing items. Importing the same
// sheet twice doubles the stock.
func (s *InventoryService) UpsertBulk(ctx context.Context, entries []StockEntry) (int, error) {
	if len(entries) == 0 {
		return 0, validationError("no inventory entries supplied")
	}
	for i, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return 0, validationError("entry %d: name is required", i+1)
		}
		if e.Quantity < 0 || e.PurchasePrice < 0 || (e.SalePrice != nil && *e.SalePrice < 0) {
			return 0, validationError("entry %d (%s): quantities and prices must be non-negative", i+1, e.Name)
		}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			name := strings.TrimSpace(e.Name)

			var item models.InventoryItem
			err := forUpdate(tx).Where("name = ?", name).First(&item).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				item = models.InventoryItem{
					Name:          name,
					Quantity:      e.Quantity,
					PurchasePrice: e.PurchasePrice,
					SalePrice:     e.SalePrice,
				}
				if err := tx.Create(&item).Error; err != nil {
					return storageError("failed to create inventory item "+name, err)
				}
				continue
			}
			if err != nil {
				return storageError("failed to load inventory item "+name, err)
			}

			updates := map[string]interface{}{
				"quantity":       gorm.Expr("quantity + ?", e.Quantity),
				"purchase_price": e.PurchasePrice,
			}
			if e.SalePrice != nil {
				updates["sale_price"] = *e.SalePrice
			}
			if err := tx.Model(&models.InventoryItem{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
				return storageError("failed to update inventory item "+name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Upsert updates the item selected by ID, or by Name creating it when absent.
func (s *InventoryService) Upsert(ctx context.Context, in ItemUpsert) (models.InventoryItem, error) {
	var item models.InventoryItem

	name := ""
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if in.ID == nil && name == "" {
		return item, validationError("either id or name is required")
	}
	for field, v := range map[string]*int64{"quantity": in.Quantity, "purchasePrice": in.PurchasePrice, "salePrice": in.SalePrice} {
		if v != nil && *v < 0 {
			return item, validationError("%s must be non-negative", field)
		}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if in.ID != nil {
			err = forUpdate(tx).First(&item, *in.ID).Error
			if err != nil {
				return lookupError(err, "inventory item", *in.ID)
			}
		} else {
			err = forUpdate(tx).Where("name = ?", name).First(&item).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				item = models.InventoryItem{Name: name, SalePrice: in.SalePrice}
				if in.Quantity != nil {
					item.Quantity = *in.Quantity
				}
				if in.PurchasePrice != nil {
					item.PurchasePrice = *in.PurchasePrice
				}
				return storageError("failed to create inventory item", tx.Create(&item).Error)
			}
			if err != nil {
				return storageError("failed to load inventory item", err)
			}
		}

		updates := map[string]interface{}{}
		if in.ID != nil && name != "" && name != item.Name {
			updates["name"] = name
		}
		if in.Quantity != nil {
			updates["quantity"] = *in.Quantity
		}
		if in.PurchasePrice != nil {
			updates["purchase_price"] = *in.PurchasePrice
		}
		if in.SalePrice != nil {
			updates["sale_price"] = *in.SalePrice
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&item).Updates(updates).Error; err != nil {
			if isDuplicateKey(err) {
				return validationError("an item named %q already exists", name)
			}
			return storageError("failed to update inventory item", err)
		}
		return storageError("failed to reload inventory item", tx.First(&item, item.ID).Error)
	})
	return item, err
}
