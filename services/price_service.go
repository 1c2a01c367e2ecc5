package services

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"frontdesk-backend/models"
)

// PriceService owns the single active price table row.
type PriceService struct {
	DB *gorm.DB
}

func NewPriceService(db *gorm.DB) *PriceService {
	return &PriceService{DB: db}
}

func validatePrices(p models.PriceTable) error {
	if p.FirstHour < 0 || p.ExtraHour < 0 || p.Overnight < 0 {
		return validationError("prices must be non-negative")
	}
	return nil
}

// EnsureDefaults stores defaults when no price table exists yet. An existing
// table is left untouched.
func (s *PriceService) EnsureDefaults(ctx context.Context, defaults models.PriceTable) error {
	if err := validatePrices(defaults); err != nil {
		return err
	}
	defaults.ID = models.PriceTableID
	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&defaults).Error
	return storageError("failed to seed price table", err)
}

func (s *PriceService) Get(ctx context.Context) (models.PriceTable, error) {
	return s.current(s.DB.WithContext(ctx))
}

// current reads the active table on db, which may be a transaction.
func (s *PriceService) current(db *gorm.DB) (models.PriceTable, error) {
	var p models.PriceTable
	if err := db.First(&p, models.PriceTableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return p, invalidState("price table has not been configured")
		}
		return p, storageError("failed to load price table", err)
	}
	return p, nil
}

// Replace swaps the whole price table.
func (s *PriceService) Replace(ctx context.Context, p models.PriceTable) (models.PriceTable, error) {
	if err := validatePrices(p); err != nil {
		return p, err
	}
	p.ID = models.PriceTableID
	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"first_hour", "extra_hour", "overnight", "updated_at"}),
		}).
		Create(&p).Error
	if err != nil {
		return p, storageError("failed to update prices", err)
	}
	return p, nil
}
