package services

import (
	"context"

	"gorm.io/gorm"

	"frontdesk-backend/models"
)

type TransactionService struct {
	DB *gorm.DB
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{DB: db}
}

// List returns transactions newest first. A positive limit caps the result.
func (s *TransactionService) List(ctx context.Context, limit int) ([]models.Transaction, error) {
	list := []models.Transaction{}
	q := s.DB.WithContext(ctx).Order("check_out_time DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, storageError("failed to load transactions", err)
	}
	return list, nil
}
