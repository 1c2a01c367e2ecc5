package services

import (
	"errors"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"frontdesk-backend/models"
)

// forUpdate adds a row lock to the next query on dialects that support it.
// SQLite serialises writers at the database level instead.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector != nil && tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) && merr.Number == 1062 {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func datatypesItems(items []models.ConsumedItem) datatypes.JSONSlice[models.ConsumedItem] {
	if items == nil {
		items = []models.ConsumedItem{}
	}
	return datatypes.JSONSlice[models.ConsumedItem](items)
}
