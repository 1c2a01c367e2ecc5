package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"frontdesk-backend/services"
)

// Spreadsheet headers of the inventory import template.
const (
	HeaderProductName   = "Product name"
	HeaderQuantity      = "Quantity"
	HeaderPurchasePrice = "Purchase price"
)

type sheetColumns struct {
	name, quantity, purchasePrice int
}

// resolveColumns finds the template columns in the header row. A header that
// names none of them falls back to the positional layout A, B, C.
func resolveColumns(header []string) (sheetColumns, error) {
	cols := sheetColumns{name: -1, quantity: -1, purchasePrice: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case strings.ToLower(HeaderProductName):
			cols.name = i
		case strings.ToLower(HeaderQuantity):
			cols.quantity = i
		case strings.ToLower(HeaderPurchasePrice):
			cols.purchasePrice = i
		}
	}
	switch {
	case cols.name < 0 && cols.quantity < 0 && cols.purchasePrice < 0:
		return sheetColumns{name: 0, quantity: 1, purchasePrice: 2}, nil
	case cols.name < 0:
		return cols, services.NewValidationError("missing %q column", HeaderProductName)
	case cols.quantity < 0:
		return cols, services.NewValidationError("missing %q column", HeaderQuantity)
	case cols.purchasePrice < 0:
		return cols, services.NewValidationError("missing %q column", HeaderPurchasePrice)
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseWhole reads a non-negative whole number, tolerating thousands
// separators. Blank cells read as zero.
func parseWhole(raw string) (int64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%s is negative", raw)
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("%s is not a whole number", raw)
	}
	return d.IntPart(), nil
}

// ParseInventorySheet reads the first worksheet of an .xlsx workbook. The
// first row is the header; rows with an empty product name are skipped.
func ParseInventorySheet(r io.Reader) ([]services.StockEntry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, services.NewValidationError("unable to open Excel file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, services.NewValidationError("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, services.NewValidationError("unable to read sheet %q: %v", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, services.NewValidationError("sheet %q is empty", sheets[0])
	}

	cols, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	entries := make([]services.StockEntry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		name := cell(row, cols.name)
		if name == "" {
			continue
		}
		qty, err := parseWhole(cell(row, cols.quantity))
		if err != nil {
			return nil, services.NewValidationError("row %d (%s): invalid quantity: %v", line, name, err)
		}
		price, err := parseWhole(cell(row, cols.purchasePrice))
		if err != nil {
			return nil, services.NewValidationError("row %d (%s): invalid purchase price: %v", line, name, err)
		}
		entries = append(entries, services.StockEntry{Name: name, Quantity: qty, PurchasePrice: price})
	}
	if len(entries) == 0 {
		return nil, services.NewValidationError("sheet %q has no product rows", sheets[0])
	}
	return entries, nil
}
