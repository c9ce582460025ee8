// Package store persists ledger rows and chat history. The transaction
// table is always rewritten whole on save; there is exactly one writer
// per ledger file.
package store

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/pukulo/ledgerchat/internal/domain"
)

// SheetName is the workbook sheet holding the transaction table.
const SheetName = "Transactions"

// Column order of the persisted table. Load and Save both depend on it.
var columns = [...]string{"Type", "Category", "Amount", "Balance", "Description"}

// XLSX stores the ledger as a spreadsheet, the way the tracker has always
// shipped its data.
type XLSX struct {
	path string
}

// NewXLSX creates a spreadsheet store at path. The file is created on the
// first Save.
func NewXLSX(path string) *XLSX {
	return &XLSX{path: path}
}

// Load reads all rows in order. A missing file yields an empty ledger.
// Row IDs are not part of the five persisted columns and are regenerated.
func (s *XLSX) Load() ([]domain.Transaction, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open %s: %w", s.path, err)
	}
	defer f.Close()

	sheet := SheetName
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		// Tables written by other tools may use the default sheet name.
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	out := make([]domain.Transaction, 0, len(rows)-1)
	for i, row := range rows[1:] { // skip header
		t, err := rowToTransaction(row)
		if err != nil {
			return nil, fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// Save rewrites the whole table.
func (s *XLSX) Save(rows []domain.Transaction) error {
	f, err := Workbook(rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("xlsx: save %s: %w", s.path, err)
	}
	return nil
}

// Workbook builds a workbook with the full transaction table on the
// Transactions sheet. Shared by the store and the export report.
func Workbook(rows []domain.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("xlsx: name sheet: %w", err)
	}

	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xlsx: header cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, name); err != nil {
			f.Close()
			return nil, fmt.Errorf("xlsx: write header: %w", err)
		}
	}

	for i, t := range rows {
		values := []interface{}{
			string(t.Kind),
			t.Category,
			t.Amount.InexactFloat64(),
			t.BalanceAfter.InexactFloat64(),
			t.Description,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("xlsx: cell for row %d: %w", i+2, err)
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("xlsx: write row %d: %w", i+2, err)
			}
		}
	}
	return f, nil
}

func rowToTransaction(row []string) (domain.Transaction, error) {
	var t domain.Transaction

	// Trailing empty cells are trimmed by the reader; pad them back.
	cells := make([]string, len(columns))
	copy(cells, row)

	kind, err := domain.ParseKind(cells[0])
	if err != nil {
		return t, err
	}
	amount, err := decimal.NewFromString(cells[2])
	if err != nil {
		return t, fmt.Errorf("invalid amount %q: %w", cells[2], err)
	}
	balance, err := decimal.NewFromString(cells[3])
	if err != nil {
		return t, fmt.Errorf("invalid balance %q: %w", cells[3], err)
	}

	return domain.Transaction{
		ID:           uuid.NewString(),
		Kind:         kind,
		Category:     cells[1],
		Amount:       amount,
		BalanceAfter: balance,
		Description:  cells[4],
	}, nil
}
