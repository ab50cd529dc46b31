package export

import (
	"bytes"
	"fmt"

	"inventory/domain"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Inventory"
	FileName    = "inventory.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var Header = []any{"Item Name", "Quantity", "Date Added", "Price", "Condition"}

// Format renders items as a single-sheet workbook, one row per item in the
// order given, below a fixed header row.
func Format(items []domain.Item) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"; rename it rather than adding a second sheet.
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return nil, fmt.Errorf("open stream writer: %w", err)
	}

	if err := sw.SetRow("A1", Header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		row := []any{
			item.ItemName,
			item.Quantity,
			item.DateAdded.String(),
			item.Price.InexactFloat64(),
			item.Condition,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("flush rows: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
