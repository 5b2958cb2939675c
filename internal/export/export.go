package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/buchetul-simonei/order-service/internal/normalize"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// utf8BOM keeps the CSV import-friendly for spreadsheet tools.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BuildXLSX renders the rows into a single-sheet workbook with a header row,
// preserving input order. An empty input yields a header-only sheet.
func BuildXLSX(rows []normalize.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream writer: %w", err)
	}

	header := make([]any, len(normalize.Columns))
	for i, col := range normalize.Columns {
		header[i] = col
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cells := make([]any, len(normalize.Columns))
		for j, col := range normalize.Columns {
			cells[j] = row[col]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildCSV renders the rows as UTF-8 CSV with a byte-order mark and a header
// row, no index column.
func BuildCSV(rows []normalize.Row) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(normalize.Columns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(normalize.Columns))
	for i, row := range rows {
		for j, col := range normalize.Columns {
			record[j] = row[col]
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
