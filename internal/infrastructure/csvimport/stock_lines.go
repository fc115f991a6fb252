package csvimport

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/circtek/backend/internal/domain/inventory"
)

// Column names of a reconciliation CSV
const (
	ColumnSKU         = "sku"
	ColumnQuantity    = "quantity"
	ColumnDescription = "description"
)

// ReadStockLines parses a reconciliation CSV with sku and quantity columns
// and an optional description. Every invalid row is reported together in a
// *ValidationError. Duplicate SKUs are returned as-is; callers merge them.
func ReadStockLines(r io.Reader) ([]inventory.StockLine, error) {
	p, err := NewParser(r)
	if err != nil {
		return nil, err
	}
	if err := p.ParseHeader(); err != nil {
		return nil, err
	}
	if missing := p.MissingHeaders(ColumnSKU, ColumnQuantity); len(missing) > 0 {
		return nil, fmt.Errorf("CSV is missing required column(s): %s", strings.Join(missing, ", "))
	}

	rows, err := p.ReadAllRows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoDataRows
	}

	errs := NewErrorCollection(0)
	lines := make([]inventory.StockLine, 0, len(rows))
	for _, row := range rows {
		line, ok := parseStockRow(row, errs)
		if ok {
			lines = append(lines, line)
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func parseStockRow(row *Row, errs *ErrorCollection) (inventory.StockLine, bool) {
	ok := true
	raw := row.Get(ColumnSKU)
	sku, err := inventory.NormalizeSKU(raw)
	if raw == "" {
		errs.Add(RowError{Row: row.LineNumber, Column: ColumnSKU, Code: ErrCodeRequiredField, Message: "sku is required"})
		ok = false
	} else if err != nil {
		errs.Add(RowError{Row: row.LineNumber, Column: ColumnSKU, Code: ErrCodeInvalidFormat, Message: "invalid sku", Value: raw})
		ok = false
	}

	qtyRaw := row.Get(ColumnQuantity)
	qty, err := strconv.ParseInt(qtyRaw, 10, 64)
	switch {
	case qtyRaw == "":
		errs.Add(RowError{Row: row.LineNumber, Column: ColumnQuantity, Code: ErrCodeRequiredField, Message: "quantity is required"})
		ok = false
	case err != nil:
		errs.Add(RowError{Row: row.LineNumber, Column: ColumnQuantity, Code: ErrCodeInvalidType, Message: "quantity must be a whole number", Value: qtyRaw})
		ok = false
	case qty < 0:
		errs.Add(RowError{Row: row.LineNumber, Column: ColumnQuantity, Code: ErrCodeInvalidRange, Message: "quantity cannot be negative", Value: qtyRaw})
		ok = false
	}

	return inventory.StockLine{SKU: sku, Quantity: qty, Description: row.Get(ColumnDescription)}, ok
}
