package csvimport

import (
	"strings"
	"testing"

	"github.com/circtek/backend/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadStockLines(t *testing.T) {
	csv := "Description,SKU,Quantity\nScreen,SCR-1,2\n,BAT-1,0\nScreen again,SCR-1,3\n"
	lines, err := ReadStockLines(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []inventory.StockLine{
		{SKU: "SCR-1", Quantity: 2, Description: "Screen"},
		{SKU: "BAT-1", Quantity: 0},
		{SKU: "SCR-1", Quantity: 3, Description: "Screen again"},
	}, lines)
}

func TestReadStockLines_MissingColumn(t *testing.T) {
	_, err := ReadStockLines(strings.NewReader("sku,description\nA,x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")
}

func TestReadStockLines_HeaderOnly(t *testing.T) {
	_, err := ReadStockLines(strings.NewReader("sku,quantity\n"))
	assert.ErrorIs(t, err, ErrNoDataRows)
}

func TestReadStockLines_ReportsEveryBadRow(t *testing.T) {
	csv := "sku,quantity\nA,1\n,2\nB,two\nC,-1\nbad sku!,1\n"
	_, err := ReadStockLines(strings.NewReader(csv))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, 4, verr.Total)

	codes := make([]string, 0, len(verr.Errors))
	for _, e := range verr.Errors {
		codes = append(codes, e.Code)
	}
	assert.Equal(t, []string{ErrCodeRequiredField, ErrCodeInvalidType, ErrCodeInvalidRange, ErrCodeInvalidFormat}, codes)
	assert.Equal(t, 3, verr.Errors[0].Row)
	assert.Contains(t, err.Error(), "4 error(s) found")
}

func TestErrorCollection_Truncates(t *testing.T) {
	ec := NewErrorCollection(2)
	for i := 0; i < 5; i++ {
		ec.Add(RowError{Row: i + 2, Code: ErrCodeMalformedRow, Message: "bad"})
	}
	var verr *ValidationError
	require.ErrorAs(t, ec.Err(), &verr)
	assert.Len(t, verr.Errors, 2)
	assert.Equal(t, 5, verr.Total)
	assert.Contains(t, verr.Error(), "showing first 2")
}

func TestErrorCollection_NoErrors(t *testing.T) {
	assert.NoError(t, NewErrorCollection(0).Err())
}
