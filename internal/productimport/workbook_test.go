package productimport_test

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"backoffice/internal/productimport"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestRead_MapsHeaderColumns(t *testing.T) {
	supplierID := uuid.New()
	buf := workbook(t, [][]interface{}{
		{"EAN", "Title", "Inkoopprijs", "BTW", "Free Stock"},
		{"8710000000011", "Widget", "10,00", "21%", "4"},
		{"8710000000028", "Sticker", "5.50", "0", ""},
	})

	res, err := productimport.Read(buf, "", &supplierID)
	require.NoError(t, err)
	require.Len(t, res.Products, 2)
	assert.Empty(t, res.Skipped)

	widget := res.Products[0]
	assert.Equal(t, "Widget", widget.Title)
	assert.Equal(t, "8710000000011", widget.EAN)
	assert.Equal(t, "10,00", widget.PriceCost)
	require.NotNil(t, widget.VATRate)
	assert.Equal(t, 21.0, *widget.VATRate)
	assert.Equal(t, 4, widget.FreeStock)
	assert.True(t, widget.IsActive)
	assert.Equal(t, &supplierID, widget.SupplierID)

	require.NotNil(t, res.Products[1].VATRate)
	assert.Equal(t, 0.0, *res.Products[1].VATRate)
}

func TestRead_SkipsBadRows(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"title", "price_cost", "vat"},
		{"", "1.00", "21"},
		{"Bad price", "abc", "21"},
		{"Bad vat", "1.00", "150"},
		{},
		{"Good", "2.00", ""},
	})

	res, err := productimport.Read(buf, "", nil)
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Good", res.Products[0].Title)
	assert.Nil(t, res.Products[0].VATRate)

	require.Len(t, res.Skipped, 3)
	assert.Equal(t, 2, res.Skipped[0].Row)
	assert.Equal(t, "missing title", res.Skipped[0].Reason)
	assert.Equal(t, 3, res.Skipped[1].Row)
	assert.Equal(t, 4, res.Skipped[2].Row)
}

func TestRead_RequiresTitleColumn(t *testing.T) {
	buf := workbook(t, [][]interface{}{{"ean", "price_cost"}, {"1", "2"}})

	_, err := productimport.Read(buf, "", nil)
	assert.Error(t, err)
}

func TestRead_UnknownSheet(t *testing.T) {
	buf := workbook(t, [][]interface{}{{"title"}})

	_, err := productimport.Read(buf, "Missing", nil)
	assert.Error(t, err)
}
