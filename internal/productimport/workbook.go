// Package productimport reads supplier price lists from .xlsx workbooks.
package productimport

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"backoffice/internal/domain"
	"backoffice/internal/pricing"
)

// Column headers recognised on the first row, matched case-insensitively.
// Only title is required.
var headerAliases = map[string]string{
	"title":                 "title",
	"product":               "title",
	"description":           "description",
	"ean":                   "ean",
	"barcode":               "ean",
	"article_code":          "article_code",
	"artikelnummer":         "article_code",
	"supplier_article_code": "supplier_article_code",
	"price_cost":            "price_cost",
	"inkoopprijs":           "price_cost",
	"price_per_piece":       "price_per_piece",
	"vat":                   "vat",
	"btw":                   "vat",
	"free_stock":            "free_stock",
}

// RowError describes a skipped data row. Row is 1-based as shown in a spreadsheet.
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// Result is the outcome of reading one sheet.
type Result struct {
	Products []domain.Product
	Skipped  []RowError
}

// Read parses the named sheet of the workbook in r. An empty sheet name reads the
// first sheet. Every imported product is active and linked to supplierID when set.
func Read(r io.Reader, sheet string, supplierID *uuid.UUID) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return &Result{}, nil
	}

	columns := mapHeader(rows[0])
	if _, ok := columns["title"]; !ok {
		return nil, fmt.Errorf("sheet %q has no title column", sheet)
	}

	res := &Result{}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		product, reason := parseRow(row, columns)
		if reason != "" {
			res.Skipped = append(res.Skipped, RowError{Row: i + 1, Reason: reason})
			continue
		}
		product.SupplierID = supplierID
		res.Products = append(res.Products, product)
	}
	return res, nil
}

func mapHeader(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, cell := range header {
		key := strings.ToLower(strings.TrimSpace(cell))
		key = strings.ReplaceAll(key, " ", "_")
		if field, ok := headerAliases[key]; ok {
			if _, dup := columns[field]; !dup {
				columns[field] = i
			}
		}
	}
	return columns
}

func parseRow(row []string, columns map[string]int) (domain.Product, string) {
	get := func(field string) string {
		idx, ok := columns[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	p := domain.Product{
		Title:               get("title"),
		Description:         get("description"),
		EAN:                 get("ean"),
		ArticleCode:         get("article_code"),
		SupplierArticleCode: get("supplier_article_code"),
		IsActive:            true,
	}
	if p.Title == "" {
		return p, "missing title"
	}

	for _, amount := range []struct {
		field string
		dst   *string
	}{{"price_cost", &p.PriceCost}, {"price_per_piece", &p.PricePerPiece}} {
		field, dst := amount.field, amount.dst
		raw := get(field)
		if raw == "" {
			continue
		}
		if !pricing.ValidAmount(raw) {
			return p, fmt.Sprintf("invalid %s %q", field, raw)
		}
		*dst = raw
	}

	if raw := strings.TrimSuffix(get("vat"), "%"); raw != "" {
		rate, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(raw), ",", ".", 1), 64)
		if err != nil || rate < 0 || rate > 100 {
			return p, fmt.Sprintf("invalid vat %q", raw)
		}
		p.VATRate = &rate
	}

	if raw := get("free_stock"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Sprintf("invalid free_stock %q", raw)
		}
		p.FreeStock = n
	}
	return p, ""
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
