package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"backoffice/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var columns = []string{
	"Purchase ID",
	"Type",
	"Status",
	"Supplier",
	"Supplier Country",
	"Invoice Date",
	"Line Item Count",
	"Total Excl. VAT",
	"VAT",
	"Total Incl. VAT",
	"Created At",
}

// Writer wraps csv.Writer for exporting purchases. Excel in the Dutch locale expects
// a semicolon separator.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes semicolon-separated rows to w.
func NewWriter(w io.Writer) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	return &Writer{csv: cw}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WritePurchases writes one row per purchase. suppliers maps supplier ids to their
// record; unknown suppliers leave the supplier columns empty.
func (w *Writer) WritePurchases(purchases []domain.Purchase, suppliers map[string]*domain.Supplier) error {
	for i := range purchases {
		if err := w.csv.Write(purchaseToRow(&purchases[i], suppliers)); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func purchaseToRow(p *domain.Purchase, suppliers map[string]*domain.Supplier) []string {
	row := make([]string, len(columns))
	row[0] = p.ID.String()
	row[1] = string(p.Type)
	row[2] = string(p.Status)
	if s, ok := suppliers[p.SupplierID.String()]; ok {
		row[3] = s.Name
		row[4] = s.Country
	}
	row[5] = p.PurchaseInvoiceDate.Format("2006-01-02")
	row[6] = strconv.Itoa(len(p.Items))
	row[7] = p.TotalExcBTW
	row[8] = p.TotalVAT
	row[9] = p.TotalIncBTW
	row[10] = p.CreatedAt.Format(time.RFC3339)
	return row
}

// BuildFilename returns the Content-Disposition filename for an export taken at now.
func BuildFilename(now time.Time) string {
	return fmt.Sprintf("purchases_%s.csv", now.Format("2006-01-02"))
}
