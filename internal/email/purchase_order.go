// Package email renders purchase orders for delivery to suppliers.
package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"backoffice/internal/domain"
	"backoffice/internal/port"
	"backoffice/internal/pricing"
)

type orderLine struct {
	Title     string
	EAN       string
	Quantity  int
	UnitPrice string
	LineTotal string
}

type orderView struct {
	SenderName   string
	SupplierName string
	ContactName  string
	Reference    string
	Date         string
	Lines        []orderLine
	Totals       pricing.FormattedTotals
}

var textTmpl = texttemplate.Must(texttemplate.New("order").Parse(`Beste {{.ContactName}},

Hierbij onze bestelling {{.Reference}} van {{.Date}}.

{{range .Lines}}{{.Quantity}} x {{.Title}}{{if .EAN}} ({{.EAN}}){{end}} a {{.UnitPrice}} = {{.LineTotal}}
{{end}}
Totaal excl. BTW: {{.Totals.SubtotalExclTax}}
BTW:              {{.Totals.TaxAmount}}
Totaal incl. BTW: {{.Totals.TotalInclTax}}

Met vriendelijke groet,
{{.SenderName}}
`))

var htmlTmpl = htmltemplate.Must(htmltemplate.New("order").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 640px; margin: 0 auto; padding: 20px;">
  <p>Beste {{.ContactName}},</p>
  <p>Hierbij onze bestelling <strong>{{.Reference}}</strong> van {{.Date}}.</p>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><th align="left">Artikel</th><th align="left">EAN</th><th align="right">Aantal</th><th align="right">Prijs</th><th align="right">Totaal</th></tr>
    {{range .Lines}}<tr><td>{{.Title}}</td><td>{{.EAN}}</td><td align="right">{{.Quantity}}</td><td align="right">{{.UnitPrice}}</td><td align="right">{{.LineTotal}}</td></tr>
    {{end}}
  </table>
  <p>Totaal excl. BTW: {{.Totals.SubtotalExclTax}}<br>BTW: {{.Totals.TaxAmount}}<br><strong>Totaal incl. BTW: {{.Totals.TotalInclTax}}</strong></p>
  <p>Met vriendelijke groet,<br>{{.SenderName}}</p>
</body>
</html>`))

// RenderPurchaseOrder builds the mail for purchase addressed to supplier. The totals
// are recomputed from the items so the mail always agrees with the line list.
func RenderPurchaseOrder(senderName string, purchase *domain.Purchase, supplier *domain.Supplier, resolver *pricing.Resolver) (port.PurchaseOrderMail, error) {
	items := make([]pricing.LineItem, 0, len(purchase.Items))
	lines := make([]orderLine, 0, len(purchase.Items))
	for _, it := range purchase.Items {
		li := pricing.LineItem{
			ID:        it.ID.String(),
			ProductID: it.ProductID.String(),
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			VATRate:   it.VATRate,
		}
		items = append(items, li)
		net, _ := pricing.Contribution(li, supplier.Country, resolver)
		lines = append(lines, orderLine{
			Title:     it.ProductTitle,
			EAN:       it.ProductEAN,
			Quantity:  it.Quantity,
			UnitPrice: pricing.FormatAmount(pricing.ParseAmount(it.UnitPrice)),
			LineTotal: pricing.FormatAmount(net),
		})
	}

	contact := supplier.ContactPerson
	if strings.TrimSpace(contact) == "" {
		contact = supplier.Name
	}
	view := orderView{
		SenderName:   senderName,
		SupplierName: supplier.Name,
		ContactName:  contact,
		Reference:    shortReference(purchase),
		Date:         purchase.PurchaseInvoiceDate.Format("02-01-2006"),
		Lines:        lines,
		Totals:       pricing.ComputeTotals(items, supplier.Country, resolver).Formatted(),
	}

	var text, html bytes.Buffer
	if err := textTmpl.Execute(&text, view); err != nil {
		return port.PurchaseOrderMail{}, fmt.Errorf("rendering text body: %w", err)
	}
	if err := htmlTmpl.Execute(&html, view); err != nil {
		return port.PurchaseOrderMail{}, fmt.Errorf("rendering html body: %w", err)
	}

	return port.PurchaseOrderMail{
		ToEmail:  supplier.Email,
		ToName:   contact,
		Subject:  fmt.Sprintf("Bestelling %s - %s", view.Reference, senderName),
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}

func shortReference(p *domain.Purchase) string {
	return strings.ToUpper(p.ID.String()[:8])
}
