// Package documents renders printable receipts.
package documents

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const receiptTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head><meta charset="utf-8"><title>{{.Invoice.InvoiceNo}}</title></head>
<body>
<h1>{{.StoreName}}</h1>
<p>Invoice <strong>{{.Invoice.InvoiceNo}}</strong> &middot; {{formatTime .Invoice.CreatedAt}}</p>
{{if .Customer}}<p>Customer: {{.Customer.Name}}{{if .Customer.Phone}} ({{.Customer.Phone}}){{end}}</p>{{else}}<p>Walk-in sale</p>{{end}}
<table>
<thead><tr><th>#</th><th>Item</th><th>Qty</th><th>Price</th><th>Total</th></tr></thead>
<tbody>
{{range .Invoice.Lines}}<tr><td>{{.LineNo}}</td><td>{{.ItemName}}</td><td>{{formatInt .Quantity}}</td><td>{{money .Price}}</td><td>{{money .LineTotal}}</td></tr>
{{end}}</tbody>
</table>
<p>Subtotal: {{money .Invoice.Subtotal}}</p>
{{if .Invoice.Discount.IsPositive}}<p>Discount: -{{money .Invoice.Discount}}</p>{{end}}
<p><strong>Total: {{money .Invoice.TotalAmount}}</strong></p>
<p>Paid: {{money .Invoice.PaidAmount}}{{if .Invoice.PaymentMethod}} ({{.Invoice.PaymentMethod}}){{end}}</p>
{{if .Invoice.ChangeReturned.IsPositive}}<p>Change: {{money .Invoice.ChangeReturned}}</p>{{end}}
{{if .Invoice.CreditAmount.IsPositive}}<p>Kept as credit: {{money .Invoice.CreditAmount}}</p>{{end}}
<p>Status: {{title (print .Invoice.PaymentStatus)}}</p>
{{if .Customer}}<p>Balance due: {{money .Customer.Dues}}</p>{{end}}
{{if .Invoice.Notes}}<p>{{.Invoice.Notes}}</p>{{end}}
</body>
</html>
`

// ReceiptRenderer renders invoices as self-contained HTML receipts.
type ReceiptRenderer struct {
	storeName string
	lang      language.Tag
	location  *time.Location
	tmpl      *template.Template
}

// ReceiptOption configures the renderer
type ReceiptOption func(*ReceiptRenderer)

// WithLanguage sets the locale used for number formatting.
func WithLanguage(tag language.Tag) ReceiptOption {
	return func(r *ReceiptRenderer) {
		r.lang = tag
	}
}

// WithLocation sets the timezone receipts are printed in.
func WithLocation(loc *time.Location) ReceiptOption {
	return func(r *ReceiptRenderer) {
		r.location = loc
	}
}

// NewReceiptRenderer parses the receipt template once.
func NewReceiptRenderer(storeName string, opts ...ReceiptOption) *ReceiptRenderer {
	r := &ReceiptRenderer{storeName: storeName, lang: language.English, location: time.UTC}
	for _, opt := range opts {
		opt(r)
	}

	printer := message.NewPrinter(r.lang)
	caser := cases.Title(r.lang)
	funcMap := template.FuncMap{
		"money": func(d decimal.Decimal) string {
			f, _ := d.Round(2).Float64()
			return printer.Sprintf("%.2f", f)
		},
		"formatInt": func(n int) string {
			return printer.Sprintf("%d", n)
		},
		"formatTime": func(t time.Time) string {
			return t.In(r.location).Format("2006-01-02 15:04")
		},
		"title": caser.String,
	}
	r.tmpl = template.Must(template.New("receipt").Funcs(funcMap).Parse(receiptTemplate))
	return r
}

type receiptData struct {
	services.InvoiceDocument
	StoreName string
	Lang      string
}

func (r *ReceiptRenderer) RenderInvoice(_ context.Context, doc services.InvoiceDocument) (*services.Artifact, error) {
	var buf bytes.Buffer
	data := receiptData{InvoiceDocument: doc, StoreName: r.storeName, Lang: r.lang.String()}
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render receipt %s: %w", doc.Invoice.InvoiceNo, err)
	}
	return &services.Artifact{
		Name:        doc.Invoice.InvoiceNo + ".html",
		ContentType: "text/html; charset=utf-8",
		Body:        buf.Bytes(),
	}, nil
}

var _ services.DocumentRenderer = (*ReceiptRenderer)(nil)
