package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"

	"nightshift/format"
	"nightshift/model"
)

//go:embed invoice.html
var invoiceHTML string

var invoiceTmpl = template.Must(template.New("invoice").Parse(invoiceHTML))

// InvoiceLine は請求書の明細行です。金額は小数2桁の文字列です。
type InvoiceLine struct {
	ItemID    string
	ItemName  string
	Quantity  int
	UnitPrice string
	Amount    string
}

// Invoice holds everything the invoice template prints.
type Invoice struct {
	OrganizationName string
	OrderID          string
	CustomerID       string
	CustomerName     string
	EmployeeID       string
	EmployeeName     string
	OrderDate        string
	Deadline         string
	Lines            []InvoiceLine
	Total            string
	Notes            string
}

// NewInvoice は注文から請求書データを作成します。合計は数量×単価の和です。
func NewInvoice(orgName string, o model.Order) Invoice {
	inv := Invoice{
		OrganizationName: orgName,
		OrderID:          o.OrderID,
		CustomerID:       string(o.CustomerID),
		CustomerName:     o.CustomerName,
		EmployeeID:       string(o.EmployeeID),
		EmployeeName:     o.EmployeeName,
		OrderDate:        format.Date(o.OrderDate),
		Deadline:         format.Date(o.Deadline),
		Notes:            strings.TrimSpace(o.Notes),
		Lines:            make([]InvoiceLine, 0, len(o.Items)),
	}
	total := decimal.Zero
	for _, li := range o.Items {
		price := decimal.NewFromFloat(li.PriceAtOrder)
		amount := price.Mul(decimal.NewFromInt(int64(li.Quantity)))
		total = total.Add(amount)
		inv.Lines = append(inv.Lines, InvoiceLine{
			ItemID:    li.ItemID,
			ItemName:  li.ItemName,
			Quantity:  li.Quantity,
			UnitPrice: price.StringFixed(2),
			Amount:    amount.StringFixed(2),
		})
	}
	inv.Total = total.StringFixed(2)
	return inv
}

// InvoiceHTML renders the invoice page.
func InvoiceHTML(inv Invoice) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, inv); err != nil {
		return "", fmt.Errorf("failed to render invoice %s: %w", inv.OrderID, err)
	}
	return buf.String(), nil
}

// OrderInvoiceHTML is NewInvoice followed by InvoiceHTML.
func OrderInvoiceHTML(orgName string, o model.Order) (string, error) {
	return InvoiceHTML(NewInvoice(orgName, o))
}
