package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nightshift/model"
)

func sampleOrder() model.Order {
	return model.Order{
		OrderID:      "ORD-003",
		CustomerID:   "cust-b",
		CustomerName: "Metro <Builders>",
		EmployeeID:   "emp-c",
		EmployeeName: "Meera Iyer",
		OrderDate:    "2024-05-10T10:00:00Z",
		Deadline:     "2024-05-20T10:00:00Z",
		Items: []model.OrderItem{
			{ItemID: "ITEM-003", ItemName: "Steel Bracket", Quantity: 60, PriceAtOrder: 20},
			{ItemID: "ITEM-001", ItemName: "Copper Wire", Quantity: 3, PriceAtOrder: 0.1},
		},
	}
}

func TestNewInvoiceTotals(t *testing.T) {
	inv := NewInvoice("Nightshift Traders", sampleOrder())
	require.Len(t, inv.Lines, 2)
	assert.Equal(t, "1200.00", inv.Lines[0].Amount)
	assert.Equal(t, "0.30", inv.Lines[1].Amount)
	assert.Equal(t, "1200.30", inv.Total)
	assert.Equal(t, "10 May 2024", inv.OrderDate)
}

func TestInvoiceHTMLEscapesAndOmitsEmptyNotes(t *testing.T) {
	html, err := OrderInvoiceHTML("Nightshift Traders", sampleOrder())
	require.NoError(t, err)
	assert.Contains(t, html, "Metro &lt;Builders&gt;")
	assert.Contains(t, html, "Total: ₹1200.30")
	assert.NotContains(t, html, "Additional Notes")

	o := sampleOrder()
	o.Notes = "  Deliver to rear gate "
	html, err = OrderInvoiceHTML("Nightshift Traders", o)
	require.NoError(t, err)
	assert.Contains(t, html, "<p>Deliver to rear gate</p>")
}
