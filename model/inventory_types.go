package model

const (
	StockIn  = "in-stock"
	StockLow = "low-stock"
	StockOut = "out-of-stock"
)

// DefaultThreshold is the server-side default reorder threshold.
const DefaultThreshold = 10

// Item は在庫品目です。
type Item struct {
	ID               ID              `json:"id"`
	OrgID            ID              `json:"orgId"`
	ItemID           string          `json:"itemId"`
	Name             string          `json:"name"`
	Quantity         int             `json:"quantity"`
	Threshold        int             `json:"threshold"`
	LastDateOfUpdate string          `json:"lastDateOfUpdate"`
	Image            string          `json:"image,omitempty"`
	UpdateHistory    []UpdateHistory `json:"updateHistory"`
}

// StockStatus derives the stock level label from quantity and threshold.
// Zero or negative quantity is out of stock; at or under the threshold is low.
func StockStatus(it Item) string {
	switch {
	case it.Quantity <= 0:
		return StockOut
	case it.Quantity <= it.Threshold:
		return StockLow
	default:
		return StockIn
	}
}

// ItemInput is the create/update payload for items.
type ItemInput struct {
	Name       string  `json:"name,omitempty"`
	Quantity   int     `json:"quantity,omitempty"`
	Threshold  int     `json:"threshold,omitempty"`
	Image      string  `json:"image,omitempty"`
	VendorName string  `json:"vendorName,omitempty"`
	VendorID   string  `json:"vendorId,omitempty"`
	Cost       float64 `json:"cost,omitempty"`
}

// QuantityUpdate is the body of PATCH /items/{id}/quantity.
type QuantityUpdate struct {
	QuantityUpdated int     `json:"quantityUpdated"`
	VendorName      string  `json:"vendorName,omitempty"`
	VendorID        string  `json:"vendorId,omitempty"`
	Cost            float64 `json:"cost"`
	UpdateType      string  `json:"updateType,omitempty"`
}
