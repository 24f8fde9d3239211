package model

const (
	UpdateReplenishment = "REPLENISHMENT"
	UpdateOrder         = "ORDER"
	UpdateOrderRevert   = "ORDERREVERT"
)

// UpdateHistory は品目の数量変動履歴の1件です。
type UpdateHistory struct {
	VendorName      string  `json:"vendorName"`
	VendorID        string  `json:"vendorId,omitempty"`
	OrderName       string  `json:"orderName,omitempty"`
	OrderID         string  `json:"orderId,omitempty"`
	QuantityUpdated int     `json:"quantityUpdated"`
	Cost            float64 `json:"cost"`
	UpdateType      string  `json:"updateType"`
	Date            string  `json:"date"`
}

// RestockItem は仕入先の補充履歴の1件です。
type RestockItem struct {
	ID       ID      `json:"id,omitempty"`
	ItemID   string  `json:"itemId"`
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Cost     float64 `json:"cost"`
}

// CustomerOrder は得意先に紐づく注文の要約です。
type CustomerOrder struct {
	OrderID     string  `json:"orderId"`
	Status      string  `json:"status"`
	OrderDate   string  `json:"orderDate"`
	TotalAmount float64 `json:"totalAmount"`
}

// ItemHistory は品目の履歴画面の内容です。
type ItemHistory struct {
	ItemID         string          `json:"itemId"`
	Entries        []UpdateHistory `json:"entries"`
	Replenishments []UpdateHistory `json:"replenishments"`
	Total          float64         `json:"total"`
}
