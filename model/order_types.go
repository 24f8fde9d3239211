package model

const (
	OrderPending    = "PENDING"
	OrderProcessing = "PROCESSING"
	OrderShipped    = "SHIPPED"
	OrderDelivered  = "DELIVERED"
)

// Order は受注レコードです。
type Order struct {
	ID           ID          `json:"id"`
	OrgID        ID          `json:"orgId"`
	OrderID      string      `json:"orderId"`
	CustomerID   ID          `json:"customerId"`
	CustomerName string      `json:"customerName"`
	EmployeeID   ID          `json:"employeeId"`
	EmployeeName string      `json:"employeeName"`
	Items        []OrderItem `json:"items"`
	TotalAmount  float64     `json:"totalAmount"`
	Status       string      `json:"status"`
	OrderDate    string      `json:"orderDate"`
	Deadline     string      `json:"deadline"`
	Notes        string      `json:"notes"`
}

// OrderItem は注文明細です。PriceAtOrder は単価です。
type OrderItem struct {
	ItemID       string  `json:"itemId"`
	ItemName     string  `json:"itemName"`
	Quantity     int     `json:"quantity"`
	PriceAtOrder float64 `json:"priceAtOrder"`
}

// OrderInput is the create/update payload for orders.
type OrderInput struct {
	CustomerID   string      `json:"customerId,omitempty"`
	CustomerName string      `json:"customerName,omitempty"`
	EmployeeID   string      `json:"employeeId,omitempty"`
	EmployeeName string      `json:"employeeName,omitempty"`
	Items        []OrderItem `json:"items,omitempty"`
	TotalAmount  *float64    `json:"totalAmount,omitempty"`
	Status       string      `json:"status,omitempty"`
	OrderDate    string      `json:"orderDate,omitempty"`
	Deadline     string      `json:"deadline,omitempty"`
	Notes        string      `json:"notes,omitempty"`
}
