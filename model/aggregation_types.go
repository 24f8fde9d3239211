package model

// Criteria は一覧表示の絞り込み条件です。"all" はその条件を無効にします。
type Criteria struct {
	Status   string `json:"status"`
	Category string `json:"category"`
	Search   string `json:"search"`
}

// CategoryCount は区分ごとの件数です。
type CategoryCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// EmployeeStats は従業員一覧の集計値です。
type EmployeeStats struct {
	Total          int             `json:"total"`
	Active         int             `json:"active"`
	Suspended      int             `json:"suspended"`
	Inactive       int             `json:"inactive"`
	AvgSalary      float64         `json:"avgSalary"`
	AvgPerformance float64         `json:"avgPerformance"`
	Departments    []CategoryCount `json:"departments"`
}

// InventoryStats は在庫一覧の集計値です。
type InventoryStats struct {
	Total         int     `json:"total"`
	InStock       int     `json:"inStock"`
	LowStock      int     `json:"lowStock"`
	OutOfStock    int     `json:"outOfStock"`
	TotalValue    float64 `json:"totalValue"`
	TotalQuantity int     `json:"totalQuantity"`
	AvgThreshold  float64 `json:"avgThreshold"`
}

// OrderStats は受注一覧の集計値です。
type OrderStats struct {
	Total         int     `json:"total"`
	Pending       int     `json:"pending"`
	Processing    int     `json:"processing"`
	Shipped       int     `json:"shipped"`
	Delivered     int     `json:"delivered"`
	TotalValue    float64 `json:"totalValue"`
	AvgOrderValue float64 `json:"avgOrderValue"`
}

// CustomerStats は得意先一覧の集計値です。
type CustomerStats struct {
	Total           int             `json:"total"`
	Active          int             `json:"active"`
	Inactive        int             `json:"inactive"`
	TotalRevenue    float64         `json:"totalRevenue"`
	TotalOrders     int             `json:"totalOrders"`
	AvgOrderValue   float64         `json:"avgOrderValue"`
	AvgSatisfaction float64         `json:"avgSatisfaction"`
	Categories      []CategoryCount `json:"categories"`
}

// VendorStats は仕入先一覧の集計値です。
type VendorStats struct {
	Total             int             `json:"total"`
	Active            int             `json:"active"`
	Inactive          int             `json:"inactive"`
	TotalRestocks     int             `json:"totalRestocks"`
	TotalValue        float64         `json:"totalValue"`
	AvgRating         float64         `json:"avgRating"`
	AvgOnTimeDelivery float64         `json:"avgOnTimeDelivery"`
	AvgResponseTime   float64         `json:"avgResponseTime"`
	Specialities      []CategoryCount `json:"specialities"`
}

// CustomerInsight は得意先詳細画面の派生値です。
type CustomerInsight struct {
	CustomerID      string          `json:"customerId"`
	TotalOrderValue float64         `json:"totalOrderValue"`
	LastOrderDate   string          `json:"lastOrderDate"`
	RecentOrders    []CustomerOrder `json:"recentOrders"`
	OrderFrequency  float64         `json:"orderFrequency"`
}

// RankedVendor is a vendor with its average rating.
type RankedVendor struct {
	VendorID  string  `json:"vendorId"`
	Name      string  `json:"name"`
	AvgRating float64 `json:"avgRating"`
}

// RankedCustomer is a customer with the total of their orders.
type RankedCustomer struct {
	CustomerID string  `json:"customerId"`
	Name       string  `json:"name"`
	TotalSpent float64 `json:"totalSpent"`
}

// DashboardSummary はダッシュボードの集計値です。
type DashboardSummary struct {
	TotalRevenue    float64          `json:"totalRevenue"`
	PendingOrders   int              `json:"pendingOrders"`
	TotalQuantity   int              `json:"totalQuantity"`
	ActiveEmployees int              `json:"activeEmployees"`
	LowStockItems   []Item           `json:"lowStockItems"`
	OutOfStockItems []Item           `json:"outOfStockItems"`
	TopVendors      []RankedVendor   `json:"topVendors"`
	TopCustomers    []RankedCustomer `json:"topCustomers"`
}
