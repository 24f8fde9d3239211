package aggregation

import (
	"nightshift/model"
)

// RatingValues lists an employee's review ratings.
func RatingValues(e model.Employee) []model.Rating {
	out := make([]model.Rating, 0, len(e.Performance))
	for _, r := range e.Performance {
		out = append(out, r.Rating)
	}
	return out
}

func statusIs[T any](get func(T) string, want string) func(T) bool {
	return func(v T) bool { return get(v) == want }
}

// EmployeeStats は従業員一覧の集計を行います。
func EmployeeStats(all []model.Employee) model.EmployeeStats {
	status := func(e model.Employee) string { return e.Status }
	return model.EmployeeStats{
		Total:          len(all),
		Active:         Count(all, statusIs(status, model.EmployeeActive)),
		Suspended:      Count(all, statusIs(status, model.EmployeeSuspended)),
		Inactive:       Count(all, statusIs(status, model.EmployeeInactive)),
		AvgSalary:      mean(len(all), Sum(all, func(e model.Employee) float64 { return e.Salary })),
		AvgPerformance: AverageOfAverages(all, RatingValues),
		Departments:    Distribution(all, func(e model.Employee) []string { return []string{e.Department} }),
	}
}

// UpdateValue is quantityUpdated x cost for one history entry.
func UpdateValue(h model.UpdateHistory) float64 {
	return float64(h.QuantityUpdated) * h.Cost
}

// InventoryStats は在庫一覧の集計を行います。
func InventoryStats(all []model.Item) model.InventoryStats {
	stock := func(want string) func(model.Item) bool {
		return func(it model.Item) bool { return model.StockStatus(it) == want }
	}
	return model.InventoryStats{
		Total:      len(all),
		InStock:    Count(all, stock(model.StockIn)),
		LowStock:   Count(all, stock(model.StockLow)),
		OutOfStock: Count(all, stock(model.StockOut)),
		TotalValue: HistoryTotal(all, func(it model.Item) []model.UpdateHistory { return it.UpdateHistory }, UpdateValue),
		TotalQuantity: int(Sum(all, func(it model.Item) float64 {
			return float64(it.Quantity)
		})),
		AvgThreshold: mean(len(all), Sum(all, func(it model.Item) float64 { return float64(it.Threshold) })),
	}
}

// OrderStats は受注一覧の集計を行います。
func OrderStats(all []model.Order) model.OrderStats {
	status := func(o model.Order) string { return o.Status }
	total := Sum(all, func(o model.Order) float64 { return o.TotalAmount })
	return model.OrderStats{
		Total:         len(all),
		Pending:       Count(all, statusIs(status, model.OrderPending)),
		Processing:    Count(all, statusIs(status, model.OrderProcessing)),
		Shipped:       Count(all, statusIs(status, model.OrderShipped)),
		Delivered:     Count(all, statusIs(status, model.OrderDelivered)),
		TotalValue:    total,
		AvgOrderValue: mean(len(all), total),
	}
}

// CustomerStats は得意先一覧の集計を行います。
func CustomerStats(all []model.Customer) model.CustomerStats {
	status := func(c model.Customer) string { return c.Status }
	orders := func(c model.Customer) []model.CustomerOrder { return c.Orders }
	revenue := HistoryTotal(all, orders, func(o model.CustomerOrder) float64 { return o.TotalAmount })
	count := int(Sum(all, func(c model.Customer) float64 { return float64(len(c.Orders)) }))
	return model.CustomerStats{
		Total:           len(all),
		Active:          Count(all, statusIs(status, model.PartnerActive)),
		Inactive:        Count(all, statusIs(status, model.PartnerInactive)),
		TotalRevenue:    revenue,
		TotalOrders:     count,
		AvgOrderValue:   mean(count, revenue),
		AvgSatisfaction: AverageOfAverages(all, func(c model.Customer) []int { return c.SatisfactionLevel }),
		Categories:      Distribution(all, func(c model.Customer) []string { return c.PreferredCategories }),
	}
}

// RestockValue is quantity x cost for one replenishment.
func RestockValue(r model.RestockItem) float64 {
	return float64(r.Quantity) * r.Cost
}

// VendorStats は仕入先一覧の集計を行います。
func VendorStats(all []model.Vendor) model.VendorStats {
	status := func(v model.Vendor) string { return v.Status }
	return model.VendorStats{
		Total:             len(all),
		Active:            Count(all, statusIs(status, model.PartnerActive)),
		Inactive:          Count(all, statusIs(status, model.PartnerInactive)),
		TotalRestocks:     int(Sum(all, func(v model.Vendor) float64 { return float64(v.TotalRestocks) })),
		TotalValue:        HistoryTotal(all, func(v model.Vendor) []model.RestockItem { return v.ReplenishmentHistory }, RestockValue),
		AvgRating:         AverageOfAverages(all, func(v model.Vendor) []int { return v.Rating }),
		AvgOnTimeDelivery: AverageOfAverages(all, func(v model.Vendor) []int { return v.OnTimeDelivery }),
		AvgResponseTime:   AverageOfAverages(all, func(v model.Vendor) []int { return v.ResponseTime }),
		Specialities:      Distribution(all, func(v model.Vendor) []string { return v.Specialities }),
	}
}

func mean(n int, total float64) float64 {
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
