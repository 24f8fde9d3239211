package aggregation

import (
	"sort"
	"time"

	"nightshift/model"
)

const recentOrderMonths = 5

// CustomerInsight derives the customer detail figures at the given instant.
func CustomerInsight(c model.Customer, now time.Time) model.CustomerInsight {
	in := model.CustomerInsight{
		CustomerID:     c.CustomerID,
		RecentOrders:   []model.CustomerOrder{},
		OrderFrequency: float64(len(c.Orders)),
	}
	var last time.Time
	cutoff := now.AddDate(0, -recentOrderMonths, 0)
	for _, o := range c.Orders {
		in.TotalOrderValue += o.TotalAmount
		at := model.ParseTime(o.OrderDate)
		if o.OrderDate != "" && at.After(last) {
			last = at
			in.LastOrderDate = o.OrderDate
		}
		if at.After(cutoff) {
			in.RecentOrders = append(in.RecentOrders, o)
		}
	}

	joined := model.ParseTime(c.DateOfJoining)
	if c.DateOfJoining != "" && !joined.Equal(model.Epoch) {
		months := monthsBetween(joined, now)
		if months >= 1 {
			in.OrderFrequency = float64(len(c.Orders)) / float64(months)
		}
	}
	return in
}

func monthsBetween(from, to time.Time) int {
	m := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		m--
	}
	return m
}

// Dashboard はダッシュボード用の集計を行います。
func Dashboard(emps []model.Employee, items []model.Item, orders []model.Order, customers []model.Customer, vendors []model.Vendor, top int) model.DashboardSummary {
	d := model.DashboardSummary{
		TotalRevenue:    Sum(orders, func(o model.Order) float64 { return o.TotalAmount }),
		PendingOrders:   Count(orders, func(o model.Order) bool { return o.Status == model.OrderPending }),
		TotalQuantity:   int(Sum(items, func(it model.Item) float64 { return float64(it.Quantity) })),
		ActiveEmployees: Count(emps, func(e model.Employee) bool { return e.Status == model.EmployeeActive }),
		LowStockItems:   []model.Item{},
		OutOfStockItems: []model.Item{},
		TopVendors:      []model.RankedVendor{},
		TopCustomers:    []model.RankedCustomer{},
	}
	for _, it := range items {
		if it.Quantity <= it.Threshold {
			d.LowStockItems = append(d.LowStockItems, it)
		}
		if it.Quantity <= 0 {
			d.OutOfStockItems = append(d.OutOfStockItems, it)
		}
	}

	for _, v := range vendors {
		d.TopVendors = append(d.TopVendors, model.RankedVendor{VendorID: v.VendorID, Name: v.Name, AvgRating: Mean(v.Rating)})
	}
	sort.SliceStable(d.TopVendors, func(i, j int) bool { return d.TopVendors[i].AvgRating > d.TopVendors[j].AvgRating })
	if top > 0 && len(d.TopVendors) > top {
		d.TopVendors = d.TopVendors[:top]
	}

	for _, c := range customers {
		spent := Sum(c.Orders, func(o model.CustomerOrder) float64 { return o.TotalAmount })
		d.TopCustomers = append(d.TopCustomers, model.RankedCustomer{CustomerID: c.CustomerID, Name: c.Name, TotalSpent: spent})
	}
	sort.SliceStable(d.TopCustomers, func(i, j int) bool { return d.TopCustomers[i].TotalSpent > d.TopCustomers[j].TotalSpent })
	if top > 0 && len(d.TopCustomers) > top {
		d.TopCustomers = d.TopCustomers[:top]
	}
	return d
}
