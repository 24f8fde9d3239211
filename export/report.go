package export

import (
	"strings"

	"nightshift/aggregation"
	"nightshift/format"
	"nightshift/history"
	"nightshift/model"
)

// Table は出力用の表データです。
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

type StatRow struct {
	Label string
	Value any
}

// Report is one filtered view: the records sheet plus its stats.
type Report struct {
	Data  Table
	Stats []StatRow
}

func join(v []string) string { return strings.Join(v, ", ") }

func distribution(prefix string, counts []model.CategoryCount) []StatRow {
	rows := make([]StatRow, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, StatRow{Label: prefix + ": " + c.Key, Value: c.Count})
	}
	return rows
}

func EmployeeReport(records []model.Employee, s model.EmployeeStats) Report {
	t := Table{
		Name:   "Employees",
		Header: []string{"Employee ID", "Name", "Email", "Department", "Role", "Status", "Salary", "Avg Rating", "Hire Date"},
	}
	for _, e := range records {
		avg := aggregation.EntityAverage(e, aggregation.RatingValues)
		t.Rows = append(t.Rows, []any{e.EmployeeID, e.Name, e.Email, e.Department, e.Role, e.Status, e.Salary, avg, format.Date(e.HireDate)})
	}
	stats := []StatRow{
		{"Total", s.Total},
		{"Active", s.Active},
		{"Suspended", s.Suspended},
		{"Inactive", s.Inactive},
		{"Average Salary", format.Thousands(s.AvgSalary)},
		{"Average Performance", format.Rating(s.AvgPerformance)},
	}
	return Report{Data: t, Stats: append(stats, distribution("Department", s.Departments)...)}
}

func InventoryReport(records []model.Item, s model.InventoryStats) Report {
	t := Table{
		Name:   "Inventory",
		Header: []string{"Item ID", "Name", "Quantity", "Threshold", "Status", "Last Updated", "History Value"},
	}
	for _, it := range records {
		value := history.ItemHistoryTotal(it)
		t.Rows = append(t.Rows, []any{it.ItemID, it.Name, it.Quantity, it.Threshold, model.StockStatus(it), format.Date(it.LastDateOfUpdate), value})
	}
	return Report{Data: t, Stats: []StatRow{
		{"Total", s.Total},
		{"In Stock", s.InStock},
		{"Low Stock", s.LowStock},
		{"Out of Stock", s.OutOfStock},
		{"Total Quantity", s.TotalQuantity},
		{"Total Value", format.Money(s.TotalValue)},
		{"Average Threshold", s.AvgThreshold},
	}}
}

func OrderReport(records []model.Order, s model.OrderStats) Report {
	t := Table{
		Name:   "Orders",
		Header: []string{"Order ID", "Customer", "Employee", "Items", "Total", "Status", "Order Date", "Deadline"},
	}
	for _, o := range records {
		names := make([]string, 0, len(o.Items))
		for _, li := range o.Items {
			names = append(names, li.ItemName)
		}
		t.Rows = append(t.Rows, []any{o.OrderID, o.CustomerName, o.EmployeeName, join(names), o.TotalAmount, o.Status, format.Date(o.OrderDate), format.Date(o.Deadline)})
	}
	return Report{Data: t, Stats: []StatRow{
		{"Total", s.Total},
		{"Pending", s.Pending},
		{"Processing", s.Processing},
		{"Shipped", s.Shipped},
		{"Delivered", s.Delivered},
		{"Total Value", format.Money(s.TotalValue)},
		{"Average Order Value", format.Money(s.AvgOrderValue)},
	}}
}

func CustomerReport(records []model.Customer, s model.CustomerStats) Report {
	t := Table{
		Name:   "Customers",
		Header: []string{"Customer ID", "Name", "Email", "Phone", "Status", "Orders", "Total Spent", "Categories"},
	}
	for _, c := range records {
		spent := aggregation.Sum(c.Orders, func(o model.CustomerOrder) float64 { return o.TotalAmount })
		t.Rows = append(t.Rows, []any{c.CustomerID, c.Name, c.Email, c.Phone, c.Status, len(c.Orders), spent, join(c.PreferredCategories)})
	}
	stats := []StatRow{
		{"Total", s.Total},
		{"Active", s.Active},
		{"Inactive", s.Inactive},
		{"Total Revenue", format.Money(s.TotalRevenue)},
		{"Total Orders", s.TotalOrders},
		{"Average Order Value", format.Money(s.AvgOrderValue)},
		{"Average Satisfaction", format.Rating(s.AvgSatisfaction)},
	}
	return Report{Data: t, Stats: append(stats, distribution("Category", s.Categories)...)}
}

func VendorReport(records []model.Vendor, s model.VendorStats) Report {
	t := Table{
		Name:   "Vendors",
		Header: []string{"Vendor ID", "Name", "Email", "Phone", "Status", "Restocks", "Total Value", "Avg Rating", "Specialities"},
	}
	for _, v := range records {
		t.Rows = append(t.Rows, []any{v.VendorID, v.Name, v.Email, v.Phone, v.Status, v.TotalRestocks, v.TotalValue, aggregation.Mean(v.Rating), join(v.Specialities)})
	}
	stats := []StatRow{
		{"Total", s.Total},
		{"Active", s.Active},
		{"Inactive", s.Inactive},
		{"Total Restocks", s.TotalRestocks},
		{"Total Value", format.Thousands(s.TotalValue)},
		{"Average Rating", format.Rating(s.AvgRating)},
		{"Average On-Time Delivery", format.Percent(s.AvgOnTimeDelivery)},
		{"Average Response Time", s.AvgResponseTime},
	}
	return Report{Data: t, Stats: append(stats, distribution("Speciality", s.Specialities)...)}
}
