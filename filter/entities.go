package filter

import "nightshift/model"

// Employees: status, department, and name/department/employeeId/email search.
var Employees = Config[model.Employee]{
	Status:   func(e model.Employee) string { return e.Status },
	Category: func(e model.Employee) []string { return []string{e.Department} },
	Search: func(e model.Employee) []string {
		return []string{e.Name, e.Department, e.EmployeeID, e.Email}
	},
}

// Items filter on the derived stock status.
var Items = Config[model.Item]{
	Status: model.StockStatus,
	Search: func(it model.Item) []string { return []string{it.Name, it.ItemID} },
}

var Orders = Config[model.Order]{
	Status: func(o model.Order) string { return o.Status },
	Search: func(o model.Order) []string {
		fields := make([]string, 0, 3+len(o.Items))
		fields = append(fields, o.OrderID, o.CustomerName, o.EmployeeName)
		for _, li := range o.Items {
			fields = append(fields, li.ItemName)
		}
		return fields
	},
}

var Customers = Config[model.Customer]{
	Status:   func(c model.Customer) string { return c.Status },
	Category: func(c model.Customer) []string { return c.PreferredCategories },
	Search: func(c model.Customer) []string {
		fields := []string{c.Name, c.Email, c.CustomerID, c.Phone}
		return append(fields, c.PreferredCategories...)
	},
}

var Vendors = Config[model.Vendor]{
	Status:   func(v model.Vendor) string { return v.Status },
	Category: func(v model.Vendor) []string { return v.Specialities },
	Search: func(v model.Vendor) []string {
		fields := []string{v.Name, v.Email, v.VendorID, v.Phone}
		return append(fields, v.Specialities...)
	},
}
