package handlers

import (
	"nightshift/aggregation"
	"nightshift/export"
	"nightshift/filter"
	"nightshift/model"
	"nightshift/session"
	"nightshift/store"
	"nightshift/view"
)

// Exporter is the part of an Entity the CLI needs.
type Exporter interface {
	Build(s *session.Session, c model.Criteria) (int, export.Report)
}

// Exporters は名前からエンティティを引くための表です。
var Exporters = map[string]Exporter{
	"employees": Employees,
	"items":     Items,
	"orders":    Orders,
	"customers": Customers,
	"vendors":   Vendors,
}

var Employees = Entity[model.Employee, model.EmployeeStats]{
	Name:     "employees",
	Store:    func(s *session.Session) *store.Store[model.Employee] { return s.Employees },
	View:     func(s *session.Session) *view.View[model.Employee, model.EmployeeStats] { return s.EmployeeView },
	Filter:   filter.Employees,
	Stats:    aggregation.EmployeeStats,
	Report:   export.EmployeeReport,
	NewInput: func() any { return &model.EmployeeInput{} },
}

var Items = Entity[model.Item, model.InventoryStats]{
	Name:     "items",
	Store:    func(s *session.Session) *store.Store[model.Item] { return s.Items },
	View:     func(s *session.Session) *view.View[model.Item, model.InventoryStats] { return s.ItemView },
	Filter:   filter.Items,
	Stats:    aggregation.InventoryStats,
	Report:   export.InventoryReport,
	NewInput: func() any { return &model.ItemInput{} },
}

var Orders = Entity[model.Order, model.OrderStats]{
	Name:     "orders",
	Store:    func(s *session.Session) *store.Store[model.Order] { return s.Orders },
	View:     func(s *session.Session) *view.View[model.Order, model.OrderStats] { return s.OrderView },
	Filter:   filter.Orders,
	Stats:    aggregation.OrderStats,
	Report:   export.OrderReport,
	NewInput: func() any { return &model.OrderInput{} },
}

var Customers = Entity[model.Customer, model.CustomerStats]{
	Name:     "customers",
	Store:    func(s *session.Session) *store.Store[model.Customer] { return s.Customers },
	View:     func(s *session.Session) *view.View[model.Customer, model.CustomerStats] { return s.CustomerView },
	Filter:   filter.Customers,
	Stats:    aggregation.CustomerStats,
	Report:   export.CustomerReport,
	NewInput: func() any { return &model.CustomerInput{} },
}

var Vendors = Entity[model.Vendor, model.VendorStats]{
	Name:     "vendors",
	Store:    func(s *session.Session) *store.Store[model.Vendor] { return s.Vendors },
	View:     func(s *session.Session) *view.View[model.Vendor, model.VendorStats] { return s.VendorView },
	Filter:   filter.Vendors,
	Stats:    aggregation.VendorStats,
	Report:   export.VendorReport,
	NewInput: func() any { return &model.VendorInput{} },
}
