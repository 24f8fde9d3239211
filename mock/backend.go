package mock

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"nightshift/model"
)

//go:embed seed.json
var seedJSON []byte

type seedData struct {
	Organization model.Organization `json:"organization"`
	Employees    []model.Employee   `json:"employees"`
	Items        []model.Item       `json:"items"`
	Orders       []model.Order      `json:"orders"`
	Customers    []model.Customer   `json:"customers"`
	Vendors      []model.Vendor     `json:"vendors"`
}

// Backend is an offline stand-in for the nightshift API.
type Backend struct {
	Organization model.Organization
	Employees    *Collection[model.Employee]
	Items        *Collection[model.Item]
	Orders       *Collection[model.Order]
	Customers    *Collection[model.Customer]
	Vendors      *Collection[model.Vendor]

	now      func() time.Time
	password string
}

// New は空のバックエンドを作成します。
func New() *Backend {
	b := &Backend{
		Employees: newCollection("EMP-",
			func(e *model.Employee) *model.ID { return &e.ID },
			func(e *model.Employee) *string { return &e.EmployeeID }),
		Items: newCollection("ITEM-",
			func(i *model.Item) *model.ID { return &i.ID },
			func(i *model.Item) *string { return &i.ItemID }),
		Orders: newCollection("ORD-",
			func(o *model.Order) *model.ID { return &o.ID },
			func(o *model.Order) *string { return &o.OrderID }),
		Customers: newCollection("CUST-",
			func(c *model.Customer) *model.ID { return &c.ID },
			func(c *model.Customer) *string { return &c.CustomerID }),
		Vendors: newCollection("VEND-",
			func(v *model.Vendor) *model.ID { return &v.ID },
			func(v *model.Vendor) *string { return &v.VendorID }),
		now: time.Now,
	}
	b.Items.onCreate = b.itemCreated
	b.Employees.onCreate = func(e *model.Employee, _ any) {
		if e.Status == "" {
			e.Status = model.EmployeeActive
		}
		if e.Role == "" {
			e.Role = model.RoleWorker
		}
		if e.HireDate == "" {
			e.HireDate = b.stamp()
		}
	}
	b.Orders.onCreate = func(o *model.Order, _ any) {
		if o.Status == "" {
			o.Status = model.OrderPending
		}
		if o.OrderDate == "" {
			o.OrderDate = b.stamp()
		}
	}
	b.Customers.onCreate = func(c *model.Customer, _ any) {
		if c.Status == "" {
			c.Status = model.PartnerActive
		}
		if c.DateOfJoining == "" {
			c.DateOfJoining = b.stamp()
		}
	}
	b.Vendors.onCreate = func(v *model.Vendor, _ any) {
		if v.Status == "" {
			v.Status = model.PartnerActive
		}
	}
	return b
}

// Seeded returns a backend loaded with the embedded demo data.
func Seeded() (*Backend, error) {
	var data seedData
	if err := json.Unmarshal(seedJSON, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	b := New()
	b.Organization = data.Organization
	b.Employees.seed(data.Employees)
	b.Items.seed(data.Items)
	b.Orders.seed(data.Orders)
	b.Customers.seed(data.Customers)
	b.Vendors.seed(data.Vendors)
	return b, nil
}

func (b *Backend) stamp() string {
	return b.now().UTC().Format(time.RFC3339)
}

// itemCreated は新規品目の初回補充履歴を記録します。
func (b *Backend) itemCreated(it *model.Item, payload any) {
	var in model.ItemInput
	if err := apply(&in, payload); err != nil {
		return
	}
	if it.Threshold == 0 {
		it.Threshold = model.DefaultThreshold
	}
	it.LastDateOfUpdate = b.stamp()
	it.UpdateHistory = append(it.UpdateHistory, model.UpdateHistory{
		VendorName:      in.VendorName,
		VendorID:        in.VendorID,
		QuantityUpdated: in.Quantity,
		Cost:            in.Cost,
		UpdateType:      model.UpdateReplenishment,
		Date:            it.LastDateOfUpdate,
	})
	b.recordRestock(in.VendorID, model.RestockItem{ItemID: it.ItemID, ItemName: it.Name, Quantity: in.Quantity, Cost: in.Cost}, false)
}

// recordRestock appends r to the vendor's replenishment history. Only quantity
// updates count as restocks: they bump totalRestocks and add the entry's cost
// (not quantity × cost) to totalValue, as the API does.
func (b *Backend) recordRestock(vendorID string, r model.RestockItem, tally bool) {
	if vendorID == "" {
		return
	}
	_ = b.Vendors.modify(vendorID, func(v *model.Vendor) error {
		v.ReplenishmentHistory = append(v.ReplenishmentHistory, r)
		if tally {
			v.TotalRestocks++
			v.TotalValue += r.Cost
		}
		return nil
	})
}

// UpdateItemQuantity adds the change to the item and appends a history entry.
func (b *Backend) UpdateItemQuantity(ctx context.Context, id string, in model.QuantityUpdate) (model.UpdateHistory, error) {
	if err := ctx.Err(); err != nil {
		return model.UpdateHistory{}, err
	}
	updateType := in.UpdateType
	if updateType == "" {
		updateType = model.UpdateReplenishment
	}
	entry := model.UpdateHistory{
		VendorName:      in.VendorName,
		VendorID:        in.VendorID,
		QuantityUpdated: in.QuantityUpdated,
		Cost:            in.Cost,
		UpdateType:      updateType,
		Date:            b.stamp(),
	}
	var restock *model.RestockItem
	err := b.Items.modify(id, func(it *model.Item) error {
		it.Quantity += in.QuantityUpdated
		it.LastDateOfUpdate = entry.Date
		it.UpdateHistory = append(it.UpdateHistory, entry)
		if updateType == model.UpdateReplenishment {
			restock = &model.RestockItem{ItemID: it.ItemID, ItemName: it.Name, Quantity: in.QuantityUpdated, Cost: in.Cost}
		}
		return nil
	})
	if err != nil {
		return model.UpdateHistory{}, err
	}
	if restock != nil {
		b.recordRestock(in.VendorID, *restock, true)
	}
	return entry, nil
}

func (b *Backend) GetOrganization(ctx context.Context) (model.Organization, error) {
	return b.Organization, ctx.Err()
}
